package profile

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
)

func checkImage(contentType string) error {
	if !strings.HasPrefix(contentType, "image/") {
		return domain.Validation("photo must be an image")
	}
	return nil
}

// UploadMainPhoto stores the main photo. It expires after the configured
// number of days and must then be replaced.
func (uc *ProfileUseCase) UploadMainPhoto(ctx context.Context, userID string, body io.Reader, contentType string) (*domain.Profile, error) {
	if err := checkImage(contentType); err != nil {
		return nil, err
	}
	profile, err := uc.GetMyProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	key := fmt.Sprintf("%s/main_%d.jpg", userID, now.UnixNano())
	url, err := uc.storage.Put(ctx, key, body, contentType)
	if err != nil {
		return nil, domain.Dependency("failed to upload photo", err)
	}

	expiresAt := now.Add(uc.photoTTL)
	if err := uc.profileRepo.UpdateMainPhoto(ctx, userID, &url, &expiresAt); err != nil {
		uc.discard(ctx, url)
		return nil, domain.Dependency("failed to save photo", err)
	}
	if profile.MainPhotoURL != nil {
		uc.discard(ctx, *profile.MainPhotoURL)
	}

	profile.MainPhotoURL = &url
	profile.MainPhotoExpiresAt = &expiresAt
	return profile, nil
}

// UploadGalleryPhoto stores a photo in gallery slot 0..8. A slot past the
// end of the gallery appends.
func (uc *ProfileUseCase) UploadGalleryPhoto(ctx context.Context, userID string, slot int, body io.Reader, contentType string) (*domain.Profile, error) {
	if slot < 0 || slot >= domain.MaxGalleryPhotos {
		return nil, domain.ErrInvalidPhotoSlot
	}
	if err := checkImage(contentType); err != nil {
		return nil, err
	}
	profile, err := uc.GetMyProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s/photo_%d_%d.jpg", userID, slot, uc.now().UnixNano())
	url, err := uc.storage.Put(ctx, key, body, contentType)
	if err != nil {
		return nil, domain.Dependency("failed to upload photo", err)
	}

	urls := slices.Clone(profile.PhotoURLs)
	var replaced string
	if slot < len(urls) {
		replaced = urls[slot]
		urls[slot] = url
	} else {
		urls = append(urls, url)
	}

	if err := uc.profileRepo.UpdatePhotoURLs(ctx, userID, urls); err != nil {
		uc.discard(ctx, url)
		return nil, domain.Dependency("failed to save photo", err)
	}
	if replaced != "" {
		uc.discard(ctx, replaced)
	}

	profile.PhotoURLs = urls
	return profile, nil
}

// DeletePhoto removes the main photo or a gallery photo by URL.
func (uc *ProfileUseCase) DeletePhoto(ctx context.Context, userID, url string) (*domain.Profile, error) {
	if url == "" {
		return nil, domain.Validation("photo url is required")
	}
	profile, err := uc.GetMyProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	isMain := profile.MainPhotoURL != nil && *profile.MainPhotoURL == url
	idx := slices.Index(profile.PhotoURLs, url)
	if !isMain && idx < 0 {
		return nil, domain.Validation("photo does not belong to this profile")
	}

	if key, ok := uc.storage.KeyFromURL(url); ok {
		if err := uc.storage.Delete(ctx, key); err != nil {
			return nil, domain.Dependency("failed to delete photo", err)
		}
	}

	if isMain {
		if err := uc.profileRepo.UpdateMainPhoto(ctx, userID, nil, nil); err != nil {
			return nil, domain.Dependency("failed to delete photo", err)
		}
		profile.MainPhotoURL = nil
		profile.MainPhotoExpiresAt = nil
		return profile, nil
	}

	urls := slices.Delete(slices.Clone(profile.PhotoURLs), idx, idx+1)
	if err := uc.profileRepo.UpdatePhotoURLs(ctx, userID, urls); err != nil {
		return nil, domain.Dependency("failed to delete photo", err)
	}
	profile.PhotoURLs = urls
	return profile, nil
}

// discard removes an object that is no longer referenced.
func (uc *ProfileUseCase) discard(ctx context.Context, url string) {
	key, ok := uc.storage.KeyFromURL(url)
	if !ok {
		return
	}
	if err := uc.storage.Delete(ctx, key); err != nil {
		uc.log.Warn("failed to delete stale photo", "key", key, "error", err)
	}
}
