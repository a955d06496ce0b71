package match

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/gdugdh24/datepoint-backend/internal/repository"
)

const maxReportDescription = 1000

type MatchUseCase struct {
	tx          repository.TxManager
	matchRepo   repository.MatchRepository
	profileRepo repository.ProfileRepository
	blockRepo   repository.BlockRepository
	reportRepo  repository.ReportRepository
	log         *slog.Logger
	now         func() time.Time
}

func NewMatchUseCase(
	tx repository.TxManager,
	matchRepo repository.MatchRepository,
	profileRepo repository.ProfileRepository,
	blockRepo repository.BlockRepository,
	reportRepo repository.ReportRepository,
	log *slog.Logger,
) *MatchUseCase {
	return &MatchUseCase{
		tx:          tx,
		matchRepo:   matchRepo,
		profileRepo: profileRepo,
		blockRepo:   blockRepo,
		reportRepo:  reportRepo,
		log:         log,
		now:         time.Now,
	}
}

// MatchedUser is the public part of the other participant's profile.
type MatchedUser struct {
	ID           string  `json:"id"`
	FirstName    string  `json:"first_name"`
	Age          int     `json:"age"`
	MainPhotoURL *string `json:"main_photo_url"`
	City         *string `json:"city"`
}

// MatchView is a match as seen by one of its participants.
type MatchView struct {
	*domain.Match
	OtherUserID string       `json:"other_user_id"`
	OtherUser   *MatchedUser `json:"other_user,omitempty"`
}

// ListMatches returns the user's active matches, most recent message first.
func (uc *MatchUseCase) ListMatches(ctx context.Context, userID string) ([]*MatchView, error) {
	matches, err := uc.matchRepo.GetActiveMatches(ctx, userID)
	if err != nil {
		return nil, domain.Dependency("failed to list matches", err)
	}
	return uc.views(ctx, userID, matches)
}

// ListConversations returns active matches that have at least one message.
func (uc *MatchUseCase) ListConversations(ctx context.Context, userID string) ([]*MatchView, error) {
	matches, err := uc.matchRepo.GetConversations(ctx, userID)
	if err != nil {
		return nil, domain.Dependency("failed to list conversations", err)
	}
	return uc.views(ctx, userID, matches)
}

func (uc *MatchUseCase) views(ctx context.Context, userID string, matches []*domain.Match) ([]*MatchView, error) {
	now := uc.now()
	views := make([]*MatchView, 0, len(matches))
	for _, m := range matches {
		otherID, _ := m.GetOtherUserID(userID)
		view := &MatchView{Match: m, OtherUserID: otherID}

		other, err := uc.profileRepo.GetByID(ctx, otherID)
		switch {
		case err == nil:
			view.OtherUser = &MatchedUser{
				ID:           other.ID,
				FirstName:    other.FirstName,
				Age:          other.Age(now),
				MainPhotoURL: other.MainPhotoURL,
				City:         other.LocationCity,
			}
		case errors.Is(err, domain.ErrProfileNotFound):
			uc.log.Warn("match references missing profile", "match_id", m.ID, "user_id", otherID)
		default:
			return nil, domain.Dependency("failed to load matched profile", err)
		}
		views = append(views, view)
	}
	return views, nil
}

// Unmatch ends an active match. Message history is kept.
func (uc *MatchUseCase) Unmatch(ctx context.Context, userID, matchID string) error {
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		match, err := uc.matchRepo.GetByIDForUpdate(ctx, matchID)
		if err != nil {
			return err
		}
		if !match.HasUser(userID) {
			return domain.ErrMatchNotFound
		}

		ok, err := uc.matchRepo.TransitionStatus(ctx, match.ID, domain.MatchStatusActive, domain.MatchStatusUnmatched)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrMatchNotActive
		}
		return uc.releaseSlots(ctx, match)
	})
	if err != nil {
		return domain.Dependency("failed to unmatch", err)
	}

	uc.log.Info("match ended", "match_id", matchID, "user_id", userID)
	return nil
}

// Block hides the two users from each other and closes any match between them.
func (uc *MatchUseCase) Block(ctx context.Context, blockerID, blockedID string) error {
	if blockerID == blockedID {
		return domain.ErrCannotBlockSelf
	}
	if _, err := uc.profileRepo.GetByID(ctx, blockedID); err != nil {
		return domain.Dependency("failed to load blocked profile", err)
	}

	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.matchRepo.LockPair(ctx, blockerID, blockedID); err != nil {
			return err
		}
		if err := uc.blockRepo.Create(ctx, &domain.Block{BlockerID: blockerID, BlockedID: blockedID}); err != nil {
			return err
		}

		match, err := uc.matchRepo.GetByUsers(ctx, blockerID, blockedID)
		if errors.Is(err, domain.ErrMatchNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		switch match.Status {
		case domain.MatchStatusActive:
			ok, err := uc.matchRepo.TransitionStatus(ctx, match.ID, domain.MatchStatusActive, domain.MatchStatusBlocked)
			if err != nil || !ok {
				return err
			}
			return uc.releaseSlots(ctx, match)
		case domain.MatchStatusUnmatched:
			_, err := uc.matchRepo.TransitionStatus(ctx, match.ID, domain.MatchStatusUnmatched, domain.MatchStatusBlocked)
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Dependency("failed to block user", err)
	}

	uc.log.Info("user blocked", "blocker_id", blockerID, "blocked_id", blockedID)
	return nil
}

// ReportRequest represents a report about another user
type ReportRequest struct {
	Reason      string  `json:"reason" binding:"required"`
	Description *string `json:"description"`
}

// Report stores a pending report for moderation.
func (uc *MatchUseCase) Report(ctx context.Context, reporterID, reportedID string, req *ReportRequest) (*domain.Report, error) {
	if reporterID == reportedID {
		return nil, domain.ErrCannotReportSelf
	}
	if !domain.IsReportReason(req.Reason) {
		return nil, domain.ErrInvalidReason
	}
	if req.Description != nil {
		d := strings.TrimSpace(*req.Description)
		if len(d) > maxReportDescription {
			return nil, domain.Validation("description is too long")
		}
		req.Description = &d
	}
	if _, err := uc.profileRepo.GetByID(ctx, reportedID); err != nil {
		return nil, domain.Dependency("failed to load reported profile", err)
	}

	report := &domain.Report{
		ReporterID:  reporterID,
		ReportedID:  reportedID,
		Reason:      req.Reason,
		Description: req.Description,
		Status:      "pending",
	}
	if err := uc.reportRepo.Create(ctx, report); err != nil {
		return nil, domain.Dependency("failed to create report", err)
	}

	uc.log.Info("user reported", "report_id", report.ID, "reason", report.Reason)
	return report, nil
}

func (uc *MatchUseCase) releaseSlots(ctx context.Context, match *domain.Match) error {
	if err := uc.profileRepo.AddMatchCount(ctx, match.User1ID, -1); err != nil {
		return err
	}
	return uc.profileRepo.AddMatchCount(ctx, match.User2ID, -1)
}
