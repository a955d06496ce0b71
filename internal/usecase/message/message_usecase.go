package message

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/gdugdh24/datepoint-backend/internal/infrastructure/realtime"
	"github.com/gdugdh24/datepoint-backend/internal/repository"
)

type MessageUseCase struct {
	tx          repository.TxManager
	matchRepo   repository.MatchRepository
	messageRepo repository.MessageRepository
	limitRepo   repository.MessageLimitRepository
	hub         realtime.Hub
	rules       Rules
	defaultLoc  *time.Location
	log         *slog.Logger
	now         func() time.Time
}

func NewMessageUseCase(
	tx repository.TxManager,
	matchRepo repository.MatchRepository,
	messageRepo repository.MessageRepository,
	limitRepo repository.MessageLimitRepository,
	hub realtime.Hub,
	rules Rules,
	defaultLoc *time.Location,
	log *slog.Logger,
) *MessageUseCase {
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	return &MessageUseCase{
		tx:          tx,
		matchRepo:   matchRepo,
		messageRepo: messageRepo,
		limitRepo:   limitRepo,
		hub:         hub,
		rules:       rules,
		defaultLoc:  defaultLoc,
		log:         log,
		now:         time.Now,
	}
}

// SendResult is the outcome of an accepted message.
type SendResult struct {
	Message            *domain.Message      `json:"message"`
	MessageLimit       *domain.MessageLimit `json:"message_limit"`
	ShowDateSuggestion bool                 `json:"show_date_suggestion"`
}

// Conversation is the message history of a match for one participant.
type Conversation struct {
	Match              *domain.Match        `json:"match"`
	Messages           []*domain.Message    `json:"messages"`
	MessageLimit       *domain.MessageLimit `json:"message_limit"`
	ShowDateSuggestion bool                 `json:"show_date_suggestion"`
}

// today is the calendar day in loc, or in the default zone when loc is nil.
func (uc *MessageUseCase) today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = uc.defaultLoc
	}
	return now.In(loc).Format(domain.DateLayout)
}

// SendMessage stores a message from senderID. Until the other participant
// has replied, senderID may send at most InitialMessageLimit messages per
// calendar day in loc.
func (uc *MessageUseCase) SendMessage(ctx context.Context, senderID, matchID, content string, loc *time.Location) (*SendResult, error) {
	if senderID == "" {
		return nil, domain.ErrUnauthenticated
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > domain.MaxMessageLength {
		return nil, domain.ErrMessageTooLong
	}

	now := uc.now()
	today := uc.today(now, loc)
	result := &SendResult{}

	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		match, err := uc.matchRepo.GetByIDForUpdate(ctx, matchID)
		if err != nil {
			return err
		}
		if !match.HasUser(senderID) {
			return domain.ErrMatchNotFound
		}
		if !match.IsActive() {
			return domain.ErrMatchNotActive
		}

		limit, err := uc.getLimit(ctx, matchID, senderID)
		if err != nil {
			return err
		}
		if !uc.rules.CanSend(match, limit, senderID, today) {
			return domain.ErrMessageLimitReached
		}

		msg := &domain.Message{
			MatchID:   matchID,
			SenderID:  senderID,
			Content:   content,
			CreatedAt: now,
		}
		if err := uc.messageRepo.Create(ctx, msg); err != nil {
			return err
		}

		updated, err := uc.matchRepo.RecordMessage(ctx, matchID, senderID, msg.Preview(), now)
		if err != nil {
			return err
		}

		limit, err = uc.limitRepo.Increment(ctx, matchID, senderID, today)
		if err != nil {
			return err
		}
		limit.CanSend = uc.rules.CanSend(updated, limit, senderID, today)

		result.Message = msg
		result.MessageLimit = limit
		result.ShowDateSuggestion = uc.rules.ShouldShowDateSuggestion(updated)
		return nil
	})
	if err != nil {
		return nil, domain.Dependency("failed to send message", err)
	}

	// delivery is best effort; the message is already stored
	if err := uc.hub.Publish(ctx, result.Message); err != nil {
		uc.log.Warn("failed to publish message", "match_id", matchID, "error", err)
	}

	uc.log.Debug("message sent", "match_id", matchID, "sender_id", senderID)
	return result, nil
}

// CheckMessageLimit reports how many messages userID has sent today and
// whether they may send another one.
func (uc *MessageUseCase) CheckMessageLimit(ctx context.Context, userID, matchID string, loc *time.Location) (*domain.MessageLimit, error) {
	match, err := uc.participantMatch(ctx, userID, matchID)
	if err != nil {
		return nil, err
	}

	limit, err := uc.effectiveLimit(ctx, match, userID, uc.today(uc.now(), loc))
	if err != nil {
		return nil, domain.Dependency("failed to load message limit", err)
	}
	return limit, nil
}

// GetMessages returns the match history, optionally only messages created
// after since, and marks the other participant's messages as read.
func (uc *MessageUseCase) GetMessages(ctx context.Context, userID, matchID string, since *time.Time, loc *time.Location) (*Conversation, error) {
	match, err := uc.participantMatch(ctx, userID, matchID)
	if err != nil {
		return nil, err
	}

	messages, err := uc.messageRepo.GetByMatch(ctx, matchID, since)
	if err != nil {
		return nil, domain.Dependency("failed to load messages", err)
	}

	now := uc.now()
	if n, err := uc.messageRepo.MarkRead(ctx, matchID, userID, now); err != nil {
		uc.log.Warn("failed to mark messages read", "match_id", matchID, "error", err)
	} else if n > 0 {
		for _, m := range messages {
			if m.SenderID != userID && m.ReadAt == nil {
				m.ReadAt = &now
			}
		}
	}

	limit, err := uc.effectiveLimit(ctx, match, userID, uc.today(now, loc))
	if err != nil {
		return nil, domain.Dependency("failed to load message limit", err)
	}

	return &Conversation{
		Match:              match,
		Messages:           messages,
		MessageLimit:       limit,
		ShowDateSuggestion: match.IsActive() && uc.rules.ShouldShowDateSuggestion(match),
	}, nil
}

// Subscribe streams new messages of the match to userID.
func (uc *MessageUseCase) Subscribe(ctx context.Context, userID, matchID string) (realtime.Subscription, error) {
	if _, err := uc.participantMatch(ctx, userID, matchID); err != nil {
		return nil, err
	}
	sub, err := uc.hub.Subscribe(ctx, matchID)
	if err != nil {
		return nil, domain.Dependency("failed to subscribe", err)
	}
	return sub, nil
}

func (uc *MessageUseCase) participantMatch(ctx context.Context, userID, matchID string) (*domain.Match, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, domain.Dependency("failed to load match", err)
	}
	if !match.HasUser(userID) {
		return nil, domain.ErrMatchNotFound
	}
	return match, nil
}

func (uc *MessageUseCase) getLimit(ctx context.Context, matchID, userID string) (*domain.MessageLimit, error) {
	limit, err := uc.limitRepo.Get(ctx, matchID, userID)
	if errors.Is(err, domain.ErrMessageLimitNotFound) {
		return nil, nil
	}
	return limit, err
}

// effectiveLimit is the stored counter as seen on day today.
func (uc *MessageUseCase) effectiveLimit(ctx context.Context, match *domain.Match, userID, today string) (*domain.MessageLimit, error) {
	stored, err := uc.getLimit(ctx, match.ID, userID)
	if err != nil {
		return nil, err
	}
	return &domain.MessageLimit{
		MatchID:         match.ID,
		UserID:          userID,
		MessagesToday:   SentToday(stored, today),
		LastMessageDate: today,
		CanSend:         match.IsActive() && uc.rules.CanSend(match, stored, userID, today),
	}, nil
}
