package container

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdugdh24/datepoint-backend/internal/config"
	"github.com/gdugdh24/datepoint-backend/internal/delivery/http"
	"github.com/gdugdh24/datepoint-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/datepoint-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/datepoint-backend/internal/infrastructure/database"
	"github.com/gdugdh24/datepoint-backend/internal/infrastructure/realtime"
	"github.com/gdugdh24/datepoint-backend/internal/infrastructure/server"
	"github.com/gdugdh24/datepoint-backend/internal/infrastructure/storage"
	"github.com/gdugdh24/datepoint-backend/internal/repository"
	"github.com/gdugdh24/datepoint-backend/internal/repository/cache"
	"github.com/gdugdh24/datepoint-backend/internal/repository/memory"
	"github.com/gdugdh24/datepoint-backend/internal/repository/postgres"
	"github.com/gdugdh24/datepoint-backend/internal/usecase/auth"
	"github.com/gdugdh24/datepoint-backend/internal/usecase/feed"
	"github.com/gdugdh24/datepoint-backend/internal/usecase/match"
	"github.com/gdugdh24/datepoint-backend/internal/usecase/message"
	"github.com/gdugdh24/datepoint-backend/internal/usecase/profile"
	"github.com/gdugdh24/datepoint-backend/internal/usecase/swipe"
	"github.com/gdugdh24/datepoint-backend/internal/usecase/venue"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Log         *slog.Logger
	DB          *sqlx.DB
	Redis       *redis.Client
	Server      *server.Server
	impressions *venue.ImpressionRecorder
}

type repositories struct {
	tx           repository.TxManager
	profiles     repository.ProfileRepository
	dealBreakers repository.DealBreakersRepository
	swipes       repository.SwipeRepository
	matches      repository.MatchRepository
	messages     repository.MessageRepository
	limits       repository.MessageLimitRepository
	venues       repository.VenueRepository
	suggestions  repository.DateSuggestionRepository
	blocks       repository.BlockRepository
	reports      repository.ReportRepository
}

func postgresRepositories(db *sqlx.DB) *repositories {
	return &repositories{
		tx:           postgres.NewTxManager(db),
		profiles:     postgres.NewProfileRepository(db),
		dealBreakers: postgres.NewDealBreakersRepository(db),
		swipes:       postgres.NewSwipeRepository(db),
		matches:      postgres.NewMatchRepository(db),
		messages:     postgres.NewMessageRepository(db),
		limits:       postgres.NewMessageLimitRepository(db),
		venues:       postgres.NewVenueRepository(db),
		suggestions:  postgres.NewDateSuggestionRepository(db),
		blocks:       postgres.NewBlockRepository(db),
		reports:      postgres.NewReportRepository(db),
	}
}

func memoryRepositories(s *memory.Store) *repositories {
	return &repositories{
		tx:           s,
		profiles:     memory.NewProfileRepository(s),
		dealBreakers: memory.NewDealBreakersRepository(s),
		swipes:       memory.NewSwipeRepository(s),
		matches:      memory.NewMatchRepository(s),
		messages:     memory.NewMessageRepository(s),
		limits:       memory.NewMessageLimitRepository(s),
		venues:       memory.NewVenueRepository(s),
		suggestions:  memory.NewDateSuggestionRepository(s),
		blocks:       memory.NewBlockRepository(s),
		reports:      memory.NewReportRepository(s),
	}
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config, log *slog.Logger) (_ *Container, err error) {
	c := &Container{Config: cfg, Log: log}
	defer func() {
		if err != nil {
			_ = c.Close()
		}
	}()

	var repos *repositories
	switch cfg.Database.Driver {
	case config.DriverMemory:
		log.Warn("using in-memory storage, data is lost on restart")
		repos = memoryRepositories(memory.NewStore())
	default:
		c.DB, err = database.NewPostgresDB(ctx, &cfg.Database, log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		repos = postgresRepositories(c.DB)
	}

	var hub realtime.Hub = realtime.NewLocalHub()
	if cfg.Redis.Enabled {
		c.Redis, err = database.NewRedisClient(ctx, &cfg.Redis, log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		repos.venues = cache.NewVenueRepository(repos.venues, c.Redis, cfg.Redis.VenueCacheTTL, log)
		hub = realtime.NewRedisHub(c.Redis, log)
	}

	photos, uploadsDir, err := newStorage(ctx, &cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	tz, err := time.LoadLocation(cfg.Rules.DefaultTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid default timezone: %w", err)
	}

	// Initialize use cases
	tokens := auth.NewTokenService(cfg.JWT.AccessSecret, cfg.JWT.Issuer)

	profileUseCase := profile.NewProfileUseCase(
		repos.tx,
		repos.profiles,
		repos.dealBreakers,
		photos,
		cfg.Rules.PhotoExpirationDays,
		log,
	)

	feedUseCase := feed.NewFeedUseCase(
		repos.profiles,
		repos.dealBreakers,
		cfg.Rules.DiscoverPageSize,
		log,
	)

	swipeUseCase := swipe.NewSwipeUseCase(
		repos.tx,
		repos.swipes,
		repos.matches,
		repos.profiles,
		repos.blocks,
		cfg.Rules.MaxActiveMatches,
		log,
	)

	matchUseCase := match.NewMatchUseCase(
		repos.tx,
		repos.matches,
		repos.profiles,
		repos.blocks,
		repos.reports,
		log,
	)

	messageUseCase := message.NewMessageUseCase(
		repos.tx,
		repos.matches,
		repos.messages,
		repos.limits,
		hub,
		message.Rules{
			InitialMessageLimit:     cfg.Rules.InitialMessageLimit,
			DateSuggestionThreshold: cfg.Rules.DateSuggestionThreshold,
		},
		tz,
		log,
	)

	c.impressions = venue.NewImpressionRecorder(repos.venues, log)
	venueUseCase := venue.NewVenueUseCase(
		repos.tx,
		repos.venues,
		repos.suggestions,
		repos.matches,
		repos.profiles,
		c.impressions,
		cfg.Rules.MaxVenueSuggestions,
		log,
	)

	if !cfg.Server.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := http.NewRouter(
		http.Handlers{
			Auth:    handler.NewAuthHandler(tokens, profileUseCase),
			Profile: handler.NewProfileHandler(profileUseCase),
			Feed:    handler.NewFeedHandler(feedUseCase),
			Swipe:   handler.NewSwipeHandler(swipeUseCase),
			Match:   handler.NewMatchHandler(matchUseCase),
			Message: handler.NewMessageHandler(messageUseCase),
			Venue:   handler.NewVenueHandler(venueUseCase),
		},
		middleware.NewAuthMiddleware(tokens),
		log,
		uploadsDir,
	)

	c.Server = server.NewServer(&cfg.Server, router.Setup(), log)
	return c, nil
}

// newStorage returns the photo storage and, for local storage, the directory
// the router serves.
func newStorage(ctx context.Context, cfg *config.StorageConfig) (storage.Storage, string, error) {
	if cfg.Type == config.StorageS3 {
		s, err := storage.NewS3Storage(ctx, cfg.S3Bucket, cfg.AWSRegion)
		return s, "", err
	}
	s, err := storage.NewLocalStorage(cfg.Path, cfg.PublicURL)
	if err != nil {
		return nil, "", err
	}
	return s, s.Root(), nil
}

// Close waits for background work and closes all connections
func (c *Container) Close() error {
	if c.impressions != nil {
		c.impressions.Wait()
	}

	var errs []error
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis: %w", err))
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
