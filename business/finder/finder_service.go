package finder

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"retroFinder/domain"
	"retroFinder/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ---- Repository interfaces ----

// CatalogProvider is the read-only source of catalog items.
type CatalogProvider interface {
	FindAll(ctx context.Context) ([]domain.CatalogItem, error)
}

// SessionRepository stores sessions by id. Get returns (nil, nil) for unknown ids.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, session Session) error
	Delete(ctx context.Context, id string) error
}

type EventRepository interface {
	SaveEvent(ctx context.Context, event domain.FinderEvent) error
}

// ---- Usecase / Service ----

type FinderService struct {
	catalogRepo CatalogProvider
	sessionRepo SessionRepository
	eventRepo   EventRepository
	cfgRepo     ConfigRepository
	profile     string
	defaultCfg  Config

	now func() time.Time
}

func NewFinderService(
	catalogRepo CatalogProvider,
	sessionRepo SessionRepository,
	eventRepo EventRepository,
	cfgRepo ConfigRepository,
	profile string,
	defaultCfg Config,
) *FinderService {
	return &FinderService{
		catalogRepo: catalogRepo,
		sessionRepo: sessionRepo,
		eventRepo:   eventRepo,
		cfgRepo:     cfgRepo,
		profile:     profile,
		defaultCfg:  defaultCfg,
		now:         time.Now,
	}
}

// StartSession creates a new session and returns its first pair.
func (s *FinderService) StartSession(ctx context.Context) (domain.SessionView, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionView{}, fmt.Errorf("context error: %w", err)
	}

	return s.start(ctx, uuid.NewString(), nil)
}

// Restart throws away the state of an existing session and starts it over.
func (s *FinderService) Restart(ctx context.Context, sessionID string) (domain.SessionView, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionView{}, fmt.Errorf("context error: %w", err)
	}

	prev, err := s.getSession(ctx, sessionID)
	if err != nil {
		return domain.SessionView{}, err
	}

	return s.start(ctx, sessionID, prev)
}

// AbandonSession drops a session from the store.
func (s *FinderService) AbandonSession(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return err
	}

	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	FinderSessionsAbandonedTotal.Inc()

	logger.Debug("finder_session_abandoned",
		"trace_id", TraceIDFromContext(ctx),
		"session_id", sessionID,
		"status", session.Status,
		"rounds_completed", session.RoundsCompleted,
	)

	return nil
}

// start begins sessionID from scratch, or as the next generation of prev.
func (s *FinderService) start(ctx context.Context, sessionID string, prev *Session) (domain.SessionView, error) {
	cfg := s.loadConfig(ctx)

	catalog, err := s.catalogRepo.FindAll(ctx)
	if err != nil {
		return domain.SessionView{}, fmt.Errorf("load catalog: %w", err)
	}

	seed := s.seedFor(cfg)

	var session Session
	if prev != nil {
		session, err = Restart(*prev, catalog, cfg, seed, s.now())
	} else {
		session, err = StartSession(sessionID, catalog, cfg, seed, s.now())
	}
	if err != nil {
		logger.Warn("finder_start_rejected",
			"trace_id", TraceIDFromContext(ctx),
			"session_id", sessionID,
			"catalog_size", len(catalog),
			"error", err,
		)
		return domain.SessionView{}, err
	}

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return domain.SessionView{}, fmt.Errorf("save session: %w", err)
	}

	FinderSessionsStartedTotal.Inc()

	logger.Debug("finder_session_started",
		"trace_id", TraceIDFromContext(ctx),
		"session_id", session.ID,
		"seed", seed,
		"generation", session.Generation,
		"total_rounds", session.TotalRounds,
		"catalog_size", len(catalog),
	)

	return toSessionView(session), nil
}

// Choose applies a decision and returns the next pair or the final ranking.
func (s *FinderService) Choose(
	ctx context.Context,
	sessionID string,
	pairID string,
	side string,
) (domain.NextStepResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.NextStepResult{}, fmt.Errorf("context error: %w", err)
	}

	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return domain.NextStepResult{}, err
	}

	cfg := s.loadConfig(ctx)

	catalog, err := s.catalogRepo.FindAll(ctx)
	if err != nil {
		return domain.NextStepResult{}, fmt.Errorf("load catalog: %w", err)
	}

	next, decision, err := Choose(*session, pairID, Side(side), catalog, cfg, s.now())
	if err != nil {
		return domain.NextStepResult{}, err
	}

	if err := s.sessionRepo.Save(ctx, next); err != nil {
		return domain.NextStepResult{}, fmt.Errorf("save session: %w", err)
	}

	FinderChoicesTotal.
		WithLabelValues(strconv.Itoa(decision.Round), string(decision.Strategy)).
		Inc()

	logger.Debug("finder_choice",
		"trace_id", TraceIDFromContext(ctx),
		"session_id", next.ID,
		"round", decision.Round,
		"strategy", decision.Strategy,
		"chosen_id", decision.Chosen.ID,
		"rejected_id", decision.Rejected.ID,
	)

	s.recordEvent(ctx, next, decision)

	if next.Status == StatusCompleted {
		FinderSessionsCompletedTotal.WithLabelValues(string(next.EndReason)).Inc()

		primary := ""
		if next.Result != nil && next.Result.Primary != nil {
			primary = next.Result.Primary.Item.ID
		}
		logger.Info("finder_session_completed",
			"trace_id", TraceIDFromContext(ctx),
			"session_id", next.ID,
			"rounds_completed", next.RoundsCompleted,
			"end_reason", next.EndReason,
			"primary_id", primary,
		)
	}

	view := toSessionView(next)
	return domain.NextStepResult{
		Done:    next.Status == StatusCompleted,
		Session: view,
		Pair:    view.Pair,
		Result:  view.Result,
	}, nil
}

// GetSession returns the current state of a session.
func (s *FinderService) GetSession(ctx context.Context, sessionID string) (domain.SessionView, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionView{}, fmt.Errorf("context error: %w", err)
	}

	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return domain.SessionView{}, err
	}

	return toSessionView(*session), nil
}

// EffectiveConfig returns the config profile new sessions are started with.
func (s *FinderService) EffectiveConfig(ctx context.Context) domain.FinderConfig {
	return ToDomainConfig(s.profile, s.loadConfig(ctx))
}

func (s *FinderService) getSession(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}

	session, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	return session, nil
}

func (s *FinderService) seedFor(cfg Config) int64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return s.now().UnixNano()
}

// recordEvent persists the decision for analysis. Failures are logged only:
// the session itself is already saved.
func (s *FinderService) recordEvent(ctx context.Context, session Session, d Decision) {
	if s.eventRepo == nil {
		return
	}

	event := domain.FinderEvent{
		SessionID:  session.ID,
		Round:      d.Round,
		Strategy:   string(d.Strategy),
		ChosenID:   d.Chosen.ID,
		RejectedID: d.Rejected.ID,
		Context: datatypes.JSONMap{
			"chosen_genre":      d.Chosen.Genre,
			"chosen_platform":   d.Chosen.Platform,
			"chosen_price":      d.Chosen.EffectivePrice(),
			"rejected_genre":    d.Rejected.Genre,
			"rejected_platform": d.Rejected.Platform,
			"rejected_price":    d.Rejected.EffectivePrice(),
			"status":            string(session.Status),
			"trace_id":          TraceIDFromContext(ctx),
		},
	}

	if err := s.eventRepo.SaveEvent(ctx, event); err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("finder_event_save_failed",
			"session_id", session.ID,
			"round", d.Round,
			"error", err,
		)
	}
}
