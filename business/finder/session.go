package finder

import (
	"fmt"
	"time"

	"retroFinder/domain"
)

type Status string

const (
	StatusIdle       Status = "idle"
	StatusInRound    Status = "in_round"
	StatusFinalizing Status = "finalizing"
	StatusCompleted  Status = "completed"
)

type EndReason string

const (
	EndRoundsCompleted EndReason = "rounds_completed"
	EndPoolExhausted   EndReason = "pool_exhausted"
)

type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Session is the whole state of one game. It is a plain value: every
// transition returns a new Session and leaves its input untouched.
type Session struct {
	ID              string          `json:"id"`
	Status          Status          `json:"status"`
	Round           int             `json:"round"`
	TotalRounds     int             `json:"total_rounds"`
	RoundsCompleted int             `json:"rounds_completed"`
	Seed            int64           `json:"seed"`
	Generation      int             `json:"generation"`
	Preference      PreferenceState `json:"preference"`
	Used            UsedItems       `json:"used"`
	Pending         *Pair           `json:"pending,omitempty"`
	Result          *Ranking        `json:"result,omitempty"`
	EndReason       EndReason       `json:"end_reason,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Decision is the resolved outcome of one Choose call.
type Decision struct {
	Round    int
	Strategy Strategy
	Chosen   domain.CatalogItem
	Rejected domain.CatalogItem
}

// StartSession begins a fresh session and selects the first pair.
func StartSession(id string, catalog []domain.CatalogItem, cfg Config, seed int64, now time.Time) (Session, error) {
	return begin(id, 0, catalog, cfg, seed, now)
}

// Restart discards all progress of s and starts over under the same id.
// Pair ids of the new generation never match those handed out before.
func Restart(s Session, catalog []domain.CatalogItem, cfg Config, seed int64, now time.Time) (Session, error) {
	return begin(s.ID, s.Generation+1, catalog, cfg, seed, now)
}

func begin(id string, generation int, catalog []domain.CatalogItem, cfg Config, seed int64, now time.Time) (Session, error) {
	if countEligible(catalog) < 2 {
		return Session{}, ErrInsufficientCatalog
	}

	s := Session{
		ID:          id,
		Status:      StatusIdle,
		TotalRounds: cfg.TotalRounds,
		Seed:        seed,
		Generation:  generation,
		Preference:  NewPreferenceState(),
		Used:        UsedItems{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return s.advance(catalog, cfg, now), nil
}

// Choose applies the user's pick for the pending pair. On error the
// returned session is the input unchanged.
func Choose(
	s Session,
	pairID string,
	side Side,
	catalog []domain.CatalogItem,
	cfg Config,
	now time.Time,
) (Session, Decision, error) {
	if s.Status == StatusCompleted {
		return s, Decision{}, ErrSessionCompleted
	}
	if s.Status != StatusInRound || s.Pending == nil {
		return s, Decision{}, fmt.Errorf("%w: no pair pending", ErrInvalidDecision)
	}
	if pairID != s.Pending.ID {
		return s, Decision{}, fmt.Errorf("%w: unknown pair %q", ErrInvalidDecision, pairID)
	}

	var d Decision
	switch side {
	case SideLeft:
		d = Decision{Chosen: s.Pending.Left, Rejected: s.Pending.Right}
	case SideRight:
		d = Decision{Chosen: s.Pending.Right, Rejected: s.Pending.Left}
	default:
		return s, Decision{}, fmt.Errorf("%w: unknown side %q", ErrInvalidDecision, side)
	}
	d.Round = s.Pending.Round
	d.Strategy = s.Pending.Strategy

	next := s
	next.Preference, next.Used = ApplyChoice(s.Preference, s.Used, d.Chosen, d.Rejected, cfg)
	next.RoundsCompleted++
	next.Round++
	next.Pending = nil

	return next.advance(catalog, cfg, now), d, nil
}

// advance selects the next pair or, when the rounds are used up or the pool
// ran dry, ranks the catalog and completes the session.
func (s Session) advance(catalog []domain.CatalogItem, cfg Config, now time.Time) Session {
	s.UpdatedAt = now

	if s.Round >= s.TotalRounds {
		return s.finalize(catalog, cfg, EndRoundsCompleted)
	}

	pair, ok := SelectPair(s.Round, s.Preference, s.Used, catalog, cfg, streamRand(s.Seed, s.Round))
	if !ok {
		return s.finalize(catalog, cfg, EndPoolExhausted)
	}

	pair.ID = pairID(s.Generation, pair.Round, pair.Left.ID, pair.Right.ID)
	s.Status = StatusInRound
	s.Pending = &pair
	return s
}

func (s Session) finalize(catalog []domain.CatalogItem, cfg Config, reason EndReason) Session {
	s.Status = StatusFinalizing
	s.Pending = nil

	ranking := Rank(s.Preference, catalog, cfg, streamRand(s.Seed, rankingStream))

	s.Result = &ranking
	s.EndReason = reason
	s.Status = StatusCompleted
	return s
}
