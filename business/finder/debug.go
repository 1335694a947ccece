package finder

import (
	"context"
	"fmt"

	"retroFinder/domain"
	"retroFinder/pkg/logger"
)

// DebugRanking ranks the catalog against the session's current profile and
// returns every score term. The session is not modified and no jitter is added.
func (s *FinderService) DebugRanking(ctx context.Context, sessionID string) ([]domain.RankedItemDebug, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cfg := s.loadConfig(ctx)
	cfg.Jitter = false

	catalog, err := s.catalogRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	logger.Debug("finder_debug_ranking",
		"trace_id", TraceIDFromContext(ctx),
		"session_id", session.ID,
		"rounds_completed", session.RoundsCompleted,
	)

	ranking := Rank(session.Preference, catalog, cfg, nil)

	out := make([]domain.RankedItemDebug, 0, len(ranking.Items))
	for _, it := range ranking.Items {
		out = append(out, domain.RankedItemDebug{
			ItemID:        it.Item.ID,
			GenreBonus:    it.GenreBonus,
			PlatformBonus: it.PlatformBonus,
			PriceFit:      round2(it.PriceFit),
			Completeness:  it.CompletenessBonus,
			Featured:      it.FeaturedBonus,
			Jitter:        it.Jitter,
			FinalScore:    round2(it.Score),
		})
	}

	return out, nil
}
