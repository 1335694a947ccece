package finder

import "retroFinder/domain"

func toSessionView(s Session) domain.SessionView {
	view := domain.SessionView{
		SessionID:       s.ID,
		Status:          string(s.Status),
		Round:           s.Round,
		TotalRounds:     s.TotalRounds,
		RoundsCompleted: s.RoundsCompleted,
		EndReason:       string(s.EndReason),
	}

	if s.Pending != nil {
		view.Pair = &domain.PairView{
			PairID:   s.Pending.ID,
			Round:    s.Pending.Round,
			Strategy: string(s.Pending.Strategy),
			Left:     s.Pending.Left,
			Right:    s.Pending.Right,
		}
	}

	if s.Result != nil {
		view.Result = toRankingView(*s.Result)
	}

	return view
}

func toRankingView(r Ranking) *domain.RankingView {
	out := &domain.RankingView{
		Secondary: toRankedItems(r.Secondary),
		Items:     toRankedItems(r.Items),
	}
	if r.Primary != nil {
		out.Primary = &domain.RankedItem{
			Item:  r.Primary.Item,
			Score: round2(r.Primary.Score),
		}
	}
	return out
}

func toRankedItems(items []ScoredItem) []domain.RankedItem {
	out := make([]domain.RankedItem, 0, len(items))
	for _, it := range items {
		out = append(out, domain.RankedItem{
			Item:  it.Item,
			Score: round2(it.Score),
		})
	}
	return out
}
