package rest

import (
	"context"
	"net/http"

	"retroFinder/business/finder"
	"retroFinder/domain"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type EffectiveConfigProvider interface {
	EffectiveConfig(ctx context.Context) domain.FinderConfig
}

type FinderAdminHandler struct {
	cfgRepo  finder.ConfigRepository
	provider EffectiveConfigProvider
	profile  string
	validate *validator.Validate
}

func NewFinderAdminHandler(
	cfgRepo finder.ConfigRepository,
	provider EffectiveConfigProvider,
	profile string,
) *FinderAdminHandler {
	return &FinderAdminHandler{
		cfgRepo:  cfgRepo,
		provider: provider,
		profile:  profile,
		validate: validator.New(),
	}
}

type FinderConfigRequest struct {
	TotalRounds         int      `json:"total_rounds" validate:"gte=0,lte=50"`
	BudgetThreshold     float64  `json:"budget_threshold" validate:"gte=0"`
	PremiumThreshold    float64  `json:"premium_threshold" validate:"gte=0"`
	RecommendationCount int      `json:"recommendation_count" validate:"gte=0"`
	SecondaryCount      int      `json:"secondary_count" validate:"gte=0"`
	FallbackAvgPrice    float64  `json:"fallback_avg_price" validate:"gte=0"`
	Jitter              *bool    `json:"jitter"`
	JitterMax           float64  `json:"jitter_max" validate:"gte=0"`
	NarrativeGenres     []string `json:"narrative_genres" validate:"dive,required"`
	ActionGenres        []string `json:"action_genres" validate:"dive,required"`
}

// GET /api/v1/admin/finder/config
// returns the profile new sessions start with, stored overrides included
func (h *FinderAdminHandler) GetConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, h.provider.EffectiveConfig(c.Request().Context()))
}

// PUT /api/v1/admin/finder/config
// zero numeric fields and an omitted jitter keep the service default
func (h *FinderAdminHandler) UpsertConfig(c echo.Context) error {
	ctx := c.Request().Context()

	var body FinderConfigRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid body: " + err.Error(),
		})
	}
	if err := h.validate.Struct(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": err.Error(),
		})
	}
	if body.BudgetThreshold > 0 && body.PremiumThreshold > 0 && body.BudgetThreshold > body.PremiumThreshold {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "budget threshold must not exceed premium threshold",
		})
	}

	cfg := domain.FinderConfig{
		Profile:             h.profile,
		TotalRounds:         body.TotalRounds,
		BudgetThreshold:     body.BudgetThreshold,
		PremiumThreshold:    body.PremiumThreshold,
		RecommendationCount: body.RecommendationCount,
		SecondaryCount:      body.SecondaryCount,
		FallbackAvgPrice:    body.FallbackAvgPrice,
		Jitter:              body.Jitter,
		JitterMax:           body.JitterMax,
		NarrativeGenres:     body.NarrativeGenres,
		ActionGenres:        body.ActionGenres,
	}

	if err := h.cfgRepo.UpsertConfig(ctx, cfg); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, h.provider.EffectiveConfig(ctx))
}
