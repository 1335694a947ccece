package domain

import (
	"time"

	"gorm.io/datatypes"
)

// FinderEvent is one recorded decision of a finder session.
type FinderEvent struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	SessionID  string            `gorm:"column:session_id;not null;index" json:"session_id"`
	Round      int               `gorm:"column:round;not null" json:"round"`
	Strategy   string            `gorm:"column:strategy;not null" json:"strategy"`
	ChosenID   string            `gorm:"column:chosen_id;not null" json:"chosen_id"`
	RejectedID string            `gorm:"column:rejected_id;not null" json:"rejected_id"`
	Context    datatypes.JSONMap `gorm:"column:context;type:jsonb" json:"context"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (FinderEvent) TableName() string {
	return "finder_events"
}

type PairView struct {
	PairID   string      `json:"pair_id"`
	Round    int         `json:"round"`
	Strategy string      `json:"strategy"`
	Left     CatalogItem `json:"left"`
	Right    CatalogItem `json:"right"`
}

type RankedItem struct {
	Item  CatalogItem `json:"item"`
	Score float64     `json:"score"`
}

// RankedItemDebug carries every term of the ranking score.
type RankedItemDebug struct {
	ItemID        string  `json:"item_id"`
	GenreBonus    float64 `json:"genre_bonus"`
	PlatformBonus float64 `json:"platform_bonus"`
	PriceFit      float64 `json:"price_fit"`
	Completeness  float64 `json:"completeness"`
	Featured      float64 `json:"featured"`
	Jitter        float64 `json:"jitter"`
	FinalScore    float64 `json:"final_score"`
}

type RankingView struct {
	Primary   *RankedItem  `json:"primary"`
	Secondary []RankedItem `json:"secondary"`
	Items     []RankedItem `json:"items"`
}

type SessionView struct {
	SessionID       string       `json:"session_id"`
	Status          string       `json:"status"`
	Round           int          `json:"round"`
	TotalRounds     int          `json:"total_rounds"`
	RoundsCompleted int          `json:"rounds_completed"`
	Pair            *PairView    `json:"pair,omitempty"`
	Result          *RankingView `json:"result,omitempty"`
	EndReason       string       `json:"end_reason,omitempty"`
}

type NextStepResult struct {
	Done    bool         `json:"done"`
	Session SessionView  `json:"session"`
	Pair    *PairView    `json:"pair,omitempty"`
	Result  *RankingView `json:"result,omitempty"`
}

// FinderSessionState is a persisted finder session, stored as its JSON encoding.
type FinderSessionState struct {
	SessionID string    `gorm:"column:session_id;primaryKey"`
	StateJSON []byte    `gorm:"column:state_json"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (FinderSessionState) TableName() string {
	return "finder_sessions"
}
