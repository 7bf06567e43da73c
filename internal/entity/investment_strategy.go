package entity

import (
	"time"

	"gorm.io/datatypes"
)

type InvestmentStrategy struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	Symbol          string         `json:"symbol" gorm:"not null;index"`
	Recommendation  string         `json:"recommendation" gorm:"not null"`
	ConfidenceScore float64        `json:"confidence_score" gorm:"not null"`
	Reasoning       string         `json:"reasoning" gorm:"type:text"`
	RiskLevel       string         `json:"risk_level"`
	TargetPrice     *float64       `json:"target_price"`
	StopLoss        *float64       `json:"stop_loss"`
	StrategyFactors datatypes.JSON `json:"strategy_factors" gorm:"type:jsonb"`
	CreatedAt       time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

func (InvestmentStrategy) TableName() string {
	return "investment_strategies"
}
