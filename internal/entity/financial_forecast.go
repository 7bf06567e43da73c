package entity

import (
	"time"

	"gorm.io/datatypes"
)

type FinancialForecast struct {
	ID                 uint           `json:"id" gorm:"primaryKey"`
	Symbol             string         `json:"symbol" gorm:"not null;index"`
	ForecastType       string         `json:"forecast_type" gorm:"not null"`
	PredictedValue     float64        `json:"predicted_value" gorm:"not null"`
	ConfidenceInterval datatypes.JSON `json:"confidence_interval" gorm:"type:jsonb"`
	ModelUsed          string         `json:"model_used"`
	HistoricalData     datatypes.JSON `json:"historical_data" gorm:"type:jsonb"`
	ForecastDate       time.Time      `json:"forecast_date" gorm:"autoCreateTime"`
}

func (FinancialForecast) TableName() string {
	return "financial_forecasts"
}
