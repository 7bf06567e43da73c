package dto

import "time"

// ForecastRequest asks for a financial forecast for a symbol.
type ForecastRequest struct {
	Symbol       string `json:"symbol" validate:"required"`
	ForecastType string `json:"forecast_type"`
	Timeframe    string `json:"timeframe"`
	ModelType    string `json:"model_type"`
}

// PricePrediction is one step of a stock price projection.
type PricePrediction struct {
	Date            string  `json:"date"`
	PredictedPrice  float64 `json:"predicted_price"`
	ConfidenceLower float64 `json:"confidence_lower"`
	ConfidenceUpper float64 `json:"confidence_upper"`
}

// QuarterlyPrediction is one step of an earnings or revenue projection.
type QuarterlyPrediction struct {
	Quarter         string  `json:"quarter"`
	PredictedValue  float64 `json:"predicted_value"`
	GrowthRate      float64 `json:"growth_rate"`
	ConfidenceScore float64 `json:"confidence_score"`
}

// ConfidenceInterval carries the per-step confidence band of a projection.
type ConfidenceInterval struct {
	Lower []float64 `json:"lower,omitempty"`
	Upper []float64 `json:"upper,omitempty"`
}

// ForecastResult is the outcome of a forecast run. Exactly one of
// PricePredictions and QuarterlyPredictions is populated depending on the
// forecast type; both are empty for the degenerate zero result.
type ForecastResult struct {
	PredictedValue       float64               `json:"predicted_value"`
	PricePredictions     []PricePrediction     `json:"price_predictions,omitempty"`
	QuarterlyPredictions []QuarterlyPrediction `json:"quarterly_predictions,omitempty"`
	ConfidenceInterval   ConfidenceInterval    `json:"confidence_interval"`
	ModelUsed            string                `json:"model_used"`
	HistoricalData       map[string]float64    `json:"historical_data"`
	AccuracyMetrics      map[string]any        `json:"accuracy_metrics"`
}

// ForecastResponse is the HTTP payload for a forecast.
type ForecastResponse struct {
	Symbol               string                `json:"symbol"`
	ForecastType         string                `json:"forecast_type"`
	PredictedValue       float64               `json:"predicted_value"`
	PricePredictions     []PricePrediction     `json:"predictions"`
	QuarterlyPredictions []QuarterlyPrediction `json:"quarterly_predictions,omitempty"`
	ConfidenceInterval   ConfidenceInterval    `json:"confidence_interval"`
	ModelUsed            string                `json:"model_used"`
	AccuracyMetrics      map[string]any        `json:"accuracy_metrics"`
	LastUpdated          time.Time             `json:"last_updated"`
}
