package dto

import "time"

// StrategyRequest asks for an investment recommendation for a symbol.
type StrategyRequest struct {
	Symbol                     string  `json:"symbol" validate:"required"`
	InvestmentAmount           float64 `json:"investment_amount"`
	RiskTolerance              string  `json:"risk_tolerance"`
	TimeHorizon                string  `json:"time_horizon"`
	IncludeTechnicalAnalysis   *bool   `json:"include_technical_analysis"`
	IncludeFundamentalAnalysis *bool   `json:"include_fundamental_analysis"`
}

// TechnicalIndicators holds the derived technical factors for a symbol.
type TechnicalIndicators struct {
	PriceVsMA20  string  `json:"price_vs_ma20"`
	PriceVsMA50  string  `json:"price_vs_ma50"`
	PriceVsMA200 string  `json:"price_vs_ma200"`
	RSI          float64 `json:"rsi"`
	MACD         float64 `json:"macd"`
	MACDSignal   float64 `json:"macd_signal"`
	VolumeTrend  string  `json:"volume_trend"`
	Volatility   float64 `json:"volatility"`
}

// FundamentalMetrics holds the company ratios used for fundamental scoring.
// Pointer fields distinguish "metric unavailable" from a zero value.
type FundamentalMetrics struct {
	PERatio       *float64 `json:"pe_ratio"`
	PBRatio       *float64 `json:"pb_ratio"`
	DividendYield float64  `json:"dividend_yield"`
	MarketCap     *float64 `json:"market_cap"`
	Beta          float64  `json:"beta"`
	Sector        string   `json:"sector"`
}

// StrategyFactors is the factor breakdown persisted with a recommendation.
type StrategyFactors struct {
	TechnicalIndicators *TechnicalIndicators `json:"technical_indicators,omitempty"`
	FundamentalMetrics  *FundamentalMetrics  `json:"fundamental_metrics,omitempty"`
	OverallScore        float64              `json:"overall_score"`
	Factors             []string             `json:"factors"`
}

// RecommendationResult is the outcome of a strategy run.
type RecommendationResult struct {
	Action            string          `json:"action"`
	Confidence        float64         `json:"confidence"`
	Reasoning         string          `json:"reasoning"`
	RiskLevel         string          `json:"risk_level"`
	TargetPrice       *float64        `json:"target_price"`
	StopLoss          *float64        `json:"stop_loss"`
	Factors           StrategyFactors `json:"factors"`
	FactorsConsidered []string        `json:"factors_considered"`
}

// StrategyResponse is the HTTP payload for an investment recommendation.
type StrategyResponse struct {
	Symbol            string    `json:"symbol"`
	Recommendation    string    `json:"recommendation"`
	ConfidenceScore   float64   `json:"confidence_score"`
	Reasoning         string    `json:"reasoning"`
	RiskLevel         string    `json:"risk_level"`
	TargetPrice       *float64  `json:"target_price"`
	StopLoss          *float64  `json:"stop_loss"`
	TimeHorizon       string    `json:"time_horizon"`
	FactorsConsidered []string  `json:"factors_considered"`
	CreatedAt         time.Time `json:"created_at"`
}

// PortfolioEntry summarizes the latest recommendation for one symbol.
type PortfolioEntry struct {
	Symbol         string  `json:"symbol"`
	Recommendation string  `json:"recommendation"`
	Confidence     float64 `json:"confidence"`
	RiskLevel      string  `json:"risk_level"`
	LastUpdated    string  `json:"last_updated"`
}

// PortfolioOverviewResponse aggregates recommendations across symbols.
type PortfolioOverviewResponse struct {
	PortfolioOverview   []PortfolioEntry `json:"portfolio_overview"`
	TotalSymbols        int              `json:"total_symbols"`
	BuyRecommendations  int              `json:"buy_recommendations"`
	SellRecommendations int              `json:"sell_recommendations"`
	HoldRecommendations int              `json:"hold_recommendations"`
}
