package common

const (
	AnalysisKindQA        = "qa"
	AnalysisKindAnomaly   = "anomaly"
	AnalysisKindSentiment = "sentiment"

	ForecastTypeStockPrice = "stock_price"
	ForecastTypeEarnings   = "earnings"
	ForecastTypeRevenue    = "revenue"

	ActionBuy  = "buy"
	ActionSell = "sell"
	ActionHold = "hold"

	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"

	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"

	RedisKeyMarketBars = "market.bars"
)
