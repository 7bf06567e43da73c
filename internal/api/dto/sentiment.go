package dto

import "time"

// SentimentRequest asks for sentiment analysis of a stored document.
type SentimentRequest struct {
	DocumentID uint `json:"document_id" validate:"required"`
}

// SentimentResult is the outcome of a single-document sentiment run.
type SentimentResult struct {
	Score      float64  `json:"score"`
	Label      string   `json:"label"`
	Confidence float64  `json:"confidence"`
	Keywords   []string `json:"keywords"`
}

// SentimentResponse is the HTTP payload for a document sentiment analysis.
type SentimentResponse struct {
	DocumentID     uint      `json:"document_id"`
	SentimentScore float64   `json:"sentiment_score"`
	SentimentLabel string    `json:"sentiment_label"`
	Confidence     float64   `json:"confidence"`
	Keywords       []string  `json:"keywords"`
	CreatedAt      time.Time `json:"created_at"`
}

// MarketSentimentResponse aggregates sentiment across documents and news
// headlines related to a symbol.
type MarketSentimentResponse struct {
	OverallSentiment string   `json:"overall_sentiment"`
	SentimentScore   float64  `json:"sentiment_score"`
	Confidence       float64  `json:"confidence"`
	KeyPhrases       []string `json:"key_phrases"`
	SentimentTrend   string   `json:"sentiment_trend"`
	RiskFactors      []string `json:"risk_factors"`
	PositiveFactors  []string `json:"positive_factors"`
	NegativeFactors  []string `json:"negative_factors"`
}

// NewsItem is a single headline pulled from an RSS feed.
type NewsItem struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	PublishedAt time.Time `json:"published_at"`
}

// SentimentTrend is one row in the recent sentiment trend listing.
type SentimentTrend struct {
	DocumentID     uint    `json:"document_id"`
	Filename       string  `json:"filename"`
	SentimentScore float64 `json:"sentiment_score"`
	SentimentLabel string  `json:"sentiment_label"`
	Confidence     float64 `json:"confidence"`
	CreatedAt      string  `json:"created_at"`
}
