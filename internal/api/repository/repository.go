package repository

import (
	"context"

	"github.com/kismat91/FinDocGPT/internal/api/dto"
)

// AIRepository answers free-form questions about document content.
type AIRepository interface {
	AnswerQuestion(ctx context.Context, documentContent, question string) (*dto.QAResult, error)
}

// FinanceRepository provides historical bars and company fundamentals.
type FinanceRepository interface {
	GetBars(ctx context.Context, param dto.GetBarsParam) ([]dto.Bar, error)
	GetFundamentals(ctx context.Context, symbol string) (*dto.FundamentalMetrics, error)
}

// NewsFeedRepository fetches recent headlines and article bodies for a symbol.
type NewsFeedRepository interface {
	GetHeadlines(ctx context.Context, symbol string) ([]dto.NewsItem, error)
	GetArticleContent(ctx context.Context, articleURL string) (string, error)
}
