package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/kismat91/FinDocGPT/internal/api/dto"
	"github.com/kismat91/FinDocGPT/internal/api/repository"
	"github.com/kismat91/FinDocGPT/internal/entity"
	"github.com/kismat91/FinDocGPT/pkg/common"
	"github.com/kismat91/FinDocGPT/pkg/logger"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrNoDocumentsForSymbol is returned when market sentiment has no documents
// mentioning the symbol.
var ErrNoDocumentsForSymbol = errors.New("no documents found for this symbol")

// SentimentService defines the interface for document and market sentiment.
type SentimentService interface {
	AnalyzeDocument(ctx context.Context, documentID uint) (*dto.SentimentResponse, error)
	GetDocumentSentiment(ctx context.Context, documentID uint) ([]dto.SentimentResponse, error)
	GetMarketSentiment(ctx context.Context, symbol string) (*dto.MarketSentimentResponse, error)
	GetSentimentTrends(ctx context.Context, limit int) ([]dto.SentimentTrend, error)
}

// NewSentimentService creates a new sentiment service. newsRepo may be nil,
// market sentiment then uses stored documents only.
func NewSentimentService(
	docRepo repository.DocumentRepository,
	sentimentRepo repository.SentimentRepository,
	newsRepo repository.NewsFeedRepository,
	log *logger.Logger,
) SentimentService {
	return &sentimentService{
		docRepo:       docRepo,
		sentimentRepo: sentimentRepo,
		newsRepo:      newsRepo,
		logger:        log,
	}
}

type sentimentService struct {
	docRepo       repository.DocumentRepository
	sentimentRepo repository.SentimentRepository
	newsRepo      repository.NewsFeedRepository
	logger        *logger.Logger
}

// AnalyzeDocument scores a stored document and persists the result.
func (s *sentimentService) AnalyzeDocument(ctx context.Context, documentID uint) (*dto.SentimentResponse, error) {
	doc, err := s.docRepo.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	result := analyzeSentiment(doc.Content)

	keywords, _ := json.Marshal(result.Keywords)
	record := &entity.SentimentAnalysis{
		DocumentID:     documentID,
		SentimentScore: result.Score,
		SentimentLabel: result.Label,
		Confidence:     result.Confidence,
		Keywords:       datatypes.JSON(keywords),
	}
	if err := s.sentimentRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return &dto.SentimentResponse{
		DocumentID:     documentID,
		SentimentScore: result.Score,
		SentimentLabel: result.Label,
		Confidence:     result.Confidence,
		Keywords:       result.Keywords,
		CreatedAt:      record.CreatedAt,
	}, nil
}

// GetDocumentSentiment lists stored sentiment runs for a document, newest
// first.
func (s *sentimentService) GetDocumentSentiment(ctx context.Context, documentID uint) ([]dto.SentimentResponse, error) {
	if _, err := s.docRepo.FindByID(ctx, documentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	records, err := s.sentimentRepo.FindByDocumentID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.SentimentResponse, 0, len(records))
	for _, record := range records {
		var keywords []string
		_ = json.Unmarshal(record.Keywords, &keywords)
		responses = append(responses, dto.SentimentResponse{
			DocumentID:     record.DocumentID,
			SentimentScore: record.SentimentScore,
			SentimentLabel: record.SentimentLabel,
			Confidence:     record.Confidence,
			Keywords:       keywords,
			CreatedAt:      record.CreatedAt,
		})
	}
	return responses, nil
}

// GetMarketSentiment aggregates sentiment across every stored document that
// mentions the symbol, blended with recent news headlines when available.
func (s *sentimentService) GetMarketSentiment(ctx context.Context, symbol string) (*dto.MarketSentimentResponse, error) {
	symbol = strings.ToUpper(symbol)

	docs, err := s.docRepo.FindByContentContains(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNoDocumentsForSymbol
	}

	scores := []float64{}
	allKeywords := []string{}
	positiveFactors := []string{}
	negativeFactors := []string{}

	for i := range docs {
		result := analyzeSentiment(docs[i].Content)
		scores = append(scores, result.Score)
		allKeywords = append(allKeywords, result.Keywords...)
		if result.Score > 0.1 {
			positiveFactors = append(positiveFactors, fmt.Sprintf("Positive sentiment in %s", docs[i].Filename))
		} else if result.Score < -0.1 {
			negativeFactors = append(negativeFactors, fmt.Sprintf("Negative sentiment in %s", docs[i].Filename))
		}
	}

	if s.newsRepo != nil {
		headlines, err := s.newsRepo.GetHeadlines(ctx, symbol)
		if err != nil {
			s.logger.Error("Failed to fetch news headlines, using documents only", logger.ErrorField(err), logger.StringField("symbol", symbol))
		}
		for _, headline := range headlines {
			result := analyzeSentiment(headline.Title)
			scores = append(scores, result.Score)
			if result.Score > 0.1 {
				positiveFactors = append(positiveFactors, fmt.Sprintf("Positive headline: %s", headline.Title))
			} else if result.Score < -0.1 {
				negativeFactors = append(negativeFactors, fmt.Sprintf("Negative headline: %s", headline.Title))
			}
		}
	}

	avg := 0.0
	for _, score := range scores {
		avg += score
	}
	if len(scores) > 0 {
		avg /= float64(len(scores))
	}

	overall := common.SentimentNeutral
	trend := "stable"
	if avg > 0.2 {
		overall = common.SentimentPositive
		trend = "improving"
	} else if avg < -0.2 {
		overall = common.SentimentNegative
		trend = "declining"
	}

	confidence := float64(len(docs)) / 10.0
	if confidence > 1.0 {
		confidence = 1.0
	}

	return &dto.MarketSentimentResponse{
		OverallSentiment: overall,
		SentimentScore:   avg,
		Confidence:       confidence,
		KeyPhrases:       uniqueSorted(allKeywords),
		SentimentTrend:   trend,
		RiskFactors:      negativeFactors,
		PositiveFactors:  positiveFactors,
		NegativeFactors:  negativeFactors,
	}, nil
}

// GetSentimentTrends lists the most recent sentiment runs across all
// documents.
func (s *sentimentService) GetSentimentTrends(ctx context.Context, limit int) ([]dto.SentimentTrend, error) {
	if limit <= 0 {
		limit = 10
	}

	records, err := s.sentimentRepo.FindRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	trends := make([]dto.SentimentTrend, 0, len(records))
	for _, record := range records {
		doc, err := s.docRepo.FindByID(ctx, record.DocumentID)
		if err != nil {
			continue
		}
		trends = append(trends, dto.SentimentTrend{
			DocumentID:     record.DocumentID,
			Filename:       doc.Filename,
			SentimentScore: record.SentimentScore,
			SentimentLabel: record.SentimentLabel,
			Confidence:     record.Confidence,
			CreatedAt:      record.CreatedAt.Format("2006-01-02T15:04:05"),
		})
	}
	return trends, nil
}

func uniqueSorted(values []string) []string {
	seen := map[string]bool{}
	unique := []string{}
	for _, value := range values {
		if !seen[value] {
			seen[value] = true
			unique = append(unique, value)
		}
	}
	sort.Strings(unique)
	return unique
}
