package service

import (
	"context"
	"testing"

	"github.com/kismat91/FinDocGPT/internal/api/dto"
	"github.com/kismat91/FinDocGPT/internal/entity"
	"github.com/kismat91/FinDocGPT/pkg/common"
	"github.com/kismat91/FinDocGPT/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSentimentRepository struct {
	created []*entity.SentimentAnalysis
}

func (s *stubSentimentRepository) Create(_ context.Context, sentiment *entity.SentimentAnalysis) error {
	sentiment.ID = uint(len(s.created) + 1)
	s.created = append(s.created, sentiment)
	return nil
}

func (s *stubSentimentRepository) FindByDocumentID(_ context.Context, documentID uint) ([]entity.SentimentAnalysis, error) {
	out := []entity.SentimentAnalysis{}
	for _, record := range s.created {
		if record.DocumentID == documentID {
			out = append(out, *record)
		}
	}
	return out, nil
}

func (s *stubSentimentRepository) FindRecent(_ context.Context, limit int) ([]entity.SentimentAnalysis, error) {
	out := []entity.SentimentAnalysis{}
	for i := len(s.created) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *s.created[i])
	}
	return out, nil
}

type stubNewsFeedRepository struct {
	headlines []dto.NewsItem
	err       error
}

func (s *stubNewsFeedRepository) GetHeadlines(_ context.Context, _ string) ([]dto.NewsItem, error) {
	return s.headlines, s.err
}

func (s *stubNewsFeedRepository) GetArticleContent(_ context.Context, _ string) (string, error) {
	return "", nil
}

func TestAnalyzeDocumentPersistsSentiment(t *testing.T) {
	docRepo := newStubDocumentRepository()
	docID := seedDocument(t, docRepo, "Strong growth and excellent profit this quarter.")
	sentimentRepo := &stubSentimentRepository{}
	svc := NewSentimentService(docRepo, sentimentRepo, nil, logger.NewNop())

	resp, err := svc.AnalyzeDocument(context.Background(), docID)
	require.NoError(t, err)

	assert.Equal(t, common.SentimentPositive, resp.SentimentLabel)
	assert.Greater(t, resp.SentimentScore, 0.0)
	require.Len(t, sentimentRepo.created, 1)
	assert.Equal(t, resp.SentimentScore, sentimentRepo.created[0].SentimentScore)
}

func TestAnalyzeDocumentMissing(t *testing.T) {
	svc := NewSentimentService(newStubDocumentRepository(), &stubSentimentRepository{}, nil, logger.NewNop())

	_, err := svc.AnalyzeDocument(context.Background(), 9)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestGetMarketSentimentNoDocuments(t *testing.T) {
	svc := NewSentimentService(newStubDocumentRepository(), &stubSentimentRepository{}, nil, logger.NewNop())

	_, err := svc.GetMarketSentiment(context.Background(), "AAPL")
	assert.ErrorIs(t, err, ErrNoDocumentsForSymbol)
}

func TestGetMarketSentimentAggregatesDocuments(t *testing.T) {
	docRepo := newStubDocumentRepository()
	seedDocument(t, docRepo, "AAPL delivered strong growth, profit surge and excellent revenue gains.")
	seedDocument(t, docRepo, "AAPL shares rally on improved earnings outperform.")
	svc := NewSentimentService(docRepo, &stubSentimentRepository{}, nil, logger.NewNop())

	resp, err := svc.GetMarketSentiment(context.Background(), "aapl")
	require.NoError(t, err)

	assert.Equal(t, common.SentimentPositive, resp.OverallSentiment)
	assert.Equal(t, "improving", resp.SentimentTrend)
	assert.Greater(t, resp.SentimentScore, 0.2)
	assert.InDelta(t, 0.2, resp.Confidence, 1e-9, "Confidence scales with the number of matched documents")
	assert.Contains(t, resp.KeyPhrases, "revenue")
	assert.Len(t, resp.PositiveFactors, 2)
	assert.Empty(t, resp.NegativeFactors)
}

func TestGetMarketSentimentBlendsHeadlines(t *testing.T) {
	docRepo := newStubDocumentRepository()
	seedDocument(t, docRepo, "MSFT results were neutral overall this quarter period.")
	newsRepo := &stubNewsFeedRepository{headlines: []dto.NewsItem{
		{Title: "MSFT stock plunge deepens amid bearish downturn concern"},
	}}
	svc := NewSentimentService(docRepo, &stubSentimentRepository{}, newsRepo, logger.NewNop())

	resp, err := svc.GetMarketSentiment(context.Background(), "MSFT")
	require.NoError(t, err)

	require.Len(t, resp.NegativeFactors, 1)
	assert.Contains(t, resp.NegativeFactors[0], "Negative headline:")
	assert.Less(t, resp.SentimentScore, 0.0)
}

func TestGetMarketSentimentSurvivesNewsFailure(t *testing.T) {
	docRepo := newStubDocumentRepository()
	seedDocument(t, docRepo, "TSLA posted strong growth and excellent profit gains this quarter.")
	newsRepo := &stubNewsFeedRepository{err: assert.AnError}
	svc := NewSentimentService(docRepo, &stubSentimentRepository{}, newsRepo, logger.NewNop())

	resp, err := svc.GetMarketSentiment(context.Background(), "TSLA")
	require.NoError(t, err, "A news feed failure should fall back to documents only")
	assert.Equal(t, common.SentimentPositive, resp.OverallSentiment)
}

func TestGetSentimentTrends(t *testing.T) {
	docRepo := newStubDocumentRepository()
	docID := seedDocument(t, docRepo, "Strong growth and profit.")
	sentimentRepo := &stubSentimentRepository{}
	svc := NewSentimentService(docRepo, sentimentRepo, nil, logger.NewNop())

	_, err := svc.AnalyzeDocument(context.Background(), docID)
	require.NoError(t, err)

	trends, err := svc.GetSentimentTrends(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, trends, 1)
	assert.Equal(t, docID, trends[0].DocumentID)
	assert.Equal(t, "report.txt", trends[0].Filename)
}
