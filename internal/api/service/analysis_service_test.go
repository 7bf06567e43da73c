package service

import (
	"context"
	"strings"
	"testing"

	"github.com/kismat91/FinDocGPT/internal/api/dto"
	"github.com/kismat91/FinDocGPT/internal/entity"
	"github.com/kismat91/FinDocGPT/pkg/common"
	"github.com/kismat91/FinDocGPT/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResultRepository struct {
	created []*entity.AnalysisResult
}

func (s *stubResultRepository) Create(_ context.Context, result *entity.AnalysisResult) error {
	result.ID = uint(len(s.created) + 1)
	s.created = append(s.created, result)
	return nil
}

func (s *stubResultRepository) FindByDocumentID(_ context.Context, documentID uint) ([]entity.AnalysisResult, error) {
	out := []entity.AnalysisResult{}
	for _, record := range s.created {
		if record.DocumentID == documentID {
			out = append(out, *record)
		}
	}
	return out, nil
}

type stubAIRepository struct {
	result *dto.QAResult
	err    error
	called int
}

func (s *stubAIRepository) AnswerQuestion(_ context.Context, _, _ string) (*dto.QAResult, error) {
	s.called++
	return s.result, s.err
}

type recordingNotifier struct {
	messages []string
}

func (r *recordingNotifier) SendMessage(text string) error {
	r.messages = append(r.messages, text)
	return nil
}

func seedDocument(t *testing.T, repo *stubDocumentRepository, content string) uint {
	t.Helper()
	doc := &entity.Document{Filename: "report.txt", FileType: ".txt", Content: content}
	require.NoError(t, repo.Create(context.Background(), doc))
	return doc.ID
}

func TestAskQuestionFallsBackWithoutAIProvider(t *testing.T) {
	docRepo := newStubDocumentRepository()
	docID := seedDocument(t, docRepo, "Total revenue: $500 million this year.")
	resultRepo := &stubResultRepository{}
	svc := NewAnalysisService(docRepo, resultRepo, nil, nil, logger.NewNop())

	resp, err := svc.AskQuestion(context.Background(), &dto.AnalysisRequest{DocumentID: docID, Question: "What is the revenue?"})
	require.NoError(t, err)

	assert.Equal(t, "The revenue is $500.", resp.Answer)
	assert.Equal(t, 0.7, resp.Confidence)

	require.Len(t, resultRepo.created, 1, "Q&A results should be persisted")
	assert.Equal(t, common.AnalysisKindQA, resultRepo.created[0].AnalysisType)
}

func TestAskQuestionFallsBackOnAIError(t *testing.T) {
	docRepo := newStubDocumentRepository()
	docID := seedDocument(t, docRepo, "Total revenue: $500 million this year.")
	aiRepo := &stubAIRepository{err: assert.AnError}
	svc := NewAnalysisService(docRepo, &stubResultRepository{}, aiRepo, nil, logger.NewNop())

	resp, err := svc.AskQuestion(context.Background(), &dto.AnalysisRequest{DocumentID: docID, Question: "What is the revenue?"})
	require.NoError(t, err)

	assert.Equal(t, 1, aiRepo.called)
	assert.Equal(t, "The revenue is $500.", resp.Answer, "A failed model call should degrade to rule-based answers")
}

func TestAskQuestionPrefersAIProvider(t *testing.T) {
	docRepo := newStubDocumentRepository()
	docID := seedDocument(t, docRepo, "Total revenue: $500 million this year.")
	aiRepo := &stubAIRepository{result: &dto.QAResult{Answer: "Revenue was $500M.", Confidence: 0.95, Sources: []string{"model"}}}
	svc := NewAnalysisService(docRepo, &stubResultRepository{}, aiRepo, nil, logger.NewNop())

	resp, err := svc.AskQuestion(context.Background(), &dto.AnalysisRequest{DocumentID: docID, Question: "What is the revenue?"})
	require.NoError(t, err)

	assert.Equal(t, "Revenue was $500M.", resp.Answer)
	assert.Equal(t, 0.95, resp.Confidence)
}

func TestAskQuestionEmptyDocument(t *testing.T) {
	docRepo := newStubDocumentRepository()
	docID := seedDocument(t, docRepo, "")
	svc := NewAnalysisService(docRepo, &stubResultRepository{}, nil, nil, logger.NewNop())

	resp, err := svc.AskQuestion(context.Background(), &dto.AnalysisRequest{DocumentID: docID, Question: "What is the revenue?"})
	require.NoError(t, err)

	assert.Equal(t, 0.0, resp.Confidence)
	assert.Contains(t, resp.Answer, "No document content available")
}

func TestAskQuestionDocumentMissing(t *testing.T) {
	svc := NewAnalysisService(newStubDocumentRepository(), &stubResultRepository{}, nil, nil, logger.NewNop())

	_, err := svc.AskQuestion(context.Background(), &dto.AnalysisRequest{DocumentID: 77, Question: "Anything?"})
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestDetectAnomaliesAlertsOnHighRisk(t *testing.T) {
	// Large swings in several metrics push the risk score past the alert bar.
	lines := []string{}
	for _, metric := range []string{"Revenue", "Profit", "Expenses", "Debt", "Assets"} {
		for i := 0; i < 6; i++ {
			if i%2 == 0 {
				lines = append(lines, metric+": 100")
			} else {
				lines = append(lines, metric+": 400")
			}
		}
	}
	docRepo := newStubDocumentRepository()
	docID := seedDocument(t, docRepo, strings.Join(lines, "\n"))
	resultRepo := &stubResultRepository{}
	notifier := &recordingNotifier{}
	svc := NewAnalysisService(docRepo, resultRepo, nil, notifier, logger.NewNop())

	resp, err := svc.DetectAnomalies(context.Background(), docID)
	require.NoError(t, err)

	assert.Greater(t, resp.RiskScore, anomalyAlertThreshold)
	require.Len(t, notifier.messages, 1, "High risk findings should trigger one alert")
	assert.Contains(t, notifier.messages[0], "report.txt")

	require.Len(t, resultRepo.created, 1)
	assert.Equal(t, common.AnalysisKindAnomaly, resultRepo.created[0].AnalysisType)
}

func TestDetectAnomaliesNoAlertBelowThreshold(t *testing.T) {
	docRepo := newStubDocumentRepository()
	docID := seedDocument(t, docRepo, "Revenue: 100\nRevenue: 130")
	notifier := &recordingNotifier{}
	svc := NewAnalysisService(docRepo, &stubResultRepository{}, nil, notifier, logger.NewNop())

	resp, err := svc.DetectAnomalies(context.Background(), docID)
	require.NoError(t, err)

	assert.LessOrEqual(t, resp.RiskScore, anomalyAlertThreshold)
	assert.Empty(t, notifier.messages)
}
