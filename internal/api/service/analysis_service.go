package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/kismat91/FinDocGPT/internal/api/dto"
	"github.com/kismat91/FinDocGPT/internal/api/repository"
	"github.com/kismat91/FinDocGPT/internal/entity"
	"github.com/kismat91/FinDocGPT/pkg/common"
	"github.com/kismat91/FinDocGPT/pkg/logger"
	"github.com/kismat91/FinDocGPT/pkg/telegram"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Risk scores above this bar trigger a Telegram alert.
const anomalyAlertThreshold = 0.7

// AnalysisService defines the interface for document Q&A and anomaly analysis.
type AnalysisService interface {
	AskQuestion(ctx context.Context, req *dto.AnalysisRequest) (*dto.QAResponse, error)
	DetectAnomalies(ctx context.Context, documentID uint) (*dto.AnomalyDetectionResponse, error)
	GetAnalysisHistory(ctx context.Context, documentID uint) ([]dto.AnalysisResponse, error)
}

// NewAnalysisService creates a new analysis service. aiRepo and notifier may
// be nil, in which case Q&A falls back to rule-based answers and alerts are
// skipped.
func NewAnalysisService(
	docRepo repository.DocumentRepository,
	resultRepo repository.AnalysisResultRepository,
	aiRepo repository.AIRepository,
	notifier telegram.Notifier,
	log *logger.Logger,
) AnalysisService {
	return &analysisService{
		docRepo:    docRepo,
		resultRepo: resultRepo,
		aiRepo:     aiRepo,
		notifier:   notifier,
		logger:     log,
	}
}

type analysisService struct {
	docRepo    repository.DocumentRepository
	resultRepo repository.AnalysisResultRepository
	aiRepo     repository.AIRepository
	notifier   telegram.Notifier
	logger     *logger.Logger
}

// AskQuestion answers a question about a stored document, preferring the
// language model and falling back to rule-based matching on any failure.
func (s *analysisService) AskQuestion(ctx context.Context, req *dto.AnalysisRequest) (*dto.QAResponse, error) {
	doc, err := s.findDocument(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}

	var result *dto.QAResult
	if doc.Content == "" {
		result = &dto.QAResult{
			Answer:     "No document content available to answer the question.",
			Confidence: 0.0,
			Sources:    []string{},
			Reasoning:  "Document content is empty or unavailable.",
		}
	} else if s.aiRepo != nil {
		result, err = s.aiRepo.AnswerQuestion(ctx, doc.Content, req.Question)
		if err != nil {
			s.logger.Error("Language model Q&A failed, using rule-based fallback", logger.ErrorField(err), logger.IntField("document_id", int(doc.ID)))
			result = answerRuleBased(doc.Content, req.Question)
		}
	} else {
		result = answerRuleBased(doc.Content, req.Question)
	}

	if err := s.persistResult(ctx, doc.ID, common.AnalysisKindQA, result, result.Confidence); err != nil {
		return nil, err
	}

	return &dto.QAResponse{
		Question:   req.Question,
		Answer:     result.Answer,
		Confidence: result.Confidence,
		Sources:    result.Sources,
		Reasoning:  result.Reasoning,
	}, nil
}

// DetectAnomalies runs anomaly detection over a stored document and alerts
// on high-risk findings.
func (s *analysisService) DetectAnomalies(ctx context.Context, documentID uint) (*dto.AnomalyDetectionResponse, error) {
	doc, err := s.findDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	result := detectAnomalies(doc.Content)

	if err := s.persistResult(ctx, doc.ID, common.AnalysisKindAnomaly, result, result.Confidence); err != nil {
		return nil, err
	}

	if result.RiskScore > anomalyAlertThreshold && s.notifier != nil {
		msg := telegram.FormatAnomalyAlertMessage(time.Now(), doc.Filename, result.RiskScore, result.AffectedMetrics)
		if err := s.notifier.SendMessage(msg); err != nil {
			s.logger.Error("Failed to send anomaly alert", logger.ErrorField(err), logger.IntField("document_id", int(doc.ID)))
		}
	}

	return &dto.AnomalyDetectionResponse{
		Anomalies:       result.Anomalies,
		RiskScore:       result.RiskScore,
		Recommendations: result.Recommendations,
		AffectedMetrics: result.AffectedMetrics,
	}, nil
}

// GetAnalysisHistory lists the stored analysis results for a document.
func (s *analysisService) GetAnalysisHistory(ctx context.Context, documentID uint) ([]dto.AnalysisResponse, error) {
	if _, err := s.findDocument(ctx, documentID); err != nil {
		return nil, err
	}

	results, err := s.resultRepo.FindByDocumentID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AnalysisResponse, 0, len(results))
	for _, result := range results {
		responses = append(responses, dto.AnalysisResponse{
			ID:              result.ID,
			DocumentID:      result.DocumentID,
			AnalysisType:    result.AnalysisType,
			Result:          json.RawMessage(result.Result),
			ConfidenceScore: result.ConfidenceScore,
			CreatedAt:       result.CreatedAt,
		})
	}
	return responses, nil
}

func (s *analysisService) findDocument(ctx context.Context, id uint) (*entity.Document, error) {
	doc, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *analysisService) persistResult(ctx context.Context, documentID uint, analysisType string, result any, confidence float64) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return s.resultRepo.Create(ctx, &entity.AnalysisResult{
		DocumentID:      documentID,
		AnalysisType:    analysisType,
		Result:          datatypes.JSON(payload),
		ConfidenceScore: confidence,
	})
}
