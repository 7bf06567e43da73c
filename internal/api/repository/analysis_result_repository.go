package repository

import (
	"context"

	"github.com/kismat91/FinDocGPT/internal/entity"

	"gorm.io/gorm"
)

// AnalysisResultRepository defines the interface for analysis result data operations.
type AnalysisResultRepository interface {
	Create(ctx context.Context, result *entity.AnalysisResult) error
	FindByDocumentID(ctx context.Context, documentID uint) ([]entity.AnalysisResult, error)
}

// NewAnalysisResultRepository creates a new GORM-based analysis result repository.
func NewAnalysisResultRepository(db *gorm.DB) AnalysisResultRepository {
	return &analysisResultRepository{db: db}
}

type analysisResultRepository struct {
	db *gorm.DB
}

func (r *analysisResultRepository) Create(ctx context.Context, result *entity.AnalysisResult) error {
	return r.db.WithContext(ctx).Create(result).Error
}

func (r *analysisResultRepository) FindByDocumentID(ctx context.Context, documentID uint) ([]entity.AnalysisResult, error) {
	var results []entity.AnalysisResult
	if err := r.db.WithContext(ctx).Where("document_id = ?", documentID).Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
