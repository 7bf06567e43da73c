package repository

import (
	"context"

	"github.com/kismat91/FinDocGPT/internal/entity"

	"gorm.io/gorm"
)

// SentimentRepository defines the interface for sentiment analysis data operations.
type SentimentRepository interface {
	Create(ctx context.Context, sentiment *entity.SentimentAnalysis) error
	FindByDocumentID(ctx context.Context, documentID uint) ([]entity.SentimentAnalysis, error)
	FindRecent(ctx context.Context, limit int) ([]entity.SentimentAnalysis, error)
}

// NewSentimentRepository creates a new GORM-based sentiment repository.
func NewSentimentRepository(db *gorm.DB) SentimentRepository {
	return &sentimentRepository{db: db}
}

type sentimentRepository struct {
	db *gorm.DB
}

func (r *sentimentRepository) Create(ctx context.Context, sentiment *entity.SentimentAnalysis) error {
	return r.db.WithContext(ctx).Create(sentiment).Error
}

func (r *sentimentRepository) FindByDocumentID(ctx context.Context, documentID uint) ([]entity.SentimentAnalysis, error) {
	var analyses []entity.SentimentAnalysis
	err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("created_at DESC").
		Find(&analyses).Error
	if err != nil {
		return nil, err
	}
	return analyses, nil
}

func (r *sentimentRepository) FindRecent(ctx context.Context, limit int) ([]entity.SentimentAnalysis, error) {
	var analyses []entity.SentimentAnalysis
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&analyses).Error
	if err != nil {
		return nil, err
	}
	return analyses, nil
}
