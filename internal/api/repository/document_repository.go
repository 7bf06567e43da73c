package repository

import (
	"context"

	"github.com/kismat91/FinDocGPT/internal/entity"

	"gorm.io/gorm"
)

// DocumentRepository defines the interface for document data operations.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	FindByID(ctx context.Context, id uint) (*entity.Document, error)
	FindAll(ctx context.Context, offset, limit int) ([]entity.Document, error)
	FindByContentContains(ctx context.Context, needle string) ([]entity.Document, error)
	Delete(ctx context.Context, id uint) error
}

// NewDocumentRepository creates a new GORM-based document repository.
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

type documentRepository struct {
	db *gorm.DB
}

func (r *documentRepository) Create(ctx context.Context, doc *entity.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *documentRepository) FindByID(ctx context.Context, id uint) (*entity.Document, error) {
	var doc entity.Document
	if err := r.db.WithContext(ctx).First(&doc, id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) FindAll(ctx context.Context, offset, limit int) ([]entity.Document, error) {
	var docs []entity.Document
	if err := r.db.WithContext(ctx).Offset(offset).Limit(limit).Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// FindByContentContains retrieves documents whose extracted text mentions the
// given needle. Used for symbol-scoped market sentiment.
func (r *documentRepository) FindByContentContains(ctx context.Context, needle string) ([]entity.Document, error) {
	var docs []entity.Document
	if err := r.db.WithContext(ctx).Where("content LIKE ?", "%"+needle+"%").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// Delete removes a document and its dependent analysis rows.
func (r *documentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", id).Delete(&entity.AnalysisResult{}).Error; err != nil {
			return err
		}
		if err := tx.Where("document_id = ?", id).Delete(&entity.SentimentAnalysis{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Document{}, id).Error
	})
}
