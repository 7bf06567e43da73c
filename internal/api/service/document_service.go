package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kismat91/FinDocGPT/internal/api/config"
	"github.com/kismat91/FinDocGPT/internal/api/dto"
	"github.com/kismat91/FinDocGPT/internal/api/repository"
	"github.com/kismat91/FinDocGPT/internal/entity"
	"github.com/kismat91/FinDocGPT/pkg/logger"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DocumentService defines the interface for managing uploaded documents.
type DocumentService interface {
	Upload(ctx context.Context, filename string, size int64, src io.Reader) (*dto.DocumentResponse, error)
	GetAll(ctx context.Context, skip, limit int) ([]dto.DocumentResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.DocumentResponse, error)
	Delete(ctx context.Context, id uint) error
}

// NewDocumentService creates a new document service.
func NewDocumentService(cfg *config.Config, docRepo repository.DocumentRepository, processor DocumentProcessor, log *logger.Logger) DocumentService {
	return &documentService{
		cfg:       cfg,
		docRepo:   docRepo,
		processor: processor,
		logger:    log,
	}
}

type documentService struct {
	cfg       *config.Config
	docRepo   repository.DocumentRepository
	processor DocumentProcessor
	logger    *logger.Logger
}

// Upload validates, stores and extracts an uploaded document. Validation
// happens before anything touches the filesystem.
func (s *documentService) Upload(ctx context.Context, filename string, size int64, src io.Reader) (*dto.DocumentResponse, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !s.extensionAllowed(ext) {
		return nil, fmt.Errorf("%w: %s, allowed types: %s", ErrUnsupportedFileType, ext, strings.Join(s.cfg.Upload.AllowedExtensions, ", "))
	}
	if s.cfg.Upload.MaxFileSize > 0 && size > s.cfg.Upload.MaxFileSize {
		return nil, ErrFileTooLarge
	}

	if err := os.MkdirAll(s.cfg.Upload.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	// Stored under a generated name so colliding upload filenames cannot
	// overwrite each other.
	filePath := filepath.Join(s.cfg.Upload.Dir, uuid.NewString()+ext)
	dst, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to save file: %w", err)
	}
	dst.Close()

	content, err := s.processor.ExtractText(ctx, filePath, ext)
	if err != nil {
		s.logger.Error("Failed to extract document text", logger.ErrorField(err), logger.StringField("filename", filename))
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	metadata, _ := json.Marshal(map[string]any{
		"file_size":   len(content),
		"upload_time": time.Now().Format(time.RFC3339),
	})

	doc := &entity.Document{
		Filename: filename,
		FilePath: filePath,
		FileType: ext,
		Content:  content,
		Metadata: datatypes.JSON(metadata),
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		os.Remove(filePath)
		return nil, err
	}

	s.logger.Info("Document uploaded",
		logger.IntField("document_id", int(doc.ID)),
		logger.StringField("filename", filename),
		logger.StringField("file_type", ext),
	)
	return mapToDocumentResponse(doc), nil
}

// GetAll retrieves stored documents with offset pagination.
func (s *documentService) GetAll(ctx context.Context, skip, limit int) ([]dto.DocumentResponse, error) {
	if limit <= 0 {
		limit = 100
	}
	docs, err := s.docRepo.FindAll(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.DocumentResponse, 0, len(docs))
	for i := range docs {
		responses = append(responses, *mapToDocumentResponse(&docs[i]))
	}
	return responses, nil
}

// GetByID retrieves a single document.
func (s *documentService) GetByID(ctx context.Context, id uint) (*dto.DocumentResponse, error) {
	doc, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return mapToDocumentResponse(doc), nil
}

// Delete removes a document, its stored file and dependent analysis rows.
func (s *documentService) Delete(ctx context.Context, id uint) error {
	doc, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDocumentNotFound
		}
		return err
	}

	if _, err := os.Stat(doc.FilePath); err == nil {
		if err := os.Remove(doc.FilePath); err != nil {
			s.logger.Error("Failed to remove document file", logger.ErrorField(err), logger.StringField("file_path", doc.FilePath))
		}
	}

	return s.docRepo.Delete(ctx, id)
}

func (s *documentService) extensionAllowed(ext string) bool {
	for _, allowed := range s.cfg.Upload.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func mapToDocumentResponse(doc *entity.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		ID:         doc.ID,
		Filename:   doc.Filename,
		FileType:   doc.FileType,
		Content:    doc.Content,
		Metadata:   json.RawMessage(doc.Metadata),
		UploadDate: doc.UploadDate,
	}
}
