package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kismat91/FinDocGPT/internal/api/config"
	"github.com/kismat91/FinDocGPT/internal/entity"
	"github.com/kismat91/FinDocGPT/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubDocumentRepository struct {
	docs   map[uint]*entity.Document
	nextID uint
}

func newStubDocumentRepository() *stubDocumentRepository {
	return &stubDocumentRepository{docs: map[uint]*entity.Document{}, nextID: 1}
}

func (s *stubDocumentRepository) Create(_ context.Context, doc *entity.Document) error {
	doc.ID = s.nextID
	s.nextID++
	s.docs[doc.ID] = doc
	return nil
}

func (s *stubDocumentRepository) FindByID(_ context.Context, id uint) (*entity.Document, error) {
	doc, ok := s.docs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return doc, nil
}

func (s *stubDocumentRepository) FindAll(_ context.Context, offset, limit int) ([]entity.Document, error) {
	out := []entity.Document{}
	for _, doc := range s.docs {
		out = append(out, *doc)
	}
	return out, nil
}

func (s *stubDocumentRepository) FindByContentContains(_ context.Context, needle string) ([]entity.Document, error) {
	out := []entity.Document{}
	for _, doc := range s.docs {
		if strings.Contains(doc.Content, needle) {
			out = append(out, *doc)
		}
	}
	return out, nil
}

func (s *stubDocumentRepository) Delete(_ context.Context, id uint) error {
	delete(s.docs, id)
	return nil
}

func uploadTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Upload: config.Upload{
			Dir:               filepath.Join(t.TempDir(), "uploads"),
			MaxFileSize:       1024,
			AllowedExtensions: []string{".pdf", ".txt", ".xlsx", ".docx", ".html"},
		},
	}
}

func TestUploadRejectsUnsupportedExtensionBeforeWrite(t *testing.T) {
	cfg := uploadTestConfig(t)
	repo := newStubDocumentRepository()
	svc := NewDocumentService(cfg, repo, NewDocumentProcessor(logger.NewNop()), logger.NewNop())

	_, err := svc.Upload(context.Background(), "malware.exe", 10, strings.NewReader("MZ"))
	require.ErrorIs(t, err, ErrUnsupportedFileType)

	_, statErr := os.Stat(cfg.Upload.Dir)
	assert.True(t, os.IsNotExist(statErr), "Rejected uploads must not touch the filesystem")
	assert.Empty(t, repo.docs)
}

func TestUploadRejectsOversizedFileBeforeWrite(t *testing.T) {
	cfg := uploadTestConfig(t)
	repo := newStubDocumentRepository()
	svc := NewDocumentService(cfg, repo, NewDocumentProcessor(logger.NewNop()), logger.NewNop())

	_, err := svc.Upload(context.Background(), "report.txt", 2048, strings.NewReader("too big"))
	require.ErrorIs(t, err, ErrFileTooLarge)

	_, statErr := os.Stat(cfg.Upload.Dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestUploadStoresAndExtractsText(t *testing.T) {
	cfg := uploadTestConfig(t)
	repo := newStubDocumentRepository()
	svc := NewDocumentService(cfg, repo, NewDocumentProcessor(logger.NewNop()), logger.NewNop())

	content := "Revenue: 120. Profit: 30."
	resp, err := svc.Upload(context.Background(), "Q3 Report.txt", int64(len(content)), strings.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, "Q3 Report.txt", resp.Filename)
	assert.Equal(t, ".txt", resp.FileType)
	assert.Equal(t, content, resp.Content)
	assert.NotZero(t, resp.ID)

	entries, err := os.ReadDir(cfg.Upload.Dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "The upload should be stored under a generated name")
	assert.NotEqual(t, "Q3 Report.txt", entries[0].Name())
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".txt"))
}

func TestGetByIDNotFound(t *testing.T) {
	cfg := uploadTestConfig(t)
	svc := NewDocumentService(cfg, newStubDocumentRepository(), NewDocumentProcessor(logger.NewNop()), logger.NewNop())

	_, err := svc.GetByID(context.Background(), 42)
	assert.True(t, errors.Is(err, ErrDocumentNotFound))
}

func TestDeleteRemovesStoredFile(t *testing.T) {
	cfg := uploadTestConfig(t)
	repo := newStubDocumentRepository()
	svc := NewDocumentService(cfg, repo, NewDocumentProcessor(logger.NewNop()), logger.NewNop())

	resp, err := svc.Upload(context.Background(), "note.txt", 4, strings.NewReader("text"))
	require.NoError(t, err)

	storedPath := repo.docs[resp.ID].FilePath
	require.FileExists(t, storedPath)

	require.NoError(t, svc.Delete(context.Background(), resp.ID))
	assert.NoFileExists(t, storedPath)
	assert.Empty(t, repo.docs)
}
