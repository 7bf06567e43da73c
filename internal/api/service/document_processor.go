package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kismat91/FinDocGPT/pkg/logger"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/xuri/excelize/v2"
)

// DocumentProcessor extracts plain text from uploaded financial documents.
type DocumentProcessor interface {
	ExtractText(ctx context.Context, filePath, fileExtension string) (string, error)
}

// NewDocumentProcessor creates a new document processor.
func NewDocumentProcessor(log *logger.Logger) DocumentProcessor {
	tempDir := filepath.Join(os.TempDir(), "findocgpt-extract")
	os.MkdirAll(tempDir, 0755)

	return &documentProcessor{
		logger:  log,
		tempDir: tempDir,
	}
}

type documentProcessor struct {
	logger  *logger.Logger
	tempDir string
}

func (p *documentProcessor) ExtractText(ctx context.Context, filePath, fileExtension string) (string, error) {
	if _, err := os.Stat(filePath); err != nil {
		return "", fmt.Errorf("file not found: %s", filePath)
	}

	switch fileExtension {
	case ".pdf":
		return p.extractPDFText(ctx, filePath)
	case ".txt":
		return p.extractTxtText(filePath)
	case ".xlsx":
		return p.extractExcelText(filePath)
	case ".html":
		return p.extractHTMLText(filePath)
	case ".docx":
		return p.extractDocxText(filePath)
	default:
		return "", fmt.Errorf("unsupported file type: %s", fileExtension)
	}
}

// extractPDFText extracts page content with pdfcpu. pdfcpu has no direct
// text extraction API, so page content streams are extracted to a temp
// directory and concatenated in page order.
func (p *documentProcessor) extractPDFText(ctx context.Context, filePath string) (string, error) {
	pdfCtx, err := api.ReadContextFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %w", err)
	}

	outDir := filepath.Join(p.tempDir, fmt.Sprintf("pages_%d", os.Getpid()))
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create extraction dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractContentFile(filePath, outDir, nil, conf); err != nil {
		p.logger.Error("Failed to extract PDF content", logger.ErrorField(err), logger.StringField("file_path", filePath))
		return "", fmt.Errorf("failed to extract PDF content: %w", err)
	}

	pageTexts := make(map[int]string, pdfCtx.PageCount)
	files, _ := os.ReadDir(outDir)
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		var pageNum int
		if _, err := fmt.Sscanf(file.Name(), "page_%d", &pageNum); err != nil {
			continue
		}
		content, err := os.ReadFile(filepath.Join(outDir, file.Name()))
		if err != nil {
			continue
		}
		pageTexts[pageNum] = string(content)
	}

	pageNums := make([]int, 0, len(pageTexts))
	for n := range pageTexts {
		pageNums = append(pageNums, n)
	}
	sort.Ints(pageNums)

	var builder strings.Builder
	for _, n := range pageNums {
		builder.WriteString(pageTexts[n])
		builder.WriteString("\n")
	}
	return strings.TrimSpace(builder.String()), nil
}

func (p *documentProcessor) extractTxtText(filePath string) (string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read text file: %w", err)
	}
	return string(content), nil
}

func (p *documentProcessor) extractExcelText(filePath string) (string, error) {
	workbook, err := excelize.OpenFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open workbook: %w", err)
	}
	defer workbook.Close()

	var builder strings.Builder
	for _, sheetName := range workbook.GetSheetList() {
		builder.WriteString(fmt.Sprintf("Sheet: %s\n", sheetName))

		rows, err := workbook.GetRows(sheetName)
		if err != nil {
			return "", fmt.Errorf("failed to read sheet %s: %w", sheetName, err)
		}
		for _, row := range rows {
			rowText := strings.Join(row, " | ")
			if strings.TrimSpace(rowText) != "" {
				builder.WriteString(rowText)
				builder.WriteString("\n")
			}
		}
		builder.WriteString("\n")
	}
	return strings.TrimSpace(builder.String()), nil
}

func (p *documentProcessor) extractHTMLText(filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open HTML file: %w", err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find("script, style").Remove()
	return strings.TrimSpace(doc.Text()), nil
}

// DOCX extraction is not implemented. Uploads are still accepted so the
// document metadata is preserved for later reprocessing.
func (p *documentProcessor) extractDocxText(filePath string) (string, error) {
	return fmt.Sprintf("DOCX content from %s - text extraction not implemented yet.", filepath.Base(filePath)), nil
}
