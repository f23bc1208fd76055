package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"po2so/internal"
	"po2so/internal/config"
	"po2so/internal/export"
	"po2so/internal/extract"
	"po2so/internal/numbering"
	"po2so/internal/parser"
	"po2so/internal/storage"
)

// ProcessingService drives a document through parse, extraction,
// completion, numbering, storage and export.
type ProcessingService struct {
	db      *storage.DB
	cfg     config.Config
	counter *numbering.Counter
	logger  *slog.Logger
}

func NewProcessingService(db *storage.DB, cfg config.Config, logger *slog.Logger) *ProcessingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProcessingService{
		db:      db,
		cfg:     cfg,
		counter: numbering.NewCounter(db, cfg.SOPrefix),
		logger:  logger,
	}
}

type ProcessResult struct {
	DocumentID int
	SONumber   string
	LineItems  int
	Paths      export.Paths
	XLSXPath   string
}

// ProcessFile converts one document into a stored, exported sales order.
// Reprocessing the same file replaces its prior order rows.
func (s *ProcessingService) ProcessFile(path string) (ProcessResult, error) {
	start := time.Now()
	trace := uuid.NewString()

	format, err := parser.DetectFormat(path)
	if err != nil {
		return ProcessResult{}, err
	}
	hash, err := hashFile(path)
	if err != nil {
		return ProcessResult{}, err
	}

	doc, err := s.db.UpsertDocument(path, string(format), hash, "pending")
	if err != nil {
		return ProcessResult{}, err
	}

	parsed, err := parser.Parse(path)
	if err != nil {
		_ = s.db.UpdateDocumentStatus(doc.ID, "failed", nil)
		return ProcessResult{}, err
	}
	parseMs := float64(time.Since(start).Milliseconds())

	rec := extract.Assemble(parsed)
	now := time.Now()
	extract.Complete(&rec, now, s.cfg.Defaults())

	soNumber, err := s.counter.Next()
	if err != nil {
		_ = s.db.UpdateDocumentStatus(doc.ID, "failed", nil)
		return ProcessResult{}, err
	}
	so := internal.SalesOrder{
		SONumber: soNumber,
		SODate:   now.Format("2006-01-02"),
		Record:   rec,
	}

	if err := s.db.ClearDocumentOrders(doc.ID); err != nil {
		return ProcessResult{}, err
	}
	if _, err := s.db.InsertOrder(doc.ID, so); err != nil {
		return ProcessResult{}, err
	}

	paths, err := export.WriteCSV(so, s.cfg.OutputDir)
	if err != nil {
		_ = s.db.UpdateDocumentStatus(doc.ID, "failed", &soNumber)
		return ProcessResult{}, err
	}
	xlsxPath := ""
	if s.cfg.ExportXLSX {
		xlsxPath, err = export.WriteXLSX(so, s.cfg.OutputDir)
		if err != nil {
			_ = s.db.UpdateDocumentStatus(doc.ID, "failed", &soNumber)
			return ProcessResult{}, err
		}
	}

	if err := s.db.UpdateDocumentStatus(doc.ID, "processed", &soNumber); err != nil {
		return ProcessResult{}, err
	}
	totalMs := float64(time.Since(start).Milliseconds())
	_ = s.db.InsertRun(trace, doc.ID,
		map[string]float64{"parseMs": parseMs, "totalMs": totalMs},
		map[string]int{"lineItems": len(rec.LineItems), "tables": len(parsed.Tables)})

	s.logger.Info("document processed",
		"trace", trace,
		"path", path,
		"format", format,
		"so", soNumber,
		"lineItems", len(rec.LineItems),
		"ms", totalMs)

	return ProcessResult{
		DocumentID: doc.ID,
		SONumber:   soNumber,
		LineItems:  len(rec.LineItems),
		Paths:      paths,
		XLSXPath:   xlsxPath,
	}, nil
}

// ProcessDir walks dir non-recursively and processes up to batch
// supported documents in name order. A failing file is logged and
// skipped, not fatal to the batch.
func (s *ProcessingService) ProcessDir(dir string, batch int) (processed, failed int, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, 0, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if _, err := parser.DetectFormat(path); err != nil {
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)
	if batch > 0 && len(files) > batch {
		files = files[:batch]
	}

	for _, path := range files {
		if _, err := s.ProcessFile(path); err != nil {
			s.logger.Error("process failed", "path", path, "err", err)
			failed++
			continue
		}
		processed++
	}
	return processed, failed, nil
}

// ExportOrder re-exports a stored order without reprocessing its source
// document.
func (s *ProcessingService) ExportOrder(soNumber string, xlsx bool) (export.Paths, string, error) {
	row, err := s.db.MustOrderBySONumber(soNumber)
	if err != nil {
		return export.Paths{}, "", err
	}
	paths, err := export.WriteCSV(row.Order, s.cfg.OutputDir)
	if err != nil {
		return export.Paths{}, "", err
	}
	xlsxPath := ""
	if xlsx {
		xlsxPath, err = export.WriteXLSX(row.Order, s.cfg.OutputDir)
		if err != nil {
			return paths, "", err
		}
	}
	return paths, xlsxPath, nil
}

func hashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
