package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"tooldir/internal/codec"
	"tooldir/internal/repository"
)

// documentField binds an interchange document field to a storage key.
// Cleared fields are removed before every import whether or not the
// document carries them.
type documentField struct {
	name    string
	key     string
	cleared bool
}

var documentFields = []documentField{
	{"tools", repository.KeyTools, true},
	{"toolCategories", repository.KeyToolCategories, true},
	{"articles", repository.KeyArticles, true},
	{"articleCategories", repository.KeyArticleCategories, true},
	{"resources", repository.KeyResources, true},
	{"resourceCategories", repository.KeyResourceCategories, true},
	{"styles", repository.KeyStyles, true},
	{"messages", repository.KeyMessages, true},
	{"makers", repository.KeyMakers, false},
	{"makerAuthCodes", repository.KeyAuthCodes, false},
	{"makerProjects", repository.KeyProjects, false},
	{"makerTeams", repository.KeyTeams, false},
}

// ExportFileName names an export taken at now, e.g.
// website_database_export_2025-03-01T12-00-00-000Z.json
func ExportFileName(now time.Time, format string) string {
	ext := "json"
	if format == "yaml" || format == "yml" {
		ext = "yaml"
	}
	stamp := exportStampReplacer.Replace(now.UTC().Format("2006-01-02T15:04:05.000Z"))
	return "website_database_export_" + stamp + "." + ext
}

var exportStampReplacer = strings.NewReplacer(":", "-", ".", "-")

// ImportResult summarises an import
type ImportResult struct {
	Imported []string `json:"imported"`
	Skipped  []string `json:"skipped,omitempty"`
	Cleared  []string `json:"cleared"`
}

// DatabaseService exports and imports the whole database
type DatabaseService struct {
	repos *repository.Repositories
	log   *zap.Logger
}

// NewDatabaseService creates a new database service
func NewDatabaseService(repos *repository.Repositories, log *zap.Logger) *DatabaseService {
	if log == nil {
		log = zap.NewNop()
	}
	return &DatabaseService{repos: repos, log: log.Named("database")}
}

// Export reads every collection the way the repositories read it and
// returns it as an interchange document
func (s *DatabaseService) Export(ctx context.Context) (*codec.Document, error) {
	snap, err := s.repos.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot collections: %w", err)
	}
	doc := codec.NewDocument()
	for _, f := range documentFields {
		doc.Collections[f.name] = snap[f.key]
	}
	return doc, nil
}

// ExportTo writes the database to w in format ("json" or "yaml")
func (s *DatabaseService) ExportTo(ctx context.Context, format string, w io.Writer) error {
	c, err := codec.ForFormat(format)
	if err != nil {
		return err
	}
	doc, err := s.Export(ctx)
	if err != nil {
		return err
	}
	return c.Export(doc, w)
}

// Import replaces collections with those in doc. The original eight
// collections are cleared first; every recognised field holding an array
// then overwrites its key. Other fields are skipped.
func (s *DatabaseService) Import(ctx context.Context, doc *codec.Document) (*ImportResult, error) {
	result := &ImportResult{Imported: []string{}, Cleared: []string{}}
	var clear []string
	values := make(map[string]json.RawMessage)

	known := make(map[string]bool, len(documentFields))
	for _, f := range documentFields {
		known[f.name] = true
		if f.cleared {
			clear = append(clear, f.key)
			result.Cleared = append(result.Cleared, f.key)
		}

		raw, ok := doc.Collections[f.name]
		if !ok {
			continue
		}
		if !codec.IsArray(raw) {
			result.Skipped = append(result.Skipped, f.name)
			continue
		}
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return nil, fmt.Errorf("field %s: %w", f.name, err)
		}
		values[f.key] = buf.Bytes()
		result.Imported = append(result.Imported, f.name)
	}
	for _, name := range doc.Names() {
		if !known[name] {
			result.Skipped = append(result.Skipped, name)
		}
	}

	if err := s.repos.Replace(ctx, clear, values); err != nil {
		return nil, fmt.Errorf("failed to import: %w", err)
	}

	s.log.Info("database imported",
		zap.Strings("imported", result.Imported),
		zap.Strings("skipped", result.Skipped))
	return result, nil
}

// ImportData parses data in format and imports it
func (s *DatabaseService) ImportData(ctx context.Context, data []byte, format string) (*ImportResult, error) {
	c, err := codec.ForFormat(format)
	if err != nil {
		return nil, err
	}
	doc, err := c.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return s.Import(ctx, doc)
}

// ImportFile imports a file, choosing the format from its extension
func (s *DatabaseService) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := codec.ForPath(path).Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return s.Import(ctx, doc)
}
