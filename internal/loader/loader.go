package loader

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"medbot/internal/domain"
)

// DirectoryLoader reads source documents from a directory tree. PDF files
// are reduced to plain text; .txt and .md files are read verbatim. A file
// that cannot be read or parsed is skipped and logged, not fatal.
type DirectoryLoader struct {
	logger *slog.Logger
}

func NewDirectoryLoader() *DirectoryLoader {
	return &DirectoryLoader{logger: slog.Default()}
}

func (l *DirectoryLoader) Load(dir string) ([]domain.Document, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("document directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("document directory %s is not a directory", dir)
	}

	var documents []domain.Document
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		var text string
		switch strings.ToLower(filepath.Ext(path)) {
		case ".pdf":
			text, err = extractPDFText(path)
		case ".txt", ".md":
			var data []byte
			data, err = os.ReadFile(path)
			text = string(data)
		default:
			return nil
		}
		if err != nil {
			l.logger.Warn("skipping unreadable document", "path", path, "error", err)
			return nil
		}
		if strings.TrimSpace(text) == "" {
			l.logger.Warn("skipping empty document", "path", path)
			return nil
		}

		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}
		documents = append(documents, domain.Document{
			ID:   hashString(rel),
			Path: path,
			Text: text,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(documents) == 0 {
		return nil, fmt.Errorf("no documents found in %s", dir)
	}
	return documents, nil
}

func extractPDFText(path string) (string, error) {
	f, rdr, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	r, err := rdr.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func hashString(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:8])
}
