package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/datagenie/datagenie/pkg/logger"
)

// Filename is the single-slot report artifact; every export overwrites it.
const Filename = "report.html"

// Uploader mirrors the object-storage upload used for durable report copies.
type Uploader interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
}

// Render builds the graded-report HTML. Each item's JSON text is interpolated
// directly into a list entry, matching the report format consumers expect.
func Render(graded []interface{}) string {
	var b strings.Builder
	b.WriteString("<html><body><h1>Graded Report</h1><ul>")
	for _, item := range graded {
		text, err := json.Marshal(item)
		if err != nil {
			// items arrive from decoded JSON, so this should not happen
			continue
		}
		b.WriteString("<li>")
		b.Write(text)
		b.WriteString("</li>")
	}
	b.WriteString("</ul></body></html>")
	return b.String()
}

// Writer regenerates the report file on every export. When an uploader is
// configured a copy also goes to object storage; upload failures are logged
// but do not fail the export.
type Writer struct {
	dir   string
	store Uploader
}

func NewWriter(dir string, store Uploader) *Writer {
	if dir == "" {
		dir = "."
	}
	return &Writer{dir: dir, store: store}
}

// Export renders the graded items and overwrites the report file, returning
// its path.
func (w *Writer) Export(ctx context.Context, graded []interface{}) (string, error) {
	html := Render(graded)
	path := filepath.Join(w.dir, Filename)
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	if w.store != nil {
		if err := w.store.Upload(ctx, Filename, strings.NewReader(html), int64(len(html)), "text/html"); err != nil {
			logger.Warnf("report upload failed: %v", err)
		}
	}
	return path, nil
}
