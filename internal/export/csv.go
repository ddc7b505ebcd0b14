// Package export writes tracked time to CSV files for use outside the
// assistant, one file per project.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/eward/timekeep/internal/domain/project"
)

// CSV writes one <name>.csv per project into a destination directory. The
// directory is created if missing; a re-export overwrites each project's
// prior file.
type CSV struct {
	dir string
}

// NewCSV creates an exporter targeting dir.
func NewCSV(dir string) *CSV {
	return &CSV{dir: dir}
}

// Export writes every project in doc and returns the destination directory.
//
// Each file carries one record set: the project name, a "total time" row,
// a "day","time" header, then one row per day bucket in insertion order.
func (e *CSV) Export(ctx context.Context, doc *project.Document) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	for _, name := range doc.Names() {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		proj, _ := doc.Get(name)
		if err := e.writeProject(name, proj); err != nil {
			return "", err
		}
	}
	return e.dir, nil
}

func (e *CSV) writeProject(name string, proj *project.Project) error {
	path := filepath.Join(e.dir, fileName(name)+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	rows := [][]string{
		{name},
		{"total time", formatSeconds(proj.Total)},
		{"day", "time"},
	}
	for _, day := range proj.Days.Dates() {
		rows = append(rows, []string{day, formatSeconds(proj.Days.Get(day))})
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}

// fileName makes a project name safe as a file name. Path separators are
// the only characters that could escape the export directory.
func fileName(name string) string {
	name = strings.ReplaceAll(name, string(os.PathSeparator), "_")
	return strings.ReplaceAll(name, "/", "_")
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
