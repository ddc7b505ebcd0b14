package export_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/eward/timekeep/internal/domain/project"
	"github.com/eward/timekeep/internal/export"
	"github.com/stretchr/testify/require"
)

func TestExportWritesOneFilePerProject(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "projects_csv")

	doc := project.NewDocument()
	writing := project.New()
	writing.Total = 150.5
	writing.Days.Add("2025-03-10", 90)
	writing.Days.Add("2025-03-08", 60.5)
	doc.Put("writing", writing)
	doc.Put("reading", project.New())

	dest, err := export.NewCSV(dir).Export(ctx, doc)
	require.NoError(t, err)
	require.Equal(t, dir, dest)

	data, err := os.ReadFile(filepath.Join(dir, "writing.csv"))
	require.NoError(t, err)
	require.Equal(t,
		"writing\n"+
			"total time,150.5\n"+
			"day,time\n"+
			"2025-03-10,90\n"+
			"2025-03-08,60.5\n",
		string(data))

	data, err = os.ReadFile(filepath.Join(dir, "reading.csv"))
	require.NoError(t, err)
	require.Equal(t,
		"reading\n"+
			"total time,0\n"+
			"day,time\n",
		string(data))
}

func TestExportEmptyDocument(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "projects_csv")

	dest, err := export.NewCSV(dir).Export(ctx, project.NewDocument())
	require.NoError(t, err)

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestExportOverwritesPriorRun(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	exporter := export.NewCSV(dir)

	doc := project.NewDocument()
	proj := project.New()
	proj.Total = 10
	doc.Put("writing", proj)
	_, err := exporter.Export(ctx, doc)
	require.NoError(t, err)

	proj.Total = 20
	_, err = exporter.Export(ctx, doc)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "writing.csv"))
	require.NoError(t, err)
	require.Contains(t, string(data), "total time,20")
	require.NotContains(t, string(data), "total time,10")
}

func TestExportSanitizesFileNames(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	doc := project.NewDocument()
	doc.Put("side/project", project.New())

	_, err := export.NewCSV(dir).Export(ctx, doc)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "side_project.csv"))
	require.NoError(t, err)
	// The record set still carries the real name.
	require.Contains(t, string(data), "side/project\n")
}
