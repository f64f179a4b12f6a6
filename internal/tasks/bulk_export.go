package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/desertthunder/shelf/internal/formatter"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/repositories"
	"github.com/desertthunder/shelf/internal/shared"
	jsoniter "github.com/json-iterator/go"
)

// SnapshotFormat names the JSON store snapshot in results and the manifest.
const SnapshotFormat = "json"

const (
	defaultWorkers = 3
	maxWorkers     = 4
	manifestName   = "export_manifest.json"
)

// BulkExportOpts contains configuration for bulk catalog exports.
type BulkExportOpts struct {
	Formats    []formatter.Format // Formats to render (default: all)
	OutputDir  string             // Output directory (default: library_export_{epoch})
	NumWorkers int                // Concurrent workers (default: 3)
	Snapshot   bool               // Also write library.json in the store format
}

// ExportResult describes one file written by [BulkExport].
type ExportResult struct {
	Format  string
	Path    string
	Success bool
	Error   error
}

// BulkExportResult summarizes a [BulkExport] run.
type BulkExportResult struct {
	TotalFiles      int
	Successful      int
	Failed          int
	Books           int
	OutputDirectory string
	ManifestPath    string
	Results         []ExportResult
}

type manifest struct {
	ExportedAt string          `json:"exported_at"`
	Books      int             `json:"books"`
	Available  int             `json:"available"`
	CheckedOut int             `json:"checked_out"`
	Successful int             `json:"successful"`
	Failed     int             `json:"failed"`
	Files      []manifestEntry `json:"files"`
}

type manifestEntry struct {
	Format string `json:"format"`
	Path   string `json:"path,omitempty"`
	Error  string `json:"error,omitempty"`
}

type exportJob struct {
	format string
	path   string
}

// BulkExport writes books in every requested format into opts.OutputDir using a worker pool.
//
// Individual format failures are collected in the result. The returned error is reserved for
// failures that affect the whole run: the output directory, cancellation or the manifest.
func BulkExport(ctx context.Context, prog chan<- ProgressUpdate, books []models.Book, opts BulkExportOpts) (*BulkExportResult, error) {
	if len(opts.Formats) == 0 {
		opts.Formats = []formatter.Format{formatter.FormatCSV, formatter.FormatMarkdown, formatter.FormatText}
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("library_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = defaultWorkers
	}
	if opts.NumWorkers > maxWorkers {
		opts.NumWorkers = maxWorkers
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	jobs := planJobs(opts)
	result := &BulkExportResult{
		TotalFiles:      len(jobs),
		Books:           len(books),
		OutputDirectory: opts.OutputDir,
		Results:         make([]ExportResult, 0, len(jobs)),
	}

	sendProgress(prog, prepareExportUpdate(len(jobs), len(books), opts.OutputDir))

	queue := make(chan exportJob, len(jobs))
	results := make(chan ExportResult, len(jobs))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go exportWorker(ctx, &wg, books, queue, results)
	}

	for _, job := range jobs {
		queue <- job
	}
	close(queue)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.Successful++
			sendProgress(prog, exportCompletedUpdate(completed, len(jobs), res))
		} else {
			result.Failed++
			sendProgress(prog, exportFailedUpdate(completed, len(jobs), res))
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	slices.SortFunc(result.Results, func(a, b ExportResult) int {
		return jobIndex(jobs, a.Format) - jobIndex(jobs, b.Format)
	})

	manifestPath := filepath.Join(opts.OutputDir, manifestName)
	if err := writeManifest(result, books, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	sendProgress(prog, manifestUpdate(manifestPath))
	return result, nil
}

func planJobs(opts BulkExportOpts) []exportJob {
	jobs := make([]exportJob, 0, len(opts.Formats)+1)
	seen := make(map[formatter.Format]bool, len(opts.Formats))
	for _, f := range opts.Formats {
		if seen[f] {
			continue
		}
		seen[f] = true
		jobs = append(jobs, exportJob{
			format: string(f),
			path:   filepath.Join(opts.OutputDir, "library"+f.Extension()),
		})
	}
	if opts.Snapshot {
		jobs = append(jobs, exportJob{format: SnapshotFormat, path: filepath.Join(opts.OutputDir, "library.json")})
	}
	return jobs
}

func jobIndex(jobs []exportJob, format string) int {
	return slices.IndexFunc(jobs, func(j exportJob) bool { return j.format == format })
}

// exportWorker renders jobs until the queue is drained or ctx is cancelled.
func exportWorker(ctx context.Context, wg *sync.WaitGroup, books []models.Book, jobs <-chan exportJob, results chan<- ExportResult) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- exportOne(books, job)
	}
}

func exportOne(books []models.Book, job exportJob) ExportResult {
	result := ExportResult{Format: job.format, Path: job.path}

	if job.format == SnapshotFormat {
		store := repositories.NewJSONStore(job.path)
		defer store.Close()
		if err := store.Save(books); err != nil {
			result.Error = fmt.Errorf("snapshot failed: %w", err)
			return result
		}
		result.Success = true
		return result
	}

	if _, err := formatter.WriteExport(books, formatter.Format(job.format), job.path); err != nil {
		result.Error = fmt.Errorf("%s export failed: %w", job.format, err)
		return result
	}
	result.Success = true
	return result
}

func writeManifest(result *BulkExportResult, books []models.Book, path string) error {
	m := manifest{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Books:      len(books),
		Successful: result.Successful,
		Failed:     result.Failed,
		Files:      make([]manifestEntry, 0, len(result.Results)),
	}
	for _, b := range books {
		if b.Status == models.StatusCheckedOut {
			m.CheckedOut++
		} else {
			m.Available++
		}
	}
	for _, res := range result.Results {
		entry := manifestEntry{Format: res.Format}
		if res.Success {
			entry.Path = filepath.Base(res.Path)
		} else {
			entry.Error = res.Error.Error()
		}
		m.Files = append(m.Files, entry)
	}

	data, err := jsoniter.ConfigFastest.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: manifest: %w", shared.ErrStorage, err)
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
