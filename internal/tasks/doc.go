// Package tasks runs long catalog operations with real-time progress reporting.
//
// # Bulk Export
//
// [BulkExport] writes the catalog in several formats at once into a single directory:
//
//  1. One file per requested [formatter.Format] (CSV, Markdown, plain text)
//  2. Optionally a JSON snapshot in the store format, loadable with --file
//  3. An export_manifest.json describing every file written
//
// Files are rendered by a small worker pool. A failure in one format does not stop the others;
// it is recorded in the [BulkExportResult] and the manifest.
//
// # Progress Reporting
//
// Operations accept a send-only channel of [ProgressUpdate]. Updates use select with default
// so a slow or absent reader never blocks the export.
package tasks
