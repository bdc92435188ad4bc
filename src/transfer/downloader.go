// Package transfer runs the configured download and upload entries against
// the Translized API.
package transfer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"github.com/vbauerster/mpb/v8"

	"translized/src/apperr"
	"translized/src/config"
	"translized/src/locale"
	"translized/src/logging"
	"translized/src/translized"
)

// Exporter requests locale exports.
type Exporter interface {
	ExportAll(ctx context.Context, req translized.ExportRequest) ([]translized.LocaleExport, error)
}

// Opener streams the content behind an export URL.
type Opener interface {
	Open(ctx context.Context, url string) (io.ReadCloser, int64, error)
}

// Storer keeps a copy of a downloaded file at a mirror URL.
type Storer interface {
	Store(ctx context.Context, url string, data []byte) error
}

// DownloadResult represents the outcome of one locale download, or of a
// whole entry when Locale is empty.
type DownloadResult struct {
	Entry  int
	Locale string
	Path   string
	SHA256 string
	Error  error
}

// Downloader writes every exported locale of every download entry to disk.
type Downloader struct {
	project  config.Project
	parallel int
	exporter Exporter
	opener   Opener
	fs       afero.Fs
	progress io.Writer
	storer   Storer
}

// NewDownloader creates a new Downloader. Target paths are resolved against
// fsys; progress bars are drawn on progress when it is not nil.
func NewDownloader(cfg *config.Config, exporter Exporter, opener Opener, fsys afero.Fs, progress io.Writer) *Downloader {
	parallel := cfg.Settings.Parallel
	if parallel <= 0 {
		parallel = 1
	}

	return &Downloader{
		project:  cfg.Translized,
		parallel: parallel,
		exporter: exporter,
		opener:   opener,
		fs:       fsys,
		progress: progress,
	}
}

// WithMirror sets where entries with a mirror copy their files.
func (downloader *Downloader) WithMirror(storer Storer) *Downloader {
	downloader.storer = storer

	return downloader
}

// Download runs all download entries. A failing entry or locale is logged
// and never stops the others.
func (downloader *Downloader) Download(ctx context.Context) []DownloadResult {
	output := downloader.progress
	if output == nil {
		output = io.Discard
	}

	progress := mpb.NewWithContext(ctx, mpb.WithOutput(output))

	var results []DownloadResult

	for i, entry := range downloader.project.Download {
		results = append(results, downloader.downloadEntry(ctx, i, entry, progress)...)
	}

	progress.Wait()

	return results
}

func (downloader *Downloader) downloadEntry(
	ctx context.Context,
	index int,
	entry config.DownloadEntry,
	progress *mpb.Progress,
) []DownloadResult {
	logger := logging.FromContext(ctx).With("entry", index+1)

	err := downloader.project.ValidateDownload(index, entry)
	if err != nil {
		logger.Error("skipping download entry", "error", err)

		return []DownloadResult{{Entry: index, Path: entry.Path, Error: err}}
	}

	exports, err := downloader.exporter.ExportAll(ctx, translized.ExportRequest{
		ProjectID:    downloader.project.ProjectID,
		ExportFormat: entry.FileFormat,
		IsNested:     entry.IsNested,
		Tags:         entry.TagList(),
		Options:      entry.Options,
	})
	if err != nil {
		logger.Error("export failed", "format", entry.FileFormat, "error", err)

		return []DownloadResult{{Entry: index, Path: entry.Path, Error: err}}
	}

	exports = uniqueLocales(exports)
	results := make([]DownloadResult, len(exports))

	var wg sync.WaitGroup

	semaphore := make(chan struct{}, downloader.parallel)

	for i, export := range exports {
		wg.Add(1)

		go func(i int, export translized.LocaleExport) {
			defer wg.Done()

			semaphore <- struct{}{}

			defer func() { <-semaphore }()

			results[i] = downloader.downloadLocale(ctx, index, entry, export, progress)
		}(i, export)
	}

	// Every transfer settles before the entry counts as done.
	wg.Wait()

	return results
}

// uniqueLocales keeps the first export of each locale so no two transfers
// share a target file.
func uniqueLocales(exports []translized.LocaleExport) []translized.LocaleExport {
	seen := make(map[string]bool, len(exports))
	unique := exports[:0:0]

	for _, export := range exports {
		if seen[export.Locale] {
			continue
		}

		seen[export.Locale] = true
		unique = append(unique, export)
	}

	return unique
}

func (downloader *Downloader) downloadLocale(
	ctx context.Context,
	index int,
	entry config.DownloadEntry,
	export translized.LocaleExport,
	progress *mpb.Progress,
) DownloadResult {
	logger := logging.FromContext(ctx).With("entry", index+1, "locale", export.Locale)

	result := DownloadResult{Entry: index, Locale: export.Locale}

	target, err := locale.Resolve(entry.Path, export.Locale, entry.FileFormat)
	if err != nil {
		result.Error = apperr.UnusableResponse("export "+export.Locale, err)
		logger.Error("download failed, skipping", "error", result.Error)

		return result
	}

	result.Path = target

	if export.FileURL == "" {
		result.Error = apperr.UnusableResponse("export "+export.Locale, errors.New("no fileURL in export result"))
		logger.Error("download failed, skipping", "path", target, "error", result.Error)

		return result
	}

	digest, err := downloader.fetch(ctx, export.FileURL, target, progress)
	if err != nil {
		result.Error = fmt.Errorf("downloading %s: %w", export.Locale, err)
		logger.Error("download failed, skipping", "path", target, "error", err)

		return result
	}

	result.SHA256 = digest
	logger.Info("downloaded", "path", target, "sha256", digest)

	if entry.Mirror != "" {
		err = downloader.mirror(ctx, entry.Mirror, target)
		if err != nil {
			result.Error = err
			logger.Error("mirror failed", "path", target, "mirror", entry.Mirror, "error", err)
		}
	}

	return result
}

// mirror copies the written target to the same relative path below url.
func (downloader *Downloader) mirror(ctx context.Context, url, target string) error {
	if downloader.storer == nil {
		return apperr.Config("mirror", "no store available for %s", url)
	}

	data, err := afero.ReadFile(downloader.fs, target)
	if err != nil {
		return apperr.FileSystem("reading downloaded file", err)
	}

	dest := strings.TrimSuffix(url, "/") + "/" + filepath.ToSlash(filepath.Clean(target))

	err = downloader.storer.Store(ctx, dest, data)
	if err != nil {
		return apperr.Network("mirroring "+dest, err)
	}

	return nil
}

// fetch streams url into target through a .partial file so a failed
// transfer never leaves a truncated translation behind.
func (downloader *Downloader) fetch(ctx context.Context, url, target string, progress *mpb.Progress) (string, error) {
	dir := filepath.Dir(target)

	err := downloader.fs.MkdirAll(dir, 0o755)
	if err != nil {
		return "", apperr.FileSystem("creating directory", err)
	}

	reader, totalSize, err := downloader.opener.Open(ctx, url)
	if err != nil {
		return "", apperr.Network("fetching export", err)
	}

	defer reader.Close()

	partialPath := target + ".partial"

	destFile, err := downloader.fs.Create(partialPath)
	if err != nil {
		return "", apperr.FileSystem("creating file", err)
	}

	progressWriter := NewProgressWriter(progress, totalSize, target)
	hash := sha256.New()

	_, err = io.Copy(io.MultiWriter(destFile, hash, progressWriter), reader)
	if err != nil {
		progressWriter.Abort()
		destFile.Close()
		downloader.fs.Remove(partialPath)

		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return "", apperr.FileSystem("writing file", err)
		}

		return "", apperr.Network("fetching export", err)
	}

	progressWriter.Finish()

	err = destFile.Close()
	if err != nil {
		downloader.fs.Remove(partialPath)

		return "", apperr.FileSystem("closing file", err)
	}

	err = downloader.fs.Rename(partialPath, target)
	if err != nil {
		return "", apperr.FileSystem("renaming file", err)
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}
