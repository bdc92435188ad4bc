package transfer

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"

	"translized/src/apperr"
	"translized/src/config"
	"translized/src/locale"
	"translized/src/logging"
	"translized/src/translized"
)

// Importer hosts file content and imports it into a project language.
type Importer interface {
	UploadContent(ctx context.Context, name, contentType string, body []byte) (string, error)
	Import(ctx context.Context, req translized.ImportRequest) (translized.ImportResult, error)
}

// UploadResult represents the outcome of one file import, or of a whole
// entry when Locale is empty.
type UploadResult struct {
	Entry  int
	Path   string
	Locale string
	Counts translized.ImportResult
	Error  error
}

// Uploader imports local translation files for every upload entry.
type Uploader struct {
	project  config.Project
	importer Importer
	fs       afero.Fs
	root     string
}

// NewUploader creates a new Uploader. Entry paths are relative to root on fsys.
func NewUploader(project config.Project, importer Importer, fsys afero.Fs, root string) *Uploader {
	return &Uploader{
		project:  project,
		importer: importer,
		fs:       fsys,
		root:     root,
	}
}

// Upload runs all upload entries. Files are processed one at a time; a
// failing file is logged and the next one is attempted.
func (uploader *Uploader) Upload(ctx context.Context) []UploadResult {
	var results []UploadResult

	for i, entry := range uploader.project.Upload {
		results = append(results, uploader.uploadEntry(ctx, i, entry)...)
	}

	return results
}

func (uploader *Uploader) uploadEntry(ctx context.Context, index int, entry config.UploadEntry) []UploadResult {
	logger := logging.FromContext(ctx).With("entry", index+1)

	files, err := uploader.Resolve(index, entry)
	if err != nil {
		logger.Error("skipping upload entry", "path", entry.Path, "error", err)

		return []UploadResult{{Entry: index, Path: entry.Path, Error: err}}
	}

	if len(files) == 0 {
		logger.Warn("no files match upload path", "path", entry.Path)
	}

	results := make([]UploadResult, 0, len(files))

	for _, file := range files {
		result := UploadResult{Entry: index, Path: file.Path, Locale: file.Locale}

		result.Counts, result.Error = uploader.uploadFile(ctx, entry, file)
		if result.Error != nil {
			logger.Error("upload failed, skipping", "path", file.Path, "locale", file.Locale, "error", result.Error)
		} else {
			logger.Info("imported",
				"path", file.Path,
				"locale", file.Locale,
				"parsed", result.Counts.TotalParsed,
				"added", result.Counts.TotalAdded,
				"updated", result.Counts.TotalUpdated,
			)
		}

		results = append(results, result)
	}

	return results
}

// Resolve validates entry and lists the files it covers with their
// language codes. Entries with a placeholder are matched against the files
// below the root; others name a single file.
func (uploader *Uploader) Resolve(index int, entry config.UploadEntry) ([]locale.Match, error) {
	err := uploader.project.ValidateUpload(index, entry)
	if err != nil {
		return nil, err
	}

	if !locale.HasPlaceholder(entry.Path) {
		return []locale.Match{{Path: entry.Path, Locale: entry.LanguageCode}}, nil
	}

	matches, err := locale.Discover(uploader.fs, uploader.root, entry.Path, locale.DiscoverOptions{
		SkipHidden: entry.SkipHidden,
	})
	if err != nil {
		return nil, apperr.FileSystem("discovering files", err)
	}

	return matches, nil
}

func (uploader *Uploader) uploadFile(
	ctx context.Context,
	entry config.UploadEntry,
	file locale.Match,
) (translized.ImportResult, error) {
	path := filepath.FromSlash(file.Path)
	if !filepath.IsAbs(path) {
		path = filepath.Join(uploader.root, path)
	}

	body, err := afero.ReadFile(uploader.fs, path)
	if err != nil {
		return translized.ImportResult{}, apperr.FileSystem("reading file", err)
	}

	hosted, err := uploader.importer.UploadContent(ctx, filepath.Base(path), contentType(path, body), body)
	if err != nil {
		return translized.ImportResult{}, err
	}

	return uploader.importer.Import(ctx, translized.ImportRequest{
		ProjectID:            uploader.project.ProjectID,
		LanguageCode:         file.Locale,
		FileURL:              hosted,
		IsNested:             entry.IsNested,
		OverrideTranslations: entry.UpdateTranslations,
		NewKeysTags:          config.SplitTags(entry.Tags.NewKeys),
		UpdatedKeysTags:      config.SplitTags(entry.Tags.UpdatedKeys),
	})
}

// contentType names the upload as text/<extension>, which is what the
// import endpoint keys its parser on. Files without an extension are sniffed.
func contentType(path string, body []byte) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext != "" {
		return "text/" + ext
	}

	return mimetype.Detect(body).String()
}
