package config

import (
	"strconv"

	"translized/src/apperr"
	"translized/src/locale"
)

// ValidateDownload checks that entry can be exported. The returned error
// is an apperr.ErrConfig.
func (project Project) ValidateDownload(index int, entry DownloadEntry) error {
	op := downloadOp(index)

	if err := project.validateCredentials(op); err != nil {
		return err
	}

	if entry.FileFormat == "" {
		return apperr.Config(op, "file_format is required")
	}

	if entry.Path == "" {
		return apperr.Config(op, "path is required")
	}

	return nil
}

// ValidateUpload checks that entry can be imported. language_code may only
// be omitted when the path carries the locale placeholder.
func (project Project) ValidateUpload(index int, entry UploadEntry) error {
	op := uploadOp(index)

	if err := project.validateCredentials(op); err != nil {
		return err
	}

	if entry.Path == "" {
		return apperr.Config(op, "path is required")
	}

	if entry.LanguageCode == "" && !locale.HasPlaceholder(entry.Path) {
		return apperr.Config(op, "language_code is required when path has no %s", locale.Placeholder)
	}

	if locale.HasPlaceholder(entry.Path) {
		if _, _, ok := locale.Split(entry.Path); !ok {
			return apperr.Config(op, "path must contain %s only once", locale.Placeholder)
		}
	}

	return nil
}

func (project Project) validateCredentials(op string) error {
	if project.ProjectID == "" {
		return apperr.Config(op, "project_id is required")
	}

	if project.AccessToken == "" {
		return apperr.Config(op, "access_token is required")
	}

	return nil
}

func downloadOp(index int) string {
	return "download entry " + strconv.Itoa(index+1)
}

func uploadOp(index int) string {
	return "upload entry " + strconv.Itoa(index+1)
}
