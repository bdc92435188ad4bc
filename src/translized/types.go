package translized

import (
	"sort"
)

// ExportRequest asks for every locale of a project in one format.
type ExportRequest struct {
	ProjectID    string
	ExportFormat string
	IsNested     bool
	Tags         []string
	// Options are merged into the request body and win over the fields above.
	Options map[string]any
}

func (req ExportRequest) body() map[string]any {
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	body := map[string]any{
		"projectId":    req.ProjectID,
		"exportFormat": req.ExportFormat,
		"isNested":     req.IsNested,
		"tags":         tags,
	}

	for key, value := range req.Options {
		body[key] = value
	}

	return body
}

// LocaleExport is the location of one exported locale file.
type LocaleExport struct {
	Locale  string
	FileURL string
}

type exportResponse struct {
	Result []map[string]struct {
		FileURL string `json:"fileURL"`
	} `json:"result"`
}

// exports flattens the result items. A locale listed again in a later item
// is ignored. Locales without a fileURL are kept with an empty FileURL so the
// caller can fail them individually.
func (resp exportResponse) exports() []LocaleExport {
	var exports []LocaleExport

	seen := make(map[string]bool)

	for _, item := range resp.Result {
		codes := make([]string, 0, len(item))
		for code := range item {
			codes = append(codes, code)
		}

		sort.Strings(codes)

		for _, code := range codes {
			if seen[code] {
				continue
			}

			seen[code] = true
			exports = append(exports, LocaleExport{Locale: code, FileURL: item[code].FileURL})
		}
	}

	return exports
}

type uploadResponse struct {
	URL string `json:"url"`
}

// ImportRequest imports one hosted file into one project language.
type ImportRequest struct {
	ProjectID            string
	LanguageCode         string
	FileURL              string
	IsNested             bool
	OverrideTranslations bool
	NewKeysTags          []string
	UpdatedKeysTags      []string
}

type tagRule struct {
	Tags []string `json:"tags,omitempty"`
}

type processingRules struct {
	OverrideImportAutomations bool    `json:"overrideImportAutomations"`
	NewKeys                   tagRule `json:"newKeys"`
	UpdatedKeys               tagRule `json:"updatedKeys"`
}

type importBody struct {
	ProjectID            string          `json:"projectId"`
	LanguageCode         string          `json:"languageCode"`
	FileURL              string          `json:"fileURL"`
	IsNested             bool            `json:"isNested"`
	OverrideTranslations bool            `json:"overrideTranslations"`
	ProcessingRules      processingRules `json:"processingRules"`
}

func (req ImportRequest) body() importBody {
	return importBody{
		ProjectID:            req.ProjectID,
		LanguageCode:         req.LanguageCode,
		FileURL:              req.FileURL,
		IsNested:             req.IsNested,
		OverrideTranslations: req.OverrideTranslations,
		ProcessingRules: processingRules{
			OverrideImportAutomations: true,
			NewKeys:                   tagRule{Tags: req.NewKeysTags},
			UpdatedKeys:               tagRule{Tags: req.UpdatedKeysTags},
		},
	}
}

// ImportResult holds the key counts reported for one import.
type ImportResult struct {
	TotalParsed  int `json:"totalParsed"`
	TotalAdded   int `json:"totalAdded"`
	TotalUpdated int `json:"totalUpdated"`
}

type importResponse struct {
	Result ImportResult `json:"result"`
}
