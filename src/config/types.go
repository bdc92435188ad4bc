package config

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration structure.
type Config struct {
	Translized Project          `yaml:"translized"`
	Aliases    map[string]Alias `yaml:"aliases"`
	Settings   Settings         `yaml:"settings"`
}

// Project holds the credentials and transfer entries of one Translized project.
type Project struct {
	ProjectID   string                 `yaml:"project_id"`
	AccessToken string                 `yaml:"access_token"`
	APIURL      string                 `yaml:"api_url"`
	Download    Entries[DownloadEntry] `yaml:"download"`
	Upload      Entries[UploadEntry]   `yaml:"upload"`
}

// Alias represents an S3 storage backend that export URLs of the form
// s3://alias/key are resolved against.
type Alias struct {
	Endpoint      string `yaml:"endpoint"`
	Region        string `yaml:"region"`
	Bucket        string `yaml:"bucket"`
	Prefix        string `yaml:"prefix"`
	AccessKey     string `yaml:"access_key"`
	SecretKey     string `yaml:"secret_key"`
	NoSignRequest bool   `yaml:"no_sign_request"`
}

// Settings represents transfer settings.
type Settings struct {
	Parallel int           `yaml:"parallel"`
	Timeout  time.Duration `yaml:"timeout"`
}

// DownloadEntry describes one export to fetch for every project locale.
type DownloadEntry struct {
	FileFormat string         `yaml:"file_format"`
	Path       string         `yaml:"path"`
	IsNested   bool           `yaml:"isNested"`
	Options    map[string]any `yaml:"options"`
	Tags       string         `yaml:"tags"`

	// Mirror is an optional s3://alias/prefix URL that receives a copy of
	// every downloaded file under its resolved path.
	Mirror string `yaml:"mirror"`
}

// TagList returns the comma-separated tags, trimmed.
func (entry DownloadEntry) TagList() []string {
	return SplitTags(entry.Tags)
}

// UploadEntry describes local translation files to import.
type UploadEntry struct {
	Path               string     `yaml:"path"`
	LanguageCode       string     `yaml:"language_code"`
	IsNested           bool       `yaml:"isNested"`
	Tags               UploadTags `yaml:"tags"`
	UpdateTranslations bool       `yaml:"update_translations"`
	SkipHidden         bool       `yaml:"skip_hidden"`
}

// UploadTags are the tags applied to imported keys, split by processing rule.
type UploadTags struct {
	NewKeys     string `yaml:"new_keys"`
	UpdatedKeys string `yaml:"updated_keys"`
}

// Entries accepts either a single mapping or a sequence of mappings.
type Entries[T any] []T

// UnmarshalYAML implements yaml.Unmarshaler.
func (entries *Entries[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		return entries.UnmarshalYAML(node.Alias)
	}

	switch node.Kind {
	case yaml.SequenceNode:
		var list []T

		if err := node.Decode(&list); err != nil {
			return err
		}

		*entries = list
	case yaml.MappingNode:
		var single T

		if err := node.Decode(&single); err != nil {
			return err
		}

		*entries = Entries[T]{single}
	default:
		if node.ShortTag() != "!!null" {
			return fmt.Errorf("line %d: expected a mapping or a list of mappings, got %s", node.Line, node.ShortTag())
		}
	}

	return nil
}

// SplitTags splits a comma-separated tag string into trimmed, non-empty tags.
func SplitTags(s string) []string {
	tags := []string{}

	for _, tag := range strings.Split(s, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}

	return tags
}
