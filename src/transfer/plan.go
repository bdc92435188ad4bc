package transfer

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"translized/src/locale"
)

// PlanOutput represents the files an upload run would import.
type PlanOutput struct {
	Uploads []EntryPlan `yaml:"uploads"`
}

// EntryPlan lists the resolved files of one upload entry.
type EntryPlan struct {
	Entry int            `yaml:"entry"`
	Path  string         `yaml:"path"`
	Files []locale.Match `yaml:"files,omitempty"`
	Error string         `yaml:"error,omitempty"`
}

// Plan resolves every upload entry without contacting the API.
func (uploader *Uploader) Plan() PlanOutput {
	output := PlanOutput{Uploads: []EntryPlan{}}

	for i, entry := range uploader.project.Upload {
		plan := EntryPlan{Entry: i + 1, Path: entry.Path}

		files, err := uploader.Resolve(i, entry)
		if err != nil {
			plan.Error = err.Error()
		}

		plan.Files = files
		output.Uploads = append(output.Uploads, plan)
	}

	return output
}

// Marshal renders the plan as YAML.
func (output PlanOutput) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(output)
	if err != nil {
		return nil, fmt.Errorf("marshaling to yaml: %w", err)
	}

	return data, nil
}
