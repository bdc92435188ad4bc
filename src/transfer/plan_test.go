package transfer

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbauerster/mpb/v8"
	"gopkg.in/yaml.v3"

	"translized/src/config"
	"translized/src/locale"
)

func TestPlan(t *testing.T) {
	importer := &fakeImporter{}
	fsys := afero.NewMemMapFs()

	writeFiles(t, fsys, map[string]string{
		"/work/locales/en.json": "{}",
		"/work/locales/fr.json": "{}",
	})

	project := newUploadProject(
		config.UploadEntry{Path: "locales/<locale_code>.json"},
		config.UploadEntry{Path: "strings.json"},
		config.UploadEntry{Path: "base.json", LanguageCode: "en"},
	)

	plan := NewUploader(project, importer, fsys, uploadRoot).Plan()
	require.Len(t, plan.Uploads, 3)

	assert.Equal(t, EntryPlan{
		Entry: 1,
		Path:  "locales/<locale_code>.json",
		Files: []locale.Match{
			{Path: "locales/en.json", Locale: "en"},
			{Path: "locales/fr.json", Locale: "fr"},
		},
	}, plan.Uploads[0])

	assert.Equal(t, 2, plan.Uploads[1].Entry)
	assert.Empty(t, plan.Uploads[1].Files)
	assert.Contains(t, plan.Uploads[1].Error, "upload entry 2")

	assert.Equal(t, []locale.Match{{Path: "base.json", Locale: "en"}}, plan.Uploads[2].Files)

	assert.Zero(t, importer.calls())
}

func TestPlanOutput_Marshal(t *testing.T) {
	output := PlanOutput{Uploads: []EntryPlan{
		{
			Entry: 1,
			Path:  "locales/<locale_code>.json",
			Files: []locale.Match{{Path: "locales/en.json", Locale: "en"}},
		},
		{Entry: 2, Path: "strings.json", Error: "upload entry 2: language_code is required"},
	}}

	data, err := output.Marshal()
	require.NoError(t, err)

	var decoded PlanOutput

	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, output, decoded)
	assert.Contains(t, string(data), "locale: en")
	assert.NotContains(t, string(data), "files: []")
}

func TestProgressWriter(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	container := mpb.NewWithContext(ctx, mpb.WithOutput(nil))

	done := NewProgressWriter(container, 4, "en.json")

	n, err := done.Write([]byte("data"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	done.Finish()

	unknown := NewProgressWriter(container, -1, "fr.json")

	_, err = unknown.Write([]byte("partial"))
	require.NoError(t, err)

	unknown.Abort()

	container.Wait()
	assert.NoError(t, ctx.Err())
}
