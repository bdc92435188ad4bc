package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"translized/src/transfer"
)

// NewUploadCmd builds the translized-upload command. Entry paths are
// resolved against the working directory.
func NewUploadCmd(info BuildInfo) *cobra.Command {
	var flags commonFlags

	var dryRun bool

	cmd := &cobra.Command{
		Use:          "translized-upload",
		Short:        "Import local translation files into Translized",
		Args:         cobra.NoArgs,
		Version:      info.String(),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cfg, err := flags.setup(cmd, info)
			if err != nil {
				return err
			}

			uploader := transfer.NewUploader(cfg.Translized, newClient(cfg), afero.NewOsFs(), ".")

			if dryRun {
				data, err := uploader.Plan().Marshal()
				if err != nil {
					return fmt.Errorf("rendering plan: %w", err)
				}

				_, err = cmd.OutOrStdout().Write(data)

				return err
			}

			results := uploader.Upload(ctx)

			var failed int

			for _, result := range results {
				if result.Error != nil {
					failed++
				}
			}

			return reportResults(cmd.OutOrStdout(), "uploads", len(results), failed, flags.strict)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the files and locales that would be imported, then exit")

	return cmd
}
