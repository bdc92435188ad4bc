package cli

import (
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"translized/src/transfer"
)

// NewDownloadCmd builds the translized-download command.
func NewDownloadCmd(info BuildInfo) *cobra.Command {
	var flags commonFlags

	var noProgress bool

	cmd := &cobra.Command{
		Use:          "translized-download",
		Short:        "Download every configured export from Translized",
		Args:         cobra.NoArgs,
		Version:      info.String(),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cfg, err := flags.setup(cmd, info)
			if err != nil {
				return err
			}

			var progress io.Writer
			if !noProgress {
				progress = cmd.ErrOrStderr()
			}

			opener := newOpener(cfg)
			downloader := transfer.NewDownloader(cfg, newClient(cfg), opener, afero.NewOsFs(), progress).
				WithMirror(opener)
			results := downloader.Download(ctx)

			var failed int

			for _, result := range results {
				if result.Error != nil {
					failed++
				}
			}

			return reportResults(cmd.OutOrStdout(), "downloads", len(results), failed, flags.strict)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable progress bars")

	return cmd
}
