package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	opts := &uploadOptions{}

	cmd := &cobra.Command{
		Use:   "release-assets",
		Short: "Upload files as assets of a GitHub release",
		Long: `Upload one or more local files as assets of a GitHub release.

The upload URL is taken from the release event that triggered the workflow,
or from --release-url. Files are selected with --file, --files and --pattern.
Inside GitHub Actions every flag can also be given as an INPUT_* variable
(for example INPUT_GITHUB-TOKEN); flags win over inputs, inputs over --config.`,
		Example: `  # Inside a workflow triggered by a release event
  release-assets --pattern 'dist/*.zip'

  # Explicit release and file list
  release-assets --release-url "$UPLOAD_URL" --files $'a.txt\nb.png'

  # Sign every asset
  release-assets --pattern 'dist/**/*.tar.gz' --gpg-private-key-file signing.asc`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUpload(cmd, opts)
		},
	}

	opts.bindFlags(cmd)

	cmd.AddCommand(newVersionCmd())

	cmd.SetVersionTemplate(fmt.Sprintf("%s (%s/%s)\n", version, runtime.GOOS, runtime.GOARCH))
	cmd.Version = version

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s (%s/%s)\n", version, runtime.GOOS, runtime.GOARCH)
			return err
		},
	}
}
