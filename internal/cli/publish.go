package cli

import (
	"fmt"

	"github.com/projkit/projkit/internal/branding"
	"github.com/projkit/projkit/internal/config"
	"github.com/projkit/projkit/internal/publish"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(publishCmd)
}

var publishCmd = &cobra.Command{
	Use:   "publish <archive.zip>",
	Short: "Upload an archive to the configured bucket",
	Long: `Upload an archive to an S3-compatible bucket. Connection settings come
from the publish.* config keys or the matching environment variables
(` + branding.EnvVar("PUBLISH_ENDPOINT") + `, ` + branding.EnvVar("PUBLISH_BUCKET") + `, ...).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return publishArchive(cmd, args[0])
	},
}

func publishArchive(cmd *cobra.Command, path string) error {
	s := config.PublishSettings()
	p, err := publish.New(publish.Config{
		Endpoint:  s.Endpoint,
		Region:    s.Region,
		AccessKey: s.AccessKey,
		SecretKey: s.SecretKey,
		Bucket:    s.Bucket,
		UseSSL:    s.UseSSL,
		Prefix:    s.Prefix,
	})
	if err != nil {
		return fmt.Errorf("%w (see '%s config --help')", err, branding.CLIName())
	}

	key, err := p.Upload(cmd.Context(), path)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  [ OK ] Published s3://%s/%s\n", p.Bucket(), key)
	return nil
}
