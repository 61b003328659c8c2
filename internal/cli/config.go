package cli

import (
	"fmt"

	"github.com/projkit/projkit/internal/branding"
	"github.com/projkit/projkit/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write settings stored at ~/` + branding.HomeDir() + `/config.yaml.

Keys:
  output_dir           parent directory for generated projects (default ".")
  archive_dir          directory receiving archives (default: output_dir)
  publish.endpoint     S3-compatible endpoint, e.g. localhost:9000
  publish.region       bucket region (default us-east-1)
  publish.bucket       target bucket
  publish.access_key   access key
  publish.secret_key   secret key
  publish.use_ssl      use HTTPS (default true)
  publish.prefix       object key prefix

Every key can also be set through the environment, e.g. ` + branding.EnvVar("PUBLISH_BUCKET") + `.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}
