package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/projkit/projkit/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized configuration keys.
const (
	KeyOutputDir        = "output_dir"
	KeyArchiveDir       = "archive_dir"
	KeyPublishEndpoint  = "publish.endpoint"
	KeyPublishRegion    = "publish.region"
	KeyPublishBucket    = "publish.bucket"
	KeyPublishAccessKey = "publish.access_key"
	KeyPublishSecretKey = "publish.secret_key"
	KeyPublishUseSSL    = "publish.use_ssl"
	KeyPublishPrefix    = "publish.prefix"
)

// Publish holds the object storage settings used by the publish command.
type Publish struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Prefix    string
}

// Dir returns the path to the config directory (~/.projkit/).
// PROJKIT_HOME overrides the location.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.projkit/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file, a .env file in the
// working directory, and the environment.
func Load() {
	viper.Reset()

	// Variables already present in the environment win over .env entries.
	_ = godotenv.Load()

	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyOutputDir, ".")
	viper.SetDefault(KeyPublishRegion, "us-east-1")
	viper.SetDefault(KeyPublishUseSSL, true)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// OutputDir returns the directory under which project roots are created.
func OutputDir() string {
	return viper.GetString(KeyOutputDir)
}

// ArchiveDir returns the directory archives are written to. An empty value
// means the output directory.
func ArchiveDir() string {
	return viper.GetString(KeyArchiveDir)
}

// PublishSettings returns the object storage settings.
func PublishSettings() Publish {
	return Publish{
		Endpoint:  viper.GetString(KeyPublishEndpoint),
		Region:    viper.GetString(KeyPublishRegion),
		Bucket:    viper.GetString(KeyPublishBucket),
		AccessKey: viper.GetString(KeyPublishAccessKey),
		SecretKey: viper.GetString(KeyPublishSecretKey),
		UseSSL:    viper.GetBool(KeyPublishUseSSL),
		Prefix:    viper.GetString(KeyPublishPrefix),
	}
}

// Set writes a config key-value pair and saves the config file. Only the
// keys already stored in the file and the new one are written; defaults and
// environment overrides stay out of it.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	configFile := FilePath()
	file := viper.New()
	file.SetConfigFile(configFile)
	file.SetConfigType(fileType)
	if _, err := os.Stat(configFile); err == nil {
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	file.Set(key, value)
	if err := file.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	// Keep the loaded settings in step with the file.
	viper.Set(key, value)
	return nil
}
