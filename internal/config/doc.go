// Package config manages user-level settings stored at ~/.projkit/config.yaml.
// Values may also come from PROJKIT_* environment variables or a .env file in
// the working directory. Command-line flags take precedence over all of them.
package config
