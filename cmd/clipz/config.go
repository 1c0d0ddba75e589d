package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipz/internal/backend"
	"go.klb.dev/clipz/internal/logging"
)

// bindViper wires a command's flags into a viper instance with the standard
// config file search order and CLIPZ_* env var prefix.
//
// Precedence (lowest → highest): defaults → config file → CLIPZ_* env vars → flags
func bindViper(cmd *cobra.Command, v *viper.Viper) error {
	configFlag, _ := cmd.Flags().GetString("config")
	if configFlag != "" {
		v.SetConfigFile(configFlag)
	} else {
		v.SetConfigName("clipz")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc/clipz/")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(fmt.Sprintf("%s/.config/clipz", home))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("config: %w", err)
		}
	}

	v.SetEnvPrefix("CLIPZ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// addLoggingFlags adds the standard logging flags to a command.
func addLoggingFlags(cmd *cobra.Command) {
	cmd.Flags().String("log-format", "auto", "log format: auto|text|json")
	cmd.Flags().String("log-level", "", "log level: debug|info|warn|error (default: info, debug on a terminal)")
}

// addBackendFlags adds the flags controlling the backend child process.
func addBackendFlags(cmd *cobra.Command) {
	cmd.Flags().String("backend", "", "path to the clipz backend executable (overrides discovery)")
	cmd.Flags().Duration("shutdown-grace", backend.DefaultGrace, "time the backend gets to exit after quit before it is killed")
}

// addConfigFlag adds the --config flag to a command.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "path to config file (overrides auto-discovery)")
}

// setupLogging reads logging flags from viper and configures slog on stderr.
func setupLogging(v *viper.Viper) {
	interactive := logging.IsTTY(os.Stderr)
	resolveLogging(os.Stderr, interactive, v.GetString("log-format"), v.GetString("log-level"))
}

// backendConfig builds the child-process config from viper.
func backendConfig(v *viper.Viper) backend.Config {
	return backend.Config{
		Path:  v.GetString("backend"),
		Grace: v.GetDuration("shutdown-grace"),
	}
}
