package main

import (
	stderrors "errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/vango-dev/formkit/internal/config"
)

// configFlags are the flags shared by commands that read formkit.json.
type configFlags struct {
	path     string
	host     string
	port     int
	logLevel string
}

func (f *configFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.path, "config", "c", "", "Path to formkit.json (default: ./formkit.json if present)")
	cmd.Flags().StringVarP(&f.host, "host", "H", "", "Host to bind to (default from formkit.json)")
	cmd.Flags().IntVarP(&f.port, "port", "p", 0, "Port to listen on (default from formkit.json)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn or error")
}

// load reads the configuration, applies flag overrides and validates
// the result. Without --config a missing formkit.json means defaults.
func (f *configFlags) load() (*config.Config, error) {
	var cfg *config.Config
	if f.path != "" {
		c, err := config.LoadFile(f.path)
		if err != nil {
			return nil, err
		}
		cfg = c
	} else if _, err := os.Stat(config.ConfigFileName); stderrors.Is(err, fs.ErrNotExist) {
		cfg = config.New()
	} else {
		c, err := config.Load(".")
		if err != nil {
			return nil, err
		}
		cfg = c
	}

	if f.host != "" {
		cfg.Server.Host = f.host
	}
	if f.port > 0 {
		cfg.Server.Port = f.port
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
