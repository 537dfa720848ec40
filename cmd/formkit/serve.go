package main

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/vango-dev/formkit/internal/config"
	"github.com/vango-dev/formkit/internal/demo"
	"github.com/vango-dev/formkit/internal/errors"
	"github.com/vango-dev/formkit/pkg/archive"
	"github.com/vango-dev/formkit/pkg/features/form"
	"github.com/vango-dev/formkit/pkg/middleware"
	"github.com/vango-dev/formkit/pkg/server"
)

func serveCmd() *cobra.Command {
	var flags configFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo forms",
		Long: `Start the HTTP server hosting the demo forms.

Every page opens a WebSocket session that validates input as it is
typed. Accepted submissions are archived to S3 when archive.bucket is
set and logged otherwise.

Examples:
  formkit serve
  formkit serve --port=8080
  formkit serve --config=deploy/formkit.json --log-level=debug`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := cfg.NewLogger(cmd.ErrOrStderr())
			srv, err := buildServer(cfg, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			success(out, "Serving %d forms at %s", len(srv.Forms()), cfg.URL())
			for _, f := range srv.Forms() {
				info(out, "%s/forms/%s", cfg.URL(), f.Name)
			}

			if err := srv.Run(ctx); err != nil {
				if stderrors.Is(err, syscall.EADDRINUSE) {
					return errors.FromError(err, "X001")
				}
				return err
			}
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

// buildServer wires the observers, the archive sink and the demo forms
// described by cfg into a server.
func buildServer(cfg *config.Config, logger *slog.Logger) (*server.Server, error) {
	observers := []form.Observer{middleware.Logging(logger)}
	opts := []server.Option{server.WithLogger(logger)}

	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		observers = append(observers, middleware.Prometheus(
			middleware.WithRegistry(registry),
			middleware.WithNamespace(cfg.Metrics.Namespace),
		))
		opts = append(opts, server.WithGatherer(registry))
	}
	if cfg.Tracing.Enabled {
		observers = append(observers, middleware.OpenTelemetry(
			middleware.WithTracerName(cfg.Tracing.TracerName),
		))
	}

	archiver, err := newArchiver(context.Background(), cfg, logger)
	if err != nil {
		return nil, err
	}
	opts = append(opts,
		server.WithObserver(middleware.Chain(observers...)),
		server.WithOnFinish(func(name string) func(context.Context, form.Values) error {
			return archive.Sink(archiver, name, archive.WithSinkLogger(logger))
		}),
	)

	srvCfg := server.DefaultConfig()
	srvCfg.Address = cfg.Address()
	srvCfg.MetricsPath = cfg.Metrics.Path

	srv := server.New(srvCfg, opts...)
	for _, d := range demo.Forms() {
		if err := d.Check(); err != nil {
			return nil, err
		}
		srv.Register(server.Form{Name: d.Name, Title: d.Title, View: d.View})
	}
	return srv, nil
}

func newArchiver(ctx context.Context, cfg *config.Config, logger *slog.Logger) (archive.Archiver, error) {
	if !cfg.ArchiveEnabled() {
		return archive.LogArchiver{Logger: logger}, nil
	}
	client, err := archive.NewS3Client(ctx, archive.S3Config{
		Region:          cfg.Archive.Region,
		Endpoint:        cfg.Archive.Endpoint,
		UsePathStyle:    cfg.Archive.UsePathStyle,
		AccessKeyID:     cfg.Archive.AccessKeyID,
		SecretAccessKey: cfg.Archive.SecretAccessKey,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("archiving submissions to s3", "bucket", cfg.Archive.Bucket, "prefix", cfg.Archive.Prefix)
	return archive.NewS3Archiver(client, cfg.Archive.Bucket, cfg.Archive.Prefix), nil
}
