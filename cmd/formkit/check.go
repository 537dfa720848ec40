package main

import (
	"github.com/spf13/cobra"
	"github.com/vango-dev/formkit/internal/demo"
)

func checkCmd() *cobra.Command {
	var flags configFlags

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate configuration and form rules",
		Long: `Load formkit.json, validate it, and check every rule of the demo forms.

Examples:
  formkit check
  formkit check --config=deploy/formkit.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			source := cfg.Path()
			if source == "" {
				source = "defaults"
			}
			success(out, "Configuration OK (%s)", source)
			info(out, "address   %s", cfg.Address())
			info(out, "log       %s/%s", cfg.Log.Level, cfg.Log.Format)
			if cfg.Metrics.Enabled {
				info(out, "metrics   %s", cfg.Metrics.Path)
			}
			if cfg.ArchiveEnabled() {
				info(out, "archive   s3://%s/%s", cfg.Archive.Bucket, cfg.Archive.Prefix)
			}

			for _, d := range demo.Forms() {
				if err := d.Check(); err != nil {
					return err
				}
				rules := 0
				for _, rs := range d.Rules {
					rules += len(rs)
				}
				success(out, "Form %s: %d fields, %d rules", d.Name, len(d.Rules), rules)
			}
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}
