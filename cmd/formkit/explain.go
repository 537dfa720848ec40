package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vango-dev/formkit/internal/errors"
)

func explainCmd() *cobra.Command {
	var (
		list   bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "explain [code]",
		Short: "Explain an error code",
		Long: `Print the description of a formkit error code.

Examples:
  formkit explain F003
  formkit explain F003 --json
  formkit explain --list`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list || len(args) == 0 {
				for _, code := range errors.GetAllCodes() {
					if asJSON {
						fmt.Fprintln(out, errors.New(code).FormatJSON())
						continue
					}
					tmpl, _ := errors.GetTemplate(code)
					fmt.Fprintf(out, "%s  %-10s %s\n", code, tmpl.Category, tmpl.Message)
				}
				return nil
			}

			code := strings.ToUpper(args[0])
			if _, ok := errors.GetTemplate(code); !ok {
				return errors.New("X002").WithDetail(fmt.Sprintf("no error code %q", args[0]))
			}
			if asJSON {
				fmt.Fprintln(out, errors.New(code).FormatJSON())
				return nil
			}
			fmt.Fprintln(out, errors.New(code).Format())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "List all error codes")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print codes as JSON objects, one per line")

	return cmd
}
