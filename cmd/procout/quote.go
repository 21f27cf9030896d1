package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/procout/process"
)

func newQuoteCmd(s streams) *cobra.Command {
	var each bool
	cmd := &cobra.Command{
		Use:   "quote [--each] [--] args...",
		Short: "Quote arguments into a Windows command line",
		Long: `Quote arguments the way procout passes them to Windows programs.

Arguments without spaces or double quotes are kept as they are, already
quoted arguments are left alone and everything else is wrapped in double
quotes with embedded quotes escaped.

Examples:
  procout quote -- cl.exe /Fe"out dir\app.exe" "main file.c"
  procout quote --each -- "a b" 'say "hi"'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !each {
				_, err := fmt.Fprintln(s.out, process.QuoteArgs(args))
				return err
			}
			for _, arg := range args {
				if _, err := fmt.Fprintln(s.out, process.Quote(arg)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().BoolVar(&each, "each", false, "print every quoted argument on its own line")
	return cmd
}
