package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/procout/version"
)

func newVersionCmd(s streams) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "text", "json", "yaml"); err != nil {
				return err
			}
			info := version.Get()
			if format == "text" {
				_, err := fmt.Fprintln(s.out, info.String())
				return err
			}
			return encode(s.out, format, info)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, yaml")
	return cmd
}
