package main

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/kbukum/procout/process"
)

func newSplitCmd(s streams) *cobra.Command {
	var (
		file   string
		format string
	)
	cmd := &cobra.Command{
		Use:   "split [--file path] [--format text|json|yaml]",
		Short: "Split text into lines the way captured output is split",
		Long: `Read text from stdin or --file and split it into lines. "\r", "\n" and
"\r\n" all end a line; a final terminator does not produce an empty line.

With --format text every line is printed with a "\n" terminator, which
normalizes mixed line endings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "text", "json", "yaml"); err != nil {
				return err
			}
			var in io.Reader = s.in
			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			data, err := io.ReadAll(in)
			if err != nil {
				return err
			}

			var lines []string
			if len(data) > 0 {
				lines = slices.Collect(process.SplitLines(string(data)))
			}
			if format != "text" {
				if lines == nil {
					lines = []string{}
				}
				return encode(s.out, format, lines)
			}
			for _, line := range lines {
				if _, err := fmt.Fprintln(s.out, line); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "read from this file instead of stdin")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, yaml")
	return cmd
}
