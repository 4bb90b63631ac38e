package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"emustation/internal/config"
	"emustation/internal/scanner"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "scan <rom-folder>",
		Short: "List the games sync would add from a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			root, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			entries, err := scanner.Scan(cmd.Context(), root, scanner.Options{
				Extensions: cfg.Scanner.Extensions,
				RequireTag: cfg.Scanner.RequireTag,
			})
			if err != nil {
				return err
			}
			if jsonOutput {
				type row struct {
					Name string `json:"name"`
					Path string `json:"path"`
				}
				rows := make([]row, len(entries))
				for i, e := range entries {
					rows[i] = row{Name: e.DisplayName, Path: e.Path}
				}
				return writeJSON(cmd, rows)
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No games found")
				return nil
			}
			rows := make([][]string, len(entries))
			for i, e := range entries {
				rows[i] = []string{e.DisplayName, e.Path}
			}
			fmt.Fprintln(out, renderTable([]string{"Name", "Path"}, rows, nil))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print JSON")
	return cmd
}
