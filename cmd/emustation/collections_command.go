package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"emustation/internal/collections"
)

func newCollectionsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collections",
		Short: "Inspect an account's Steam collections",
	}
	cmd.AddCommand(newCollectionsListCommand(ctx))
	return cmd
}

func newCollectionsListCommand(ctx *commandContext) *cobra.Command {
	var user string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List user collections and their sizes",
		RunE: func(cmd *cobra.Command, args []string) error {
			acct, err := ctx.account(user)
			if err != nil {
				return err
			}
			ledger, ok, err := collections.Load(acct.LedgerPath())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintf(out, "No collection file for account %s (start Steam once to create it)\n", acct.ID)
				return nil
			}

			cols := ledger.Collections()
			if jsonOutput {
				type row struct {
					Key     string `json:"key"`
					ID      string `json:"id"`
					Name    string `json:"name"`
					Size    int    `json:"size"`
					Version string `json:"version"`
				}
				rows := make([]row, len(cols))
				for i, c := range cols {
					rows[i] = row{Key: c.Key, ID: c.ID, Name: c.Name, Size: len(c.Added), Version: c.Version}
				}
				return writeJSON(cmd, rows)
			}

			if len(cols) == 0 {
				fmt.Fprintln(out, "No user collections")
				return nil
			}
			table := make([][]string, len(cols))
			for i, c := range cols {
				updated := ""
				if c.Timestamp > 0 {
					updated = time.Unix(c.Timestamp, 0).Format("2006-01-02 15:04")
				}
				table[i] = []string{
					c.Name,
					strings.TrimPrefix(c.Key, collections.KeyPrefix),
					strconv.Itoa(len(c.Added)),
					c.Version,
					updated,
				}
			}
			fmt.Fprintln(out, renderTable([]string{"Name", "ID", "Games", "Version", "Updated"}, table,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft}))
			return nil
		},
	}
	cmd.Flags().StringVarP(&user, "user", "u", "", "Steam account id (default first account)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print JSON")
	return cmd
}
