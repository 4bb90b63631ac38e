package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"emustation/internal/fileutil"
	"emustation/internal/steam"
)

func newUsersCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List Steam accounts found in the userdata directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			userdata, err := ctx.userdata()
			if err != nil {
				return err
			}
			users, err := steam.ListUsers(userdata, ctx.loggerValue())
			if err != nil {
				return err
			}

			type row struct {
				ID        string `json:"id"`
				Persona   string `json:"persona,omitempty"`
				Shortcuts bool   `json:"has_shortcuts"`
			}
			rows := make([]row, 0, len(users))
			for _, u := range users {
				r := row{ID: u.ID, Persona: u.Persona}
				if acct, err := steam.OpenAccount(userdata, u.ID); err == nil {
					r.Shortcuts = fileutil.Exists(acct.ShortcutsPath())
				}
				rows = append(rows, r)
			}
			if jsonOutput {
				return writeJSON(cmd, rows)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Userdata: %s\n", userdata)
			if len(rows) == 0 {
				fmt.Fprintln(out, "No Steam accounts found")
				return nil
			}
			table := make([][]string, len(rows))
			for i, r := range rows {
				table[i] = []string{r.ID, r.Persona, yesNo(r.Shortcuts)}
			}
			fmt.Fprintln(out, renderTable([]string{"Account", "Persona", "Shortcuts"}, table, nil))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print JSON")
	return cmd
}
