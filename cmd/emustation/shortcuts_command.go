package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"emustation/internal/appid"
	"emustation/internal/artwork"
	"emustation/internal/fileutil"
	"emustation/internal/shortcuts"
)

func newShortcutsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shortcuts",
		Short: "Inspect an account's non-Steam shortcuts",
	}
	cmd.AddCommand(newShortcutsListCommand(ctx))
	return cmd
}

type shortcutRow struct {
	AppID         uint32   `json:"appid"`
	Name          string   `json:"name"`
	Exe           string   `json:"exe"`
	LaunchOptions string   `json:"launch_options,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Artwork       int      `json:"artwork"`
}

func newShortcutsListCommand(ctx *commandContext) *cobra.Command {
	var user string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List shortcuts registered for an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			acct, err := ctx.account(user)
			if err != nil {
				return err
			}
			reg, err := shortcuts.Load(acct.ShortcutsPath(), ctx.loggerValue())
			if err != nil {
				return err
			}

			rows := make([]shortcutRow, 0, reg.Len())
			for _, sc := range reg.Shortcuts() {
				id, ok := sc.AppID()
				if !ok {
					id = appid.Derive(strings.Trim(sc.Exe(), `"`), sc.Name())
				}
				present := 0
				for _, slot := range artwork.Slots {
					if fileutil.Exists(slot.Path(acct.GridDir(), id)) {
						present++
					}
				}
				rows = append(rows, shortcutRow{
					AppID:         id,
					Name:          sc.Name(),
					Exe:           sc.Exe(),
					LaunchOptions: sc.LaunchOptions(),
					Tags:          sc.Tags(),
					Artwork:       present,
				})
			}
			if jsonOutput {
				return writeJSON(cmd, rows)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Account %s: %d shortcuts\n", acct.ID, len(rows))
			if len(rows) == 0 {
				return nil
			}
			table := make([][]string, len(rows))
			for i, r := range rows {
				table[i] = []string{
					strconv.FormatUint(uint64(r.AppID), 10),
					r.Name,
					r.Exe,
					fmt.Sprintf("%d/%d", r.Artwork, len(artwork.Slots)),
				}
			}
			fmt.Fprintln(out, renderTable([]string{"AppID", "Name", "Exe", "Art"}, table,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight}))
			return nil
		},
	}
	cmd.Flags().StringVarP(&user, "user", "u", "", "Steam account id (default first account)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print JSON")
	return cmd
}
