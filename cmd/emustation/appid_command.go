package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"emustation/internal/appid"
)

func newAppIDCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "appid <exe> <name>",
		Short: "Print the shortcut identifier Steam derives for an executable and name",
		Long: `Print the identifier Steam assigns to a non-Steam shortcut. The exe is used
exactly as it appears in shortcuts.vdf, without surrounding quotes.`,
		Args:        cobra.ExactArgs(2),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			id := appid.Derive(args[0], args[1])
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "appid:   %d\n", id)
			fmt.Fprintf(out, "signed:  %d\n", appid.ToSigned(id))
			fmt.Fprintf(out, "grid:    %s\n", appid.GridBase(id))
			return nil
		},
	}
}
