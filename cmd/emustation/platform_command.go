package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"emustation/internal/config"
	"emustation/internal/platform"
)

func newPlatformCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "platform",
		Short: "Guess and manage emulator to platform names",
	}
	cmd.AddCommand(newPlatformGuessCommand(ctx))
	cmd.AddCommand(newPlatformSetCommand(ctx))
	cmd.AddCommand(newPlatformListCommand(ctx))
	return cmd
}

func loadMapping(ctx *commandContext) (*config.Config, *platform.Mapping, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	m, err := platform.Load(cfg.Paths.PlatformMapPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, m, nil
}

func newPlatformGuessCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "guess <emulator>",
		Short: "Print the collection name sync would use for an emulator",
		Long: `Print the collection name sync would use for an emulator. Custom
mappings are checked first, then the built-in table. When nothing matches,
the emulator's file name is used with its first letter capitalized
("yuzu-cmd" becomes "Yuzu-cmd").`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, m, err := loadMapping(ctx)
			if err != nil {
				return err
			}
			name, source := m.Guess(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", name, source)
			return nil
		},
	}
}

func newPlatformSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set <emulator-key> <platform>",
		Short: "Map an emulator name fragment to a platform",
		Long: `Map an emulator name fragment to a platform. The key is matched
case-insensitively against the emulator's file name without extension;
longer keys win over shorter ones.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, m, err := loadMapping(ctx)
			if err != nil {
				return err
			}
			if err := m.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := platform.Save(cfg.Paths.PlatformMapPath, m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s -> %s\n", args[0], args[1])
			return nil
		},
	}
}

func newPlatformListCommand(ctx *commandContext) *cobra.Command {
	var builtin bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List platform mappings in match order",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, m, err := loadMapping(ctx)
			if err != nil {
				return err
			}
			var rows [][]string
			for _, e := range m.CustomEntries() {
				rows = append(rows, []string{e.Key, e.Platform, string(platform.SourceCustom)})
			}
			if builtin {
				for _, e := range platform.Builtin() {
					rows = append(rows, []string{e.Key, e.Platform, string(platform.SourceBuiltin)})
				}
			}
			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No custom mappings (use --builtin to show the built-in table)")
				return nil
			}
			fmt.Fprintln(out, renderTable([]string{"Key", "Platform", "Source"}, rows, nil))
			return nil
		},
	}
	cmd.Flags().BoolVar(&builtin, "builtin", false, "Include the built-in table")
	return cmd
}
