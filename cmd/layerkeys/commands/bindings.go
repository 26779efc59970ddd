package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/layerkeys/internal/app"
	"github.com/dshills/layerkeys/internal/document/memhost"
)

func bindingsCmd(g *globals) *cobra.Command {
	var (
		actions bool
		search  string
	)

	cmd := &cobra.Command{
		Use:   "bindings",
		Short: "Print the shortcut menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(memhost.New(app.DefaultTextureSet()), g.cfg, g.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			if search != "" {
				for _, m := range a.Search(search, 0) {
					fmt.Fprintf(out, "%-28s %s\n", m.Entry.Action, m.Entry.Label)
				}
				return nil
			}
			if actions {
				for _, name := range a.Actions() {
					fmt.Fprintln(out, name)
				}
				return nil
			}
			for i, cat := range a.Menu() {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, cat.Name)
				for _, e := range cat.Entries {
					fmt.Fprintf(out, "  %-14s %s\n", e.Chord, e.Label)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&actions, "actions", false, "list every action id instead of the menu")
	cmd.Flags().StringVarP(&search, "search", "s", "", "list actions matching a fuzzy query, best first")
	return cmd
}
