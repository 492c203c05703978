package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/youruser/cardbinder/internal/app"
)

// NewRootCmd creates the root command for deckctl.
func NewRootCmd(a *app.App) *cobra.Command {
	var asJSON bool

	root := &cobra.Command{
		Use:   "deckctl",
		Short: "Manage your card library and decks",
		Long: `Inspect and edit the card collection stored by cardbinder.

deckctl provides tools to:
- Add, edit and search library cards
- Build decks and export them as text or YAML
- Browse preset decks and adopt them into your collection
- Set the signed-in account`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&asJSON, "json", false, "print results as JSON")

	out := &printer{json: &asJSON}

	root.AddCommand(newCardsCmd(a, out))
	root.AddCommand(newDecksCmd(a, out))
	root.AddCommand(newPresetsCmd(a, out))
	root.AddCommand(newAdoptCmd(a, out))
	root.AddCommand(newAccountCmd(a, out))

	return root
}

type printer struct {
	json *bool
}

func (p *printer) JSON() bool { return p.json != nil && *p.json }

func (p *printer) writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *printer) table(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	return tw.Flush()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
