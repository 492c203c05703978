package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/youruser/cardbinder/internal/app"
)

func newPresetsCmd(a *app.App, out *printer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Browse preset decks",
	}
	cmd.AddCommand(newPresetsListCmd(a, out))
	cmd.AddCommand(newPresetsCardsCmd(a, out))
	cmd.AddCommand(&cobra.Command{
		Use:   "system-cards",
		Short: "List the system card pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.Presets.ListSystemCards(cmd.Context())
			if err != nil {
				return err
			}
			return printCards(cmd, out, list)
		},
	})
	return cmd
}

func newPresetsListCmd(a *app.App, out *printer) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List preset decks",
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := a.Presets.ListDecks(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if out.JSON() {
				return out.writeJSON(w, presets)
			}
			rows := make([][]string, 0, len(presets))
			for _, p := range presets {
				rec := ""
				if p.Recommended {
					rec = "yes"
				}
				rows = append(rows, []string{
					strconv.Itoa(p.ID),
					truncate(p.Name, 30),
					strconv.Itoa(len(p.CardIDs)),
					p.Author,
					rec,
				})
			}
			return out.table(w, []string{"ID", "NAME", "CARDS", "AUTHOR", "RECOMMENDED"}, rows)
		},
	}
}

func newPresetsCardsCmd(a *app.App, out *printer) *cobra.Command {
	return &cobra.Command{
		Use:   "cards <preset-id>",
		Short: "List the system cards a preset is built from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			list, err := a.Presets.ListCardsForDeck(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printCards(cmd, out, list)
		},
	}
}

func newAdoptCmd(a *app.App, out *printer) *cobra.Command {
	return &cobra.Command{
		Use:   "adopt <preset-id>",
		Short: "Copy a preset deck and its missing cards into your collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res := a.Adopter.AdoptByID(cmd.Context(), id)
			if out.JSON() {
				return out.writeJSON(cmd.OutOrStdout(), res)
			}
			if !res.Success {
				return fmt.Errorf("adopt preset %d: %s", id, res.Error)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Adopted preset %d as deck %d: %s\n", id, res.Deck.ID, res.Deck.Name)
			return nil
		},
	}
}
