package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/youruser/cardbinder/internal/app"
	"github.com/youruser/cardbinder/internal/cards"
	"github.com/youruser/cardbinder/internal/deck"
)

func newDecksCmd(a *app.App, out *printer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decks",
		Short: "Manage your decks",
	}
	cmd.AddCommand(newDecksListCmd(a, out))
	cmd.AddCommand(newDecksShowCmd(a, out))
	cmd.AddCommand(newDecksCreateCmd(a, out))
	cmd.AddCommand(newDecksDeleteCmd(a))
	cmd.AddCommand(newDecksAddCardCmd(a, out))
	cmd.AddCommand(newDecksRemoveCardCmd(a, out))
	cmd.AddCommand(newDecksExportCmd(a))
	return cmd
}

func newDecksListCmd(a *app.App, out *printer) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your decks",
		RunE: func(cmd *cobra.Command, args []string) error {
			decks, err := a.Decks.List(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if out.JSON() {
				return out.writeJSON(w, decks)
			}
			if len(decks) == 0 {
				fmt.Fprintln(w, "No decks yet.")
				fmt.Fprintln(w, "Use 'deckctl decks create <name>' or 'deckctl adopt <preset-id>'.")
				return nil
			}
			rows := make([][]string, 0, len(decks))
			for _, d := range decks {
				rows = append(rows, []string{
					strconv.Itoa(d.ID),
					truncate(d.Name, 30),
					strconv.Itoa(len(d.CardIDs)),
					truncate(strings.Join(d.Tags, ", "), 25),
				})
			}
			if err := out.table(w, []string{"ID", "NAME", "CARDS", "TAGS"}, rows); err != nil {
				return err
			}
			fmt.Fprintf(w, "\nTotal: %d deck(s)\n", len(decks))
			return nil
		},
	}
}

func newDecksShowCmd(a *app.App, out *printer) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a deck and its cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			d, err := a.Decks.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if d == nil {
				return fmt.Errorf("deck %d not found", id)
			}
			list, err := a.Cards.ListForDeck(cmd.Context(), id)
			if err != nil {
				return err
			}
			if out.JSON() {
				return out.writeJSON(cmd.OutOrStdout(), struct {
					Deck  *deck.UserDeck `json:"deck"`
					Cards []cards.Card   `json:"cards"`
				}{d, list})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n\n", d.Name, d.Description)
			return printCards(cmd, out, list)
		},
	}
}

func newDecksCreateCmd(a *app.App, out *printer) *cobra.Command {
	var in deck.CreateInput

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an empty deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[0]
			d, err := a.Decks.Create(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("create deck: %w", err)
			}
			if out.JSON() {
				return out.writeJSON(cmd.OutOrStdout(), d)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created deck %d: %s\n", d.ID, d.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.Description, "description", "d", "", "deck description")
	cmd.Flags().StringVar(&in.CoverImage, "cover", "", "cover image URL")
	cmd.Flags().StringSliceVarP(&in.Tags, "tag", "t", nil, "deck tags")
	return cmd
}

func newDecksDeleteCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your decks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := a.Decks.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("deck %d not found", id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted deck %d\n", id)
			return nil
		},
	}
}

func newDecksAddCardCmd(a *app.App, out *printer) *cobra.Command {
	return &cobra.Command{
		Use:   "add-card <deck-id> <card-id>",
		Short: "Append a card to a deck",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			deckID, err := parseID(args[0])
			if err != nil {
				return err
			}
			cardID, err := parseID(args[1])
			if err != nil {
				return err
			}
			d, err := a.Decks.AddCard(cmd.Context(), deckID, cardID)
			if err != nil {
				return err
			}
			if d == nil {
				return fmt.Errorf("deck %d not found", deckID)
			}
			if out.JSON() {
				return out.writeJSON(cmd.OutOrStdout(), d)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deck %d now holds %d card(s)\n", d.ID, len(d.CardIDs))
			return nil
		},
	}
}

func newDecksRemoveCardCmd(a *app.App, out *printer) *cobra.Command {
	var index int

	cmd := &cobra.Command{
		Use:   "remove-card <deck-id> <card-id>",
		Short: "Remove one copy of a card from a deck",
		Long: `Remove the copy of a card found at --index.

When --index is omitted the first copy is removed.

Examples:
  deckctl decks remove-card 2 1001
  deckctl decks remove-card 2 1002 --index 3`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			deckID, err := parseID(args[0])
			if err != nil {
				return err
			}
			cardID, err := parseID(args[1])
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("index") {
				d, err := a.Decks.Get(cmd.Context(), deckID)
				if err != nil {
					return err
				}
				if d != nil {
					index = firstIndex(d.CardIDs, cardID)
				}
			}

			res, err := a.Decks.RemoveCard(cmd.Context(), deckID, cardID, index)
			if err != nil {
				return err
			}
			if out.JSON() {
				return out.writeJSON(cmd.OutOrStdout(), res)
			}
			if !res.Success {
				return fmt.Errorf("remove card %d from deck %d: %s", cardID, deckID, res.Reason)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deck %d now holds %d card(s)\n", res.Deck.ID, len(res.Deck.CardIDs))
			return nil
		},
	}

	cmd.Flags().IntVarP(&index, "index", "i", 0, "position of the copy to remove")
	return cmd
}

func newDecksExportCmd(a *app.App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a deck list",
		Long: `Export a deck as a plain text list or YAML document.

Examples:
  deckctl decks export 1
  deckctl decks export 1 --format yaml > deck.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			d, err := a.Decks.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if d == nil {
				return fmt.Errorf("deck %d not found", id)
			}
			pool, err := a.Cards.List(cmd.Context())
			if err != nil {
				return err
			}
			text, err := deck.Export(*d, cards.Names(pool), format)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(text, "\n"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", deck.FormatText, "text or yaml")
	return cmd
}

func firstIndex(ids []int, id int) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
