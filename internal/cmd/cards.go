package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/youruser/cardbinder/internal/app"
	"github.com/youruser/cardbinder/internal/cards"
)

func newCardsCmd(a *app.App, out *printer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Manage library cards",
	}
	cmd.AddCommand(newCardsListCmd(a, out))
	cmd.AddCommand(newCardsAddCmd(a, out))
	cmd.AddCommand(newCardsUpdateCmd(a, out))
	cmd.AddCommand(newCardsDeleteCmd(a))
	return cmd
}

func newCardsListCmd(a *app.App, out *printer) *cobra.Command {
	var opts cards.FilterOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List library cards",
		Long: `List the cards in your library, optionally filtered.

Examples:
  deckctl cards list
  deckctl cards list --category spell
  deckctl cards list -q dragon --keyword fire`,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.Cards.Search(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return printCards(cmd, out, list)
		},
	}

	cmd.Flags().StringVarP(&opts.FreeWords, "query", "q", "", "whitespace separated terms matched against name, keywords and description")
	cmd.Flags().StringSliceVar(&opts.Keywords, "keyword", nil, "keywords the card must carry")
	cmd.Flags().Var(newCategoryFlag(&opts.Categories), "category", "categories to include (repeatable)")
	return cmd
}

func newCardsAddCmd(a *app.App, out *printer) *cobra.Command {
	var (
		keywords    []string
		description string
		category    string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a card to the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft := cards.Card{
				ID:          cards.DraftID,
				Name:        args[0],
				Keywords:    keywords,
				Description: description,
				Category:    cards.Category(category),
			}
			if err := cards.ValidateDraft(draft); err != nil {
				return err
			}
			saved, err := a.Cards.Add(cmd.Context(), draft)
			if err != nil {
				return fmt.Errorf("add card: %w", err)
			}
			if out.JSON() {
				return out.writeJSON(cmd.OutOrStdout(), saved)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added card %d: %s\n", saved.ID, saved.Name)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&keywords, "keyword", "k", nil, "card keywords")
	cmd.Flags().StringVarP(&description, "description", "d", "", "card description")
	cmd.Flags().StringVarP(&category, "category", "c", "", "monster, spell, trap or other")
	return cmd
}

func newCardsUpdateCmd(a *app.App, out *printer) *cobra.Command {
	var (
		name        string
		keywords    []string
		description string
		category    string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of a library card",
		Long: `Update a card in place. Only the flags you pass are changed.

Examples:
  deckctl cards update 3 --name "Blue Dragon"
  deckctl cards update 3 --keyword dragon --keyword water`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p := cards.Patch{ID: id}
			if cmd.Flags().Changed("name") {
				p.Name = &name
			}
			if cmd.Flags().Changed("keyword") {
				p.Keywords = &keywords
			}
			if cmd.Flags().Changed("description") {
				p.Description = &description
			}
			if cmd.Flags().Changed("category") {
				c := cards.Category(category)
				p.Category = &c
			}

			saved, err := a.Cards.Update(cmd.Context(), p)
			if err != nil {
				return fmt.Errorf("update card %d: %w", id, err)
			}
			if out.JSON() {
				return out.writeJSON(cmd.OutOrStdout(), saved)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated card %d: %s\n", saved.ID, saved.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "new name")
	cmd.Flags().StringSliceVarP(&keywords, "keyword", "k", nil, "replacement keywords")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category")
	return cmd
}

func newCardsDeleteCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a card and remove it from every deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.Cards.Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("delete card %d: %w", id, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted card %d\n", id)
			return nil
		},
	}
}

func printCards(cmd *cobra.Command, out *printer, list []cards.Card) error {
	w := cmd.OutOrStdout()
	if out.JSON() {
		return out.writeJSON(w, list)
	}
	if len(list) == 0 {
		fmt.Fprintln(w, "No cards found.")
		return nil
	}
	rows := make([][]string, 0, len(list))
	for _, c := range list {
		rows = append(rows, []string{
			strconv.Itoa(c.ID),
			truncate(c.Name, 30),
			string(c.Category.OrOther()),
			truncate(strings.Join(c.Keywords, ", "), 30),
		})
	}
	if err := out.table(w, []string{"ID", "NAME", "CATEGORY", "KEYWORDS"}, rows); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nTotal: %d card(s)\n", len(list))
	return nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// categoryFlag collects repeated --category values.
type categoryFlag struct {
	dst *[]cards.Category
}

func newCategoryFlag(dst *[]cards.Category) *categoryFlag { return &categoryFlag{dst: dst} }

func (f *categoryFlag) String() string {
	if f.dst == nil {
		return ""
	}
	parts := make([]string, len(*f.dst))
	for i, c := range *f.dst {
		parts[i] = string(c)
	}
	return strings.Join(parts, ",")
}

func (f *categoryFlag) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		c := cards.Category(strings.TrimSpace(part))
		if c == "" || !c.Valid() {
			return fmt.Errorf("unknown category %q", part)
		}
		*f.dst = append(*f.dst, c)
	}
	return nil
}

func (f *categoryFlag) Type() string { return "category" }
