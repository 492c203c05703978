package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/youruser/cardbinder/internal/account"
	"github.com/youruser/cardbinder/internal/app"
)

func newAccountCmd(a *app.App, out *printer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Show or change the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			u := a.Account.Current()
			w := cmd.OutOrStdout()
			if out.JSON() {
				return out.writeJSON(w, u)
			}
			if u == nil {
				fmt.Fprintln(w, "Not signed in.")
				return nil
			}
			fmt.Fprintf(w, "%s (%s)\n", u.Nickname, u.ID)
			return nil
		},
	}

	var avatar string
	login := &cobra.Command{
		Use:   "login <nickname>",
		Short: "Sign in under a nickname",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.Account.Set(cmd.Context(), account.User{Nickname: args[0], Avatar: avatar})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", u.Nickname)
			return nil
		},
	}
	login.Flags().StringVar(&avatar, "avatar", "", "avatar image URL")

	logout := &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Account.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}

	cmd.AddCommand(login, logout)
	return cmd
}
