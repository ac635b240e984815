package commands

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lotusaroma/storefront-cli/internal/app/cli/client"
)

func newAuthCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Account and session",
	}

	cmd.AddCommand(
		newCredentialsCommand(app, "register", "Create an account and log in", app.registerUser),
		newCredentialsCommand(app, "login", "Log in", app.loginUser),
		&cobra.Command{
			Use:   "logout",
			Short: "End the session",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				msg, err := app.Client.Logout(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), msg)
				return nil
			},
		},
		&cobra.Command{
			Use:   "whoami",
			Short: "Show the logged in account",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				user, err := app.Client.CurrentUser(cmd.Context())
				if errors.Is(err, client.ErrUnauthenticated) {
					fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (#%d)\n", user.Username, user.ID)
				return nil
			},
		},
	)

	return cmd
}

type credentialsAction func(cmd *cobra.Command, creds client.Credentials) (*client.User, error)

func (a *App) registerUser(cmd *cobra.Command, creds client.Credentials) (*client.User, error) {
	return a.Client.Register(cmd.Context(), creds)
}

func (a *App) loginUser(cmd *cobra.Command, creds client.Credentials) (*client.User, error) {
	return a.Client.Login(cmd.Context(), creds)
}

// newCredentialsCommand: пароль без флага читается первой строкой stdin
func newCredentialsCommand(app *App, use, short string, action credentialsAction) *cobra.Command {
	var creds client.Credentials

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if creds.Password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("password is required")
				}
				creds.Password = strings.TrimSpace(line)
			}

			user, err := action(cmd, creds)
			var apiErr *client.APIError
			if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), apiErr.Message)
				printFieldErrors(cmd.ErrOrStderr(), apiErr.Fields)
				return err
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", user.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&creds.Username, "username", "u", "", "account name")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", "", "password, prompted when omitted")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}
