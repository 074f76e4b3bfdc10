package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lifetracker/internal/app"
	"lifetracker/pkg/rbac"
)

var addUserCmd = &cobra.Command{
	Use:   "adduser <username>",
	Short: "Create a user, prompting for the password",
	Long: `Create a user account directly in the database.

The password is read from the terminal without echo, or from the first line
of stdin when stdin is not a terminal.

Examples:
  lifectl adduser alice
  lifectl adduser root --admin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		admin, _ := cmd.Flags().GetBool("admin")

		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		fmt.Fprint(cmd.OutOrStdout(), "Password: ")
		password, err := readPassword(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout())

		a, err := app.New(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer a.Close()

		role := rbac.RoleUser
		if admin {
			role = rbac.RoleAdmin
		}
		u, err := a.Auth.CreateUser(cmd.Context(), args[0], password, role)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "User %s created with id %s (role %s)\n", u.Username, u.ID, role)
		return nil
	},
}

func init() {
	addUserCmd.Flags().Bool("admin", false, "grant the admin role")
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
