package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dmitrymomot/ryob/forum"
	"github.com/dmitrymomot/ryob/pkg/logger"
	"github.com/dmitrymomot/ryob/pkg/validator"
)

func newUsersCmd() *cobra.Command {
	users := &cobra.Command{
		Use:   "users",
		Short: "Manage forum accounts",
	}
	users.AddCommand(newUsersAddCmd())
	return users
}

func newUsersAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create an account, prompting for the password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			be, err := openBackend(ctx, cfg.DB)
			if err != nil {
				return err
			}
			defer be.close(ctx)

			out := cmd.OutOrStdout()
			password, err := readPassword(out, "Password: ")
			if err != nil {
				return err
			}
			confirmation, err := readPassword(out, "Confirm password: ")
			if err != nil {
				return err
			}

			name := strings.TrimSpace(args[0])
			if err := forum.ValidateRegistration(name, password, confirmation); err != nil {
				var verrs validator.ValidationErrors
				if errors.As(err, &verrs) {
					for _, e := range verrs {
						fmt.Fprintln(cmd.ErrOrStderr(), e.Message)
					}
				}
				return errors.New("account not created")
			}

			identity := forum.NewIdentity(be.store,
				forum.WithHasher(forum.NewBcryptHasher(cfg.BcryptCost)),
				forum.WithIdentityLogger(logger.NewNope()),
			)
			u, err := identity.Register(ctx, name, password)
			if errors.Is(err, forum.ErrNameAlreadyInUse) {
				return errors.New(forum.MsgNameInUse)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "User %q created with id %d\n", u.Name, u.ID.Int64())
			return nil
		},
	}
}

func readPassword(out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(password), nil
}
