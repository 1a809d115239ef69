package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/99minutos/admin-auth/internal/app"
	"github.com/99minutos/admin-auth/internal/core/ports"
	"github.com/99minutos/admin-auth/pkg/logger"
)

// readPassword is swapped in tests.
var readPassword = func() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
	}

	cmd.AddCommand(newAdminCreateCmd())

	return cmd
}

// ---------- admin create ----------

func newAdminCreateCmd() *cobra.Command {
	var in ports.RegisterInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new admin account",
		Example: `  adminauth admin create --name Root --email root@example.com --password secret1
  adminauth admin create --name Root --email root@example.com  # prompts for password`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.Password == "" {
				pw, err := promptPassword(cmd.OutOrStdout())
				if err != nil {
					return err
				}
				in.Password = pw
			}
			return runAdminCreate(cmd.Context(), cmd.OutOrStdout(), in)
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Admin display name (required)")
	cmd.Flags().StringVar(&in.Email, "email", "", "Admin email address (required)")
	cmd.Flags().StringVar(&in.Password, "password", "", "Admin password (prompted if omitted)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func promptPassword(out io.Writer) (string, error) {
	fmt.Fprint(out, "Password: ")
	pw, err := readPassword()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Fprintln(out)

	fmt.Fprint(out, "Confirm password: ")
	confirm, err := readPassword()
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}
	fmt.Fprintln(out)

	if string(pw) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}
	return string(pw), nil
}

func runAdminCreate(ctx context.Context, out io.Writer, in ports.RegisterInput) error {
	cfg, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	log := logger.Get()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	token, err := a.Auth.Register(ctx, in)
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	fmt.Fprintf(out, "Created admin %q\n", in.Email)
	fmt.Fprintf(out, "  token: %s\n", token)
	return nil
}
