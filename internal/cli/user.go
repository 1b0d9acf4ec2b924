package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-pin-vault/internal/service"
	"github.com/MKhiriev/go-pin-vault/models"
)

func newUserCmd(a *application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage vault users (register, list, delete, avatar)",
	}

	cmd.AddCommand(
		newUserRegisterCmd(a),
		newUserListCmd(a),
		newUserDeleteCmd(a),
		newUserAvatarCmd(a),
	)
	return cmd
}

func newUserRegisterCmd(a *application) *cobra.Command {
	var (
		password   string
		pin        string
		avatarPath string
	)

	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Register a new user",
		Long: `Registers a new user protected by a password and a PIN.
The password needs at least 8 characters with an upper-case letter, a
lower-case letter, a digit and one of !#@$%_. The PIN needs at least 6
digits. Both are prompted twice when not given as flags.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := models.Registration{Username: args[0]}

			if avatarPath != "" {
				avatar, err := os.ReadFile(avatarPath)
				if err != nil {
					return fmt.Errorf("read avatar: %w", err)
				}
				reg.Avatar = avatar
			}

			var err error
			if reg.Password, err = a.newSecret(cmd, password, "Password: ", "Repeat password: "); err != nil {
				return err
			}
			if reg.Pin, err = a.newSecret(cmd, pin, "PIN: ", "Repeat PIN: "); err != nil {
				return err
			}

			return a.withVault(cmd, func(vault service.VaultService) error {
				if err := vault.Register(cmd.Context(), reg); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "User %q registered.\n", reg.Username)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when empty)")
	cmd.Flags().StringVar(&pin, "pin", "", "account PIN (prompted when empty)")
	cmd.Flags().StringVar(&avatarPath, "avatar", "", "path to an avatar image")
	return cmd
}

func newUserListCmd(a *application) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withVault(cmd, func(vault service.VaultService) error {
				users, err := vault.ListUsers(cmd.Context())
				if err != nil {
					return err
				}

				if len(users) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No users found.")
					return nil
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "USERNAME\tAVATAR")
				for _, u := range users {
					avatar := "-"
					if len(u.Avatar) > 0 {
						avatar = fmt.Sprintf("%d bytes", len(u.Avatar))
					}
					fmt.Fprintf(w, "%s\t%s\n", u.Username, avatar)
				}
				return w.Flush()
			})
		},
	}
}

func newUserDeleteCmd(a *application) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete a user and all of their items",
		Long: `Deletes a user together with every stored item. The user's password is
required as confirmation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]

			secret, err := a.secret(cmd, password, "Password: ")
			if err != nil {
				return err
			}

			return a.withVault(cmd, func(vault service.VaultService) error {
				if err := vault.VerifyPassword(cmd.Context(), username, secret); err != nil {
					return err
				}
				if err := vault.DeleteUser(cmd.Context(), username); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "User %q deleted.\n", username)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when empty)")
	return cmd
}

func newUserAvatarCmd(a *application) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "avatar <username>",
		Short: "Save the avatar image of a user to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]

			return a.withVault(cmd, func(vault service.VaultService) error {
				avatar, err := vault.Avatar(cmd.Context(), username)
				if err != nil {
					return err
				}

				if len(avatar) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "User %q has no avatar.\n", username)
					return nil
				}

				if err = os.WriteFile(output, avatar, 0o600); err != nil {
					return fmt.Errorf("write avatar: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Avatar of %q saved to %s.\n", username, output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write the avatar to")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
