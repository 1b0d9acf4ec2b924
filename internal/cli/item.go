package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-pin-vault/internal/passgen"
	"github.com/MKhiriev/go-pin-vault/internal/service"
	"github.com/MKhiriev/go-pin-vault/models"
)

const maskedSecret = "********"

var writeClipboard = clipboard.WriteAll

func newItemCmd(a *application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage stored credentials (add, list, copy, delete)",
		Long: `Every item command unlocks the vault of the given user first. The PIN is
used by default; pass --use-password to unlock with the password instead.`,
	}

	cmd.AddCommand(
		newItemAddCmd(a),
		newItemListCmd(a),
		newItemCopyCmd(a),
		newItemDeleteCmd(a),
	)
	return cmd
}

func newItemAddCmd(a *application) *cobra.Command {
	var (
		unlock   unlockFlags
		item     models.Item
		generate bool
		length   int
	)

	cmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Store a new credential",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]

			if generate {
				secret, ok := passgen.Generate(length, passgen.AllClasses())
				if !ok {
					return errGenerationFailed
				}
				item.Secret = secret
			}

			return a.withVault(cmd, func(vault service.VaultService) error {
				key, err := a.unlock(cmd, vault, username, unlock)
				if err != nil {
					return err
				}
				defer key.Zero()

				if item.Secret == "" {
					if item.Secret, err = a.readSecret(cmd, "Secret: "); err != nil {
						return err
					}
				}

				ids, err := vault.WriteItems(cmd.Context(), username, key, item)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Item %d saved.\n", ids[0])
				return nil
			})
		},
	}

	unlock.bind(cmd)
	cmd.Flags().StringVar(&item.Description, "description", "", "label of the credential, usually the site name")
	cmd.Flags().StringVar(&item.Username, "login", "", "login used on the site")
	cmd.Flags().StringVar(&item.Secret, "secret", "", "site password (prompted when empty)")
	cmd.Flags().BoolVar(&generate, "generate", false, "generate the site password")
	cmd.Flags().IntVar(&length, "length", passgen.DefaultLength, "length of a generated password")
	cmd.MarkFlagsMutuallyExclusive("secret", "generate")
	return cmd
}

func newItemListCmd(a *application) *cobra.Command {
	var (
		unlock unlockFlags
		show   bool
	)

	cmd := &cobra.Command{
		Use:   "list <username>",
		Short: "List stored credentials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]

			return a.withVault(cmd, func(vault service.VaultService) error {
				key, err := a.unlock(cmd, vault, username, unlock)
				if err != nil {
					return err
				}
				defer key.Zero()

				items, err := vault.ReadItems(cmd.Context(), username, key)
				if err != nil {
					return err
				}

				if len(items) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No items found.")
					return nil
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tDESCRIPTION\tLOGIN\tSECRET")
				for _, it := range items {
					secret := maskedSecret
					if show {
						secret = it.Secret
					}
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", it.ID, it.Description, it.Username, secret)
				}
				return w.Flush()
			})
		},
	}

	unlock.bind(cmd)
	cmd.Flags().BoolVar(&show, "show", false, "print secrets in clear text")
	return cmd
}

func newItemCopyCmd(a *application) *cobra.Command {
	var unlock unlockFlags

	cmd := &cobra.Command{
		Use:   "copy <username> <id>",
		Short: "Copy the secret of a stored credential to the clipboard",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]
			itemID, err := parseItemID(args[1])
			if err != nil {
				return err
			}

			return a.withVault(cmd, func(vault service.VaultService) error {
				item, err := a.findItem(cmd, vault, username, itemID, unlock)
				if err != nil {
					return err
				}

				if err = writeClipboard(item.Secret); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Secret of item %d copied to clipboard.\n", itemID)
				return nil
			})
		},
	}

	unlock.bind(cmd)
	return cmd
}

func newItemDeleteCmd(a *application) *cobra.Command {
	var unlock unlockFlags

	cmd := &cobra.Command{
		Use:   "delete <username> <id>",
		Short: "Delete a stored credential",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]
			itemID, err := parseItemID(args[1])
			if err != nil {
				return err
			}

			return a.withVault(cmd, func(vault service.VaultService) error {
				if _, err := a.findItem(cmd, vault, username, itemID, unlock); err != nil {
					return err
				}

				if err := vault.DeleteItem(cmd.Context(), itemID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Item %d deleted.\n", itemID)
				return nil
			})
		},
	}

	unlock.bind(cmd)
	return cmd
}

// findItem unlocks the vault of username and returns the item with itemID.
// Items of other users are reported as missing.
func (a *application) findItem(cmd *cobra.Command, vault service.VaultService, username string, itemID int64, unlock unlockFlags) (models.StoredItem, error) {
	key, err := a.unlock(cmd, vault, username, unlock)
	if err != nil {
		return models.StoredItem{}, err
	}
	defer key.Zero()

	items, err := vault.ReadItems(cmd.Context(), username, key)
	if err != nil {
		return models.StoredItem{}, err
	}

	for _, it := range items {
		if it.ID == itemID {
			return it, nil
		}
	}
	return models.StoredItem{}, service.ErrItemNotFound
}

func parseItemID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", errInvalidItemID, arg)
	}
	return id, nil
}
