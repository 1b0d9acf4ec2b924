package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-pin-vault/internal/passgen"
)

func newGenerateCmd(_ *application) *cobra.Command {
	var (
		length    int
		noUpper   bool
		noLower   bool
		noDigits  bool
		noSymbols bool
		copyOut   bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random password",
		Long: `Generates a random password that contains at least one character of
every selected class. Symbols are drawn from !#@$%_.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := passgen.Options{
				Upper:   !noUpper,
				Lower:   !noLower,
				Digits:  !noDigits,
				Symbols: !noSymbols,
			}

			password, ok := passgen.Generate(length, opts)
			if !ok {
				return errGenerationFailed
			}

			if copyOut {
				if err := writeClipboard(password); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Password copied to clipboard.")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), password)
			return nil
		},
	}

	cmd.Flags().IntVarP(&length, "length", "l", passgen.DefaultLength, "password length")
	cmd.Flags().BoolVar(&noUpper, "no-upper", false, "exclude upper-case letters")
	cmd.Flags().BoolVar(&noLower, "no-lower", false, "exclude lower-case letters")
	cmd.Flags().BoolVar(&noDigits, "no-digits", false, "exclude digits")
	cmd.Flags().BoolVar(&noSymbols, "no-symbols", false, "exclude symbols")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "copy the password to the clipboard instead of printing it")
	return cmd
}
