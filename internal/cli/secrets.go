package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/MKhiriev/go-pin-vault/internal/service"
	"github.com/MKhiriev/go-pin-vault/models"
)

var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// unlockFlags are the flags shared by every command that needs the master
// key.
type unlockFlags struct {
	pin         string
	password    string
	usePassword bool
}

func (u *unlockFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&u.pin, "pin", "", "PIN (prompted when empty)")
	cmd.Flags().StringVar(&u.password, "password", "", "password, used with --use-password (prompted when empty)")
	cmd.Flags().BoolVar(&u.usePassword, "use-password", false, "unlock with the password instead of the PIN")
}

// unlock opens a session for username. The caller owns the returned key and
// must zero it.
func (a *application) unlock(cmd *cobra.Command, vault service.VaultService, username string, u unlockFlags) (models.MasterKey, error) {
	if u.usePassword {
		password, err := a.secret(cmd, u.password, "Password: ")
		if err != nil {
			return nil, err
		}
		return vault.UnlockWithPassword(cmd.Context(), username, password)
	}

	pin, err := a.secret(cmd, u.pin, "PIN: ")
	if err != nil {
		return nil, err
	}
	return vault.UnlockWithPin(cmd.Context(), username, pin)
}

// secret returns value when it is set and prompts for it otherwise.
func (a *application) secret(cmd *cobra.Command, value, prompt string) (string, error) {
	if value != "" {
		return value, nil
	}
	return a.readSecret(cmd, prompt)
}

// newSecret is like secret but asks twice when prompting.
func (a *application) newSecret(cmd *cobra.Command, value, prompt, repeatPrompt string) (string, error) {
	if value != "" {
		return value, nil
	}

	first, err := a.readSecret(cmd, prompt)
	if err != nil {
		return "", err
	}
	second, err := a.readSecret(cmd, repeatPrompt)
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errSecretsDoNotMatch
	}
	return first, nil
}

// readSecret prompts on stderr and reads a secret without echo when stdin is
// a terminal.
func (a *application) readSecret(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)

	if f, ok := cmd.InOrStdin().(*os.File); ok && isTerminal(int(f.Fd())) {
		secret, err := readPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read secret: %w", err)
		}
		return string(secret), nil
	}

	return a.readLine(cmd)
}

// readLine reads one line from stdin. The reader is kept between calls so
// that buffered input is not lost across prompts.
func (a *application) readLine(cmd *cobra.Command) (string, error) {
	if a.in == nil {
		a.in = bufio.NewReader(cmd.InOrStdin())
	}

	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
