package cli

import (
	"bufio"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-pin-vault/internal/config"
	"github.com/MKhiriev/go-pin-vault/internal/logger"
	"github.com/MKhiriev/go-pin-vault/internal/service"
	"github.com/MKhiriev/go-pin-vault/internal/store"
	"github.com/MKhiriev/go-pin-vault/models"
)

const appName = "vault"

// application carries the state shared by all commands of one invocation.
type application struct {
	flags     *config.StructuredConfig
	cfg       *config.StructuredConfig
	logger    *logger.Logger
	buildInfo models.AppBuildInfo

	in *bufio.Reader
}

// Execute builds the command tree, runs it with the process arguments and
// returns the process exit code.
func Execute(ctx context.Context, info models.AppBuildInfo) int {
	cmd := NewRootCmd(info)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", userMessage(err))
		return exitCode(err)
	}
	return 0
}

// NewRootCmd returns a fresh root command. Each call creates independent
// flag storage, so tests can build as many trees as they need.
func NewRootCmd(info models.AppBuildInfo) *cobra.Command {
	fs, flags := config.NewFlagSet(appName)
	a := &application{
		flags:     flags,
		buildInfo: info,
		logger:    logger.Nop(),
	}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Local credential vault protected by a password and a PIN",
		Long: `vault keeps site credentials in a local SQLite database.
Every user owns a random master key that encrypts their items. The master
key is stored twice, once wrapped under the user's password and once under
their PIN, so either secret unlocks the same items.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	cmd.PersistentFlags().AddGoFlagSet(fs)

	cmd.AddCommand(
		newUserCmd(a),
		newItemCmd(a),
		newGenerateCmd(a),
		newVersionCmd(a),
	)

	return cmd
}

// setup resolves the configuration and the logger before any command runs.
func (a *application) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.GetStructuredConfig(a.flags)
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}
	a.cfg = cfg

	if err = logger.SetLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("error setting log level: %w", err)
	}
	a.logger = logger.NewClientLogger(appName, cfg.Log.File).GetChildLogger()
	a.logger.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("invocation_id", uuid.NewString())
	})
	cmd.SetContext(a.logger.WithContext(cmd.Context()))

	a.logger.Debug().Str("command", cmd.CommandPath()).Msg("command started")
	return nil
}

// withVault opens the storage, runs fn against a fresh vault service and
// closes the storage again. Any open session is closed before returning.
func (a *application) withVault(cmd *cobra.Command, fn func(vault service.VaultService) error) error {
	storages, err := store.NewStorages(cmd.Context(), a.cfg.Storage.DB, a.logger)
	if err != nil {
		a.logger.Err(err).Msg("error opening storages")
		return fmt.Errorf("%w: %w", service.ErrStorage, err)
	}
	defer func() {
		if closeErr := storages.Close(); closeErr != nil {
			a.logger.Err(closeErr).Msg("error closing storages")
		}
	}()

	vault := service.NewServices(storages, a.logger).VaultService
	defer vault.Logout()

	return fn(vault)
}
