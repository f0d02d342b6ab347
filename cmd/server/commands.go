package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/catalog"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/config"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/platform/logger"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/platform/postgres"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/auth"
)

type rootOptions struct {
	envFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "coach",
		Short:         "Vocabulary coach backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	root.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newImportWordsCmd(opts),
		newTokenCmd(opts),
	)
	return root
}

// bootstrap loads configuration and the process logger shared by every command.
func bootstrap(opts *rootOptions) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFromEnvFile(opts.envFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	l.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))
	return cfg, l, nil
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, l, err := bootstrap(opts)
			if err != nil {
				return err
			}

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			app, err := newApplication(ctx, cfg, l)
			if err != nil {
				return err
			}
			defer app.cleanup()

			return app.serve(ctx)
		},
	}
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [" + strings.Join(postgres.MigrationCommands, "|") + "]",
		Short:     "Apply or inspect database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: postgres.MigrationCommands,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, l, err := bootstrap(opts)
			if err != nil {
				return err
			}
			db, err := openDatabase(cmd.Context(), cfg.Database, l)
			if err != nil {
				return err
			}
			defer db.Close()

			return postgres.RunMigrations(cmd.Context(), db.DB, args[0], l)
		},
	}
}

type importOptions struct {
	sheet         string
	clearExisting bool
}

func newImportWordsCmd(opts *rootOptions) *cobra.Command {
	iopts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import-words <file.xlsx|file.csv>",
		Short: "Import catalog words from a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, l, err := bootstrap(opts)
			if err != nil {
				return err
			}

			sheet, err := catalog.ReadFile(args[0], iopts.sheet)
			if err != nil {
				return err
			}
			for _, re := range sheet.Errors {
				l.Warn("skipping row", slog.Int("row", re.Row), slog.String("reason", re.Message))
			}

			app, err := newApplication(cmd.Context(), cfg, l)
			if err != nil {
				return err
			}
			defer app.cleanup()

			res, err := app.catalogService.ImportWords(cmd.Context(), catalog.ImportRequest{
				Entries:       sheet.Entries,
				ClearExisting: iopts.clearExisting,
			})
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d, skipped %d, cleared %d, invalid rows %d\n",
				res.Imported, res.Skipped, res.Cleared, len(sheet.Errors))
			return nil
		},
	}
	cmd.Flags().StringVar(&iopts.sheet, "sheet", "", "worksheet name (xlsx only, defaults to the first sheet)")
	cmd.Flags().BoolVar(&iopts.clearExisting, "clear", false, "delete every catalog word before importing")
	return cmd
}

type tokenOptions struct {
	userID string
	role   string
}

func newTokenCmd(opts *rootOptions) *cobra.Command {
	to := &tokenOptions{}

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for local testing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := bootstrap(opts)
			if err != nil {
				return err
			}
			token, err := mintToken(cmd.Context(), cfg.Auth, to)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&to.userID, "user", "", "user id (a new one is generated when empty)")
	cmd.Flags().StringVar(&to.role, "role", auth.RoleLearner, "token role: learner or admin")
	return cmd
}

func mintToken(ctx context.Context, cfg config.AuthConfig, to *tokenOptions) (string, error) {
	userID := uuid.New()
	if to.userID != "" {
		parsed, err := uuid.Parse(to.userID)
		if err != nil {
			return "", fmt.Errorf("invalid user id: %w", err)
		}
		userID = parsed
	}

	jwtService, err := auth.NewJWTService(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to create JWT service: %w", err)
	}
	return jwtService.GenerateToken(ctx, userID, to.role)
}

