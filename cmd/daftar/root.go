package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/daftar/internal/config"
	"github.com/MrJamesThe3rd/daftar/internal/database"
	debtStore "github.com/MrJamesThe3rd/daftar/internal/debt/store"
	financeStore "github.com/MrJamesThe3rd/daftar/internal/finance/store"
	"github.com/MrJamesThe3rd/daftar/internal/importer"
	"github.com/MrJamesThe3rd/daftar/internal/ledger"
	"github.com/MrJamesThe3rd/daftar/internal/logging"
)

type app struct {
	cfg         *config.Config
	entriesPath string
	financePath string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "daftar",
		Short: "Reconcile and query a shop debt ledger",
		Long: `daftar reads debt entries and finance records, either from PostgreSQL or
from export files, and reports per-debtor balances, filtered entry lists and
debtor name suggestions as JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logging.Setup(cmd.ErrOrStderr(), cfg.App.LogLevel)
			a.cfg = cfg

			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.entriesPath, "entries", "",
		"read debt entries from a JSON export instead of the database")
	root.PersistentFlags().StringVar(&a.financePath, "finance", "",
		"finance records export (JSON or CSV), used together with --entries")

	root.AddCommand(
		newDebtorsCmd(a),
		newQueryCmd(a),
		newSuggestCmd(a),
		newItemsCmd(),
	)

	return root
}

// service builds the ledger service over export files when --entries is set
// and over the database otherwise. The returned func releases the source.
func (a *app) service(ctx context.Context) (*ledger.Service, func(), error) {
	takenBranchID := a.cfg.Ledger.TakenBranchID

	if a.entriesPath != "" {
		src, err := importer.Open(a.entriesPath, a.financePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open exports: %w", err)
		}

		slog.Debug("reading export files", "entries", a.entriesPath, "finance", a.financePath)

		return ledger.NewService(src, src, takenBranchID), func() {}, nil
	}

	if a.financePath != "" {
		return nil, nil, fmt.Errorf("--finance requires --entries")
	}

	pingCtx, cancel := context.WithTimeout(ctx, a.cfg.DB.Timeout)
	defer cancel()

	db, err := database.New(pingCtx, a.cfg.ConnectionString(), database.Options{
		MaxOpenConns:    a.cfg.DB.MaxOpenConns,
		MaxIdleConns:    a.cfg.DB.MaxIdleConns,
		ConnMaxLifetime: a.cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	closeDB := func() {
		if err := db.Close(); err != nil {
			slog.Warn("closing database", "error", err)
		}
	}

	return ledger.NewService(debtStore.New(db), financeStore.New(db), takenBranchID), closeDB, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	return enc.Encode(v)
}
