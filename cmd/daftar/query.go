package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/daftar/internal/debt"
	"github.com/MrJamesThe3rd/daftar/internal/query"
)

type queryFlags struct {
	file     string
	debtType string
	status   string
	debtor   string
	search   string
	branch   int
	from     string
	to       string
	sortKey  string
	dir      string
	toggle   string
	locale   string
}

func newQueryCmd(a *app) *cobra.Command {
	var f queryFlags

	cmd := &cobra.Command{
		Use:   "query",
		Short: "List entries matching a query, with totals",
		Long: `query filters and sorts debt entries. Options come from a YAML file
(--file) and are then overridden by any flag given on the command line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := f.descriptor(cmd)
			if err != nil {
				return err
			}

			if d.Locale == "" {
				d.Locale = a.cfg.Ledger.CollationLocale
			}

			if err := d.Validate(); err != nil {
				return err
			}

			svc, release, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			res, err := svc.Query(cmd.Context(), d)
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), toQueryResponse(res))
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.file, "file", "", "YAML query descriptor")
	flags.StringVar(&f.debtType, "type", "", "debt type: all, given or taken")
	flags.StringVar(&f.status, "status", "", "status: all, returned or unreturned")
	flags.StringVar(&f.debtor, "debtor", "", "exact debtor name, case-insensitive")
	flags.StringVar(&f.search, "search", "", "substring of the debtor name")
	flags.IntVar(&f.branch, "branch", 0, "branch ID")
	flags.StringVar(&f.from, "from", "", "first day of the date range (YYYY-MM-DD)")
	flags.StringVar(&f.to, "to", "", "last day of the date range (YYYY-MM-DD)")
	flags.StringVar(&f.sortKey, "sort", "", "sort key: date, name, amount or isReturned")
	flags.StringVar(&f.dir, "dir", "", "sort direction: asc or desc")
	flags.StringVar(&f.toggle, "toggle", "", "apply a column header click: flip the direction of the active key or switch to a new one")
	flags.StringVar(&f.locale, "locale", "", "collation locale for name sorting")

	return cmd
}

func (f *queryFlags) descriptor(cmd *cobra.Command) (query.Descriptor, error) {
	d := query.DefaultDescriptor()

	if f.file != "" {
		file, err := os.Open(f.file)
		if err != nil {
			return d, fmt.Errorf("open query: %w", err)
		}
		defer file.Close()

		if d, err = query.Decode(file); err != nil {
			return d, err
		}
	}

	changed := cmd.Flags().Changed

	if changed("type") {
		d.DebtType = debt.Type(f.debtType)
	}

	if changed("status") {
		d.Status = query.Status(f.status)
	}

	if changed("debtor") {
		d.DebtorName = &f.debtor
	}

	if changed("search") {
		d.Search = f.search
	}

	if changed("branch") {
		d.BranchID = &f.branch
	}

	if changed("from") || changed("to") {
		r, err := dateRange(f.from, f.to)
		if err != nil {
			return d, err
		}

		d.DateRange = r
	}

	if changed("sort") {
		d.SortKey = query.SortKey(f.sortKey)
	}

	if changed("dir") {
		d.SortDirection = query.Direction(f.dir)
	}

	if changed("toggle") {
		d.SortKey, d.SortDirection = query.ToggleSort(d.SortKey, d.SortDirection, query.SortKey(f.toggle))
	}

	if changed("locale") {
		d.Locale = f.locale
	}

	return d, nil
}

func dateRange(from, to string) (*query.DateRange, error) {
	if from == "" || to == "" {
		return nil, fmt.Errorf("--from and --to must be given together")
	}

	start, err := time.Parse(time.DateOnly, from)
	if err != nil {
		return nil, fmt.Errorf("parse --from: %w", err)
	}

	end, err := time.Parse(time.DateOnly, to)
	if err != nil {
		return nil, fmt.Errorf("parse --to: %w", err)
	}

	return &query.DateRange{Start: start, End: end}, nil
}
