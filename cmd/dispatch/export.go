package main

import (
	"fmt"
	"io"
	"time"

	"github.com/mark3labs/dispatch/internal/calendar"
	"github.com/mark3labs/dispatch/internal/document"
	"github.com/mark3labs/dispatch/internal/draft"
	"github.com/mark3labs/dispatch/internal/export"
	"github.com/mark3labs/dispatch/internal/store"
	"github.com/spf13/cobra"
)

var exportFlags struct {
	from  string
	to    string
	certs bool
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export records for office reconciliation",
}

var exportXLSXCmd = &cobra.Command{
	Use:   "xlsx",
	Short: "Export service calls in a date range to an XLSX workbook",
	Long: `Export service calls in a date range to an XLSX workbook, one row per call.

The range defaults to the current month. With --certificates the workbook also
gets a sheet of the delivery certificates in the same range.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, err := exportRange(time.Now())
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		st, cleanup, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		q := store.Query{OrderBy: draft.FieldDate}
		calls, err := st.ListServiceCalls(ctx, q)
		if err != nil {
			return err
		}
		calls = inRange(calls, from, to)

		var certs []*store.Certificate
		if exportFlags.certs {
			all, err := st.ListCertificates(ctx, q)
			if err != nil {
				return err
			}
			certs = inRange(all, from, to)
		}

		title := fmt.Sprintf("Service calls %s to %s", from, to)
		name := document.FileName("service-calls", "", from+"_"+to, "xlsx")
		path, err := document.WriteFile(cfg.OutputDir, name, func(w io.Writer) error {
			return export.Write(w, title, calls, certs)
		})
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %d service call(s) to %s\n", len(calls), path)
		return nil
	},
}

func init() {
	exportCmd.AddCommand(exportXLSXCmd)

	exportXLSXCmd.Flags().StringVar(&exportFlags.from, "from", "", "First date, YYYY-MM-DD (default: start of this month)")
	exportXLSXCmd.Flags().StringVar(&exportFlags.to, "to", "", "Last date, YYYY-MM-DD (default: end of this month)")
	exportXLSXCmd.Flags().BoolVar(&exportFlags.certs, "certificates", false, "Add a certificates sheet")
}

// exportRange resolves the --from/--to flags, defaulting to now's month.
func exportRange(now time.Time) (from, to string, err error) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	from = first.Format(calendar.DateLayout)
	to = first.AddDate(0, 1, -1).Format(calendar.DateLayout)

	if exportFlags.from != "" {
		if _, err := time.Parse(calendar.DateLayout, exportFlags.from); err != nil {
			return "", "", fmt.Errorf("invalid --from %q (want YYYY-MM-DD)", exportFlags.from)
		}
		from = exportFlags.from
	}
	if exportFlags.to != "" {
		if _, err := time.Parse(calendar.DateLayout, exportFlags.to); err != nil {
			return "", "", fmt.Errorf("invalid --to %q (want YYYY-MM-DD)", exportFlags.to)
		}
		to = exportFlags.to
	}
	if from > to {
		return "", "", fmt.Errorf("--from %s is after --to %s", from, to)
	}
	return from, to, nil
}

// inRange keeps records dated from..to inclusive. Dates are YYYY-MM-DD so
// they compare lexically.
func inRange[T store.Record](records []T, from, to string) []T {
	var out []T
	for _, r := range records {
		if d := r.Value(draft.FieldDate); d >= from && d <= to {
			out = append(out, r)
		}
	}
	return out
}
