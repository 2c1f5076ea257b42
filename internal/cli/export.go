package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/MillPool/internal/export"
	"github.com/piwi3910/MillPool/internal/model"
)

func exportCmd(e *env) *cobra.Command {
	var date string

	c := &cobra.Command{
		Use:       "export pdf|labels|xlsx|chart FILE",
		Short:     "Export the current pool as a document",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"pdf", "labels", "xlsx", "chart"},
		RunE: func(_ *cobra.Command, args []string) error {
			today, err := parseDay(date)
			if err != nil {
				return err
			}
			pool := e.backlog.CurrentPool(e.selector, today)
			if err := exportPool(args[0], args[1], pool, e.selector.Settings, today); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", args[1])
			return nil
		},
	}

	c.Flags().StringVar(&date, "date", "", "Plan for this day instead of today (YYYY-MM-DD)")
	return c
}

func exportPool(kind, path string, pool model.Pool, settings model.PoolSettings, today time.Time) error {
	switch kind {
	case "pdf":
		return export.ExportPDF(path, pool, settings, today)
	case "labels":
		return export.ExportLabels(path, pool)
	case "xlsx":
		return export.ExportExcel(path, pool, settings, today)
	case "chart":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := export.RenderChart(f, pool, settings); err != nil {
			f.Close()
			_ = os.Remove(path)
			return err
		}
		return f.Close()
	default:
		return fmt.Errorf("unsupported export %q (expected pdf|labels|xlsx|chart)", kind)
	}
}
