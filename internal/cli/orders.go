package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/MillPool/internal/engine"
	"github.com/piwi3910/MillPool/internal/model"
)

func ordersCmd(e *env) *cobra.Command {
	var queue string
	var format string

	c := &cobra.Command{
		Use:   "orders",
		Short: "List orders of a station queue",
		RunE: func(_ *cobra.Command, _ []string) error {
			var orders []model.Order
			switch queue {
			case "milling":
				orders = e.backlog.MillingQueue()
			case "polishing":
				orders = e.backlog.PolishingQueue()
			case "monitor":
				orders = e.backlog.MonitorQueue()
			case "open", "":
				orders = e.backlog.Open()
			default:
				return fmt.Errorf("unknown queue %q (expected open|milling|polishing|monitor)", queue)
			}
			return printOrders(os.Stdout, orders, model.Today(), e.selector.Settings.UrgentDaysThreshold, format)
		},
	}

	c.Flags().StringVarP(&queue, "queue", "q", "open", "Queue: open|milling|polishing|monitor")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func printOrders(w io.Writer, orders []model.Order, today time.Time, threshold int, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(orders)
	case "pretty", "":
		if len(orders) == 0 {
			fmt.Fprintln(w, "(no orders)")
			return nil
		}
		th := defaultTheme()
		for _, o := range orders {
			days := engine.DaysLeft(o, today)
			line := fmt.Sprintf("- %-8s %-10s %-24s %-8s %8s m2  due %s",
				o.ID, o.Number, o.Client, o.FacadeType, model.FormatArea(o.Area), o.DueDate.Format("2006-01-02"))
			if engine.IsUrgent(o, today, threshold) {
				line = th.Urgent.Render(line)
			}
			fmt.Fprintf(w, "%s  (%+d d)\n", line, days)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}
