package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func acceptCmd(e *env) *cobra.Command {
	var date string

	c := &cobra.Command{
		Use:   "accept",
		Short: "Accept the current pool and mark its orders as milled",
		RunE: func(_ *cobra.Command, _ []string) error {
			today, err := parseDay(date)
			if err != nil {
				return err
			}
			pool, err := e.backlog.AcceptPool(e.selector, today)
			if err != nil {
				return err
			}
			if pool.Empty() {
				fmt.Println("(no orders to mill)")
				return nil
			}
			fmt.Printf("Accepted %d order(s) via %s:\n", len(pool.Orders), pool.Path)
			return printPool(os.Stdout, pool, e.selector.Settings, today, nil, "pretty")
		},
	}

	c.Flags().StringVar(&date, "date", "", "Plan for this day instead of today (YYYY-MM-DD)")
	return c
}
