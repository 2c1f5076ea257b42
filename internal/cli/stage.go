package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/piwi3910/MillPool/internal/model"
)

func stageCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "stage ID STAGE true|false",
		Short: "Mark a production stage of an order as done or not done",
		Long:  "Stages: milling, polishing, packaging, shipment, paid.",
		Args:  cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			stage, ok := model.ParseStage(args[1])
			if !ok {
				return fmt.Errorf("unknown stage %q", args[1])
			}
			done, err := strconv.ParseBool(args[2])
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[2], err)
			}
			order, err := e.backlog.SetStage(args[0], stage, done)
			if err != nil {
				return err
			}
			fmt.Printf("Order %s (%s): %s = %t\n", order.Number, order.ID, stage, done)
			return nil
		},
	}
}
