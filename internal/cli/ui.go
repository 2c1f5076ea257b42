package cli

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/MillPool/internal/ui"
)

func uiCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the milling station window",
		RunE: func(_ *cobra.Command, _ []string) error {
			ui.Run(ui.Deps{
				Backlog:    e.backlog,
				Config:     e.config,
				ConfigPath: e.configPath,
			})
			return nil
		},
	}
}
