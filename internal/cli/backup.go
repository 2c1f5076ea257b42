package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/MillPool/internal/project"
)

func backupCmd(e *env) *cobra.Command {
	c := &cobra.Command{
		Use:   "backup",
		Short: "Back up or restore the config and backlog",
	}
	c.AddCommand(
		&cobra.Command{
			Use:   "create FILE",
			Short: "Write config and orders into one backup file",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				if err := project.ExportAllData(args[0], e.config, e.backlog); err != nil {
					return err
				}
				fmt.Printf("Backup written to %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "restore FILE",
			Short: "Replace config and orders with the contents of a backup",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				config, err := project.RestoreAllData(args[0], e.backlog)
				if err != nil {
					return err
				}
				if err := project.SaveAppConfig(e.configPath, config); err != nil {
					return err
				}
				fmt.Printf("Restored %d order(s)\n", len(e.backlog.Orders()))
				return nil
			},
		},
	)
	return c
}
