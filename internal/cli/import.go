package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/MillPool/internal/importer"
	"github.com/piwi3910/MillPool/internal/logger"
)

func importCmd(e *env) *cobra.Command {
	var dryRun bool

	c := &cobra.Command{
		Use:   "import FILE",
		Short: "Import orders from a CSV or Excel file into the backlog",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			res := importer.ImportFile(args[0])

			for _, w := range res.Warnings {
				fmt.Fprintf(os.Stderr, "warning: %s\n", w)
			}
			for _, er := range res.Errors {
				fmt.Fprintf(os.Stderr, "error: %s\n", er)
			}
			if !res.OK() {
				return fmt.Errorf("no orders imported from %s", args[0])
			}
			if dryRun {
				fmt.Printf("%d order(s) parsed, nothing saved\n", len(res.Orders))
				return nil
			}

			added, err := e.backlog.Add(res.Orders...)
			if err != nil {
				return err
			}
			logger.L().Info("import.done", "file", args[0], "orders", len(added), "errors", len(res.Errors), "warnings", len(res.Warnings))
			fmt.Printf("Imported %d order(s) into %s\n", len(added), e.backlog.Path())
			return nil
		},
	}

	c.Flags().BoolVar(&dryRun, "dry-run", false, "Parse the file without saving")
	return c
}
