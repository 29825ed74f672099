package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/fintrack/internal/session"
)

func newImportCommand(env *environment) *cobra.Command {
	var writeCSV bool
	var writeJSON bool
	var outDir string
	var edit bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a bank statement worksheet and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := env.load(cmd)
			if err != nil {
				return err
			}
			sess := session.New(cfg, logger)

			res, err := sess.ImportFile(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d transactions\n", len(res.Added))
			if err := sess.Render(out, edit); err != nil {
				return err
			}

			if writeCSV {
				path, err := sess.SaveCSV(outDir)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote %s\n", path)
			}
			if writeJSON {
				path, err := sess.SaveJSON(outDir)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&writeCSV, "csv", false, "write a CSV export")
	cmd.Flags().BoolVar(&writeJSON, "json", false, "write a JSON export")
	cmd.Flags().StringVar(&outDir, "dir", ".", "directory exports are written to")
	cmd.Flags().BoolVar(&edit, "edit", false, "show IDs and editable DD/MM/YY dates")

	return cmd
}
