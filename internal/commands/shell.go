package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/google/shlex"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/fintrack/internal/datecodec"
	"github.com/cleared-dev/fintrack/internal/id"
	"github.com/cleared-dev/fintrack/internal/model"
	"github.com/cleared-dev/fintrack/internal/session"
)

const prompt = "fintrack> "

func newShellCommand(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session (state is discarded on exit)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := env.load(cmd)
			if err != nil {
				return err
			}
			return runShell(session.New(cfg, logger), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// runShell reads one command per line until EOF or "quit". A failing
// command prints its error and the session carries on.
func runShell(sess *session.Session, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, prompt)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			args, err := shlex.Split(line)
			switch {
			case err != nil:
				fmt.Fprintf(out, "error: %v\n", err)
			case len(args) == 0:
			case args[0] == "quit" || args[0] == "exit":
				return nil
			default:
				if err := dispatch(sess, out, args); err != nil {
					fmt.Fprintf(out, "error: %v\n", err)
				}
			}
		}
		fmt.Fprint(out, prompt)
	}
	fmt.Fprintln(out)
	return scanner.Err()
}

// dispatch runs one shell line through a fresh command tree so flag values
// never leak from one line to the next.
func dispatch(sess *session.Session, out io.Writer, args []string) error {
	root := &cobra.Command{
		Use:           "shell",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.AddCommand(
		newAddCommand(sess),
		newShellImportCommand(sess),
		newUpdateCommand(sess),
		newRemoveCommand(sess),
		newListCommand(sess),
		newTotalCommand(sess),
		newExportCommand(sess),
		newHistoryCommand(sess),
	)
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	return root.Execute()
}

func newAddCommand(sess *session.Session) *cobra.Command {
	var date, typ, amount, description, tags string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := model.Draft{
				Date:        sess.Today(),
				Description: description,
				Tags:        tags,
			}
			if date != "" {
				parsed, err := datecodec.Parse(date)
				if err != nil {
					return err
				}
				d.Date = parsed
			}

			t, err := model.ParseType(typ)
			if err != nil {
				return err
			}
			d.Type = t

			amt, err := decimal.NewFromString(strings.TrimSpace(amount))
			if err != nil {
				return fmt.Errorf("invalid amount %q", amount)
			}
			d.Amount = amt

			txn, err := sess.Add(d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added #%s\n", id.Format(txn.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD or DD/MM/YY (default today)")
	cmd.Flags().StringVar(&typ, "type", string(model.TypeExpense), "income or expense")
	cmd.Flags().StringVar(&amount, "amount", "", "amount, greater than zero")
	cmd.Flags().StringVarP(&description, "description", "d", "", "description")
	cmd.Flags().StringVar(&tags, "tags", "", "tags")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newShellImportCommand(sess *session.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a bank statement worksheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := sess.ImportFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d transactions\n", len(res.Added))
			if res.Report.DateFallbacks > 0 {
				fmt.Fprintf(out, "%d rows had no readable date and were dated today\n", res.Report.DateFallbacks)
			}
			if res.Report.AmountFallbacks > 0 {
				fmt.Fprintf(out, "%d rows had unreadable amounts, treated as zero\n", res.Report.AmountFallbacks)
			}
			return nil
		},
	}
}

func newUpdateCommand(sess *session.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> <field> <value>",
		Short: "Change one field (date, description, type, amount, tags)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			txnID, err := id.Parse(args[0])
			if err != nil {
				return err
			}
			field, err := model.ParseField(args[1])
			if err != nil {
				return err
			}
			if _, err := sess.Update(txnID, field, args[2]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated #%s\n", id.Format(txnID))
			return nil
		},
	}
}

func newRemoveCommand(sess *session.Session) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a transaction",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			txnID, err := id.Parse(args[0])
			if err != nil {
				return err
			}
			if sess.Remove(txnID) {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed #%s\n", id.Format(txnID))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "No transaction #%s\n", id.Format(txnID))
			}
			return nil
		},
	}
}

func newListCommand(sess *session.Session) *cobra.Command {
	var edit bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the transaction table",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return sess.Render(cmd.OutOrStdout(), edit)
		},
	}

	cmd.Flags().BoolVar(&edit, "edit", false, "show IDs and editable DD/MM/YY dates")
	return cmd
}

func newTotalCommand(sess *session.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "total",
		Short: "Show income minus expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Total: %s\n", sess.FormatAmount(sess.Total()))
			return nil
		},
	}
}

func newExportCommand(sess *session.Session) *cobra.Command {
	var dir string
	var toStdout bool

	cmd := &cobra.Command{
		Use:       "export <csv|json>",
		Short:     "Export the transactions",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"csv", "json"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if toStdout {
				var body string
				var err error
				if args[0] == "csv" {
					body, err = sess.ExportCSV()
				} else {
					body, err = sess.ExportJSON()
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(out, body)
				return nil
			}

			var path string
			var err error
			if args[0] == "csv" {
				path, err = sess.SaveCSV(dir)
			} else {
				path, err = sess.SaveJSON(dir)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "directory the file is written to")
	cmd.Flags().BoolVar(&toStdout, "print", false, "print the document instead of saving it")
	return cmd
}

func newHistoryCommand(sess *session.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show what happened in this session, as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return sess.WriteHistory(cmd.OutOrStdout())
		},
	}
}
