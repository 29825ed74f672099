package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cleared-dev/fintrack/internal/datecodec"
	"github.com/cleared-dev/fintrack/internal/model"
)

// DefaultSymbol prefixes every rendered amount.
const DefaultSymbol = "₹"

// Options controls how the transaction table is drawn.
type Options struct {
	Symbol string
	// Edit renders dates in DD/MM/YY form and shows IDs for update/remove.
	Edit bool
}

// Amount formats d with the currency symbol, two decimals and digit grouping.
func Amount(symbol string, d decimal.Decimal) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%s%.2f", symbol, d.Round(2).InexactFloat64())
}

// Table writes the transactions with a running balance column and a total
// footer. balances must be parallel to txns.
func Table(w io.Writer, txns []model.Transaction, balances []decimal.Decimal, total decimal.Decimal, opts Options) error {
	if len(txns) == 0 {
		_, err := fmt.Fprintln(w, "No transactions")
		return err
	}
	if len(balances) != len(txns) {
		return fmt.Errorf("rendering table: %d balances for %d transactions", len(balances), len(txns))
	}
	symbol := opts.Symbol
	if symbol == "" {
		symbol = DefaultSymbol
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if opts.Edit {
		fmt.Fprint(tw, "ID\t")
	}
	fmt.Fprintln(tw, "Date\tDescription\tType\tAmount\tTags\tBalance")

	for i, txn := range txns {
		date := txn.DateString()
		if opts.Edit {
			date = datecodec.FormatEditable(txn.Date)
			fmt.Fprintf(tw, "%d\t", txn.ID)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			date, txn.Description, txn.Type,
			Amount(symbol, txn.Amount), txn.Tags, Amount(symbol, balances[i]))
	}

	if opts.Edit {
		fmt.Fprint(tw, "\t")
	}
	fmt.Fprintf(tw, "\t\tTotal:\t%s\t\t\n", Amount(symbol, total))
	return tw.Flush()
}
