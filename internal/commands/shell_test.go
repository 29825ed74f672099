package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runShellScript(t *testing.T, lines ...string) string {
	t.Helper()
	out, _, err := runFintrack(t, strings.Join(lines, "\n")+"\n", "shell")
	require.NoError(t, err)
	return out
}

func TestShell_AddTotalList(t *testing.T) {
	out := runShellScript(t,
		`add --amount 100 --type income --date 2023-05-01 -d Salary`,
		`add --amount 40 --date 02/05/23 --description "Lunch at cafe" --tags food`,
		`total`,
		`list`,
		`quit`,
	)
	assert.Contains(t, out, "Added #1")
	assert.Contains(t, out, "Added #2")
	assert.Contains(t, out, "Total: ₹60.00")
	assert.Contains(t, out, "Lunch at cafe")
	assert.Contains(t, out, "2023-05-02")
}

func TestShell_RejectsNonPositiveAmount(t *testing.T) {
	out := runShellScript(t,
		`add --amount 0`,
		`add --amount abc`,
		`add`,
		`total`,
	)
	assert.Contains(t, out, "error: invalid amount: must be greater than zero")
	assert.Contains(t, out, `error: invalid amount "abc"`)
	assert.Contains(t, out, `error: required flag(s) "amount" not set`)
	assert.Contains(t, out, "Total: ₹0.00")
}

func TestShell_UpdateAndRemove(t *testing.T) {
	out := runShellScript(t,
		`add --amount 100 --type income --date 2023-05-01`,
		`add --amount 40 --date 2023-05-02`,
		`update 2 amount 50`,
		`update 2 date 09/05/23`,
		`update 9 amount 1`,
		`update 2 colour red`,
		`remove 1`,
		`remove 1`,
		`list --edit`,
		`total`,
	)
	assert.Contains(t, out, "Updated #2")
	assert.Contains(t, out, "error: updating 9: transaction not found")
	assert.Contains(t, out, `error: unknown field "colour"`)
	assert.Contains(t, out, "Removed #1")
	assert.Contains(t, out, "No transaction #1")
	assert.Contains(t, out, "09/05/23")
	assert.Contains(t, out, "Total: ₹-50.00")
}

func TestShell_ImportAndExport(t *testing.T) {
	path := writeStatement(t)
	dir := t.TempDir()
	out := runShellScript(t,
		"import "+path,
		"export csv --print",
		"export json --dir "+dir,
		"history",
	)
	assert.Contains(t, out, "Imported 3 transactions")
	assert.Contains(t, out, "1 rows had no readable date and were dated today")
	assert.Contains(t, out, "Date,Description,Type,Amount,Tags\n2023-05-01,Rent,expense,500,")
	assert.Contains(t, out, "Wrote "+filepath.Join(dir, "transactions.json"))
	assert.Contains(t, out, "timestamp,action,details,transaction_id,batch_id")
	assert.Contains(t, out, "3 rows from statement.csv")

	_, err := os.Stat(filepath.Join(dir, "transactions.json"))
	assert.NoError(t, err)
}

func TestShell_ExportEmpty(t *testing.T) {
	out := runShellScript(t, "export csv --print", "export json --print", "export xml")
	assert.Contains(t, out, "error: no transactions to export")
	assert.Contains(t, out, "[]")
	assert.Contains(t, out, `error: invalid argument "xml"`)
}

func TestShell_ImportFailureKeepsSession(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(bad, []byte("garbage"), 0o644))

	out := runShellScript(t,
		`add --amount 5 --date 2023-01-01`,
		"import "+bad,
		`total`,
	)
	assert.Contains(t, out, "error: decoding broken.xlsx")
	assert.Contains(t, out, "Total: ₹-5.00")
}

func TestShell_UnknownCommandAndQuoting(t *testing.T) {
	out := runShellScript(t, `bogus`, `add --amount 1 -d "unterminated`, `exit`, `total`)
	assert.Contains(t, out, `error: unknown command "bogus"`)
	assert.Contains(t, out, "error: ")
	assert.NotContains(t, out, "Total:", "nothing runs after exit")
}
