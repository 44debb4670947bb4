// ABOUTME: Transaction commands: list, add, update, delete
// ABOUTME: Lists support type, category, date range, and paging filters

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Depaula010/meusecretariofront/internal/client"
	"github.com/Depaula010/meusecretariofront/internal/router"
)

var (
	txFilters client.TransactionFilters
	txInput   client.TransactionRequest
)

var transactionsCmd = &cobra.Command{
	Use:     "transactions",
	Aliases: []string{"tx"},
	Short:   "Manage income and expense transactions",
}

var transactionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runTransactionsList(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var transactionsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a transaction",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runTransactionsAdd(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var transactionsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a transaction",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runTransactionsUpdate(ctx, os.Stdout, args[0]); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var transactionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a transaction",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runTransactionsDelete(ctx, os.Stdout, args[0]); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(transactionsCmd)
	transactionsCmd.AddCommand(transactionsListCmd, transactionsAddCmd, transactionsUpdateCmd, transactionsDeleteCmd)

	lf := transactionsListCmd.Flags()
	lf.StringVar(&txFilters.Tipo, "tipo", "", "Filter by type: receita or despesa")
	lf.StringVar(&txFilters.Categoria, "categoria", "", "Filter by category")
	lf.StringVar(&txFilters.DataInicio, "from", "", "Start date (YYYY-MM-DD)")
	lf.StringVar(&txFilters.DataFim, "to", "", "End date (YYYY-MM-DD)")
	lf.IntVar(&txFilters.Limit, "limit", 0, "Page size")
	lf.IntVar(&txFilters.Offset, "offset", 0, "Page offset")

	for _, c := range []*cobra.Command{transactionsAddCmd, transactionsUpdateCmd} {
		f := c.Flags()
		f.StringVar(&txInput.Tipo, "tipo", client.TipoDespesa, "receita or despesa")
		f.Float64Var(&txInput.Valor, "valor", 0, "Amount, greater than zero")
		f.StringVar(&txInput.Descricao, "descricao", "", "Description")
		f.StringVar(&txInput.Categoria, "categoria", "", "Category")
		f.StringVar(&txInput.Data, "data", "", "Date (YYYY-MM-DD, default today)")
		f.Int64Var(&txInput.ContaBancariaID, "conta", 0, "Bank account id")
		f.StringVar(&txInput.Observacoes, "obs", "", "Notes")
	}
}

type transactionsOutput struct {
	Transactions []client.Transaction    `json:"transactions"`
	Pagination   *client.Pagination      `json:"pagination,omitempty"`
	Stats        client.TransactionStats `json:"stats"`
}

// runTransactionsList lists transactions and returns exit code
func runTransactionsList(ctx context.Context, w io.Writer) int {
	d, err := newDeps()
	if err != nil {
		return setupError(w, err)
	}
	if !d.enter(w, router.PathTransactions) {
		return exitError
	}

	page, err := d.api.ListTransactions(ctx, txFilters)
	if err != nil {
		return fail(w, err)
	}

	out := transactionsOutput{Transactions: page.Transactions, Pagination: page.Pagination, Stats: client.Stats(page.Transactions)}
	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(out))
	} else {
		fmt.Fprintln(w, formatTransactionsHuman(out))
	}
	return exitOK
}

func formatTransactionsHuman(out transactionsOutput) string {
	if len(out.Transactions) == 0 {
		return "No transactions found"
	}

	rows := make([][]string, 0, len(out.Transactions))
	for _, tx := range out.Transactions {
		rows = append(rows, []string{
			strconv.FormatInt(tx.ID, 10), tx.Data, tx.Descricao, tx.Categoria, tx.ContaBancaria, signedAmount(tx.Tipo, tx.Valor),
		})
	}
	s := renderTable([]string{"ID", "Date", "Description", "Category", "Account", "Amount"}, rows)

	s += fmt.Sprintf("\nIncome %s  Expenses %s  Net %s",
		money(out.Stats.TotalReceitas), money(out.Stats.TotalDespesas), money(out.Stats.SaldoPeriodo))
	if p := out.Pagination; p != nil {
		end := p.Offset + len(out.Transactions)
		s += fmt.Sprintf("\nShowing %d-%d of %d", p.Offset+1, end, p.Total)
		if p.HasMore {
			s += fmt.Sprintf(" (next page: --offset %d)", end)
		}
	}
	return s
}

// transactionRequest fills defaults into the flag input
func transactionRequest() client.TransactionRequest {
	req := txInput
	if req.Data == "" {
		req.Data = time.Now().Format(client.DateLayout)
	}
	return req
}

// runTransactionsAdd creates a transaction and returns exit code
func runTransactionsAdd(ctx context.Context, w io.Writer) int {
	d, err := newDeps()
	if err != nil {
		return setupError(w, err)
	}
	if !d.enter(w, router.PathTransactions) {
		return exitError
	}

	tx, err := d.api.CreateTransaction(ctx, transactionRequest())
	if err != nil {
		return fail(w, err)
	}
	printTransaction(w, "Created", tx)
	return exitOK
}

// runTransactionsUpdate replaces a transaction and returns exit code
func runTransactionsUpdate(ctx context.Context, w io.Writer, rawID string) int {
	id, err := parseID(rawID)
	if err != nil {
		return setupError(w, err)
	}
	d, err := newDeps()
	if err != nil {
		return setupError(w, err)
	}
	if !d.enter(w, router.PathTransactions) {
		return exitError
	}

	tx, err := d.api.UpdateTransaction(ctx, id, transactionRequest())
	if err != nil {
		return fail(w, err)
	}
	printTransaction(w, "Updated", tx)
	return exitOK
}

// runTransactionsDelete deletes a transaction and returns exit code
func runTransactionsDelete(ctx context.Context, w io.Writer, rawID string) int {
	id, err := parseID(rawID)
	if err != nil {
		return setupError(w, err)
	}
	d, err := newDeps()
	if err != nil {
		return setupError(w, err)
	}
	if !d.enter(w, router.PathTransactions) {
		return exitError
	}

	if err := d.api.DeleteTransaction(ctx, id); err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(map[string]any{"deleted": id}))
	} else {
		fmt.Fprintf(w, "Deleted transaction %d\n", id)
	}
	return exitOK
}

func printTransaction(w io.Writer, verb string, tx *client.Transaction) {
	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(tx))
		return
	}
	fmt.Fprintf(w, "%s transaction %d: %s %s (%s)\n", verb, tx.ID, tx.Descricao, signedAmount(tx.Tipo, tx.Valor), tx.Data)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
