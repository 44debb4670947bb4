// ABOUTME: Bank account commands: list, add, update, delete
// ABOUTME: Credit cards carry a limit and due/closing days

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Depaula010/meusecretariofront/internal/client"
	"github.com/Depaula010/meusecretariofront/internal/router"
)

var accountInput client.BankAccountRequest

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Manage bank accounts and credit cards",
}

var accountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runAccountsList(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var accountsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an account",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runAccountsAdd(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var accountsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace an account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runAccountsUpdate(ctx, os.Stdout, args[0]); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var accountsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runAccountsDelete(ctx, os.Stdout, args[0]); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(accountsCmd)
	accountsCmd.AddCommand(accountsListCmd, accountsAddCmd, accountsUpdateCmd, accountsDeleteCmd)

	for _, c := range []*cobra.Command{accountsAddCmd, accountsUpdateCmd} {
		f := c.Flags()
		f.StringVar(&accountInput.Nome, "nome", "", "Account name")
		f.StringVar(&accountInput.Tipo, "tipo", client.AccountCorrente, "Type: "+strings.Join(client.AccountTypes, ", "))
		f.StringVar(&accountInput.Banco, "banco", "", "Bank name")
		f.Float64Var(&accountInput.Saldo, "saldo", 0, "Current balance")
		f.StringVar(&accountInput.Cor, "cor", "", "Display color (hex)")
		f.Float64Var(&accountInput.Limite, "limite", 0, "Credit limit")
		f.IntVar(&accountInput.DiaVencimento, "dia-vencimento", 0, "Due day (1-31)")
		f.IntVar(&accountInput.DiaFechamento, "dia-fechamento", 0, "Closing day (1-31)")
	}
}

// runAccountsList lists accounts and returns exit code
func runAccountsList(ctx context.Context, w io.Writer) int {
	d, err := newDeps()
	if err != nil {
		return setupError(w, err)
	}
	if !d.enter(w, router.PathAccounts) {
		return exitError
	}

	accounts, err := d.api.ListAccounts(ctx)
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(accounts))
	} else {
		fmt.Fprintln(w, formatAccountsHuman(accounts))
	}
	return exitOK
}

func formatAccountsHuman(accounts []client.BankAccount) string {
	if len(accounts) == 0 {
		return "No accounts found"
	}

	var total float64
	rows := make([][]string, 0, len(accounts))
	for _, a := range accounts {
		total += a.Saldo
		card := ""
		if a.Tipo == client.AccountCartaoCredito {
			card = fmt.Sprintf("limit %s, due %d, closes %d", money(a.Limite), a.DiaVencimento, a.DiaFechamento)
		}
		rows = append(rows, []string{strconv.FormatInt(a.ID, 10), a.Nome, a.Banco, a.Tipo, money(a.Saldo), card})
	}
	return renderTable([]string{"ID", "Name", "Bank", "Type", "Balance", "Card"}, rows) +
		fmt.Sprintf("\nTotal balance %s", money(total))
}

// runAccountsAdd creates an account and returns exit code
func runAccountsAdd(ctx context.Context, w io.Writer) int {
	d, err := newDeps()
	if err != nil {
		return setupError(w, err)
	}
	if !d.enter(w, router.PathAccounts) {
		return exitError
	}

	a, err := d.api.CreateAccount(ctx, accountInput)
	if err != nil {
		return fail(w, err)
	}
	printAccount(w, "Created", a)
	return exitOK
}

// runAccountsUpdate replaces an account and returns exit code
func runAccountsUpdate(ctx context.Context, w io.Writer, rawID string) int {
	id, err := parseID(rawID)
	if err != nil {
		return setupError(w, err)
	}
	d, err := newDeps()
	if err != nil {
		return setupError(w, err)
	}
	if !d.enter(w, router.PathAccounts) {
		return exitError
	}

	a, err := d.api.UpdateAccount(ctx, id, accountInput)
	if err != nil {
		return fail(w, err)
	}
	printAccount(w, "Updated", a)
	return exitOK
}

// runAccountsDelete deletes an account and returns exit code
func runAccountsDelete(ctx context.Context, w io.Writer, rawID string) int {
	id, err := parseID(rawID)
	if err != nil {
		return setupError(w, err)
	}
	d, err := newDeps()
	if err != nil {
		return setupError(w, err)
	}
	if !d.enter(w, router.PathAccounts) {
		return exitError
	}

	if err := d.api.DeleteAccount(ctx, id); err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(map[string]any{"deleted": id}))
	} else {
		fmt.Fprintf(w, "Deleted account %d\n", id)
	}
	return exitOK
}

func printAccount(w io.Writer, verb string, a *client.BankAccount) {
	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(a))
		return
	}
	fmt.Fprintf(w, "%s account %d: %s (%s, %s)\n", verb, a.ID, a.Nome, a.Banco, a.Tipo)
}
