// ABOUTME: Dashboard command for the secretary CLI
// ABOUTME: Shows KPIs, category spending, and recent transactions

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Depaula010/meusecretariofront/internal/client"
	"github.com/Depaula010/meusecretariofront/internal/router"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the financial summary",
	Long: `Show the current period's balance, income, expenses, credit card bill,
spending by category, and the latest transactions.

Sections load independently; a failed section is reported without hiding the rest.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runDashboard(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

// dashboardOutput is the JSON shape of the dashboard command
type dashboardOutput struct {
	Summary *client.DashboardSummary   `json:"summary,omitempty"`
	Charts  *client.DashboardCharts    `json:"charts,omitempty"`
	Recent  []client.RecentTransaction `json:"recent_transactions,omitempty"`
	Errors  map[string]string          `json:"errors,omitempty"`
}

// runDashboard loads the dashboard and returns exit code
func runDashboard(ctx context.Context, w io.Writer) int {
	d, err := newDeps()
	if err != nil {
		return setupError(w, err)
	}
	if !d.enter(w, router.PathDashboard) {
		return exitError
	}

	dash := d.api.LoadDashboard(ctx)

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(toDashboardOutput(dash)))
	} else {
		fmt.Fprintln(w, formatDashboardHuman(dash))
	}
	return exitCode(dash.Err())
}

func toDashboardOutput(dash *client.Dashboard) dashboardOutput {
	out := dashboardOutput{Summary: dash.Summary, Charts: dash.Charts, Recent: dash.Recent}
	errs := map[string]error{"summary": dash.SummaryErr, "charts": dash.ChartsErr, "recent_transactions": dash.RecentErr}
	for name, err := range errs {
		if err != nil {
			if out.Errors == nil {
				out.Errors = make(map[string]string)
			}
			out.Errors[name] = err.Error()
		}
	}
	return out
}

// formatDashboardHuman formats the dashboard for human readability
func formatDashboardHuman(dash *client.Dashboard) string {
	var sb strings.Builder

	if dash.SummaryErr != nil {
		fmt.Fprintf(&sb, "Summary unavailable: %v\n", dash.SummaryErr)
	} else if s := dash.Summary; s != nil {
		fmt.Fprintf(&sb, `Period:       %s
Balance:      %s
Income:       %s
Expenses:     %s
Credit card:  %s
`, s.Periodo, money(s.SaldoAtual), money(s.TotalReceitas), money(s.TotalDespesas), money(s.CartaoDeCredito))
	}

	sb.WriteString("\n")
	if dash.ChartsErr != nil {
		fmt.Fprintf(&sb, "Charts unavailable: %v\n", dash.ChartsErr)
	} else if c := dash.Charts; c != nil {
		dist := c.DistribuicaoCategorias
		if len(dist.Categorias) > 0 {
			sb.WriteString("Spending by category:\n")
			for i, cat := range dist.Categorias {
				if i < len(dist.Valores) {
					fmt.Fprintf(&sb, "  %-20s %12s\n", cat, money(dist.Valores[i]))
				}
			}
		}
	}

	sb.WriteString("\n")
	if dash.RecentErr != nil {
		fmt.Fprintf(&sb, "Recent transactions unavailable: %v", dash.RecentErr)
	} else if len(dash.Recent) == 0 {
		sb.WriteString("No recent transactions")
	} else {
		sb.WriteString("Recent transactions:\n")
		sb.WriteString(recentTable(dash.Recent))
	}

	return strings.TrimRight(sb.String(), "\n")
}

func recentTable(txs []client.RecentTransaction) string {
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, []string{tx.Data, tx.Descricao, tx.Categoria, signedAmount(tx.Tipo, tx.Valor)})
	}
	return renderTable([]string{"Date", "Description", "Category", "Amount"}, rows)
}

// signedAmount shows expenses as negative amounts
func signedAmount(tipo string, v float64) string {
	if tipo == client.TipoDespesa {
		return "-" + money(v)
	}
	return "+" + money(v)
}
