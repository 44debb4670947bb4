// ABOUTME: Dashboard endpoints: KPIs, chart series, and recent transactions
// ABOUTME: LoadDashboard fetches all three concurrently with independent results

package client

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"
)

// DashboardSummary holds the KPI values for the current period
type DashboardSummary struct {
	SaldoAtual      float64 `json:"saldo_atual"`
	TotalReceitas   float64 `json:"total_receitas"`
	TotalDespesas   float64 `json:"total_despesas"`
	CartaoDeCredito float64 `json:"cartao_de_credito"`
	Periodo         string  `json:"periodo"`
}

// BalanceSeries is the balance evolution over recent months
type BalanceSeries struct {
	Labels  []string  `json:"labels"`
	Valores []float64 `json:"valores"`
}

// IncomeExpenseSeries compares income and expenses per month
type IncomeExpenseSeries struct {
	Labels   []string  `json:"labels"`
	Receitas []float64 `json:"receitas"`
	Despesas []float64 `json:"despesas"`
}

// CategoryDistribution is expense share per category for the current month
type CategoryDistribution struct {
	Categorias []string  `json:"categorias"`
	Valores    []float64 `json:"valores"`
}

// DashboardCharts holds the chart series
type DashboardCharts struct {
	EvolucaoSaldo          BalanceSeries        `json:"evolucao_saldo"`
	ReceitasDespesas       IncomeExpenseSeries  `json:"receitas_despesas"`
	DistribuicaoCategorias CategoryDistribution `json:"distribuicao_categorias"`
}

// RecentTransaction is an entry in the dashboard's latest transactions list
type RecentTransaction struct {
	ID            int64   `json:"id"`
	Descricao     string  `json:"descricao"`
	Valor         float64 `json:"valor"`
	Tipo          string  `json:"tipo"`
	Categoria     string  `json:"categoria"`
	Data          string  `json:"data"`
	ContaBancaria string  `json:"conta_bancaria,omitempty"`
}

// Dashboard is the result of LoadDashboard. Each section carries its own
// error so one failed request does not hide the others.
type Dashboard struct {
	Summary    *DashboardSummary
	Charts     *DashboardCharts
	Recent     []RecentTransaction
	SummaryErr error
	ChartsErr  error
	RecentErr  error
}

// Err returns the first section error, if any
func (d *Dashboard) Err() error {
	for _, err := range []error{d.SummaryErr, d.ChartsErr, d.RecentErr} {
		if err != nil {
			return err
		}
	}
	return nil
}

// DashboardSummary calls GET /dashboard/summary
func (c *Client) DashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	return fetch[DashboardSummary](ctx, c, http.MethodGet, "/dashboard/summary", nil, nil, "could not load summary")
}

// DashboardCharts calls GET /dashboard/charts
func (c *Client) DashboardCharts(ctx context.Context) (*DashboardCharts, error) {
	return fetch[DashboardCharts](ctx, c, http.MethodGet, "/dashboard/charts", nil, nil, "could not load charts")
}

// RecentTransactions calls GET /dashboard/recent-transactions
func (c *Client) RecentTransactions(ctx context.Context) ([]RecentTransaction, error) {
	list, err := fetch[[]RecentTransaction](ctx, c, http.MethodGet, "/dashboard/recent-transactions", nil, nil, "could not load transactions")
	if err != nil {
		return nil, err
	}
	return *list, nil
}

// LoadDashboard issues the three dashboard requests concurrently.
// It never fails as a whole; inspect the per-section errors.
func (c *Client) LoadDashboard(ctx context.Context) *Dashboard {
	d := &Dashboard{}

	// Plain group: a failed section must not cancel the others
	var g errgroup.Group
	g.Go(func() error {
		d.Summary, d.SummaryErr = c.DashboardSummary(ctx)
		return nil
	})
	g.Go(func() error {
		d.Charts, d.ChartsErr = c.DashboardCharts(ctx)
		return nil
	})
	g.Go(func() error {
		d.Recent, d.RecentErr = c.RecentTransactions(ctx)
		return nil
	})
	_ = g.Wait()

	return d
}
