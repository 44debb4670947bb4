// ABOUTME: Tests for dashboard endpoints
// ABOUTME: Validates decoding and independent per-section results of LoadDashboard

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func dashboardServer(t *testing.T, failing map[string]int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status, ok := failing[r.URL.Path]; ok {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/dashboard/summary":
			json.NewEncoder(w).Encode(map[string]any{
				"status": "success",
				"data": DashboardSummary{
					SaldoAtual:      1500.5,
					TotalReceitas:   5000,
					TotalDespesas:   3499.5,
					CartaoDeCredito: 820,
					Periodo:         "Dezembro 2024",
				},
			})
		case "/dashboard/charts":
			json.NewEncoder(w).Encode(map[string]any{
				"status": "success",
				"data": DashboardCharts{
					EvolucaoSaldo: BalanceSeries{Labels: []string{"Nov", "Dez"}, Valores: []float64{1000, 1500.5}},
					DistribuicaoCategorias: CategoryDistribution{
						Categorias: []string{"Alimentação", "Transporte"},
						Valores:    []float64{800, 200},
					},
				},
			})
		case "/dashboard/recent-transactions":
			json.NewEncoder(w).Encode(map[string]any{
				"status": "success",
				"data": []RecentTransaction{
					{ID: 1, Descricao: "Mercado", Valor: 120, Tipo: TipoDespesa, Categoria: "Alimentação", Data: "2024-12-10"},
				},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
}

func TestDashboardSummary(t *testing.T) {
	server := dashboardServer(t, nil)
	defer server.Close()

	s, err := New(server.URL).DashboardSummary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.SaldoAtual != 1500.5 || s.Periodo != "Dezembro 2024" {
		t.Errorf("unexpected summary %+v", s)
	}
}

func TestLoadDashboard_AllSections(t *testing.T) {
	server := dashboardServer(t, nil)
	defer server.Close()

	d := New(server.URL).LoadDashboard(context.Background())
	if err := d.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Summary == nil || d.Charts == nil || len(d.Recent) != 1 {
		t.Fatalf("expected all sections, got %+v", d)
	}
	if got := d.Charts.DistribuicaoCategorias.Categorias; len(got) != 2 {
		t.Errorf("expected 2 categories, got %v", got)
	}
	if d.Recent[0].Descricao != "Mercado" {
		t.Errorf("unexpected recent transaction %+v", d.Recent[0])
	}
}

func TestLoadDashboard_IndependentFailures(t *testing.T) {
	server := dashboardServer(t, map[string]int{"/dashboard/charts": http.StatusInternalServerError})
	defer server.Close()

	d := New(server.URL).LoadDashboard(context.Background())

	if d.SummaryErr != nil || d.Summary == nil {
		t.Errorf("expected summary to load, got %v", d.SummaryErr)
	}
	if d.RecentErr != nil || len(d.Recent) != 1 {
		t.Errorf("expected recent transactions to load, got %v", d.RecentErr)
	}
	if !errors.Is(d.ChartsErr, ErrServer) {
		t.Errorf("expected charts server error, got %v", d.ChartsErr)
	}
	if !errors.Is(d.Err(), ErrServer) {
		t.Errorf("expected Err() to surface the charts failure, got %v", d.Err())
	}
}

func TestLoadDashboard_Concurrent(t *testing.T) {
	var inFlight, peak atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(50 * time.Millisecond)
		inFlight.Add(-1)
		w.Write([]byte(`{"status":"success","data":{}}`))
	}))
	defer server.Close()

	New(server.URL).LoadDashboard(context.Background())

	if peak.Load() < 2 {
		t.Errorf("expected concurrent requests, peak was %d", peak.Load())
	}
}
