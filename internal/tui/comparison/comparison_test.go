// ABOUTME: Tests for the income versus expenses view
// ABOUTME: Validates monthly rows, deltas, and deficit warnings

package comparison

import (
	"strings"
	"testing"

	"github.com/Depaula010/meusecretariofront/internal/client"
)

func TestComparisonView(t *testing.T) {
	series := &client.IncomeExpenseSeries{
		Labels:   []string{"Jan", "Fev"},
		Receitas: []float64{4000, 5000},
		Despesas: []float64{4500, 3000},
	}

	view := New(series, 80).View()

	for _, expected := range []string{"Jan", "Fev", "R$ 5000.00", "-R$ 500.00", "Changes vs Jan", "+1000.00"} {
		if !strings.Contains(view, expected) {
			t.Errorf("expected view to contain %q\nView:\n%s", expected, view)
		}
	}
	if !strings.Contains(view, "Expenses exceeded income in Jan") {
		t.Error("expected deficit warning for Jan")
	}
}

func TestComparisonViewNilSeries(t *testing.T) {
	if !strings.Contains(New(nil, 80).View(), "No comparison data") {
		t.Error("expected 'No comparison data' for nil series")
	}
}

func TestComparisonSingleMonthHasNoDeltas(t *testing.T) {
	series := &client.IncomeExpenseSeries{
		Labels:   []string{"Mar"},
		Receitas: []float64{100},
		Despesas: []float64{50},
	}

	view := New(series, 80).View()
	if strings.Contains(view, "Changes vs") {
		t.Error("expected no delta section for a single month")
	}
	if strings.Contains(view, "exceeded") {
		t.Error("expected no deficit warning")
	}
}

func TestMonthsStopsAtShortestSlice(t *testing.T) {
	months := Months(&client.IncomeExpenseSeries{
		Labels:   []string{"Jan", "Fev", "Mar"},
		Receitas: []float64{1, 2},
		Despesas: []float64{1, 2, 3},
	})

	if len(months) != 2 {
		t.Fatalf("expected 2 months, got %d", len(months))
	}
	if months[1].Net() != 0 {
		t.Errorf("expected net 0, got %v", months[1].Net())
	}
}
