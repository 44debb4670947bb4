// ABOUTME: Table screen for transactions and bank accounts
// ABOUTME: Shows rows in a bubbles table with a text filter and delete confirmation

package ledger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Depaula010/meusecretariofront/internal/client"
	"github.com/Depaula010/meusecretariofront/internal/tui/styles"
)

type state int

const (
	stateList state = iota
	stateFilter
	stateConfirm
)

// Kind is what the ledger lists
type Kind int

const (
	KindTransactions Kind = iota
	KindAccounts
)

// DeleteRequestedMsg asks the app to delete the entry with ID
type DeleteRequestedMsg struct {
	Kind Kind
	ID   int64
}

// PageRequestedMsg asks the app to load the transactions page at Offset
type PageRequestedMsg struct {
	Offset int
}

// RefreshRequestedMsg asks the app to reload the ledger
type RefreshRequestedMsg struct {
	Kind Kind
}

// Row is one entry. Search holds the lowercased text matched by the filter.
type Row struct {
	ID     int64
	Cells  []string
	Search string
}

// Ledger is the table screen
type Ledger struct {
	kind       Kind
	title      string
	columns    []table.Column
	rows       []Row
	visible    []Row
	summary    string
	pagination *client.Pagination

	table  table.Model
	filter textinput.Model
	state  state
	err    string
	width  int
	height int
}

var (
	filterStyle = lipgloss.NewStyle().Foreground(styles.Accent)
	errorStyle  = lipgloss.NewStyle().Foreground(styles.Danger)
)

func newLedger(kind Kind, title string, columns []table.Column, rows []Row) *Ledger {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Width = 40

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Muted).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(styles.Primary)
	t.SetStyles(s)

	l := &Ledger{
		kind:    kind,
		title:   title,
		columns: columns,
		rows:    rows,
		table:   t,
		filter:  ti,
	}
	l.applyFilter()
	return l
}

// NewTransactions builds the transactions screen from a page
func NewTransactions(page *client.TransactionPage) *Ledger {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Date", Width: 10},
		{Title: "Description", Width: 26},
		{Title: "Category", Width: 14},
		{Title: "Account", Width: 14},
		{Title: "Amount", Width: 14},
	}

	var rows []Row
	var pagination *client.Pagination
	var txs []client.Transaction
	if page != nil {
		txs = page.Transactions
		pagination = page.Pagination
	}
	for _, tx := range txs {
		amount := styles.Money(tx.Valor)
		if tx.Tipo == client.TipoDespesa {
			amount = "-" + amount
		} else {
			amount = "+" + amount
		}
		rows = append(rows, Row{
			ID:     tx.ID,
			Cells:  []string{strconv.FormatInt(tx.ID, 10), tx.Data, tx.Descricao, tx.Categoria, tx.ContaBancaria, amount},
			Search: strings.ToLower(strings.Join([]string{tx.Descricao, tx.Categoria, tx.ContaBancaria, tx.Tipo, tx.Data}, " ")),
		})
	}

	l := newLedger(KindTransactions, "Transactions", columns, rows)
	l.pagination = pagination
	stats := client.Stats(txs)
	l.summary = fmt.Sprintf("Income %s  Expenses %s  Net %s",
		styles.Amount(stats.TotalReceitas, client.TipoReceita),
		styles.Amount(stats.TotalDespesas, client.TipoDespesa),
		styles.Balance(stats.SaldoPeriodo),
	)
	return l
}

// NewAccounts builds the bank accounts screen
func NewAccounts(accounts []client.BankAccount) *Ledger {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Name", Width: 20},
		{Title: "Type", Width: 15},
		{Title: "Bank", Width: 16},
		{Title: "Balance", Width: 14},
		{Title: "Card", Width: 14},
	}

	var rows []Row
	var total float64
	for _, a := range accounts {
		card := ""
		if a.Tipo == client.AccountCartaoCredito {
			card = fmt.Sprintf("due %d / closes %d", a.DiaVencimento, a.DiaFechamento)
		}
		total += a.Saldo
		rows = append(rows, Row{
			ID:     a.ID,
			Cells:  []string{strconv.FormatInt(a.ID, 10), a.Nome, a.Tipo, a.Banco, styles.Money(a.Saldo), card},
			Search: strings.ToLower(strings.Join([]string{a.Nome, a.Tipo, a.Banco}, " ")),
		})
	}

	l := newLedger(KindAccounts, "Bank accounts", columns, rows)
	l.summary = fmt.Sprintf("%d accounts  Total %s", len(accounts), styles.Balance(total))
	return l
}

// Kind returns what the ledger lists
func (l *Ledger) Kind() Kind {
	return l.kind
}

// SetSize fits the table to the available area
func (l *Ledger) SetSize(width, height int) {
	l.width = width
	l.height = height
	// title, summary, filter line, footer hint
	l.table.SetHeight(max(3, height-8))
	l.table.SetWidth(max(20, width))
}

// SetError shows msg under the table
func (l *Ledger) SetError(msg string) {
	l.err = msg
	l.state = stateList
}

// CapturesKeys reports whether the filter input or a delete prompt is open
func (l *Ledger) CapturesKeys() bool {
	return l.state != stateList
}

// Visible returns the rows left after filtering
func (l *Ledger) Visible() []Row {
	return l.visible
}

func (l *Ledger) applyFilter() {
	q := strings.ToLower(strings.TrimSpace(l.filter.Value()))
	l.visible = l.visible[:0]
	rows := make([]table.Row, 0, len(l.rows))
	for _, r := range l.rows {
		if q != "" && !strings.Contains(r.Search, q) {
			continue
		}
		l.visible = append(l.visible, r)
		rows = append(rows, table.Row(r.Cells))
	}
	l.table.SetRows(rows)
	if l.table.Cursor() >= len(rows) {
		l.table.SetCursor(max(0, len(rows)-1))
	}
}

func (l *Ledger) selected() (Row, bool) {
	i := l.table.Cursor()
	if i < 0 || i >= len(l.visible) {
		return Row{}, false
	}
	return l.visible[i], true
}

// Init implements tea.Model
func (l *Ledger) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (l *Ledger) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}
	l.err = ""

	switch l.state {
	case stateFilter:
		return l.updateFilter(key)
	case stateConfirm:
		return l.updateConfirm(key)
	default:
		return l.updateList(key)
	}
}

func (l *Ledger) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "/":
		l.state = stateFilter
		l.filter.Focus()
		return l, textinput.Blink
	case "d", "delete":
		if _, ok := l.selected(); ok {
			l.state = stateConfirm
		}
		return l, nil
	case "r":
		kind := l.kind
		return l, func() tea.Msg { return RefreshRequestedMsg{Kind: kind} }
	case "n":
		if p := l.pagination; p != nil && p.HasMore {
			offset := p.Offset + p.Limit
			return l, func() tea.Msg { return PageRequestedMsg{Offset: offset} }
		}
		return l, nil
	case "p":
		if p := l.pagination; p != nil && p.Offset > 0 {
			offset := max(0, p.Offset-p.Limit)
			return l, func() tea.Msg { return PageRequestedMsg{Offset: offset} }
		}
		return l, nil
	}

	var cmd tea.Cmd
	l.table, cmd = l.table.Update(msg)
	return l, cmd
}

func (l *Ledger) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		l.filter.SetValue("")
		l.filter.Blur()
		l.state = stateList
		l.applyFilter()
		return l, nil
	case "enter":
		l.filter.Blur()
		l.state = stateList
		return l, nil
	}

	var cmd tea.Cmd
	l.filter, cmd = l.filter.Update(msg)
	l.applyFilter()
	return l, cmd
}

func (l *Ledger) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l.state = stateList
	if msg.String() != "y" {
		return l, nil
	}
	row, ok := l.selected()
	if !ok {
		return l, nil
	}
	kind := l.kind
	return l, func() tea.Msg { return DeleteRequestedMsg{Kind: kind, ID: row.ID} }
}

// View implements tea.Model
func (l *Ledger) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(l.title))
	b.WriteString("\n")
	if l.summary != "" {
		b.WriteString(l.summary)
		b.WriteString("\n\n")
	}

	if len(l.rows) == 0 {
		b.WriteString(styles.Subtitle.Render("Nothing here yet"))
	} else {
		b.WriteString(l.table.View())
	}
	b.WriteString("\n")

	switch {
	case l.state == stateFilter || l.filter.Value() != "":
		b.WriteString(filterStyle.Render(l.filter.View()))
		fmt.Fprintf(&b, "  %d of %d", len(l.visible), len(l.rows))
	case l.state == stateConfirm:
		if row, ok := l.selected(); ok {
			b.WriteString(styles.StatusWarning.Render(fmt.Sprintf("Delete #%d? y to confirm, any other key to cancel", row.ID)))
		}
	case l.pagination != nil:
		p := l.pagination
		end := min(p.Offset+len(l.rows), p.Total)
		b.WriteString(styles.Subtitle.Render(fmt.Sprintf("Showing %d-%d of %d", min(p.Offset+1, end), end, p.Total)))
	}

	if l.err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + l.err))
	}
	return b.String()
}
