// ABOUTME: Finances endpoints: transactions and bank accounts
// ABOUTME: Supports list filters, pagination, and full create/update/delete

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Transaction types
const (
	TipoReceita = "receita"
	TipoDespesa = "despesa"
)

// Account types
const (
	AccountCorrente      = "corrente"
	AccountPoupanca      = "poupanca"
	AccountCartaoCredito = "cartao_credito"
	AccountInvestimento  = "investimento"
)

// AccountTypes lists the accepted account types
var AccountTypes = []string{AccountCorrente, AccountPoupanca, AccountCartaoCredito, AccountInvestimento}

// DateLayout is the ISO date format the API uses
const DateLayout = "2006-01-02"

// Transaction is an income or expense entry
type Transaction struct {
	ID              int64   `json:"id"`
	Descricao       string  `json:"descricao"`
	Valor           float64 `json:"valor"`
	Tipo            string  `json:"tipo"`
	Categoria       string  `json:"categoria"`
	Data            string  `json:"data"`
	ContaBancaria   string  `json:"conta_bancaria,omitempty"`
	ContaBancariaID int64   `json:"conta_bancaria_id,omitempty"`
	Observacoes     string  `json:"observacoes,omitempty"`
}

// TransactionRequest creates or replaces a transaction
type TransactionRequest struct {
	Descricao       string  `json:"descricao"`
	Valor           float64 `json:"valor"`
	Tipo            string  `json:"tipo"`
	Categoria       string  `json:"categoria"`
	Data            string  `json:"data"`
	ContaBancariaID int64   `json:"conta_bancaria_id"`
	Observacoes     string  `json:"observacoes,omitempty"`
}

// TransactionFilters narrows a transaction listing; zero values are omitted
type TransactionFilters struct {
	Tipo       string
	Categoria  string
	DataInicio string
	DataFim    string
	Limit      int
	Offset     int
}

// Pagination describes a page of transactions
type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// TransactionPage is one page of a transaction listing
type TransactionPage struct {
	Transactions []Transaction
	Pagination   *Pagination
}

// TransactionStats summarizes a set of transactions
type TransactionStats struct {
	TotalReceitas        float64 `json:"total_receitas"`
	TotalDespesas        float64 `json:"total_despesas"`
	SaldoPeriodo         float64 `json:"saldo_periodo"`
	QuantidadeTransacoes int     `json:"quantidade_transacoes"`
}

// BankAccount is a bank account or credit card
type BankAccount struct {
	ID            int64   `json:"id"`
	Nome          string  `json:"nome"`
	Tipo          string  `json:"tipo"`
	Saldo         float64 `json:"saldo"`
	Banco         string  `json:"banco"`
	Cor           string  `json:"cor,omitempty"`
	Limite        float64 `json:"limite,omitempty"`
	DiaVencimento int     `json:"dia_vencimento,omitempty"`
	DiaFechamento int     `json:"dia_fechamento,omitempty"`
}

// BankAccountRequest creates or replaces a bank account
type BankAccountRequest struct {
	Nome          string  `json:"nome"`
	Tipo          string  `json:"tipo"`
	Banco         string  `json:"banco"`
	Saldo         float64 `json:"saldo"`
	Cor           string  `json:"cor,omitempty"`
	Limite        float64 `json:"limite,omitempty"`
	DiaVencimento int     `json:"dia_vencimento,omitempty"`
	DiaFechamento int     `json:"dia_fechamento,omitempty"`
}

// Validate checks a transaction before it is sent
func (r TransactionRequest) Validate() error {
	if r.Tipo != TipoReceita && r.Tipo != TipoDespesa {
		return invalid("tipo must be %q or %q", TipoReceita, TipoDespesa)
	}
	if r.Valor <= 0 {
		return invalid("valor must be greater than zero")
	}
	if strings.TrimSpace(r.Descricao) == "" {
		return invalid("descricao is required")
	}
	if strings.TrimSpace(r.Categoria) == "" {
		return invalid("categoria is required")
	}
	if !validDate(r.Data) {
		return invalid("data must be a date in YYYY-MM-DD format")
	}
	if r.ContaBancariaID <= 0 {
		return invalid("conta_bancaria_id is required")
	}
	return nil
}

// Validate checks filter values that the API would reject
func (f TransactionFilters) Validate() error {
	if f.Tipo != "" && f.Tipo != TipoReceita && f.Tipo != TipoDespesa {
		return invalid("tipo must be %q or %q", TipoReceita, TipoDespesa)
	}
	if f.DataInicio != "" && !validDate(f.DataInicio) {
		return invalid("data_inicio must be a date in YYYY-MM-DD format")
	}
	if f.DataFim != "" && !validDate(f.DataFim) {
		return invalid("data_fim must be a date in YYYY-MM-DD format")
	}
	if f.DataInicio != "" && f.DataFim != "" && f.DataFim < f.DataInicio {
		return invalid("data_fim must not be before data_inicio")
	}
	if f.Limit < 0 || f.Offset < 0 {
		return invalid("limit and offset must not be negative")
	}
	return nil
}

// Query encodes the non-zero filters
func (f TransactionFilters) Query() url.Values {
	q := url.Values{}
	if f.Tipo != "" {
		q.Set("tipo", f.Tipo)
	}
	if f.Categoria != "" {
		q.Set("categoria", f.Categoria)
	}
	if f.DataInicio != "" {
		q.Set("data_inicio", f.DataInicio)
	}
	if f.DataFim != "" {
		q.Set("data_fim", f.DataFim)
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		q.Set("offset", strconv.Itoa(f.Offset))
	}
	return q
}

// Validate checks an account before it is sent
func (r BankAccountRequest) Validate() error {
	if !validAccountType(r.Tipo) {
		return invalid("tipo must be one of %s", strings.Join(AccountTypes, ", "))
	}
	if strings.TrimSpace(r.Nome) == "" {
		return invalid("nome is required")
	}
	if strings.TrimSpace(r.Banco) == "" {
		return invalid("banco is required")
	}
	if r.DiaVencimento != 0 && !validDay(r.DiaVencimento) {
		return invalid("dia_vencimento must be between 1 and 31")
	}
	if r.DiaFechamento != 0 && !validDay(r.DiaFechamento) {
		return invalid("dia_fechamento must be between 1 and 31")
	}
	if r.Limite < 0 {
		return invalid("limite must not be negative")
	}
	return nil
}

// Stats totals income and expenses for the given transactions
func Stats(txs []Transaction) TransactionStats {
	var s TransactionStats
	for _, tx := range txs {
		switch tx.Tipo {
		case TipoReceita:
			s.TotalReceitas += tx.Valor
		case TipoDespesa:
			s.TotalDespesas += tx.Valor
		}
	}
	s.SaldoPeriodo = s.TotalReceitas - s.TotalDespesas
	s.QuantidadeTransacoes = len(txs)
	return s
}

// ListTransactions calls GET /finances/transactions
func (c *Client) ListTransactions(ctx context.Context, f TransactionFilters) (*TransactionPage, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	var resp struct {
		envelope[[]Transaction]
		Pagination *Pagination `json:"pagination,omitempty"`
	}
	if err := c.do(ctx, http.MethodGet, "/finances/transactions", f.Query(), nil, &resp); err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, rejected(resp.Message, "could not load transactions")
	}

	page := &TransactionPage{Pagination: resp.Pagination}
	if resp.Data != nil {
		page.Transactions = *resp.Data
	}
	return page, nil
}

// CreateTransaction calls POST /finances/transactions
func (c *Client) CreateTransaction(ctx context.Context, req TransactionRequest) (*Transaction, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return fetch[Transaction](ctx, c, http.MethodPost, "/finances/transactions", nil, req, "could not create transaction")
}

// UpdateTransaction calls PUT /finances/transactions/{id}
func (c *Client) UpdateTransaction(ctx context.Context, id int64, req TransactionRequest) (*Transaction, error) {
	if id <= 0 {
		return nil, invalid("transaction id must be positive")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return fetch[Transaction](ctx, c, http.MethodPut, fmt.Sprintf("/finances/transactions/%d", id), nil, req, "could not update transaction")
}

// DeleteTransaction calls DELETE /finances/transactions/{id}
func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	if id <= 0 {
		return invalid("transaction id must be positive")
	}
	return exec(ctx, c, http.MethodDelete, fmt.Sprintf("/finances/transactions/%d", id), nil, "could not delete transaction")
}

// ListAccounts calls GET /finances/accounts
func (c *Client) ListAccounts(ctx context.Context) ([]BankAccount, error) {
	list, err := fetch[[]BankAccount](ctx, c, http.MethodGet, "/finances/accounts", nil, nil, "could not load accounts")
	if err != nil {
		return nil, err
	}
	return *list, nil
}

// CreateAccount calls POST /finances/accounts
func (c *Client) CreateAccount(ctx context.Context, req BankAccountRequest) (*BankAccount, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return fetch[BankAccount](ctx, c, http.MethodPost, "/finances/accounts", nil, req, "could not create account")
}

// UpdateAccount calls PUT /finances/accounts/{id}
func (c *Client) UpdateAccount(ctx context.Context, id int64, req BankAccountRequest) (*BankAccount, error) {
	if id <= 0 {
		return nil, invalid("account id must be positive")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return fetch[BankAccount](ctx, c, http.MethodPut, fmt.Sprintf("/finances/accounts/%d", id), nil, req, "could not update account")
}

// DeleteAccount calls DELETE /finances/accounts/{id}
func (c *Client) DeleteAccount(ctx context.Context, id int64) error {
	if id <= 0 {
		return invalid("account id must be positive")
	}
	return exec(ctx, c, http.MethodDelete, fmt.Sprintf("/finances/accounts/%d", id), nil, "could not delete account")
}

func validDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

func validAccountType(t string) bool {
	for _, at := range AccountTypes {
		if t == at {
			return true
		}
	}
	return false
}
