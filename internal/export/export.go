// Package export renders one user's ledger as YAML or an XLSX workbook.
package export

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
)

// Format names an export encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
)

// ParseFormat converts a flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatYAML, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q (want yaml or xlsx)", s)
}

// Source is the read side of the store an export needs.
type Source interface {
	ListAccounts(ctx context.Context, userID string) ([]*models.Account, error)
	ListTransactions(ctx context.Context, userID string, filter storage.TransactionFilter) ([]*models.Transaction, error)
	ListBudgets(ctx context.Context, userID string) ([]*models.Budget, error)
	ListGoals(ctx context.Context, userID string) ([]*models.Goal, error)
	ListCategories(ctx context.Context, userID string) ([]*models.Category, error)
}

// Ledger is a point-in-time copy of one user's records. Money is kept as
// fixed two-decimal strings.
type Ledger struct {
	UserID       string        `yaml:"userId"`
	ExportedAt   time.Time     `yaml:"exportedAt"`
	Accounts     []Account     `yaml:"accounts"`
	Transactions []Transaction `yaml:"transactions"`
	Budgets      []Budget      `yaml:"budgets"`
	Goals        []Goal        `yaml:"goals"`
	Categories   []Category    `yaml:"categories"`
}

type Account struct {
	ID             string `yaml:"id"`
	Name           string `yaml:"name"`
	Balance        string `yaml:"balance"`
	OpeningBalance string `yaml:"openingBalance"`
}

type Transaction struct {
	ID          string `yaml:"id"`
	Date        string `yaml:"date"`
	Description string `yaml:"description"`
	Amount      string `yaml:"amount"`
	Category    string `yaml:"category"`
	Type        string `yaml:"type"`
	AccountID   string `yaml:"accountId"`
}

type Budget struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	Limit    string `yaml:"limit"`
	Spent    string `yaml:"spent"`
	Period   string `yaml:"period"`
}

type Goal struct {
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	TargetAmount  string `yaml:"targetAmount"`
	CurrentAmount string `yaml:"currentAmount"`
	Deadline      string `yaml:"deadline,omitempty"`
}

type Category struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Collect reads every record of userID.
func Collect(ctx context.Context, src Source, userID string, now time.Time) (*Ledger, error) {
	l := &Ledger{UserID: userID, ExportedAt: now.UTC()}

	accounts, err := src.ListAccounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	for _, a := range accounts {
		l.Accounts = append(l.Accounts, Account{
			ID:             a.ID,
			Name:           a.Name,
			Balance:        a.Balance.StringFixed(2),
			OpeningBalance: a.OpeningBalance.StringFixed(2),
		})
	}

	txns, err := src.ListTransactions(ctx, userID, storage.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	for _, t := range txns {
		l.Transactions = append(l.Transactions, Transaction{
			ID:          t.ID,
			Date:        t.Date,
			Description: t.Description,
			Amount:      t.Amount.StringFixed(2),
			Category:    t.Category,
			Type:        string(t.Type),
			AccountID:   t.AccountID,
		})
	}

	budgets, err := src.ListBudgets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	for _, b := range budgets {
		l.Budgets = append(l.Budgets, Budget{
			ID:       b.ID,
			Name:     b.Name,
			Category: b.Category,
			Limit:    b.Limit.StringFixed(2),
			Spent:    b.Spent.StringFixed(2),
			Period:   string(b.Period),
		})
	}

	goals, err := src.ListGoals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	for _, g := range goals {
		l.Goals = append(l.Goals, Goal{
			ID:            g.ID,
			Name:          g.Name,
			TargetAmount:  g.TargetAmount.StringFixed(2),
			CurrentAmount: g.CurrentAmount.StringFixed(2),
			Deadline:      g.Deadline,
		})
	}

	categories, err := src.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	for _, c := range categories {
		l.Categories = append(l.Categories, Category{ID: c.ID, Name: c.Name, Type: string(c.Type)})
	}

	return l, nil
}

// Write encodes l in the given format.
func Write(w io.Writer, l *Ledger, format Format) error {
	switch format {
	case FormatYAML:
		return WriteYAML(w, l)
	case FormatXLSX:
		return WriteXLSX(w, l)
	}
	return fmt.Errorf("unknown export format %q", format)
}

// WriteYAML encodes l as a YAML document.
func WriteYAML(w io.Writer, l *Ledger) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// WriteXLSX writes l as a workbook with one sheet per record kind.
func WriteXLSX(w io.Writer, l *Ledger) error {
	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name   string
		header []any
		rows   [][]any
	}{
		{"Accounts", []any{"ID", "Name", "Balance", "Opening balance"}, accountRows(l.Accounts)},
		{"Transactions", []any{"ID", "Date", "Description", "Amount", "Category", "Type", "Account ID"}, transactionRows(l.Transactions)},
		{"Budgets", []any{"ID", "Name", "Category", "Limit", "Spent", "Period"}, budgetRows(l.Budgets)},
		{"Goals", []any{"ID", "Name", "Target", "Current", "Deadline"}, goalRows(l.Goals)},
		{"Categories", []any{"ID", "Name", "Type"}, categoryRows(l.Categories)},
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("create sheet %s: %w", s.name, err)
		}

		if err := f.SetSheetRow(s.name, "A1", &s.header); err != nil {
			return fmt.Errorf("write %s header: %w", s.name, err)
		}
		for r, row := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(s.name, cell, &row); err != nil {
				return fmt.Errorf("write %s row %d: %w", s.name, r+1, err)
			}
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func accountRows(accts []Account) [][]any {
	rows := make([][]any, len(accts))
	for i, a := range accts {
		rows[i] = []any{a.ID, a.Name, a.Balance, a.OpeningBalance}
	}
	return rows
}

func transactionRows(txns []Transaction) [][]any {
	rows := make([][]any, len(txns))
	for i, t := range txns {
		rows[i] = []any{t.ID, t.Date, t.Description, t.Amount, t.Category, t.Type, t.AccountID}
	}
	return rows
}

func budgetRows(budgets []Budget) [][]any {
	rows := make([][]any, len(budgets))
	for i, b := range budgets {
		rows[i] = []any{b.ID, b.Name, b.Category, b.Limit, b.Spent, b.Period}
	}
	return rows
}

func goalRows(goals []Goal) [][]any {
	rows := make([][]any, len(goals))
	for i, g := range goals {
		rows[i] = []any{g.ID, g.Name, g.TargetAmount, g.CurrentAmount, g.Deadline}
	}
	return rows
}

func categoryRows(categories []Category) [][]any {
	rows := make([][]any, len(categories))
	for i, c := range categories {
		rows[i] = []any{c.ID, c.Name, c.Type}
	}
	return rows
}
