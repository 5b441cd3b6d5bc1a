package service

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/pkg/api"
)

func unix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		Anonymous:   u.Anonymous,
		CreatedAt:   unix(u.CreatedAt),
	}
}

func toAPIAccount(a *models.Account) *api.Account {
	return &api.Account{
		ID:             a.ID,
		Name:           a.Name,
		Balance:        a.Balance.StringFixed(2),
		OpeningBalance: a.OpeningBalance.StringFixed(2),
		CreatedAt:      unix(a.CreatedAt),
		UpdatedAt:      unix(a.UpdatedAt),
	}
}

func toAPIAccounts(accts []*models.Account) []*api.Account {
	out := make([]*api.Account, len(accts))
	for i, a := range accts {
		out[i] = toAPIAccount(a)
	}
	return out
}

func toAPITransaction(t *models.Transaction) *api.Transaction {
	return &api.Transaction{
		ID:          t.ID,
		Date:        t.Date,
		Description: t.Description,
		Amount:      t.Amount.StringFixed(2),
		Category:    t.Category,
		Type:        string(t.Type),
		AccountID:   t.AccountID,
		CreatedAt:   unix(t.CreatedAt),
		UpdatedAt:   unix(t.UpdatedAt),
	}
}

func toAPITransactions(txns []*models.Transaction) []*api.Transaction {
	out := make([]*api.Transaction, len(txns))
	for i, t := range txns {
		out[i] = toAPITransaction(t)
	}
	return out
}

func toAPIBudget(b *models.Budget) *api.Budget {
	return &api.Budget{
		ID:        b.ID,
		Name:      b.Name,
		Category:  b.Category,
		Limit:     b.Limit.StringFixed(2),
		Spent:     b.Spent.StringFixed(2),
		Remaining: b.Remaining().StringFixed(2),
		Period:    string(b.Period),
		CreatedAt: unix(b.CreatedAt),
		UpdatedAt: unix(b.UpdatedAt),
	}
}

func toAPIGoal(g *models.Goal) *api.Goal {
	return &api.Goal{
		ID:            g.ID,
		Name:          g.Name,
		TargetAmount:  g.TargetAmount.StringFixed(2),
		CurrentAmount: g.CurrentAmount.StringFixed(2),
		Deadline:      g.Deadline,
		Progress:      g.Progress().StringFixed(2),
		CreatedAt:     unix(g.CreatedAt),
		UpdatedAt:     unix(g.UpdatedAt),
	}
}

func toAPICategory(c *models.Category) *api.Category {
	return &api.Category{
		ID:        c.ID,
		Name:      c.Name,
		Type:      string(c.Type),
		CreatedAt: unix(c.CreatedAt),
	}
}

func toAPIProfile(p *models.Profile) *api.Profile {
	out := &api.Profile{
		DisplayName: p.DisplayName,
		Email:       p.Email,
		Currency:    p.Currency,
		CreatedAt:   unix(p.CreatedAt),
		UpdatedAt:   unix(p.UpdatedAt),
	}
	if p.Spouse != nil {
		out.Spouse = &api.Spouse{Name: p.Spouse.Name, Email: p.Spouse.Email}
	}
	return out
}

// parseAmount parses a decimal request field. An empty value is zero when
// optional is set.
func parseAmount(field, value string, optional bool) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" && optional {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, invalidArgument(field, "must be a decimal number")
	}
	return d, nil
}

// parseDate checks an optional YYYY-MM-DD request field.
func parseDate(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	if _, err := time.Parse(models.DateLayout, value); err != nil {
		return "", invalidArgument(field, "must be a YYYY-MM-DD date")
	}
	return value, nil
}
