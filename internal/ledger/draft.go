package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/models"
)

// DraftInput is an unparsed transaction payload as it arrives from a client.
type DraftInput struct {
	Date        string
	Description string
	Amount      string
	Category    string
	Type        string
	AccountID   string
}

// Draft is a parsed transaction payload about to be posted.
type Draft struct {
	Date        string
	Description string
	Amount      decimal.Decimal
	Category    string
	Type        models.TransactionType
	AccountID   string
}

// ParseDraft converts and validates client input.
func ParseDraft(in DraftInput) (Draft, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
	if err != nil {
		return Draft{}, invalid("amount", "%q is not a number", in.Amount)
	}
	d := Draft{
		Date:        strings.TrimSpace(in.Date),
		Description: strings.TrimSpace(in.Description),
		Amount:      amount,
		Category:    strings.TrimSpace(in.Category),
		Type:        models.TransactionType(strings.ToLower(strings.TrimSpace(in.Type))),
		AccountID:   strings.TrimSpace(in.AccountID),
	}
	if err := d.Validate(); err != nil {
		return Draft{}, err
	}
	return d, nil
}

// Validate checks the draft. It returns a *ValidationError naming the first
// bad field.
func (d Draft) Validate() error {
	if !d.Amount.IsPositive() {
		return invalid("amount", "must be greater than zero")
	}
	if !d.Type.Valid() {
		return invalid("type", "%q is not income or expense", d.Type)
	}
	if d.Description == "" {
		return invalid("description", "is required")
	}
	if d.AccountID == "" {
		return invalid("accountId", "is required")
	}
	if _, err := time.Parse(models.DateLayout, d.Date); err != nil {
		return invalid("date", "%q is not a YYYY-MM-DD date", d.Date)
	}
	return nil
}

func (d Draft) category() string {
	if d.Category == "" {
		return models.UncategorizedLabel
	}
	return d.Category
}
