package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/fintrack/internal/models"
)

func TestParseDraft(t *testing.T) {
	valid := DraftInput{
		Date:        "2024-03-01",
		Description: " Coffee ",
		Amount:      "3.50",
		Category:    "",
		Type:        "Expense",
		AccountID:   "a1",
	}

	d, err := ParseDraft(valid)
	require.NoError(t, err)
	assert.Equal(t, "Coffee", d.Description)
	assert.Equal(t, models.Expense, d.Type)
	assert.Equal(t, "3.5", d.Amount.String())

	tests := []struct {
		name  string
		edit  func(in *DraftInput)
		field string
	}{
		{"negative amount", func(in *DraftInput) { in.Amount = "-5" }, "amount"},
		{"zero amount", func(in *DraftInput) { in.Amount = "0" }, "amount"},
		{"NaN amount", func(in *DraftInput) { in.Amount = "NaN" }, "amount"},
		{"empty amount", func(in *DraftInput) { in.Amount = "" }, "amount"},
		{"text amount", func(in *DraftInput) { in.Amount = "ten" }, "amount"},
		{"unknown type", func(in *DraftInput) { in.Type = "transfer" }, "type"},
		{"empty description", func(in *DraftInput) { in.Description = "  " }, "description"},
		{"missing account", func(in *DraftInput) { in.AccountID = "" }, "accountId"},
		{"bad date", func(in *DraftInput) { in.Date = "03/01/2024" }, "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.edit(&in)
			_, err := ParseDraft(in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}
