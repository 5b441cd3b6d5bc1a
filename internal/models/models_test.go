package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParseTransactionType(t *testing.T) {
	tests := []struct {
		in      string
		want    TransactionType
		wantErr bool
	}{
		{"income", Income, false},
		{"expense", Expense, false},
		{"Income", "", true},
		{"", "", true},
		{"transfer", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTransactionType(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransactionEffect(t *testing.T) {
	expense := &Transaction{Amount: dec("30.50"), Type: Expense}
	income := &Transaction{Amount: dec("30.50"), Type: Income}

	assert.True(t, expense.Effect().Equal(dec("-30.50")), "got %s", expense.Effect())
	assert.True(t, income.Effect().Equal(dec("30.50")), "got %s", income.Effect())
	assert.False(t, TransactionType("transfer").Valid())
}

func TestBudgetRemaining(t *testing.T) {
	b := &Budget{Limit: dec("200"), Spent: dec("250")}
	assert.True(t, b.Remaining().Equal(dec("-50")))
	assert.True(t, Monthly.Valid())
	assert.False(t, BudgetPeriod("daily").Valid())
}

func TestGoalProgress(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		current string
		want    string
	}{
		{"partial", "300", "100", "33.33"},
		{"complete", "100", "100", "100"},
		{"overfunded", "100", "150", "100"},
		{"zero target", "0", "50", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Goal{TargetAmount: dec(tt.target), CurrentAmount: dec(tt.current)}
			if got := g.Progress(); !got.Equal(dec(tt.want)) {
				t.Fatalf("Progress() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNewAnonymousUser(t *testing.T) {
	u := NewAnonymousUser()
	assert.True(t, u.Anonymous)
	assert.Empty(t, u.Email)
	assert.Equal(t, RoleUser, u.Role)
	assert.NotEmpty(t, u.ID)
}

func TestTransactionWireNames(t *testing.T) {
	tx := Transaction{
		ID:          "t1",
		Date:        "2026-01-02",
		Description: "Salary",
		Amount:      dec("1000"),
		Category:    "Work",
		Type:        Income,
		AccountID:   "a1",
		UserID:      "u1",
	}
	data, err := json.Marshal(tx)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	for _, key := range []string{"date", "description", "amount", "category", "accountId", "type", "userId", "createdAt", "updatedAt"} {
		assert.Contains(t, fields, key)
	}
	assert.Equal(t, "1000", fields["amount"])
}
