package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaths(t *testing.T) {
	l := New("app-1")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"accounts", l.Accounts("u1").Path(), "artifacts/app-1/users/u1/accounts"},
		{"account", l.Account("u1", "a1").Path(), "artifacts/app-1/users/u1/accounts/a1"},
		{"transactions", l.Transactions("u1").Path(), "artifacts/app-1/users/u1/transactions"},
		{"transaction", l.Transaction("u1", "t1").Path(), "artifacts/app-1/users/u1/transactions/t1"},
		{"budget", l.Budget("u1", "b1").Path(), "artifacts/app-1/users/u1/budgets/b1"},
		{"goal", l.Goal("u1", "g1").Path(), "artifacts/app-1/users/u1/goals/g1"},
		{"category", l.Category("u1", "c1").Path(), "artifacts/app-1/users/u1/categories/c1"},
		{"profile", l.Profile("u1").Path(), "artifacts/app-1/users/u1/profile/details"},
		{"identity", l.Identity("u1").Path(), "artifacts/app-1/identities/u1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestAppIDIsolation(t *testing.T) {
	a := New("a").Account("u1", "x")
	b := New("b").Account("u1", "x")
	assert.NotEqual(t, a.Path(), b.Path())
}

func TestInvalidIDs(t *testing.T) {
	l := New("app")
	assert.Error(t, l.Account("u1", "").Err())
	assert.Error(t, l.Account("u/1", "a1").Err())
	assert.Error(t, New("").Accounts("u1").Err())
}

func TestEmailKeyNormalizes(t *testing.T) {
	assert.Equal(t, EmailKey("ann@example.com"), EmailKey("  Ann@Example.COM "))
	assert.NotEqual(t, EmailKey("ann@example.com"), EmailKey("bob@example.com"))

	ref := New("app").Email("ann@example.com")
	require.NoError(t, ref.Err())
	assert.Len(t, ref.ID(), 64)
}
