// Package layout maps domain entities to document store paths.
//
// All per-user data lives under /artifacts/{appId}/users/{userId}. Identity
// records are shared across users and live directly under the app.
package layout

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/mmynk/fintrack/internal/docstore"
)

const (
	accountsCollection     = "accounts"
	transactionsCollection = "transactions"
	budgetsCollection      = "budgets"
	goalsCollection        = "goals"
	categoriesCollection   = "categories"
	profileCollection      = "profile"
	profileDocument        = "details"
	identitiesCollection   = "identities"
	emailsCollection       = "emails"
)

// Layout builds references for one application id.
type Layout struct {
	AppID string
}

// New returns a Layout for appID.
func New(appID string) Layout {
	return Layout{AppID: appID}
}

func (l Layout) user(userID string) docstore.DocRef {
	return docstore.Doc("artifacts", l.AppID, "users", userID)
}

// Accounts is the account collection of a user.
func (l Layout) Accounts(userID string) docstore.CollectionRef {
	return l.user(userID).Collection(accountsCollection)
}

// Account addresses one account.
func (l Layout) Account(userID, accountID string) docstore.DocRef {
	return l.Accounts(userID).Doc(accountID)
}

// Transactions is the transaction collection of a user.
func (l Layout) Transactions(userID string) docstore.CollectionRef {
	return l.user(userID).Collection(transactionsCollection)
}

// Transaction addresses one transaction.
func (l Layout) Transaction(userID, transactionID string) docstore.DocRef {
	return l.Transactions(userID).Doc(transactionID)
}

func (l Layout) Budgets(userID string) docstore.CollectionRef {
	return l.user(userID).Collection(budgetsCollection)
}

func (l Layout) Budget(userID, budgetID string) docstore.DocRef {
	return l.Budgets(userID).Doc(budgetID)
}

func (l Layout) Goals(userID string) docstore.CollectionRef {
	return l.user(userID).Collection(goalsCollection)
}

func (l Layout) Goal(userID, goalID string) docstore.DocRef {
	return l.Goals(userID).Doc(goalID)
}

func (l Layout) Categories(userID string) docstore.CollectionRef {
	return l.user(userID).Collection(categoriesCollection)
}

func (l Layout) Category(userID, categoryID string) docstore.DocRef {
	return l.Categories(userID).Doc(categoryID)
}

// Profile is the single profile document of a user.
func (l Layout) Profile(userID string) docstore.DocRef {
	return l.user(userID).Collection(profileCollection).Doc(profileDocument)
}

// Identities is the collection of user identity records.
func (l Layout) Identities() docstore.CollectionRef {
	return docstore.Collection("artifacts", l.AppID, identitiesCollection)
}

// Identity addresses the identity record of a user.
func (l Layout) Identity(userID string) docstore.DocRef {
	return l.Identities().Doc(userID)
}

// Email addresses the index document that maps an email to a user id.
func (l Layout) Email(email string) docstore.DocRef {
	return docstore.Collection("artifacts", l.AppID, emailsCollection).Doc(EmailKey(email))
}

// EmailKey returns the document id for an email. Emails compare case
// insensitively and ignore surrounding space.
func EmailKey(email string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:])
}
