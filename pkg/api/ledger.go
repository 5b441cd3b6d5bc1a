package api

type Account struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Balance        string `json:"balance"`
	OpeningBalance string `json:"openingBalance"`
	CreatedAt      int64  `json:"createdAt"`
	UpdatedAt      int64  `json:"updatedAt"`
}

type CreateAccountRequest struct {
	Name           string `json:"name"`
	OpeningBalance string `json:"openingBalance,omitempty"`
}

type CreateAccountResponse struct {
	Account *Account `json:"account"`
}

type GetAccountRequest struct {
	AccountID string `json:"accountId"`
}

type GetAccountResponse struct {
	Account *Account `json:"account"`
}

type ListAccountsRequest struct{}

type ListAccountsResponse struct {
	Accounts []*Account `json:"accounts"`
}

// UpdateAccountRequest edits an account. Omitted fields are unchanged.
type UpdateAccountRequest struct {
	AccountID      string  `json:"accountId"`
	Name           *string `json:"name,omitempty"`
	OpeningBalance *string `json:"openingBalance,omitempty"`
}

type UpdateAccountResponse struct {
	Account *Account `json:"account"`
}

type DeleteAccountRequest struct {
	AccountID string `json:"accountId"`
}

type DeleteAccountResponse struct {
	// SweptTransactions is how many transactions were removed with the account.
	SweptTransactions int32 `json:"sweptTransactions"`
	// Warning is set when some transactions could not be removed.
	Warning string `json:"warning,omitempty"`
}

type WatchAccountsRequest struct{}

type WatchAccountsResponse struct {
	Accounts []*Account `json:"accounts"`
}

type Transaction struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Type        string `json:"type"`
	AccountID   string `json:"accountId"`
	CreatedAt   int64  `json:"createdAt"`
	UpdatedAt   int64  `json:"updatedAt"`
}

// TransactionDraft is the editable content of a transaction.
type TransactionDraft struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Category    string `json:"category,omitempty"`
	Type        string `json:"type"`
	AccountID   string `json:"accountId"`
}

type CreateTransactionRequest struct {
	Draft TransactionDraft `json:"draft"`
}

type CreateTransactionResponse struct {
	Transaction *Transaction `json:"transaction"`
}

// UpdateTransactionRequest replaces a transaction with Draft. Previous is the
// version the client edited; if it no longer matches the stored transaction
// the update is aborted. Without Previous the stored version is used.
type UpdateTransactionRequest struct {
	TransactionID string           `json:"transactionId"`
	Draft         TransactionDraft `json:"draft"`
	Previous      *Transaction     `json:"previous,omitempty"`
}

type UpdateTransactionResponse struct {
	Transaction *Transaction `json:"transaction"`
}

// DeleteTransactionRequest removes a transaction. Expected, when set, is the
// version the client saw.
type DeleteTransactionRequest struct {
	TransactionID string       `json:"transactionId"`
	Expected      *Transaction `json:"expected,omitempty"`
}

type DeleteTransactionResponse struct{}

type GetTransactionRequest struct {
	TransactionID string `json:"transactionId"`
}

type GetTransactionResponse struct {
	Transaction *Transaction `json:"transaction"`
}

// TransactionFilter narrows list and watch results. Empty fields match all.
type TransactionFilter struct {
	AccountID string `json:"accountId,omitempty"`
	Type      string `json:"type,omitempty"`
	Category  string `json:"category,omitempty"`
	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
	Limit     int32  `json:"limit,omitempty"`
}

type ListTransactionsRequest struct {
	Filter TransactionFilter `json:"filter"`
}

type ListTransactionsResponse struct {
	Transactions []*Transaction `json:"transactions"`
}

type WatchTransactionsRequest struct {
	Filter TransactionFilter `json:"filter"`
}

type WatchTransactionsResponse struct {
	Transactions []*Transaction `json:"transactions"`
}
