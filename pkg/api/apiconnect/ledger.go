package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/fintrack/pkg/api"
)

// AccountServiceName is the fully-qualified name of the AccountService service.
const AccountServiceName = "fintrack.v1.AccountService"

var (
	AccountServiceCreateAccountProcedure = procedure(AccountServiceName, "CreateAccount")
	AccountServiceGetAccountProcedure    = procedure(AccountServiceName, "GetAccount")
	AccountServiceListAccountsProcedure  = procedure(AccountServiceName, "ListAccounts")
	AccountServiceUpdateAccountProcedure = procedure(AccountServiceName, "UpdateAccount")
	AccountServiceDeleteAccountProcedure = procedure(AccountServiceName, "DeleteAccount")
	AccountServiceWatchAccountsProcedure = procedure(AccountServiceName, "WatchAccounts")
)

// AccountServiceHandler is implemented by the server side of AccountService.
type AccountServiceHandler interface {
	CreateAccount(context.Context, *connect.Request[api.CreateAccountRequest]) (*connect.Response[api.CreateAccountResponse], error)
	GetAccount(context.Context, *connect.Request[api.GetAccountRequest]) (*connect.Response[api.GetAccountResponse], error)
	ListAccounts(context.Context, *connect.Request[api.ListAccountsRequest]) (*connect.Response[api.ListAccountsResponse], error)
	UpdateAccount(context.Context, *connect.Request[api.UpdateAccountRequest]) (*connect.Response[api.UpdateAccountResponse], error)
	DeleteAccount(context.Context, *connect.Request[api.DeleteAccountRequest]) (*connect.Response[api.DeleteAccountResponse], error)
	WatchAccounts(context.Context, *connect.Request[api.WatchAccountsRequest], *connect.ServerStream[api.WatchAccountsResponse]) error
}

// NewAccountServiceHandler builds an HTTP handler from the service implementation.
func NewAccountServiceHandler(svc AccountServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return route(AccountServiceName, map[string]http.Handler{
		AccountServiceCreateAccountProcedure: connect.NewUnaryHandler(AccountServiceCreateAccountProcedure, svc.CreateAccount, opts...),
		AccountServiceGetAccountProcedure:    connect.NewUnaryHandler(AccountServiceGetAccountProcedure, svc.GetAccount, opts...),
		AccountServiceListAccountsProcedure:  connect.NewUnaryHandler(AccountServiceListAccountsProcedure, svc.ListAccounts, opts...),
		AccountServiceUpdateAccountProcedure: connect.NewUnaryHandler(AccountServiceUpdateAccountProcedure, svc.UpdateAccount, opts...),
		AccountServiceDeleteAccountProcedure: connect.NewUnaryHandler(AccountServiceDeleteAccountProcedure, svc.DeleteAccount, opts...),
		AccountServiceWatchAccountsProcedure: connect.NewServerStreamHandler(AccountServiceWatchAccountsProcedure, svc.WatchAccounts, opts...),
	})
}

// AccountServiceClient is a client for the AccountService service.
type AccountServiceClient interface {
	CreateAccount(context.Context, *connect.Request[api.CreateAccountRequest]) (*connect.Response[api.CreateAccountResponse], error)
	GetAccount(context.Context, *connect.Request[api.GetAccountRequest]) (*connect.Response[api.GetAccountResponse], error)
	ListAccounts(context.Context, *connect.Request[api.ListAccountsRequest]) (*connect.Response[api.ListAccountsResponse], error)
	UpdateAccount(context.Context, *connect.Request[api.UpdateAccountRequest]) (*connect.Response[api.UpdateAccountResponse], error)
	DeleteAccount(context.Context, *connect.Request[api.DeleteAccountRequest]) (*connect.Response[api.DeleteAccountResponse], error)
	WatchAccounts(context.Context, *connect.Request[api.WatchAccountsRequest]) (*connect.ServerStreamForClient[api.WatchAccountsResponse], error)
}

// NewAccountServiceClient constructs a client for the AccountService service.
func NewAccountServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AccountServiceClient {
	baseURL = trimSlash(baseURL)
	opts = clientOptions(opts)
	return &accountServiceClient{
		createAccount: connect.NewClient[api.CreateAccountRequest, api.CreateAccountResponse](httpClient, baseURL+AccountServiceCreateAccountProcedure, opts...),
		getAccount:    connect.NewClient[api.GetAccountRequest, api.GetAccountResponse](httpClient, baseURL+AccountServiceGetAccountProcedure, opts...),
		listAccounts:  connect.NewClient[api.ListAccountsRequest, api.ListAccountsResponse](httpClient, baseURL+AccountServiceListAccountsProcedure, opts...),
		updateAccount: connect.NewClient[api.UpdateAccountRequest, api.UpdateAccountResponse](httpClient, baseURL+AccountServiceUpdateAccountProcedure, opts...),
		deleteAccount: connect.NewClient[api.DeleteAccountRequest, api.DeleteAccountResponse](httpClient, baseURL+AccountServiceDeleteAccountProcedure, opts...),
		watchAccounts: connect.NewClient[api.WatchAccountsRequest, api.WatchAccountsResponse](httpClient, baseURL+AccountServiceWatchAccountsProcedure, opts...),
	}
}

type accountServiceClient struct {
	createAccount *connect.Client[api.CreateAccountRequest, api.CreateAccountResponse]
	getAccount    *connect.Client[api.GetAccountRequest, api.GetAccountResponse]
	listAccounts  *connect.Client[api.ListAccountsRequest, api.ListAccountsResponse]
	updateAccount *connect.Client[api.UpdateAccountRequest, api.UpdateAccountResponse]
	deleteAccount *connect.Client[api.DeleteAccountRequest, api.DeleteAccountResponse]
	watchAccounts *connect.Client[api.WatchAccountsRequest, api.WatchAccountsResponse]
}

func (c *accountServiceClient) CreateAccount(ctx context.Context, req *connect.Request[api.CreateAccountRequest]) (*connect.Response[api.CreateAccountResponse], error) {
	return c.createAccount.CallUnary(ctx, req)
}

func (c *accountServiceClient) GetAccount(ctx context.Context, req *connect.Request[api.GetAccountRequest]) (*connect.Response[api.GetAccountResponse], error) {
	return c.getAccount.CallUnary(ctx, req)
}

func (c *accountServiceClient) ListAccounts(ctx context.Context, req *connect.Request[api.ListAccountsRequest]) (*connect.Response[api.ListAccountsResponse], error) {
	return c.listAccounts.CallUnary(ctx, req)
}

func (c *accountServiceClient) UpdateAccount(ctx context.Context, req *connect.Request[api.UpdateAccountRequest]) (*connect.Response[api.UpdateAccountResponse], error) {
	return c.updateAccount.CallUnary(ctx, req)
}

func (c *accountServiceClient) DeleteAccount(ctx context.Context, req *connect.Request[api.DeleteAccountRequest]) (*connect.Response[api.DeleteAccountResponse], error) {
	return c.deleteAccount.CallUnary(ctx, req)
}

func (c *accountServiceClient) WatchAccounts(ctx context.Context, req *connect.Request[api.WatchAccountsRequest]) (*connect.ServerStreamForClient[api.WatchAccountsResponse], error) {
	return c.watchAccounts.CallServerStream(ctx, req)
}

// TransactionServiceName is the fully-qualified name of the TransactionService service.
const TransactionServiceName = "fintrack.v1.TransactionService"

var (
	TransactionServiceCreateTransactionProcedure = procedure(TransactionServiceName, "CreateTransaction")
	TransactionServiceUpdateTransactionProcedure = procedure(TransactionServiceName, "UpdateTransaction")
	TransactionServiceDeleteTransactionProcedure = procedure(TransactionServiceName, "DeleteTransaction")
	TransactionServiceGetTransactionProcedure    = procedure(TransactionServiceName, "GetTransaction")
	TransactionServiceListTransactionsProcedure  = procedure(TransactionServiceName, "ListTransactions")
	TransactionServiceWatchTransactionsProcedure = procedure(TransactionServiceName, "WatchTransactions")
)

// TransactionServiceHandler is implemented by the server side of TransactionService.
type TransactionServiceHandler interface {
	CreateTransaction(context.Context, *connect.Request[api.CreateTransactionRequest]) (*connect.Response[api.CreateTransactionResponse], error)
	UpdateTransaction(context.Context, *connect.Request[api.UpdateTransactionRequest]) (*connect.Response[api.UpdateTransactionResponse], error)
	DeleteTransaction(context.Context, *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error)
	GetTransaction(context.Context, *connect.Request[api.GetTransactionRequest]) (*connect.Response[api.GetTransactionResponse], error)
	ListTransactions(context.Context, *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error)
	WatchTransactions(context.Context, *connect.Request[api.WatchTransactionsRequest], *connect.ServerStream[api.WatchTransactionsResponse]) error
}

// NewTransactionServiceHandler builds an HTTP handler from the service implementation.
func NewTransactionServiceHandler(svc TransactionServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return route(TransactionServiceName, map[string]http.Handler{
		TransactionServiceCreateTransactionProcedure: connect.NewUnaryHandler(TransactionServiceCreateTransactionProcedure, svc.CreateTransaction, opts...),
		TransactionServiceUpdateTransactionProcedure: connect.NewUnaryHandler(TransactionServiceUpdateTransactionProcedure, svc.UpdateTransaction, opts...),
		TransactionServiceDeleteTransactionProcedure: connect.NewUnaryHandler(TransactionServiceDeleteTransactionProcedure, svc.DeleteTransaction, opts...),
		TransactionServiceGetTransactionProcedure:    connect.NewUnaryHandler(TransactionServiceGetTransactionProcedure, svc.GetTransaction, opts...),
		TransactionServiceListTransactionsProcedure:  connect.NewUnaryHandler(TransactionServiceListTransactionsProcedure, svc.ListTransactions, opts...),
		TransactionServiceWatchTransactionsProcedure: connect.NewServerStreamHandler(TransactionServiceWatchTransactionsProcedure, svc.WatchTransactions, opts...),
	})
}

// TransactionServiceClient is a client for the TransactionService service.
type TransactionServiceClient interface {
	CreateTransaction(context.Context, *connect.Request[api.CreateTransactionRequest]) (*connect.Response[api.CreateTransactionResponse], error)
	UpdateTransaction(context.Context, *connect.Request[api.UpdateTransactionRequest]) (*connect.Response[api.UpdateTransactionResponse], error)
	DeleteTransaction(context.Context, *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error)
	GetTransaction(context.Context, *connect.Request[api.GetTransactionRequest]) (*connect.Response[api.GetTransactionResponse], error)
	ListTransactions(context.Context, *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error)
	WatchTransactions(context.Context, *connect.Request[api.WatchTransactionsRequest]) (*connect.ServerStreamForClient[api.WatchTransactionsResponse], error)
}

// NewTransactionServiceClient constructs a client for the TransactionService service.
func NewTransactionServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TransactionServiceClient {
	baseURL = trimSlash(baseURL)
	opts = clientOptions(opts)
	return &transactionServiceClient{
		createTransaction: connect.NewClient[api.CreateTransactionRequest, api.CreateTransactionResponse](httpClient, baseURL+TransactionServiceCreateTransactionProcedure, opts...),
		updateTransaction: connect.NewClient[api.UpdateTransactionRequest, api.UpdateTransactionResponse](httpClient, baseURL+TransactionServiceUpdateTransactionProcedure, opts...),
		deleteTransaction: connect.NewClient[api.DeleteTransactionRequest, api.DeleteTransactionResponse](httpClient, baseURL+TransactionServiceDeleteTransactionProcedure, opts...),
		getTransaction:    connect.NewClient[api.GetTransactionRequest, api.GetTransactionResponse](httpClient, baseURL+TransactionServiceGetTransactionProcedure, opts...),
		listTransactions:  connect.NewClient[api.ListTransactionsRequest, api.ListTransactionsResponse](httpClient, baseURL+TransactionServiceListTransactionsProcedure, opts...),
		watchTransactions: connect.NewClient[api.WatchTransactionsRequest, api.WatchTransactionsResponse](httpClient, baseURL+TransactionServiceWatchTransactionsProcedure, opts...),
	}
}

type transactionServiceClient struct {
	createTransaction *connect.Client[api.CreateTransactionRequest, api.CreateTransactionResponse]
	updateTransaction *connect.Client[api.UpdateTransactionRequest, api.UpdateTransactionResponse]
	deleteTransaction *connect.Client[api.DeleteTransactionRequest, api.DeleteTransactionResponse]
	getTransaction    *connect.Client[api.GetTransactionRequest, api.GetTransactionResponse]
	listTransactions  *connect.Client[api.ListTransactionsRequest, api.ListTransactionsResponse]
	watchTransactions *connect.Client[api.WatchTransactionsRequest, api.WatchTransactionsResponse]
}

func (c *transactionServiceClient) CreateTransaction(ctx context.Context, req *connect.Request[api.CreateTransactionRequest]) (*connect.Response[api.CreateTransactionResponse], error) {
	return c.createTransaction.CallUnary(ctx, req)
}

func (c *transactionServiceClient) UpdateTransaction(ctx context.Context, req *connect.Request[api.UpdateTransactionRequest]) (*connect.Response[api.UpdateTransactionResponse], error) {
	return c.updateTransaction.CallUnary(ctx, req)
}

func (c *transactionServiceClient) DeleteTransaction(ctx context.Context, req *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error) {
	return c.deleteTransaction.CallUnary(ctx, req)
}

func (c *transactionServiceClient) GetTransaction(ctx context.Context, req *connect.Request[api.GetTransactionRequest]) (*connect.Response[api.GetTransactionResponse], error) {
	return c.getTransaction.CallUnary(ctx, req)
}

func (c *transactionServiceClient) ListTransactions(ctx context.Context, req *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error) {
	return c.listTransactions.CallUnary(ctx, req)
}

func (c *transactionServiceClient) WatchTransactions(ctx context.Context, req *connect.Request[api.WatchTransactionsRequest]) (*connect.ServerStreamForClient[api.WatchTransactionsResponse], error) {
	return c.watchTransactions.CallServerStream(ctx, req)
}
