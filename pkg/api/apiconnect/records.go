package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/fintrack/pkg/api"
)

// BudgetServiceName is the fully-qualified name of the BudgetService service.
const BudgetServiceName = "fintrack.v1.BudgetService"

var (
	BudgetServiceCreateBudgetProcedure = procedure(BudgetServiceName, "CreateBudget")
	BudgetServiceGetBudgetProcedure    = procedure(BudgetServiceName, "GetBudget")
	BudgetServiceListBudgetsProcedure  = procedure(BudgetServiceName, "ListBudgets")
	BudgetServiceUpdateBudgetProcedure = procedure(BudgetServiceName, "UpdateBudget")
	BudgetServiceDeleteBudgetProcedure = procedure(BudgetServiceName, "DeleteBudget")
)

// BudgetServiceHandler is implemented by the server side of BudgetService.
type BudgetServiceHandler interface {
	CreateBudget(context.Context, *connect.Request[api.CreateBudgetRequest]) (*connect.Response[api.CreateBudgetResponse], error)
	GetBudget(context.Context, *connect.Request[api.GetBudgetRequest]) (*connect.Response[api.GetBudgetResponse], error)
	ListBudgets(context.Context, *connect.Request[api.ListBudgetsRequest]) (*connect.Response[api.ListBudgetsResponse], error)
	UpdateBudget(context.Context, *connect.Request[api.UpdateBudgetRequest]) (*connect.Response[api.UpdateBudgetResponse], error)
	DeleteBudget(context.Context, *connect.Request[api.DeleteBudgetRequest]) (*connect.Response[api.DeleteBudgetResponse], error)
}

// NewBudgetServiceHandler builds an HTTP handler from the service implementation.
func NewBudgetServiceHandler(svc BudgetServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return route(BudgetServiceName, map[string]http.Handler{
		BudgetServiceCreateBudgetProcedure: connect.NewUnaryHandler(BudgetServiceCreateBudgetProcedure, svc.CreateBudget, opts...),
		BudgetServiceGetBudgetProcedure:    connect.NewUnaryHandler(BudgetServiceGetBudgetProcedure, svc.GetBudget, opts...),
		BudgetServiceListBudgetsProcedure:  connect.NewUnaryHandler(BudgetServiceListBudgetsProcedure, svc.ListBudgets, opts...),
		BudgetServiceUpdateBudgetProcedure: connect.NewUnaryHandler(BudgetServiceUpdateBudgetProcedure, svc.UpdateBudget, opts...),
		BudgetServiceDeleteBudgetProcedure: connect.NewUnaryHandler(BudgetServiceDeleteBudgetProcedure, svc.DeleteBudget, opts...),
	})
}

// BudgetServiceClient is a client for the BudgetService service.
type BudgetServiceClient interface {
	CreateBudget(context.Context, *connect.Request[api.CreateBudgetRequest]) (*connect.Response[api.CreateBudgetResponse], error)
	GetBudget(context.Context, *connect.Request[api.GetBudgetRequest]) (*connect.Response[api.GetBudgetResponse], error)
	ListBudgets(context.Context, *connect.Request[api.ListBudgetsRequest]) (*connect.Response[api.ListBudgetsResponse], error)
	UpdateBudget(context.Context, *connect.Request[api.UpdateBudgetRequest]) (*connect.Response[api.UpdateBudgetResponse], error)
	DeleteBudget(context.Context, *connect.Request[api.DeleteBudgetRequest]) (*connect.Response[api.DeleteBudgetResponse], error)
}

// NewBudgetServiceClient constructs a client for the BudgetService service.
func NewBudgetServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BudgetServiceClient {
	baseURL = trimSlash(baseURL)
	opts = clientOptions(opts)
	return &budgetServiceClient{
		createBudget: connect.NewClient[api.CreateBudgetRequest, api.CreateBudgetResponse](httpClient, baseURL+BudgetServiceCreateBudgetProcedure, opts...),
		getBudget:    connect.NewClient[api.GetBudgetRequest, api.GetBudgetResponse](httpClient, baseURL+BudgetServiceGetBudgetProcedure, opts...),
		listBudgets:  connect.NewClient[api.ListBudgetsRequest, api.ListBudgetsResponse](httpClient, baseURL+BudgetServiceListBudgetsProcedure, opts...),
		updateBudget: connect.NewClient[api.UpdateBudgetRequest, api.UpdateBudgetResponse](httpClient, baseURL+BudgetServiceUpdateBudgetProcedure, opts...),
		deleteBudget: connect.NewClient[api.DeleteBudgetRequest, api.DeleteBudgetResponse](httpClient, baseURL+BudgetServiceDeleteBudgetProcedure, opts...),
	}
}

type budgetServiceClient struct {
	createBudget *connect.Client[api.CreateBudgetRequest, api.CreateBudgetResponse]
	getBudget    *connect.Client[api.GetBudgetRequest, api.GetBudgetResponse]
	listBudgets  *connect.Client[api.ListBudgetsRequest, api.ListBudgetsResponse]
	updateBudget *connect.Client[api.UpdateBudgetRequest, api.UpdateBudgetResponse]
	deleteBudget *connect.Client[api.DeleteBudgetRequest, api.DeleteBudgetResponse]
}

func (c *budgetServiceClient) CreateBudget(ctx context.Context, req *connect.Request[api.CreateBudgetRequest]) (*connect.Response[api.CreateBudgetResponse], error) {
	return c.createBudget.CallUnary(ctx, req)
}

func (c *budgetServiceClient) GetBudget(ctx context.Context, req *connect.Request[api.GetBudgetRequest]) (*connect.Response[api.GetBudgetResponse], error) {
	return c.getBudget.CallUnary(ctx, req)
}

func (c *budgetServiceClient) ListBudgets(ctx context.Context, req *connect.Request[api.ListBudgetsRequest]) (*connect.Response[api.ListBudgetsResponse], error) {
	return c.listBudgets.CallUnary(ctx, req)
}

func (c *budgetServiceClient) UpdateBudget(ctx context.Context, req *connect.Request[api.UpdateBudgetRequest]) (*connect.Response[api.UpdateBudgetResponse], error) {
	return c.updateBudget.CallUnary(ctx, req)
}

func (c *budgetServiceClient) DeleteBudget(ctx context.Context, req *connect.Request[api.DeleteBudgetRequest]) (*connect.Response[api.DeleteBudgetResponse], error) {
	return c.deleteBudget.CallUnary(ctx, req)
}

// GoalServiceName is the fully-qualified name of the GoalService service.
const GoalServiceName = "fintrack.v1.GoalService"

var (
	GoalServiceCreateGoalProcedure = procedure(GoalServiceName, "CreateGoal")
	GoalServiceGetGoalProcedure    = procedure(GoalServiceName, "GetGoal")
	GoalServiceListGoalsProcedure  = procedure(GoalServiceName, "ListGoals")
	GoalServiceUpdateGoalProcedure = procedure(GoalServiceName, "UpdateGoal")
	GoalServiceDeleteGoalProcedure = procedure(GoalServiceName, "DeleteGoal")
)

// GoalServiceHandler is implemented by the server side of GoalService.
type GoalServiceHandler interface {
	CreateGoal(context.Context, *connect.Request[api.CreateGoalRequest]) (*connect.Response[api.CreateGoalResponse], error)
	GetGoal(context.Context, *connect.Request[api.GetGoalRequest]) (*connect.Response[api.GetGoalResponse], error)
	ListGoals(context.Context, *connect.Request[api.ListGoalsRequest]) (*connect.Response[api.ListGoalsResponse], error)
	UpdateGoal(context.Context, *connect.Request[api.UpdateGoalRequest]) (*connect.Response[api.UpdateGoalResponse], error)
	DeleteGoal(context.Context, *connect.Request[api.DeleteGoalRequest]) (*connect.Response[api.DeleteGoalResponse], error)
}

// NewGoalServiceHandler builds an HTTP handler from the service implementation.
func NewGoalServiceHandler(svc GoalServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return route(GoalServiceName, map[string]http.Handler{
		GoalServiceCreateGoalProcedure: connect.NewUnaryHandler(GoalServiceCreateGoalProcedure, svc.CreateGoal, opts...),
		GoalServiceGetGoalProcedure:    connect.NewUnaryHandler(GoalServiceGetGoalProcedure, svc.GetGoal, opts...),
		GoalServiceListGoalsProcedure:  connect.NewUnaryHandler(GoalServiceListGoalsProcedure, svc.ListGoals, opts...),
		GoalServiceUpdateGoalProcedure: connect.NewUnaryHandler(GoalServiceUpdateGoalProcedure, svc.UpdateGoal, opts...),
		GoalServiceDeleteGoalProcedure: connect.NewUnaryHandler(GoalServiceDeleteGoalProcedure, svc.DeleteGoal, opts...),
	})
}

// GoalServiceClient is a client for the GoalService service.
type GoalServiceClient interface {
	CreateGoal(context.Context, *connect.Request[api.CreateGoalRequest]) (*connect.Response[api.CreateGoalResponse], error)
	GetGoal(context.Context, *connect.Request[api.GetGoalRequest]) (*connect.Response[api.GetGoalResponse], error)
	ListGoals(context.Context, *connect.Request[api.ListGoalsRequest]) (*connect.Response[api.ListGoalsResponse], error)
	UpdateGoal(context.Context, *connect.Request[api.UpdateGoalRequest]) (*connect.Response[api.UpdateGoalResponse], error)
	DeleteGoal(context.Context, *connect.Request[api.DeleteGoalRequest]) (*connect.Response[api.DeleteGoalResponse], error)
}

// NewGoalServiceClient constructs a client for the GoalService service.
func NewGoalServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GoalServiceClient {
	baseURL = trimSlash(baseURL)
	opts = clientOptions(opts)
	return &goalServiceClient{
		createGoal: connect.NewClient[api.CreateGoalRequest, api.CreateGoalResponse](httpClient, baseURL+GoalServiceCreateGoalProcedure, opts...),
		getGoal:    connect.NewClient[api.GetGoalRequest, api.GetGoalResponse](httpClient, baseURL+GoalServiceGetGoalProcedure, opts...),
		listGoals:  connect.NewClient[api.ListGoalsRequest, api.ListGoalsResponse](httpClient, baseURL+GoalServiceListGoalsProcedure, opts...),
		updateGoal: connect.NewClient[api.UpdateGoalRequest, api.UpdateGoalResponse](httpClient, baseURL+GoalServiceUpdateGoalProcedure, opts...),
		deleteGoal: connect.NewClient[api.DeleteGoalRequest, api.DeleteGoalResponse](httpClient, baseURL+GoalServiceDeleteGoalProcedure, opts...),
	}
}

type goalServiceClient struct {
	createGoal *connect.Client[api.CreateGoalRequest, api.CreateGoalResponse]
	getGoal    *connect.Client[api.GetGoalRequest, api.GetGoalResponse]
	listGoals  *connect.Client[api.ListGoalsRequest, api.ListGoalsResponse]
	updateGoal *connect.Client[api.UpdateGoalRequest, api.UpdateGoalResponse]
	deleteGoal *connect.Client[api.DeleteGoalRequest, api.DeleteGoalResponse]
}

func (c *goalServiceClient) CreateGoal(ctx context.Context, req *connect.Request[api.CreateGoalRequest]) (*connect.Response[api.CreateGoalResponse], error) {
	return c.createGoal.CallUnary(ctx, req)
}

func (c *goalServiceClient) GetGoal(ctx context.Context, req *connect.Request[api.GetGoalRequest]) (*connect.Response[api.GetGoalResponse], error) {
	return c.getGoal.CallUnary(ctx, req)
}

func (c *goalServiceClient) ListGoals(ctx context.Context, req *connect.Request[api.ListGoalsRequest]) (*connect.Response[api.ListGoalsResponse], error) {
	return c.listGoals.CallUnary(ctx, req)
}

func (c *goalServiceClient) UpdateGoal(ctx context.Context, req *connect.Request[api.UpdateGoalRequest]) (*connect.Response[api.UpdateGoalResponse], error) {
	return c.updateGoal.CallUnary(ctx, req)
}

func (c *goalServiceClient) DeleteGoal(ctx context.Context, req *connect.Request[api.DeleteGoalRequest]) (*connect.Response[api.DeleteGoalResponse], error) {
	return c.deleteGoal.CallUnary(ctx, req)
}

// CategoryServiceName is the fully-qualified name of the CategoryService service.
const CategoryServiceName = "fintrack.v1.CategoryService"

var (
	CategoryServiceCreateCategoryProcedure = procedure(CategoryServiceName, "CreateCategory")
	CategoryServiceGetCategoryProcedure    = procedure(CategoryServiceName, "GetCategory")
	CategoryServiceListCategoriesProcedure = procedure(CategoryServiceName, "ListCategories")
	CategoryServiceUpdateCategoryProcedure = procedure(CategoryServiceName, "UpdateCategory")
	CategoryServiceDeleteCategoryProcedure = procedure(CategoryServiceName, "DeleteCategory")
)

// CategoryServiceHandler is implemented by the server side of CategoryService.
type CategoryServiceHandler interface {
	CreateCategory(context.Context, *connect.Request[api.CreateCategoryRequest]) (*connect.Response[api.CreateCategoryResponse], error)
	GetCategory(context.Context, *connect.Request[api.GetCategoryRequest]) (*connect.Response[api.GetCategoryResponse], error)
	ListCategories(context.Context, *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error)
	UpdateCategory(context.Context, *connect.Request[api.UpdateCategoryRequest]) (*connect.Response[api.UpdateCategoryResponse], error)
	DeleteCategory(context.Context, *connect.Request[api.DeleteCategoryRequest]) (*connect.Response[api.DeleteCategoryResponse], error)
}

// NewCategoryServiceHandler builds an HTTP handler from the service implementation.
func NewCategoryServiceHandler(svc CategoryServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return route(CategoryServiceName, map[string]http.Handler{
		CategoryServiceCreateCategoryProcedure: connect.NewUnaryHandler(CategoryServiceCreateCategoryProcedure, svc.CreateCategory, opts...),
		CategoryServiceGetCategoryProcedure:    connect.NewUnaryHandler(CategoryServiceGetCategoryProcedure, svc.GetCategory, opts...),
		CategoryServiceListCategoriesProcedure: connect.NewUnaryHandler(CategoryServiceListCategoriesProcedure, svc.ListCategories, opts...),
		CategoryServiceUpdateCategoryProcedure: connect.NewUnaryHandler(CategoryServiceUpdateCategoryProcedure, svc.UpdateCategory, opts...),
		CategoryServiceDeleteCategoryProcedure: connect.NewUnaryHandler(CategoryServiceDeleteCategoryProcedure, svc.DeleteCategory, opts...),
	})
}

// CategoryServiceClient is a client for the CategoryService service.
type CategoryServiceClient interface {
	CreateCategory(context.Context, *connect.Request[api.CreateCategoryRequest]) (*connect.Response[api.CreateCategoryResponse], error)
	GetCategory(context.Context, *connect.Request[api.GetCategoryRequest]) (*connect.Response[api.GetCategoryResponse], error)
	ListCategories(context.Context, *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error)
	UpdateCategory(context.Context, *connect.Request[api.UpdateCategoryRequest]) (*connect.Response[api.UpdateCategoryResponse], error)
	DeleteCategory(context.Context, *connect.Request[api.DeleteCategoryRequest]) (*connect.Response[api.DeleteCategoryResponse], error)
}

// NewCategoryServiceClient constructs a client for the CategoryService service.
func NewCategoryServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) CategoryServiceClient {
	baseURL = trimSlash(baseURL)
	opts = clientOptions(opts)
	return &categoryServiceClient{
		createCategory: connect.NewClient[api.CreateCategoryRequest, api.CreateCategoryResponse](httpClient, baseURL+CategoryServiceCreateCategoryProcedure, opts...),
		getCategory:    connect.NewClient[api.GetCategoryRequest, api.GetCategoryResponse](httpClient, baseURL+CategoryServiceGetCategoryProcedure, opts...),
		listCategories: connect.NewClient[api.ListCategoriesRequest, api.ListCategoriesResponse](httpClient, baseURL+CategoryServiceListCategoriesProcedure, opts...),
		updateCategory: connect.NewClient[api.UpdateCategoryRequest, api.UpdateCategoryResponse](httpClient, baseURL+CategoryServiceUpdateCategoryProcedure, opts...),
		deleteCategory: connect.NewClient[api.DeleteCategoryRequest, api.DeleteCategoryResponse](httpClient, baseURL+CategoryServiceDeleteCategoryProcedure, opts...),
	}
}

type categoryServiceClient struct {
	createCategory *connect.Client[api.CreateCategoryRequest, api.CreateCategoryResponse]
	getCategory    *connect.Client[api.GetCategoryRequest, api.GetCategoryResponse]
	listCategories *connect.Client[api.ListCategoriesRequest, api.ListCategoriesResponse]
	updateCategory *connect.Client[api.UpdateCategoryRequest, api.UpdateCategoryResponse]
	deleteCategory *connect.Client[api.DeleteCategoryRequest, api.DeleteCategoryResponse]
}

func (c *categoryServiceClient) CreateCategory(ctx context.Context, req *connect.Request[api.CreateCategoryRequest]) (*connect.Response[api.CreateCategoryResponse], error) {
	return c.createCategory.CallUnary(ctx, req)
}

func (c *categoryServiceClient) GetCategory(ctx context.Context, req *connect.Request[api.GetCategoryRequest]) (*connect.Response[api.GetCategoryResponse], error) {
	return c.getCategory.CallUnary(ctx, req)
}

func (c *categoryServiceClient) ListCategories(ctx context.Context, req *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	return c.listCategories.CallUnary(ctx, req)
}

func (c *categoryServiceClient) UpdateCategory(ctx context.Context, req *connect.Request[api.UpdateCategoryRequest]) (*connect.Response[api.UpdateCategoryResponse], error) {
	return c.updateCategory.CallUnary(ctx, req)
}

func (c *categoryServiceClient) DeleteCategory(ctx context.Context, req *connect.Request[api.DeleteCategoryRequest]) (*connect.Response[api.DeleteCategoryResponse], error) {
	return c.deleteCategory.CallUnary(ctx, req)
}
