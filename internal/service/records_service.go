package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
	"github.com/mmynk/fintrack/pkg/api"
	"github.com/mmynk/fintrack/pkg/api/apiconnect"
)

var (
	_ apiconnect.BudgetServiceHandler   = (*BudgetService)(nil)
	_ apiconnect.GoalServiceHandler     = (*GoalService)(nil)
	_ apiconnect.CategoryServiceHandler = (*CategoryService)(nil)
)

// BudgetService implements the Connect BudgetService.
type BudgetService struct {
	store storage.BudgetStore
}

// NewBudgetService creates a BudgetService.
func NewBudgetService(store storage.BudgetStore) *BudgetService {
	return &BudgetService{store: store}
}

func parseBudget(in api.BudgetInput) (*models.Budget, error) {
	b := &models.Budget{
		Name:     strings.TrimSpace(in.Name),
		Category: strings.TrimSpace(in.Category),
		Period:   models.BudgetPeriod(strings.ToLower(strings.TrimSpace(in.Period))),
	}
	if b.Name == "" {
		return nil, invalidArgument("budget.name", "is required")
	}
	if b.Category == "" {
		return nil, invalidArgument("budget.category", "is required")
	}
	if !b.Period.Valid() {
		return nil, invalidArgument("budget.period", "must be weekly, monthly or yearly")
	}

	var err error
	if b.Limit, err = parseAmount("budget.limit", in.Limit, false); err != nil {
		return nil, err
	}
	if !b.Limit.IsPositive() {
		return nil, invalidArgument("budget.limit", "must be greater than zero")
	}
	if b.Spent, err = parseAmount("budget.spent", in.Spent, true); err != nil {
		return nil, err
	}
	if b.Spent.IsNegative() {
		return nil, invalidArgument("budget.spent", "must not be negative")
	}
	return b, nil
}

func (s *BudgetService) CreateBudget(ctx context.Context, req *connect.Request[api.CreateBudgetRequest]) (*connect.Response[api.CreateBudgetResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	budget, err := parseBudget(req.Msg.Budget)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateBudget(ctx, userID, budget); err != nil {
		return nil, fail("CreateBudget failed", err, "user_id", userID)
	}

	slog.Info("Created budget", "user_id", userID, "budget_id", budget.ID)
	return connect.NewResponse(&api.CreateBudgetResponse{Budget: toAPIBudget(budget)}), nil
}

func (s *BudgetService) GetBudget(ctx context.Context, req *connect.Request[api.GetBudgetRequest]) (*connect.Response[api.GetBudgetResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	budget, err := s.store.GetBudget(ctx, userID, req.Msg.BudgetID)
	if err != nil {
		return nil, fail("GetBudget failed", err, "user_id", userID, "budget_id", req.Msg.BudgetID)
	}
	return connect.NewResponse(&api.GetBudgetResponse{Budget: toAPIBudget(budget)}), nil
}

func (s *BudgetService) ListBudgets(ctx context.Context, req *connect.Request[api.ListBudgetsRequest]) (*connect.Response[api.ListBudgetsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	budgets, err := s.store.ListBudgets(ctx, userID)
	if err != nil {
		return nil, fail("ListBudgets failed", err, "user_id", userID)
	}

	resp := &api.ListBudgetsResponse{Budgets: make([]*api.Budget, len(budgets))}
	for i, b := range budgets {
		resp.Budgets[i] = toAPIBudget(b)
	}
	return connect.NewResponse(resp), nil
}

func (s *BudgetService) UpdateBudget(ctx context.Context, req *connect.Request[api.UpdateBudgetRequest]) (*connect.Response[api.UpdateBudgetResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	budget, err := parseBudget(req.Msg.Budget)
	if err != nil {
		return nil, err
	}
	budget.ID = req.Msg.BudgetID
	if err := s.store.UpdateBudget(ctx, userID, budget); err != nil {
		return nil, fail("UpdateBudget failed", err, "user_id", userID, "budget_id", req.Msg.BudgetID)
	}

	slog.Info("Updated budget", "user_id", userID, "budget_id", budget.ID)
	return connect.NewResponse(&api.UpdateBudgetResponse{Budget: toAPIBudget(budget)}), nil
}

func (s *BudgetService) DeleteBudget(ctx context.Context, req *connect.Request[api.DeleteBudgetRequest]) (*connect.Response[api.DeleteBudgetResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteBudget(ctx, userID, req.Msg.BudgetID); err != nil {
		return nil, fail("DeleteBudget failed", err, "user_id", userID, "budget_id", req.Msg.BudgetID)
	}

	slog.Info("Deleted budget", "user_id", userID, "budget_id", req.Msg.BudgetID)
	return connect.NewResponse(&api.DeleteBudgetResponse{}), nil
}

// GoalService implements the Connect GoalService.
type GoalService struct {
	store storage.GoalStore
}

// NewGoalService creates a GoalService.
func NewGoalService(store storage.GoalStore) *GoalService {
	return &GoalService{store: store}
}

func parseGoal(in api.GoalInput) (*models.Goal, error) {
	g := &models.Goal{Name: strings.TrimSpace(in.Name)}
	if g.Name == "" {
		return nil, invalidArgument("goal.name", "is required")
	}

	var err error
	if g.TargetAmount, err = parseAmount("goal.targetAmount", in.TargetAmount, false); err != nil {
		return nil, err
	}
	if !g.TargetAmount.IsPositive() {
		return nil, invalidArgument("goal.targetAmount", "must be greater than zero")
	}
	if g.CurrentAmount, err = parseAmount("goal.currentAmount", in.CurrentAmount, true); err != nil {
		return nil, err
	}
	if g.CurrentAmount.IsNegative() {
		return nil, invalidArgument("goal.currentAmount", "must not be negative")
	}
	if g.Deadline, err = parseDate("goal.deadline", in.Deadline); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *GoalService) CreateGoal(ctx context.Context, req *connect.Request[api.CreateGoalRequest]) (*connect.Response[api.CreateGoalResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	goal, err := parseGoal(req.Msg.Goal)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateGoal(ctx, userID, goal); err != nil {
		return nil, fail("CreateGoal failed", err, "user_id", userID)
	}

	slog.Info("Created goal", "user_id", userID, "goal_id", goal.ID)
	return connect.NewResponse(&api.CreateGoalResponse{Goal: toAPIGoal(goal)}), nil
}

func (s *GoalService) GetGoal(ctx context.Context, req *connect.Request[api.GetGoalRequest]) (*connect.Response[api.GetGoalResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	goal, err := s.store.GetGoal(ctx, userID, req.Msg.GoalID)
	if err != nil {
		return nil, fail("GetGoal failed", err, "user_id", userID, "goal_id", req.Msg.GoalID)
	}
	return connect.NewResponse(&api.GetGoalResponse{Goal: toAPIGoal(goal)}), nil
}

func (s *GoalService) ListGoals(ctx context.Context, req *connect.Request[api.ListGoalsRequest]) (*connect.Response[api.ListGoalsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	goals, err := s.store.ListGoals(ctx, userID)
	if err != nil {
		return nil, fail("ListGoals failed", err, "user_id", userID)
	}

	resp := &api.ListGoalsResponse{Goals: make([]*api.Goal, len(goals))}
	for i, g := range goals {
		resp.Goals[i] = toAPIGoal(g)
	}
	return connect.NewResponse(resp), nil
}

func (s *GoalService) UpdateGoal(ctx context.Context, req *connect.Request[api.UpdateGoalRequest]) (*connect.Response[api.UpdateGoalResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	goal, err := parseGoal(req.Msg.Goal)
	if err != nil {
		return nil, err
	}
	goal.ID = req.Msg.GoalID
	if err := s.store.UpdateGoal(ctx, userID, goal); err != nil {
		return nil, fail("UpdateGoal failed", err, "user_id", userID, "goal_id", req.Msg.GoalID)
	}

	slog.Info("Updated goal", "user_id", userID, "goal_id", goal.ID)
	return connect.NewResponse(&api.UpdateGoalResponse{Goal: toAPIGoal(goal)}), nil
}

func (s *GoalService) DeleteGoal(ctx context.Context, req *connect.Request[api.DeleteGoalRequest]) (*connect.Response[api.DeleteGoalResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteGoal(ctx, userID, req.Msg.GoalID); err != nil {
		return nil, fail("DeleteGoal failed", err, "user_id", userID, "goal_id", req.Msg.GoalID)
	}

	slog.Info("Deleted goal", "user_id", userID, "goal_id", req.Msg.GoalID)
	return connect.NewResponse(&api.DeleteGoalResponse{}), nil
}

// CategoryService implements the Connect CategoryService.
type CategoryService struct {
	store storage.CategoryStore
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(store storage.CategoryStore) *CategoryService {
	return &CategoryService{store: store}
}

func parseCategory(in api.CategoryInput) (*models.Category, error) {
	c := &models.Category{
		Name: strings.TrimSpace(in.Name),
		Type: models.TransactionType(strings.ToLower(strings.TrimSpace(in.Type))),
	}
	if c.Name == "" {
		return nil, invalidArgument("category.name", "is required")
	}
	if !c.Type.Valid() {
		return nil, invalidArgument("category.type", "must be income or expense")
	}
	return c, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, req *connect.Request[api.CreateCategoryRequest]) (*connect.Response[api.CreateCategoryResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	category, err := parseCategory(req.Msg.Category)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateCategory(ctx, userID, category); err != nil {
		return nil, fail("CreateCategory failed", err, "user_id", userID)
	}

	slog.Info("Created category", "user_id", userID, "category_id", category.ID)
	return connect.NewResponse(&api.CreateCategoryResponse{Category: toAPICategory(category)}), nil
}

func (s *CategoryService) GetCategory(ctx context.Context, req *connect.Request[api.GetCategoryRequest]) (*connect.Response[api.GetCategoryResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	category, err := s.store.GetCategory(ctx, userID, req.Msg.CategoryID)
	if err != nil {
		return nil, fail("GetCategory failed", err, "user_id", userID, "category_id", req.Msg.CategoryID)
	}
	return connect.NewResponse(&api.GetCategoryResponse{Category: toAPICategory(category)}), nil
}

func (s *CategoryService) ListCategories(ctx context.Context, req *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	categories, err := s.store.ListCategories(ctx, userID)
	if err != nil {
		return nil, fail("ListCategories failed", err, "user_id", userID)
	}

	resp := &api.ListCategoriesResponse{Categories: make([]*api.Category, len(categories))}
	for i, c := range categories {
		resp.Categories[i] = toAPICategory(c)
	}
	return connect.NewResponse(resp), nil
}

// UpdateCategory renames or retypes a category. Existing transactions keep
// their label.
func (s *CategoryService) UpdateCategory(ctx context.Context, req *connect.Request[api.UpdateCategoryRequest]) (*connect.Response[api.UpdateCategoryResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	category, err := parseCategory(req.Msg.Category)
	if err != nil {
		return nil, err
	}
	category.ID = req.Msg.CategoryID
	if err := s.store.UpdateCategory(ctx, userID, category); err != nil {
		return nil, fail("UpdateCategory failed", err, "user_id", userID, "category_id", req.Msg.CategoryID)
	}

	slog.Info("Updated category", "user_id", userID, "category_id", category.ID)
	return connect.NewResponse(&api.UpdateCategoryResponse{Category: toAPICategory(category)}), nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, req *connect.Request[api.DeleteCategoryRequest]) (*connect.Response[api.DeleteCategoryResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteCategory(ctx, userID, req.Msg.CategoryID); err != nil {
		return nil, fail("DeleteCategory failed", err, "user_id", userID, "category_id", req.Msg.CategoryID)
	}

	slog.Info("Deleted category", "user_id", userID, "category_id", req.Msg.CategoryID)
	return connect.NewResponse(&api.DeleteCategoryResponse{}), nil
}
