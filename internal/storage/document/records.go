package document

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/fintrack/internal/docstore"
	"github.com/mmynk/fintrack/internal/models"
)

// CreateBudget stores a new budget.
func (s *Store) CreateBudget(ctx context.Context, userID string, budget *models.Budget) error {
	if budget.ID == "" {
		budget.ID = uuid.New().String()
	}
	budget.UserID = userID
	budget.CreatedAt = s.now()
	budget.UpdatedAt = budget.CreatedAt
	if err := s.db.Create(ctx, s.layout.Budget(userID, budget.ID), budget); err != nil {
		return fmt.Errorf("failed to create budget: %w", mapErr(err))
	}
	return nil
}

func (s *Store) GetBudget(ctx context.Context, userID, budgetID string) (*models.Budget, error) {
	return get[models.Budget](ctx, s.db, s.layout.Budget(userID, budgetID))
}

func (s *Store) ListBudgets(ctx context.Context, userID string) ([]*models.Budget, error) {
	return list[models.Budget](ctx, s.db, s.layout.Budgets(userID).Query().Order("name", false))
}

// UpdateBudget replaces an existing budget, keeping its creation time.
func (s *Store) UpdateBudget(ctx context.Context, userID string, budget *models.Budget) error {
	return s.replace(ctx, s.layout.Budget(userID, budget.ID), func(cur *docstore.Snapshot) (any, error) {
		var old models.Budget
		if err := cur.DataTo(&old); err != nil {
			return nil, err
		}
		budget.UserID = userID
		budget.CreatedAt = old.CreatedAt
		budget.UpdatedAt = s.now()
		return budget, nil
	})
}

func (s *Store) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	return s.remove(ctx, s.layout.Budget(userID, budgetID))
}

// CreateGoal stores a new goal.
func (s *Store) CreateGoal(ctx context.Context, userID string, goal *models.Goal) error {
	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}
	goal.UserID = userID
	goal.CreatedAt = s.now()
	goal.UpdatedAt = goal.CreatedAt
	if err := s.db.Create(ctx, s.layout.Goal(userID, goal.ID), goal); err != nil {
		return fmt.Errorf("failed to create goal: %w", mapErr(err))
	}
	return nil
}

func (s *Store) GetGoal(ctx context.Context, userID, goalID string) (*models.Goal, error) {
	return get[models.Goal](ctx, s.db, s.layout.Goal(userID, goalID))
}

func (s *Store) ListGoals(ctx context.Context, userID string) ([]*models.Goal, error) {
	return list[models.Goal](ctx, s.db, s.layout.Goals(userID).Query().Order("name", false))
}

// UpdateGoal replaces an existing goal, keeping its creation time.
func (s *Store) UpdateGoal(ctx context.Context, userID string, goal *models.Goal) error {
	return s.replace(ctx, s.layout.Goal(userID, goal.ID), func(cur *docstore.Snapshot) (any, error) {
		var old models.Goal
		if err := cur.DataTo(&old); err != nil {
			return nil, err
		}
		goal.UserID = userID
		goal.CreatedAt = old.CreatedAt
		goal.UpdatedAt = s.now()
		return goal, nil
	})
}

func (s *Store) DeleteGoal(ctx context.Context, userID, goalID string) error {
	return s.remove(ctx, s.layout.Goal(userID, goalID))
}

// CreateCategory stores a new category label.
func (s *Store) CreateCategory(ctx context.Context, userID string, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	category.UserID = userID
	category.CreatedAt = s.now()
	if err := s.db.Create(ctx, s.layout.Category(userID, category.ID), category); err != nil {
		return fmt.Errorf("failed to create category: %w", mapErr(err))
	}
	return nil
}

func (s *Store) GetCategory(ctx context.Context, userID, categoryID string) (*models.Category, error) {
	return get[models.Category](ctx, s.db, s.layout.Category(userID, categoryID))
}

func (s *Store) ListCategories(ctx context.Context, userID string) ([]*models.Category, error) {
	return list[models.Category](ctx, s.db, s.layout.Categories(userID).Query().Order("name", false))
}

// UpdateCategory replaces an existing category. Transactions keep the label
// they were posted with.
func (s *Store) UpdateCategory(ctx context.Context, userID string, category *models.Category) error {
	return s.replace(ctx, s.layout.Category(userID, category.ID), func(cur *docstore.Snapshot) (any, error) {
		var old models.Category
		if err := cur.DataTo(&old); err != nil {
			return nil, err
		}
		category.UserID = userID
		category.CreatedAt = old.CreatedAt
		return category, nil
	})
}

func (s *Store) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	return s.remove(ctx, s.layout.Category(userID, categoryID))
}
