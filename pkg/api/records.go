package api

type Budget struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Limit     string `json:"limit"`
	Spent     string `json:"spent"`
	Remaining string `json:"remaining"`
	Period    string `json:"period"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

type BudgetInput struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Limit    string `json:"limit"`
	Spent    string `json:"spent,omitempty"`
	Period   string `json:"period"`
}

type CreateBudgetRequest struct {
	Budget BudgetInput `json:"budget"`
}

type CreateBudgetResponse struct {
	Budget *Budget `json:"budget"`
}

type GetBudgetRequest struct {
	BudgetID string `json:"budgetId"`
}

type GetBudgetResponse struct {
	Budget *Budget `json:"budget"`
}

type ListBudgetsRequest struct{}

type ListBudgetsResponse struct {
	Budgets []*Budget `json:"budgets"`
}

type UpdateBudgetRequest struct {
	BudgetID string      `json:"budgetId"`
	Budget   BudgetInput `json:"budget"`
}

type UpdateBudgetResponse struct {
	Budget *Budget `json:"budget"`
}

type DeleteBudgetRequest struct {
	BudgetID string `json:"budgetId"`
}

type DeleteBudgetResponse struct{}

type Goal struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	TargetAmount  string `json:"targetAmount"`
	CurrentAmount string `json:"currentAmount"`
	Deadline      string `json:"deadline,omitempty"`
	// Progress is the percentage of the target reached, capped at 100.
	Progress  string `json:"progress"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

type GoalInput struct {
	Name          string `json:"name"`
	TargetAmount  string `json:"targetAmount"`
	CurrentAmount string `json:"currentAmount,omitempty"`
	Deadline      string `json:"deadline,omitempty"`
}

type CreateGoalRequest struct {
	Goal GoalInput `json:"goal"`
}

type CreateGoalResponse struct {
	Goal *Goal `json:"goal"`
}

type GetGoalRequest struct {
	GoalID string `json:"goalId"`
}

type GetGoalResponse struct {
	Goal *Goal `json:"goal"`
}

type ListGoalsRequest struct{}

type ListGoalsResponse struct {
	Goals []*Goal `json:"goals"`
}

type UpdateGoalRequest struct {
	GoalID string    `json:"goalId"`
	Goal   GoalInput `json:"goal"`
}

type UpdateGoalResponse struct {
	Goal *Goal `json:"goal"`
}

type DeleteGoalRequest struct {
	GoalID string `json:"goalId"`
}

type DeleteGoalResponse struct{}

type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	CreatedAt int64  `json:"createdAt"`
}

type CategoryInput struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type CreateCategoryRequest struct {
	Category CategoryInput `json:"category"`
}

type CreateCategoryResponse struct {
	Category *Category `json:"category"`
}

type GetCategoryRequest struct {
	CategoryID string `json:"categoryId"`
}

type GetCategoryResponse struct {
	Category *Category `json:"category"`
}

type ListCategoriesRequest struct{}

type ListCategoriesResponse struct {
	Categories []*Category `json:"categories"`
}

type UpdateCategoryRequest struct {
	CategoryID string        `json:"categoryId"`
	Category   CategoryInput `json:"category"`
}

type UpdateCategoryResponse struct {
	Category *Category `json:"category"`
}

type DeleteCategoryRequest struct {
	CategoryID string `json:"categoryId"`
}

type DeleteCategoryResponse struct{}
