package models

import "time"

type RegisterResponse struct {
	ID       int    `json:"id" example:"1"`
	Username string `json:"username" example:"john_doe"`
}

type LoginResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

type ProfileResponse struct {
	Username  string    `json:"username" example:"john_doe"`
	Email     string    `json:"email" example:"john@example.com"`
	CreatedAt time.Time `json:"created_at"`
}

type GetTransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
	Categories   []Category    `json:"categories"`
}

type MonthlySummary struct {
	Month        string  `json:"month" example:"2024-01"`
	TotalIncome  float64 `json:"total_income" example:"5000000"`
	TotalExpense float64 `json:"total_expense" example:"3250000"`
}

type TotalsSummary struct {
	OverallIncome  float64 `json:"overall_income" example:"5000000"`
	OverallExpense float64 `json:"overall_expense" example:"3250000"`
}

type BudgetSpending struct {
	TotalSpent float64 `json:"total_spent" example:"420000"`
}

type ErrorResponse struct {
	Message string `json:"message" example:"server error"`
}
