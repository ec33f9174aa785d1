package models

type CreateUser struct {
	Username string `json:"username" example:"john_doe"`
	Email    string `json:"email" example:"john@example.com"`
	Password string `json:"password" example:"secret123"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"john@example.com"`
	Password string `json:"password" example:"secret123"`
}

type UpdateUsername struct {
	Username string `json:"username" example:"john_doe"`
}

type UpdatePassword struct {
	OldPassword string `json:"oldPassword" example:"secret123"`
	NewPassword string `json:"newPassword" example:"secret456"`
}

type CreateTransaction struct {
	Amount      float64 `json:"amount" example:"125000"`
	Type        string  `json:"type" example:"expense"`
	CategoryID  int     `json:"category_id" example:"1"`
	Description string  `json:"description" example:"groceries"`
	Date        string  `json:"date" example:"2024-01-05"`
}

type CreateCategory struct {
	Name string `json:"name" example:"Food"`
	Type string `json:"type" example:"expense"`
}

type CreateBudget struct {
	CategoryID int     `json:"category_id" example:"1"`
	Amount     float64 `json:"amount" example:"1000000"`
	Month      int     `json:"month" example:"3"`
	Year       int     `json:"year" example:"2024"`
}

type UpdateBudget struct {
	Amount float64 `json:"amount" example:"1500000"`
}
