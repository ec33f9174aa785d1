package models

import "time"

type Transaction struct {
	ID           int       `json:"id"`
	UserID       int       `json:"user_id"`
	Amount       float64   `json:"amount"`
	Type         string    `json:"type"`
	CategoryID   int       `json:"category_id"`
	Description  string    `json:"description"`
	Date         time.Time `json:"date"`
	CreatedAt    time.Time `json:"created_at"`
	CategoryName string    `json:"category_name,omitempty"`
}
