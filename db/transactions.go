package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ardiansyah/finku-backend/models"
)

func (s *Storage) GetTransactions(userID int, startDate, endDate time.Time) ([]models.Transaction, error) {
	query := `SELECT t.id, t.user_id, t.amount, t.type, t.category_id, t.description, t.date, t.created_at, c.name AS category_name
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1`
	args := []interface{}{userID}

	if !startDate.IsZero() {
		args = append(args, startDate)
		query += fmt.Sprintf(" AND t.date >= $%d", len(args))
	}
	if !endDate.IsZero() {
		args = append(args, endDate)
		query += fmt.Sprintf(" AND t.date <= $%d", len(args))
	}
	query += " ORDER BY t.created_at DESC"

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions = []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Type, &t.CategoryID, &t.Description, &t.Date, &t.CreatedAt, &t.CategoryName)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func (s *Storage) CreateTransaction(t *models.Transaction) error {
	return s.DB.QueryRow(
		"INSERT INTO transactions (user_id, amount, type, category_id, description, date) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at",
		t.UserID, t.Amount, t.Type, t.CategoryID, t.Description, t.Date,
	).Scan(&t.ID, &t.CreatedAt)
}

func (s *Storage) UpdateTransaction(t *models.Transaction) (bool, error) {
	err := s.DB.QueryRow(
		"UPDATE transactions SET amount = $1, type = $2, category_id = $3, description = $4, date = $5 WHERE id = $6 AND user_id = $7 RETURNING created_at",
		t.Amount, t.Type, t.CategoryID, t.Description, t.Date, t.ID, t.UserID,
	).Scan(&t.CreatedAt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Storage) DeleteTransaction(id, userID int) (bool, error) {
	result, err := s.DB.Exec("DELETE FROM transactions WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (s *Storage) GetMonthlySummary(userID int, startDate, endDate time.Time) ([]models.MonthlySummary, error) {
	query := `SELECT to_char(date, 'YYYY-MM') AS month,
		COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0) AS total_income,
		COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS total_expense
		FROM transactions
		WHERE user_id = $1`
	args := []interface{}{userID}

	if !startDate.IsZero() {
		args = append(args, startDate)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if !endDate.IsZero() {
		args = append(args, endDate)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	query += " GROUP BY to_char(date, 'YYYY-MM') ORDER BY month ASC"

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summary = []models.MonthlySummary{}
	for rows.Next() {
		var m models.MonthlySummary
		if err := rows.Scan(&m.Month, &m.TotalIncome, &m.TotalExpense); err != nil {
			return nil, err
		}
		summary = append(summary, m)
	}
	return summary, rows.Err()
}

func (s *Storage) GetTotalsSummary(userID int, startDate, endDate time.Time) (models.TotalsSummary, error) {
	query := `SELECT
		COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0) AS overall_income,
		COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS overall_expense
		FROM transactions
		WHERE user_id = $1`
	args := []interface{}{userID}

	if !startDate.IsZero() {
		args = append(args, startDate)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if !endDate.IsZero() {
		args = append(args, endDate)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}

	var totals models.TotalsSummary
	err := s.DB.QueryRow(query, args...).Scan(&totals.OverallIncome, &totals.OverallExpense)
	return totals, err
}
