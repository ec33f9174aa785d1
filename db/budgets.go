package db

import "github.com/ardiansyah/finku-backend/models"

func (s *Storage) GetBudgets(userID int) ([]models.Budget, error) {
	rows, err := s.DB.Query(
		`SELECT b.id, b.user_id, b.category_id, b.amount, b.month, b.year, c.name AS category_name
		FROM budgets b
		JOIN categories c ON b.category_id = c.id
		WHERE b.user_id = $1
		ORDER BY b.year DESC, b.month DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets = []models.Budget{}
	for rows.Next() {
		var b models.Budget
		err := rows.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.Amount, &b.Month, &b.Year, &b.CategoryName)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

func (s *Storage) CreateBudget(b *models.Budget) error {
	return s.DB.QueryRow(
		"INSERT INTO budgets (user_id, category_id, amount, month, year) VALUES ($1, $2, $3, $4, $5) RETURNING id",
		b.UserID, b.CategoryID, b.Amount, b.Month, b.Year,
	).Scan(&b.ID)
}

func (s *Storage) UpdateBudget(id, userID int, amount float64) (bool, error) {
	result, err := s.DB.Exec("UPDATE budgets SET amount = $1 WHERE id = $2 AND user_id = $3", amount, id, userID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (s *Storage) DeleteBudget(id, userID int) (bool, error) {
	result, err := s.DB.Exec("DELETE FROM budgets WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (s *Storage) GetBudgetSpending(userID, categoryID, month, year int) (float64, error) {
	var spent float64
	err := s.DB.QueryRow(
		`SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND category_id = $2 AND type = 'expense'
		AND EXTRACT(MONTH FROM date) = $3 AND EXTRACT(YEAR FROM date) = $4`,
		userID, categoryID, month, year,
	).Scan(&spent)
	return spent, err
}

func (s *Storage) GetBudgetTransactions(userID, categoryID, month, year int) ([]models.Transaction, error) {
	rows, err := s.DB.Query(
		`SELECT t.id, t.user_id, t.amount, t.type, t.category_id, t.description, t.date, t.created_at, c.name AS category_name
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1 AND t.category_id = $2 AND t.type = 'expense'
		AND EXTRACT(MONTH FROM t.date) = $3 AND EXTRACT(YEAR FROM t.date) = $4
		ORDER BY t.date DESC`,
		userID, categoryID, month, year,
	)
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
