package db

import "github.com/ardiansyah/finku-backend/models"

func (s *Storage) GetCategories() ([]models.Category, error) {
	rows, err := s.DB.Query("SELECT id, name, type FROM categories ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories = []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Type); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Storage) CreateCategory(name, categoryType string) (*models.Category, error) {
	category := &models.Category{Name: name, Type: categoryType}
	err := s.DB.QueryRow(
		"INSERT INTO categories (name, type) VALUES ($1, $2) RETURNING id",
		name, categoryType,
	).Scan(&category.ID)
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (s *Storage) UpdateCategory(id int, name, categoryType string) (bool, error) {
	result, err := s.DB.Exec("UPDATE categories SET name = $1, type = $2 WHERE id = $3", name, categoryType, id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (s *Storage) DeleteCategory(id int) (bool, error) {
	result, err := s.DB.Exec("DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
