package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/ardiansyah/finku-backend/models"
)

func TestBudgetsCRUDOverHTTP(t *testing.T) {
	r, storage, _, mailer := setupTestHandler(t)
	defer storage.Close()
	defer mailer.Close()

	registerUser(t, storage, "alice", "alice@example.com", "password123")
	registerUser(t, storage, "bob", "bob@example.com", "password123")
	food := createCategory(t, storage, "Food", "expense")

	aliceToken := getToken(t, r, "alice@example.com", "password123")
	bobToken := getToken(t, r, "bob@example.com", "password123")

	w := doRequest(t, r, "POST", "/api/transactions/budgets", aliceToken, models.CreateBudget{
		CategoryID: food.ID, Amount: 1000000, Month: 3, Year: 2024,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	var budget models.Budget
	if err := json.NewDecoder(w.Body).Decode(&budget); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if budget.ID == 0 {
		t.Error("Expected budget id to be set")
	}

	// Повтор той же связки (категория, месяц, год) — 409
	w = doRequest(t, r, "POST", "/api/transactions/budgets", aliceToken, models.CreateBudget{
		CategoryID: food.ID, Amount: 2000000, Month: 3, Year: 2024,
	})
	if w.Code != http.StatusConflict {
		t.Errorf("Expected status %d, got %d", http.StatusConflict, w.Code)
	}

	// Та же связка у другого пользователя проходит
	w = doRequest(t, r, "POST", "/api/transactions/budgets", bobToken, models.CreateBudget{
		CategoryID: food.ID, Amount: 500000, Month: 3, Year: 2024,
	})
	if w.Code != http.StatusCreated {
		t.Errorf("Expected status %d, got %d", http.StatusCreated, w.Code)
	}

	// Невалидные значения
	for _, bad := range []models.CreateBudget{
		{CategoryID: food.ID, Amount: 0, Month: 3, Year: 2024},
		{CategoryID: food.ID, Amount: 100, Month: 13, Year: 2024},
		{CategoryID: 9999, Amount: 100, Month: 3, Year: 2024},
	} {
		w = doRequest(t, r, "POST", "/api/transactions/budgets", aliceToken, bad)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status %d for %+v, got %d", http.StatusBadRequest, bad, w.Code)
		}
	}

	// Чужой бюджет недоступен
	w = doRequest(t, r, "PUT", fmt.Sprintf("/api/transactions/budgets/%d", budget.ID), bobToken, models.UpdateBudget{Amount: 99})
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}
	w = doRequest(t, r, "DELETE", fmt.Sprintf("/api/transactions/budgets/%d", budget.ID), bobToken, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}

	// Владелец видит только свои бюджеты с именем категории
	w = doRequest(t, r, "GET", "/api/transactions/budgets", aliceToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	var budgets []models.Budget
	if err := json.NewDecoder(w.Body).Decode(&budgets); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(budgets) != 1 || budgets[0].CategoryName != "Food" {
		t.Errorf("Expected 1 budget for 'Food', got %+v", budgets)
	}

	w = doRequest(t, r, "PUT", fmt.Sprintf("/api/transactions/budgets/%d", budget.ID), aliceToken, models.UpdateBudget{Amount: 1500000})
	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	w = doRequest(t, r, "DELETE", fmt.Sprintf("/api/transactions/budgets/%d", budget.ID), aliceToken, nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestBudgetSpendingAndDetails(t *testing.T) {
	r, storage, _, mailer := setupTestHandler(t)
	defer storage.Close()
	defer mailer.Close()

	registerUser(t, storage, "alice", "alice@example.com", "password123")
	food := createCategory(t, storage, "Food", "expense")
	salary := createCategory(t, storage, "Salary", "income")
	token := getToken(t, r, "alice@example.com", "password123")

	// Расходы марта плюс шум: другой месяц и доход
	createTransactionHTTP(t, r, token, models.CreateTransaction{
		Amount: 200000, Type: "expense", CategoryID: food.ID, Date: "2024-03-05",
	})
	createTransactionHTTP(t, r, token, models.CreateTransaction{
		Amount: 220000, Type: "expense", CategoryID: food.ID, Date: "2024-03-20",
	})
	createTransactionHTTP(t, r, token, models.CreateTransaction{
		Amount: 90000, Type: "expense", CategoryID: food.ID, Date: "2024-04-01",
	})
	createTransactionHTTP(t, r, token, models.CreateTransaction{
		Amount: 5000000, Type: "income", CategoryID: salary.ID, Date: "2024-03-01",
	})

	path := fmt.Sprintf("/api/transactions/budgets/spending?categoryId=%d&month=3&year=2024", food.ID)
	w := doRequest(t, r, "GET", path, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	var spending models.BudgetSpending
	if err := json.NewDecoder(w.Body).Decode(&spending); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if spending.TotalSpent != 420000 {
		t.Errorf("Expected total_spent 420000, got %f", spending.TotalSpent)
	}

	path = fmt.Sprintf("/api/transactions/budgets/details?categoryId=%d&month=3&year=2024", food.ID)
	w = doRequest(t, r, "GET", path, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	var details []models.Transaction
	if err := json.NewDecoder(w.Body).Decode(&details); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(details) != 2 {
		t.Errorf("Expected 2 transactions in details, got %d", len(details))
	}

	// Без параметров — 400
	w = doRequest(t, r, "GET", "/api/transactions/budgets/spending", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestCategoriesOverHTTP(t *testing.T) {
	r, storage, _, mailer := setupTestHandler(t)
	defer storage.Close()
	defer mailer.Close()

	registerUser(t, storage, "alice", "alice@example.com", "password123")
	token := getToken(t, r, "alice@example.com", "password123")

	w := doRequest(t, r, "POST", "/api/transactions/categories", token, models.CreateCategory{Name: "Food", Type: "expense"})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d", http.StatusCreated, w.Code)
	}
	var category models.Category
	if err := json.NewDecoder(w.Body).Decode(&category); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	w = doRequest(t, r, "POST", "/api/transactions/categories", token, models.CreateCategory{Name: "Stuff", Type: "other"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	w = doRequest(t, r, "PUT", fmt.Sprintf("/api/transactions/categories/%d", category.ID), token, models.CreateCategory{Name: "Groceries", Type: "expense"})
	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	// Категория с транзакцией не удаляется
	createTransactionHTTP(t, r, token, models.CreateTransaction{
		Amount: 1000, Type: "expense", CategoryID: category.ID, Date: "2024-01-01",
	})
	w = doRequest(t, r, "DELETE", fmt.Sprintf("/api/transactions/categories/%d", category.ID), token, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("Expected status %d, got %d", http.StatusConflict, w.Code)
	}
}
