package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/ardiansyah/finku-backend/db"
	"github.com/ardiansyah/finku-backend/mail"
	"github.com/ardiansyah/finku-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// recordingSender запоминает письма вместо отправки по SMTP
type recordingSender struct {
	mu   sync.Mutex
	sent []sentMail
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (r *recordingSender) Send(to, subject, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (r *recordingSender) messages() []sentMail {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]sentMail{}, r.sent...)
}

// setupTestHandler собирает роутер с теми же маршрутами, что и в main
func setupTestHandler(t *testing.T) (*gin.Engine, *db.Storage, *recordingSender, *mail.Mailer) {
	_ = godotenv.Load("../.env")

	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL is not set")
	}

	storage, err := db.NewStorage(connStr)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// Очистка таблиц перед тестом
	_, err = storage.DB.Exec("TRUNCATE TABLE budgets, transactions, categories, users RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}

	sender := &recordingSender{}
	mailer := mail.NewMailer(sender)

	handler := NewHandler(storage, "test-secret", mailer)

	gin.SetMode(gin.TestMode)
	r := gin.Default()

	auth := r.Group("/api/auth")
	auth.POST("/register", handler.Register)
	auth.POST("/login", handler.Login)

	profile := auth.Group("/profile", handler.AuthMiddleware())
	profile.GET("", handler.GetProfile)
	profile.PUT("/username", handler.UpdateUsername)
	profile.PUT("/password", handler.UpdatePassword)

	tx := r.Group("/api/transactions", handler.AuthMiddleware())
	tx.GET("", handler.GetTransactions)
	tx.POST("", handler.CreateTransaction)
	tx.PUT("/:id", handler.UpdateTransaction)
	tx.DELETE("/:id", handler.DeleteTransaction)
	tx.GET("/summary/monthly", handler.GetMonthlySummary)
	tx.GET("/summary/totals", handler.GetTotalsSummary)
	tx.GET("/budgets", handler.GetBudgets)
	tx.POST("/budgets", handler.CreateBudget)
	tx.PUT("/budgets/:id", handler.UpdateBudget)
	tx.DELETE("/budgets/:id", handler.DeleteBudget)
	tx.GET("/budgets/spending", handler.GetBudgetSpending)
	tx.GET("/budgets/details", handler.GetBudgetDetails)
	tx.GET("/categories", handler.GetCategories)
	tx.POST("/categories", handler.CreateCategory)
	tx.PUT("/categories/:id", handler.UpdateCategory)
	tx.DELETE("/categories/:id", handler.DeleteCategory)

	return r, storage, sender, mailer
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("Failed to marshal payload: %v", err)
		}
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, storage *db.Storage, username, email, password string) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	user, err := storage.CreateUser(username, email, string(hash))
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

func getToken(t *testing.T, r *gin.Engine, email, password string) string {
	w := doRequest(t, r, "POST", "/api/auth/login", "", map[string]string{"email": email, "password": password})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var response models.LoginResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return response.Token
}

func TestRegister(t *testing.T) {
	r, storage, sender, mailer := setupTestHandler(t)
	defer storage.Close()

	// Тест успешной регистрации
	w := doRequest(t, r, "POST", "/api/auth/register", "", models.CreateUser{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "password123",
	})
	if w.Code != http.StatusCreated {
		t.Errorf("Expected status %d, got %d", http.StatusCreated, w.Code)
	}

	var response models.RegisterResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Username != "testuser" || response.ID == 0 {
		t.Errorf("Expected registered user 'testuser', got %+v", response)
	}

	// Повторная регистрация с тем же email возвращает 409
	w = doRequest(t, r, "POST", "/api/auth/register", "", models.CreateUser{
		Username: "otheruser",
		Email:    "test@example.com",
		Password: "password123",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("Expected status %d, got %d", http.StatusConflict, w.Code)
	}

	// Первый пользователь не пострадал
	user, err := storage.GetUserByEmail("test@example.com")
	if err != nil || user == nil || user.Username != "testuser" {
		t.Errorf("Expected original user to be intact, got %+v (err %v)", user, err)
	}

	// Короткий пароль
	w = doRequest(t, r, "POST", "/api/auth/register", "", models.CreateUser{
		Username: "shorty",
		Email:    "shorty@example.com",
		Password: "short",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	// Ровно одно приветственное письмо — за успешную регистрацию
	mailer.Close()
	messages := sender.messages()
	if len(messages) != 1 {
		t.Fatalf("Expected 1 welcome email, got %d", len(messages))
	}
	if messages[0].to != "test@example.com" {
		t.Errorf("Expected welcome email to 'test@example.com', got %s", messages[0].to)
	}
}

func TestLogin(t *testing.T) {
	r, storage, _, mailer := setupTestHandler(t)
	defer storage.Close()
	defer mailer.Close()

	registerUser(t, storage, "testuser", "test@example.com", "password123")

	// Успешный вход
	token := getToken(t, r, "test@example.com", "password123")
	if token == "" {
		t.Error("Expected token, got empty")
	}

	// Неверный пароль и неизвестный email дают одинаковый ответ
	wrongPassword := doRequest(t, r, "POST", "/api/auth/login", "", map[string]string{
		"email": "test@example.com", "password": "wrong",
	})
	unknownEmail := doRequest(t, r, "POST", "/api/auth/login", "", map[string]string{
		"email": "nobody@example.com", "password": "password123",
	})
	if wrongPassword.Code != http.StatusBadRequest || unknownEmail.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d for both, got %d and %d", http.StatusBadRequest, wrongPassword.Code, unknownEmail.Code)
	}

	var wrongBody, unknownBody models.ErrorResponse
	if err := json.NewDecoder(wrongPassword.Body).Decode(&wrongBody); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if err := json.NewDecoder(unknownEmail.Body).Decode(&unknownBody); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if wrongBody.Message != unknownBody.Message {
		t.Errorf("Expected identical messages, got %q and %q", wrongBody.Message, unknownBody.Message)
	}
}

func TestAuthMiddleware(t *testing.T) {
	r, storage, _, mailer := setupTestHandler(t)
	defer storage.Close()
	defer mailer.Close()

	// Без заголовка — 401
	w := doRequest(t, r, "GET", "/api/transactions", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}

	// С мусорным токеном — 403
	w = doRequest(t, r, "GET", "/api/transactions", "not-a-token", nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status %d, got %d", http.StatusForbidden, w.Code)
	}
}

func TestProfile(t *testing.T) {
	r, storage, _, mailer := setupTestHandler(t)
	defer storage.Close()
	defer mailer.Close()

	registerUser(t, storage, "testuser", "test@example.com", "password123")
	token := getToken(t, r, "test@example.com", "password123")

	w := doRequest(t, r, "GET", "/api/auth/profile", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var profile models.ProfileResponse
	if err := json.NewDecoder(w.Body).Decode(&profile); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if profile.Username != "testuser" || profile.Email != "test@example.com" {
		t.Errorf("Expected profile {testuser, test@example.com}, got %+v", profile)
	}
	if profile.CreatedAt.IsZero() {
		t.Error("Expected created_at to be set")
	}
}

func TestUpdateUsername(t *testing.T) {
	r, storage, _, mailer := setupTestHandler(t)
	defer storage.Close()
	defer mailer.Close()

	registerUser(t, storage, "testuser", "test@example.com", "password123")
	registerUser(t, storage, "taken", "taken@example.com", "password123")
	token := getToken(t, r, "test@example.com", "password123")

	w := doRequest(t, r, "PUT", "/api/auth/profile/username", token, models.UpdateUsername{Username: "renamed"})
	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	// Занятое имя — 409
	w = doRequest(t, r, "PUT", "/api/auth/profile/username", token, models.UpdateUsername{Username: "taken"})
	if w.Code != http.StatusConflict {
		t.Errorf("Expected status %d, got %d", http.StatusConflict, w.Code)
	}
}

func TestUpdatePassword(t *testing.T) {
	r, storage, _, mailer := setupTestHandler(t)
	defer storage.Close()
	defer mailer.Close()

	registerUser(t, storage, "testuser", "test@example.com", "password123")
	token := getToken(t, r, "test@example.com", "password123")

	// Неверный старый пароль — 400
	w := doRequest(t, r, "PUT", "/api/auth/profile/password", token, models.UpdatePassword{
		OldPassword: "wrong",
		NewPassword: "newpassword",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	w = doRequest(t, r, "PUT", "/api/auth/profile/password", token, models.UpdatePassword{
		OldPassword: "password123",
		NewPassword: "newpassword",
	})
	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	// Старый пароль больше не подходит, новый работает
	w = doRequest(t, r, "POST", "/api/auth/login", "", map[string]string{
		"email": "test@example.com", "password": "password123",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d with old password, got %d", http.StatusBadRequest, w.Code)
	}
	getToken(t, r, "test@example.com", "newpassword")
}

// largeExpenseSubject определяет письма о крупных расходах в тестах ниже
func largeExpenseSubject(m sentMail) bool {
	return strings.HasPrefix(m.subject, "Notifikasi Pengeluaran Besar")
}
