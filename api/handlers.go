package api

import (
	"errors"
	"time"

	"github.com/ardiansyah/finku-backend/db"
	"github.com/ardiansyah/finku-backend/mail"
	"github.com/lib/pq"
)

// Ключи контекста gin, заполняются в AuthMiddleware
const (
	userIDKey   = "userID"
	usernameKey = "username"
)

type Handler struct {
	storage   *db.Storage
	jwtSecret string
	mailer    *mail.Mailer
}

func NewHandler(storage *db.Storage, jwtSecret string, mailer *mail.Mailer) *Handler {
	return &Handler{storage: storage, jwtSecret: jwtSecret, mailer: mailer}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}

// parseDateParam разбирает необязательный параметр даты, пустая строка допустима
func parseDateParam(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
