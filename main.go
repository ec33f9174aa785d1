package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"

	"github.com/ardiansyah/finku-backend/api"
	"github.com/ardiansyah/finku-backend/config"
	"github.com/ardiansyah/finku-backend/db"
	_ "github.com/ardiansyah/finku-backend/docs"
	"github.com/ardiansyah/finku-backend/mail"
)

// @title Finku API
// @version 1.0
// @description Personal finance tracker: transactions, budgets and summaries.

// @SecurityDefinitions.apikey ApiKeyAuth
// @In header
// @Name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, reading environment directly")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Подключение к PostgreSQL и миграции схемы
	storage, err := db.NewStorage(cfg.PostgresDSN())
	if err != nil {
		log.Fatal(err)
	}
	defer storage.Close()

	var sender mail.Sender
	if cfg.MailEnabled() {
		sender = mail.NewSMTPSender(cfg.EmailHost, cfg.EmailPort, cfg.EmailUser, cfg.EmailPassword)
	} else {
		log.Println("EMAIL_USER/EMAIL_PASSWORD not set, outbound mail disabled")
		sender = mail.NewDisabledSender()
	}
	mailer := mail.NewMailer(sender)
	defer mailer.Close()

	handler := api.NewHandler(storage, cfg.JWTSecret, mailer)

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

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown error: %v", err)
		}
	}()

	log.Printf("listening on :%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
