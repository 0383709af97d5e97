package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/gebrayel/ecommerce-simulator/repository"
	"github.com/gebrayel/ecommerce-simulator/security"
	"github.com/gebrayel/ecommerce-simulator/services"
)

func setupCardTest(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *gin.Engine) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}

	tokens, err := security.NewCardTokenService("card-test-secret")
	if err != nil {
		t.Fatalf("Failed to create token service: %v", err)
	}

	logger := zaptest.NewLogger(t, zaptest.Level(zap.InfoLevel))
	cardSvc := services.NewCreditCardService(repository.NewCreditCardRepository(db), tokens)
	handler := NewCreditCardHandler(cardSvc, logger)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(asUser(7))
	router.POST("/cards", handler.RegisterCard)
	router.GET("/cards", handler.ListUserCards)

	return db, mock, router
}

func TestCreditCardHandler_RegisterCard_Success(t *testing.T) {
	db, mock, router := setupCardTest(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO credit_cards").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectExec("UPDATE credit_cards SET token_id = \\$1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := fmt.Sprintf(`{"card_number": "4111111111111111", "cvv": "123", "expiry_month": 12, "expiry_year": %d}`,
		time.Now().Year()+1)
	req := httptest.NewRequest(http.MethodPost, "/cards", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"token":"3.`) {
		t.Errorf("Expected the plain token in the response, got %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "4111111111111111") {
		t.Errorf("Card number leaked into the response: %s", w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Database expectations were not met: %v", err)
	}
}

func TestCreditCardHandler_RegisterCard_InvalidNumber(t *testing.T) {
	db, _, router := setupCardTest(t)
	defer db.Close()

	body := `{"card_number": "1234", "cvv": "123", "expiry_month": 12, "expiry_year": 2090}`
	req := httptest.NewRequest(http.MethodPost, "/cards", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestCreditCardHandler_ListUserCards(t *testing.T) {
	db, mock, router := setupCardTest(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "user_id", "card_number_hash", "last_four_digits", "expiry_month", "expiry_year", "token_id", "token_signature", "created_at"}).
		AddRow(3, 7, "hash", "1111", 12, 2030, "tok-1", "sig-1", time.Now())
	mock.ExpectQuery("FROM credit_cards WHERE user_id = \\$1").
		WithArgs(7).
		WillReturnRows(rows)

	req := httptest.NewRequest(http.MethodGet, "/cards", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	if !strings.Contains(w.Body.String(), `"last_four_digits":"1111"`) {
		t.Errorf("Expected the stored card in the response, got %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "sig-1") {
		t.Errorf("Token signature leaked into the response: %s", w.Body.String())
	}
}

func TestCreditCardHandler_ListUserCards_Empty(t *testing.T) {
	db, mock, router := setupCardTest(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "user_id", "card_number_hash", "last_four_digits", "expiry_month", "expiry_year", "token_id", "token_signature", "created_at"})
	mock.ExpectQuery("FROM credit_cards WHERE user_id = \\$1").
		WithArgs(7).
		WillReturnRows(rows)

	req := httptest.NewRequest(http.MethodGet, "/cards", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("Expected an empty array, got %s", body)
	}
}
