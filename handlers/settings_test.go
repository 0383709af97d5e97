package handlers

import (
	"database/sql"
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
	"github.com/gebrayel/ecommerce-simulator/services"
)

func setupSettingsTest(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *gin.Engine) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}

	logger := zaptest.NewLogger(t, zaptest.Level(zap.InfoLevel))
	handler := NewSettingsHandler(services.NewSettingsService(repository.NewSettingsRepository(db)), logger)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/order-settings", handler.GetSettings)
	router.PUT("/order-settings", handler.UpdateSettings)

	return db, mock, router
}

func TestSettingsHandler_GetSettings_DefaultsWhenUnset(t *testing.T) {
	db, mock, router := setupSettingsTest(t)
	defer db.Close()

	mock.ExpectQuery("FROM order_settings WHERE id = \\$1").
		WillReturnError(sql.ErrNoRows)

	req := httptest.NewRequest(http.MethodGet, "/order-settings", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	if !strings.Contains(w.Body.String(), `"card_rejection_probability":0`) {
		t.Errorf("Expected default probability, got %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"payment_retry_attempts":1`) {
		t.Errorf("Expected default retry attempts, got %s", w.Body.String())
	}
}

func TestSettingsHandler_GetSettings_StoredValues(t *testing.T) {
	db, mock, router := setupSettingsTest(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "card_rejection_probability", "payment_retry_attempts", "updated_at"}).
		AddRow(1, 0.3, 5, time.Now())
	mock.ExpectQuery("FROM order_settings WHERE id = \\$1").
		WillReturnRows(rows)

	req := httptest.NewRequest(http.MethodGet, "/order-settings", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	if !strings.Contains(w.Body.String(), `"card_rejection_probability":0.3`) {
		t.Errorf("Expected stored probability, got %s", w.Body.String())
	}
}

func TestSettingsHandler_UpdateSettings_ClampsValues(t *testing.T) {
	db, mock, router := setupSettingsTest(t)
	defer db.Close()

	mock.ExpectQuery("FROM order_settings WHERE id = \\$1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO order_settings").
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := `{"card_rejection_probability": 3.5, "payment_retry_attempts": 0}`
	req := httptest.NewRequest(http.MethodPut, "/order-settings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"card_rejection_probability":1`) {
		t.Errorf("Expected the probability clamped to 1, got %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"payment_retry_attempts":1`) {
		t.Errorf("Expected the retry budget clamped to 1, got %s", w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Database expectations were not met: %v", err)
	}
}

func TestSettingsHandler_UpdateSettings_OmittedFieldsReset(t *testing.T) {
	db, mock, router := setupSettingsTest(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "card_rejection_probability", "payment_retry_attempts", "updated_at"}).
		AddRow(1, 0.8, 9, time.Now())
	mock.ExpectQuery("FROM order_settings WHERE id = \\$1").
		WillReturnRows(rows)
	mock.ExpectExec("INSERT INTO order_settings").
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := httptest.NewRequest(http.MethodPut, "/order-settings", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"card_rejection_probability":0`) {
		t.Errorf("Expected the probability reset to 0, got %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"payment_retry_attempts":1`) {
		t.Errorf("Expected the retry budget reset to 1, got %s", w.Body.String())
	}
}
