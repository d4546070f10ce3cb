package controllers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func gormOverMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return db, mock
}

func TestValidatePackProducts(t *testing.T) {
	salonID := uuid.New()
	lines := []PackProductInput{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 3},
	}

	t.Run("DuplicateLinesRejectedBeforeQuerying", func(t *testing.T) {
		db, mock := gormOverMock(t)

		_, status, ok := validatePackProducts(db, salonID, []PackProductInput{
			{ProductID: 1, Quantity: 1},
			{ProductID: 1, Quantity: 2},
		})
		if ok || status != http.StatusBadRequest {
			t.Fatalf("duplicate lines: ok=%v status=%d, want rejected with 400", ok, status)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("expectations: %v", err)
		}
	})

	t.Run("MissingProductIsBadRequest", func(t *testing.T) {
		db, mock := gormOverMock(t)
		mock.ExpectQuery("SELECT count").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		msg, status, ok := validatePackProducts(db, salonID, lines)
		if ok || status != http.StatusBadRequest {
			t.Fatalf("short count: ok=%v status=%d, want rejected with 400", ok, status)
		}
		if msg != "One or more products not found or inactive" {
			t.Errorf("message = %q", msg)
		}
	})

	// A failing count query is a server fault, not an invalid request.
	t.Run("QueryFailureIsServerError", func(t *testing.T) {
		db, mock := gormOverMock(t)
		mock.ExpectQuery("SELECT count").
			WillReturnError(errors.New("connection reset"))

		msg, status, ok := validatePackProducts(db, salonID, lines)
		if ok {
			t.Fatal("validation passed despite a failing query")
		}
		if status != http.StatusInternalServerError {
			t.Fatalf("status = %d, want %d", status, http.StatusInternalServerError)
		}
		if msg != "Database error" {
			t.Errorf("message = %q, want the database-error envelope", msg)
		}
	})

	t.Run("AllProductsLivePasses", func(t *testing.T) {
		db, mock := gormOverMock(t)
		mock.ExpectQuery("SELECT count").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		if _, _, ok := validatePackProducts(db, salonID, lines); !ok {
			t.Fatal("validation rejected a fully live product set")
		}
	})
}
