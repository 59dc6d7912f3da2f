package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	intconfig "flexvry/internal/config"
	api "flexvry/internal/http"
	"flexvry/internal/mail"
)

type noopSender struct{}

func (noopSender) Send(_ context.Context, _ mail.Message) error { return nil }

func newTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	prev := intconfig.DB
	intconfig.DB = sqlx.NewDb(db, "sqlmock")
	t.Cleanup(func() {
		intconfig.DB = prev
		db.Close()
	})

	env := intconfig.Env{AdminEmail: "admin@yourcompany.com", DefaultPageSize: 10}
	return api.NewRouter(env, noopSender{}), mock
}

func reservationColumns() []string {
	return []string{
		"id", "name", "last_name", "email", "driver_license", "phone",
		"trailer_number", "truck_number", "references", "date", "time",
		"status", "created_at", "updated_at",
	}
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateReservationValidationError(t *testing.T) {
	r, mock := newTestRouter(t)

	body := `{"name":"","lastName":"Doe","email":"jane@x.com"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reservations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp["code"])

	// nothing may be persisted on validation failure
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReservationCreated(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectExec("INSERT INTO reservations").
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := `{
		"name":"Jane","lastName":"Doe","email":"jane@x.com",
		"driverLicense":"DL-1","phone":"+31612345678",
		"trailerNumber":"TRL-9","truckNumber":"TRK-7",
		"references":["REF-1"],"date":"2024-03-01","time":"08:30"
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reservations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "pending", resp["status"])
	assert.NotEmpty(t, resp["id"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetReservationNotFound(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery("FROM reservations WHERE id=\\? LIMIT 1").
		WillReturnRows(sqlmock.NewRows(reservationColumns()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reservations/missing-id", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListReservationsEnvelope(t *testing.T) {
	r, mock := newTestRouter(t)

	now := time.Now()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM reservations").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("FROM reservations ORDER BY created_at DESC LIMIT \\? OFFSET \\?").
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(reservationColumns()).AddRow(
			"id-1", "Jane", "Doe", "jane@x.com", "DL-1", "+31612345678",
			"TRL-9", "TRK-7", "REF-1", "2024-03-01", "08:30",
			"pending", now, now,
		))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reservations", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data  []map[string]any `json:"data"`
		Total int              `json:"total"`
		Page  int              `json:"page"`
		Limit int              `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 10, resp.Limit)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Jane", resp.Data[0]["name"])
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	r, mock := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/reservations/id-1/status",
		strings.NewReader(`{"status":"done"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReservationNotFound(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectExec("DELETE FROM reservations WHERE id=\\?").
		WillReturnResult(sqlmock.NewResult(0, 0))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/reservations/missing-id", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnknownRoute(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "route tidak ditemukan")
}
