package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"gousers/internal/api/health"
	"gousers/internal/pkg/logger"
	"gousers/internal/service/healthservice"
)

// stubHealthService devolve um resultado fixo configurado pelo teste.
type stubHealthService struct {
	status healthservice.DBHealthStatus
	err    error
}

func (s stubHealthService) CheckDatabase(ctx context.Context) (healthservice.DBHealthStatus, error) {
	return s.status, s.err
}

// TestCheckDatabaseHandler_OK verifica o 200 com status ok.
func TestCheckDatabaseHandler_OK(t *testing.T) {
	h := health.NewHandler(stubHealthService{
		status: healthservice.DBHealthStatus{Status: "ok", Detail: "Database reachable"},
	}, logger.NewLogger("error"))

	req := httptest.NewRequest(http.MethodGet, "/health/db", nil)
	rec := httptest.NewRecorder()
	h.CheckDatabaseHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "ok", payload["status"])
	assert.Equal(t, "Database reachable", payload["detail"])
}

// TestCheckDatabaseHandler_Unavailable verifica o 503 quando o ping falha.
func TestCheckDatabaseHandler_Unavailable(t *testing.T) {
	h := health.NewHandler(stubHealthService{
		err: errors.New("dial tcp: connection refused"),
	}, logger.NewLogger("error"))

	req := httptest.NewRequest(http.MethodGet, "/health/db", nil)
	rec := httptest.NewRecorder()
	h.CheckDatabaseHandler(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var payload map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "error", payload["status"])
	assert.Equal(t, "Database unreachable", payload["message"])
}
