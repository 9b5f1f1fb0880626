package health

import (
	"context"
	"encoding/json"
	"net/http"

	"gousers/internal/pkg/logger"
	"gousers/internal/service/healthservice"
)

// HealthService define o contrato da sonda de saúde do banco.
type HealthService interface {
	CheckDatabase(ctx context.Context) (healthservice.DBHealthStatus, error)
}

// Handler agrupa os métodos de Handler de health check.
type Handler struct {
	Service HealthService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler de health check.
func NewHandler(svc HealthService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// CheckDatabaseHandler lida com a requisição GET /health/db.
// @Summary Verifica a disponibilidade do banco de dados
// @Tags health
// @Produce json
// @Success 200 {object} healthservice.DBHealthStatus "Banco alcançável"
// @Failure 503 {object} map[string]string "Banco inalcançável"
// @Router /health/db [get]
func (h *Handler) CheckDatabaseHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status, err := h.Service.CheckDatabase(r.Context())
	if err != nil {
		h.Logger.Error("Banco de dados inalcançável.", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "error",
			"message": "Database unreachable",
			"detail":  err.Error(),
		})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(status)
}
