package healthservice

import "context"

// DBHealthStatus é a resposta da sonda de disponibilidade do banco.
type DBHealthStatus struct {
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// HealthRepository é o contrato mínimo que o serviço precisa do repositório.
type HealthRepository interface {
	Ping(ctx context.Context) error
}

// HealthService expõe a verificação de saúde do banco de dados.
type HealthService struct {
	HealthRepo HealthRepository
}

// NewService cria uma nova instância do HealthService.
func NewService(repo HealthRepository) *HealthService {
	return &HealthService{HealthRepo: repo}
}

// CheckDatabase executa o ping no banco e devolve o status positivo.
// Qualquer erro sobe para o handler, que responde 503.
func (s *HealthService) CheckDatabase(ctx context.Context) (DBHealthStatus, error) {
	if err := s.HealthRepo.Ping(ctx); err != nil {
		return DBHealthStatus{}, err
	}

	return DBHealthStatus{
		Status: "ok",
		Detail: "Database reachable",
	}, nil
}
