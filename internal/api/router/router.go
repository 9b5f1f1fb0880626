package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "gousers/docs" // registra a especificação swagger gerada

	"gousers/internal/api/health"
	"gousers/internal/api/user"
	"gousers/internal/pkg/cache"
	"gousers/internal/pkg/middleware"
)

// Options agrupa os parâmetros de middleware do roteador.
type Options struct {
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
}

// NewRouter configura e retorna o roteador HTTP principal.
// Recebe os Handlers já inicializados por injeção de dependências.
func NewRouter(
	userHandler *user.Handler,
	healthHandler *health.Handler,
	tokenSvc middleware.TokenService,
	cacheClient cache.Client,
	opts Options,
) http.Handler {
	mux := http.NewServeMux()

	authRequired := middleware.NewAuthMiddleware(tokenSvc)

	// --- 1. Rotas de usuários ---
	mux.HandleFunc("POST /users", userHandler.CreateUserHandler)
	mux.HandleFunc("GET /users", userHandler.ListUsersHandler)
	mux.HandleFunc("GET /users/me", authRequired(userHandler.MeHandler))
	mux.HandleFunc("GET /users/{cpf}", userHandler.GetUserHandler)
	mux.HandleFunc("PUT /users/{cpf}", userHandler.UpdateUserHandler)
	mux.HandleFunc("DELETE /users/{cpf}", userHandler.DeleteUserHandler)

	// --- 2. Autenticação ---
	mux.HandleFunc("POST /login", userHandler.LoginHandler)

	// --- 3. Health Check ---
	mux.HandleFunc("GET /health/db", healthHandler.CheckDatabaseHandler)

	// --- 4. Documentação (Swagger UI) ---
	mux.Handle("GET /swagger/", httpSwagger.Handler())

	// --- 5. Middlewares globais ---
	return middleware.RateLimiter(cacheClient, opts.RateLimitMaxRequests, opts.RateLimitPeriod)(mux)
}
