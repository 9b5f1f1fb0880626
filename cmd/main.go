package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Pacotes de infraestrutura e utilitários
	"gousers/config"
	"gousers/internal/pkg/cache"
	"gousers/internal/pkg/crypto"
	"gousers/internal/pkg/database"
	"gousers/internal/pkg/logger"
	"gousers/internal/pkg/token"

	// Camadas da aplicação para Injeção de Dependências
	"gousers/internal/api/health"
	"gousers/internal/api/router"
	"gousers/internal/api/user"
	"gousers/internal/repository/healthrepo"
	"gousers/internal/repository/userrepo"
	"gousers/internal/service/healthservice"
	"gousers/internal/service/userservice"
)

// @title GoUsers API
// @version 1.0
// @description Serviço de gestão de usuários com criptografia de senha em trânsito.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 0. Carregar variáveis de ambiente (.env)
	// Se o arquivo não existir, seguimos: as variáveis essenciais podem
	// estar no ambiente do sistema (ex: Docker).
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado. Carregando configs apenas do ambiente do sistema.")
	}

	// 1. Configuração e Logger
	cfg := config.LoadConfig()
	appLog := logger.NewLogger(cfg.LogLevel)
	appLog.Info("Configurações carregadas.", nil)

	// 2. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados (MySQL)
	db, err := database.NewMySQLDB(database.Opts{
		Host: cfg.DBHost,
		Port: cfg.DBPort,
		User: cfg.DBUser,
		Pass: cfg.DBPass,
		Name: cfg.DBName,
	})
	if err != nil {
		appLog.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	appLog.Info("Conexão MySQL estabelecida.", nil)

	// B. Cache (Redis)
	cacheClient := cache.NewRedisClient(cfg.RedisAddr)
	appLog.Info("Cliente Redis inicializado.", nil)

	// C. Codec de transporte da senha (AES-256-GCM)
	// A chave precisa ter exatamente 32 bytes; sem isso o processo não sobe.
	codec, err := crypto.NewCodec([]byte(cfg.PasswordEncKey))
	if err != nil {
		appLog.Fatal("Chave de criptografia inválida.", err)
	}

	// D. Hasher de senha (bcrypt) e serviço de tokens (JWT)
	hasher := crypto.NewHasher()
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)

	// 3. Injeção de Dependências (Repository -> Service -> Handler)

	userRepo := userrepo.NewUserRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, appLog)
	userSvc := userservice.NewService(userRepo, codec, hasher, tokenSvc, appLog)
	userHandler := user.NewHandler(userSvc, appLog)

	healthRepo := healthrepo.NewHealthRepository(db, cfg.DBTimeout)
	healthSvc := healthservice.NewService(healthRepo)
	healthHandler := health.NewHandler(healthSvc, appLog)

	// 4. Roteador e Servidor HTTP

	r := router.NewRouter(userHandler, healthHandler, tokenSvc, cacheClient, router.Options{
		RateLimitMaxRequests: cfg.RateLimitMaxRequests,
		RateLimitPeriod:      cfg.RateLimitPeriod,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		appLog.Info("Servidor ouvindo.", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}

	appLog.Info("Servidor encerrado com sucesso.", nil)
}
