package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"gousers/internal/domain"
	apperror "gousers/internal/errors"
	"gousers/internal/pkg/token"
)

// ContextKey é o tipo das chaves de contexto deste pacote. Usamos um tipo
// próprio para que não haja conflito com chaves string de outros pacotes.
type ContextKey int

const (
	// UserClaimsKey é a chave usada para armazenar as claims do usuário no contexto.
	UserClaimsKey ContextKey = iota
)

// UserClaims representa os dados do usuário extraídos do token JWT,
// anexados ao contexto da requisição.
type UserClaims struct {
	CPF  string
	Role domain.UserRole
}

// TokenService define o contrato de validação necessário para o middleware.
type TokenService interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// writeUnauthorized responde 401 com o corpo de erro padronizado da API.
func writeUnauthorized(w http.ResponseWriter, msg string) {
	status, category, message := apperror.MapToHTTPStatus(apperror.NewUnauthorizedError(msg))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
}

// NewAuthMiddleware cria um middleware que valida o JWT do header
// Authorization e anexa as claims (CPF e Role) ao contexto da requisição.
func NewAuthMiddleware(tokenSvc TokenService) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {

			// 1. Extrair o token do header Authorization: Bearer <token>
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeUnauthorized(w, "Token de autorização ausente ou malformado.")
				return
			}
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			// 2. Validar o token
			claims, err := tokenSvc.ValidateToken(tokenString)
			if err != nil {
				writeUnauthorized(w, "Token inválido ou expirado.")
				return
			}

			// 3. Anexar as claims ao contexto
			userClaims := UserClaims{
				CPF:  claims.CPF,
				Role: domain.UserRole(claims.Role),
			}
			ctx := context.WithValue(r.Context(), UserClaimsKey, userClaims)

			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// GetUserClaimsFromContext extrai as claims anexadas pelo middleware de auth.
func GetUserClaimsFromContext(ctx context.Context) (UserClaims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(UserClaims)
	return claims, ok
}
