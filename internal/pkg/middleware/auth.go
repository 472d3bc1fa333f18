package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	apperror "gowarehouse/internal/errors"
	"gowarehouse/internal/pkg/token"
)

// ContextKey é o tipo das chaves que este pacote grava no contexto.
type ContextKey int

const (
	PlayerClaimsKey ContextKey = iota
)

// PlayerClaims são os dados do jogador extraídos do token JWT.
type PlayerClaims struct {
	Nickname string
}

// TokenService define o contrato de validação necessário para o middleware.
type TokenService interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// NewAuthMiddleware valida o header "Authorization: Bearer <token>" e anexa as
// claims do jogador ao contexto da requisição.
func NewAuthMiddleware(tokenSvc TokenService) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || tokenString == "" {
				writeError(w, apperror.NewUnauthorizedError("Token de autorização ausente ou malformado."))
				return
			}

			claims, err := tokenSvc.ValidateToken(tokenString)
			if err != nil {
				writeError(w, apperror.NewUnauthorizedError("Token inválido ou expirado."))
				return
			}

			ctx := context.WithValue(r.Context(), PlayerClaimsKey, PlayerClaims{Nickname: claims.Nickname})
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// GetPlayerClaimsFromContext extrai as claims no handler.
func GetPlayerClaimsFromContext(ctx context.Context) (PlayerClaims, bool) {
	claims, ok := ctx.Value(PlayerClaimsKey).(PlayerClaims)
	return claims, ok
}

func writeError(w http.ResponseWriter, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"code":     status,
		"category": category,
		"message":  message,
	})
}
