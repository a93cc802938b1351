package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/identityservice"
)

const (
	msgMissingToken = "отсутствует токен авторизации"
	msgInvalidToken = "недействительный токен авторизации"
	msgAdminOnly    = "требуются права администратора"
	msgAuthFailed   = "не удалось проверить авторизацию"
)

type principalCtxKey struct{}

// IdentityClient интерфейс клиента IdentityService
type IdentityClient interface {
	GetPrincipal(ctx context.Context, token string) (*identityservice.Principal, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth резолвит bearer-токен через IdentityService и кладет проверенного
// субъекта в контекст запроса. Ядро не разбирает учетные данные само.
func Auth(client IdentityClient, log Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := extractBearerToken(r)
			if !ok {
				log.Warn("Auth: missing bearer token for %s %s", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			principal, err := client.GetPrincipal(r.Context(), token)
			if err != nil {
				if errors.Is(err, identityservice.ErrUnauthenticated) {
					log.Warn("Auth: token rejected for %s %s", r.Method, r.URL.Path)
					handlers.RespondUnauthorized(w, msgInvalidToken)
					return
				}
				log.Error("Auth: identity service error for %s %s: %v", r.Method, r.URL.Path, err)
				handlers.RespondError(w, http.StatusBadGateway, msgAuthFailed)
				return
			}

			ctx := context.WithValue(r.Context(), principalCtxKey{}, domain.Principal{
				UserID: principal.UserID,
				Role:   principal.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin пропускает только запросы с ролью администратора.
// Должен стоять после Auth.
func RequireAdmin(log Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := GetPrincipal(r.Context())
			if !ok {
				log.Warn("RequireAdmin: no principal in context for %s %s", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			if !principal.IsAdmin() {
				log.Warn("RequireAdmin: user=%d is not admin, %s %s", principal.UserID, r.Method, r.URL.Path)
				handlers.RespondForbidden(w, msgAdminOnly)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetPrincipal извлекает проверенного субъекта из контекста запроса
func GetPrincipal(ctx context.Context) (domain.Principal, bool) {
	principal, ok := ctx.Value(principalCtxKey{}).(domain.Principal)
	return principal, ok
}

func extractBearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token, token != ""
}
