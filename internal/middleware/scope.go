package middleware

import (
	"context"
	"time"

	"broadcast-srv/internal/model"
	"broadcast-srv/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	headerActorID       = "X-Actor-ID"
	headerActorRole     = "X-Actor-Role"
	headerCorrelationID = "X-Correlation-ID"
)

type scopeCtxKey struct{}

// Scope returns a middleware that builds the audit scope from the identity
// headers set by the upstream gateway. The actor id is required; role
// defaults to TEACHER, the least-privileged role. A correlation id is
// generated when the gateway did not supply one.
func (m Middleware) Scope() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader(headerActorID)
		if actorID == "" {
			response.HttpError(c, errMissingActor)
			c.Abort()
			return
		}

		role := c.GetHeader(headerActorRole)
		switch role {
		case model.RoleAdmin, model.RolePrincipal, model.RoleTeacher, model.RoleSystem:
		default:
			role = model.RoleTeacher
		}

		correlationID := c.GetHeader(headerCorrelationID)
		if correlationID == "" {
			correlationID = uuid.NewString()
		}
		c.Header(headerCorrelationID, correlationID)

		sc := model.Scope{
			ActorID:       actorID,
			Role:          role,
			CorrelationID: correlationID,
			At:            time.Now(),
		}

		ctx := SetScopeToContext(c.Request.Context(), sc)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// SetScopeToContext stores an audit scope in the context.
func SetScopeToContext(ctx context.Context, sc model.Scope) context.Context {
	return context.WithValue(ctx, scopeCtxKey{}, sc)
}

// GetScopeFromContext retrieves the audit scope set by the Scope middleware.
func GetScopeFromContext(ctx context.Context) (model.Scope, bool) {
	sc, ok := ctx.Value(scopeCtxKey{}).(model.Scope)
	return sc, ok
}
