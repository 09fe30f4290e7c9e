package middleware

import (
	"renov-srv/pkg/response"
	"renov-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

// Auth resolves the authenticated user from a bearer token.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		m.verifyAndContinue(c, tokenString)
	}
}

// UploadAuth additionally accepts an X-User-Id header plus an
// access_token query parameter. The platform upload APIs cannot set
// request headers, so this compatibility path exists only on upload
// routes; both paths share the same user rate bucket.
func (m Middleware) UploadAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			tokenString = c.Query("access_token")
		}
		if tokenString == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		payload, err := m.jwtManager.Verify(tokenString)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		// The declared user must match the token's subject.
		if hdr := c.GetHeader("X-User-Id"); hdr != "" && hdr != payload.UserID {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		m.attachScope(c, payload)
		c.Next()
	}
}

func (m Middleware) verifyAndContinue(c *gin.Context, tokenString string) {
	payload, err := m.jwtManager.Verify(tokenString)
	if err != nil {
		response.Unauthorized(c)
		c.Abort()
		return
	}

	m.attachScope(c, payload)
	c.Next()
}

func (m Middleware) attachScope(c *gin.Context, payload scope.Payload) {
	ctx := c.Request.Context()
	ctx = scope.SetPayloadToContext(ctx, payload)
	ctx = scope.SetScopeToContext(ctx, scope.NewScope(payload))
	c.Request = c.Request.WithContext(ctx)
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	return authHeader
}
