package middleware

import (
	"net/http"
	"strings"

	"backend_maquinaria/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware valida el JWT emitido en el login y resuelve permisos
type AuthMiddleware struct {
	JWTSecret string
	// DemoMode deja pasar las lecturas sin token, con rol visualizador
	DemoMode bool
}

// NewAuthMiddleware crea un nuevo AuthMiddleware
func NewAuthMiddleware(jwtSecret string, demoMode bool) *AuthMiddleware {
	return &AuthMiddleware{JWTSecret: jwtSecret, DemoMode: demoMode}
}

// RequireAuth verifica el token y guarda la identidad en el contexto
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			if am.DemoMode && c.Request.Method == http.MethodGet {
				c.Set("username", "demo")
				c.Set("role", models.RoleViewer)
				c.Next()
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{
				"status": "error",
				"error":  "Se requiere el encabezado Authorization",
			})
			c.Abort()
			return
		}

		claims, err := am.parseToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status": "error",
				"error":  "Token inválido o expirado",
			})
			c.Abort()
			return
		}

		if sub, ok := claims["sub"].(float64); ok {
			c.Set("user_id", uint(sub))
		}
		if username, ok := claims["username"].(string); ok {
			c.Set("username", username)
		}
		if role, ok := claims["role"].(string); ok {
			c.Set("role", role)
		}

		c.Next()
	}
}

// RequirePermission verifica que el rol del usuario pueda ejecutar la
// acción sobre el recurso según la matriz de permisos
func (am *AuthMiddleware) RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if !models.RoleCan(role, resource, action) {
			c.JSON(http.StatusForbidden, gin.H{
				"status": "error",
				"error":  "No tienes permiso para esta operación",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole exige un rol exacto (se usa para las rutas de administración)
func (am *AuthMiddleware) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != role {
			c.JSON(http.StatusForbidden, gin.H{
				"status": "error",
				"error":  "Operación reservada al rol " + role,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return authHeader
}

func (am *AuthMiddleware) parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(am.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
