package middleware

import (
	"net/http"
	"time"

	"backend_maquinaria/database"

	"github.com/gin-gonic/gin"
)

// RateLimitConfig configura el límite de peticiones por cliente
type RateLimitConfig struct {
	Requests     int64
	Window       time.Duration
	Action       string
	KeyGenerator func(*gin.Context) string
}

// DefaultKeyGenerator identifica al cliente por IP
func DefaultKeyGenerator(c *gin.Context) string {
	return c.ClientIP()
}

// UserKeyGenerator identifica al cliente por usuario autenticado, con la
// IP como respaldo
func UserKeyGenerator(c *gin.Context) string {
	if username := c.GetString("username"); username != "" {
		return "user:" + username
	}
	return c.ClientIP()
}

// RateLimit limita la frecuencia de peticiones usando Redis. Sin Redis el
// límite se desactiva en silencio.
func RateLimit(config RateLimitConfig) gin.HandlerFunc {
	if config.KeyGenerator == nil {
		config.KeyGenerator = DefaultKeyGenerator
	}
	if config.Action == "" {
		config.Action = "api"
	}

	return func(c *gin.Context) {
		allowed, err := database.RateLimitCheck(config.KeyGenerator(c), config.Action, config.Requests, config.Window)
		if err != nil {
			// Con Redis caído se deja pasar: el límite es protección, no
			// requisito
			c.Next()
			return
		}
		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"status": "error",
				"error":  "Demasiadas peticiones, intenta de nuevo en unos segundos",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoginRateLimit es el límite estricto del endpoint de login
func LoginRateLimit() gin.HandlerFunc {
	return RateLimit(RateLimitConfig{
		Requests: 5,
		Window:   time.Minute,
		Action:   "login",
	})
}

// APIRateLimit es el límite general de la API
func APIRateLimit() gin.HandlerFunc {
	return RateLimit(RateLimitConfig{
		Requests:     300,
		Window:       time.Minute,
		Action:       "api",
		KeyGenerator: UserKeyGenerator,
	})
}
