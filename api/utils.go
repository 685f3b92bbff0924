package api

import (
	"errors"
	"net/http"
	"strconv"

	"backend_maquinaria/services"

	"github.com/gin-gonic/gin"
)

// respondData arma la respuesta estándar de éxito. Todas las respuestas
// llevan la bandera demo_mode para que el frontend muestre el aviso.
func respondData(c *gin.Context, status int, demoMode bool, data interface{}) {
	c.JSON(status, gin.H{
		"status":    "success",
		"demo_mode": demoMode,
		"data":      data,
	})
}

// respondMessage arma una respuesta de éxito con mensaje y datos
func respondMessage(c *gin.Context, status int, demoMode bool, message string, data interface{}) {
	c.JSON(status, gin.H{
		"status":    "success",
		"demo_mode": demoMode,
		"message":   message,
		"data":      data,
	})
}

// DashboardInvalidator descarta el resumen cacheado del panel. Lo
// implementa services.CacheService; cada mutación lo llama para que el
// tablero no sirva agregados viejos hasta que venza el TTL.
type DashboardInvalidator interface {
	InvalidateDashboard() error
}

// invalidateDashboard tolera un cache sin configurar
func invalidateDashboard(cache DashboardInvalidator) {
	if cache != nil {
		cache.InvalidateDashboard()
	}
}

// respondError arma la respuesta estándar de error
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"status": "error",
		"error":  message,
	})
}

// respondMutationError traduce los errores de las mutaciones. El modo demo
// responde 503 para que quede claro que el servidor no guarda nada.
func respondMutationError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrDemoMode) {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "error",
			"demo_mode": true,
			"error":     err.Error(),
		})
		return
	}
	respondError(c, http.StatusInternalServerError, err.Error())
}

// parseIDParam lee el parámetro :id de la ruta
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "ID inválido")
		return 0, false
	}
	return uint(id), true
}
