package api

import (
	"net/http"
	"time"

	"backend_maquinaria/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// AuthAPI maneja el inicio de sesión y la emisión de tokens
type AuthAPI struct {
	DB        *gorm.DB
	JWTSecret string
	TokenTTL  time.Duration
}

// NewAuthAPI crea un nuevo AuthAPI
func NewAuthAPI(db *gorm.DB, jwtSecret string, tokenTTL time.Duration) *AuthAPI {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthAPI{DB: db, JWTSecret: jwtSecret, TokenTTL: tokenTTL}
}

// LoginRequest son las credenciales de inicio de sesión
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login valida las credenciales y devuelve un JWT con el rol del usuario
func (api *AuthAPI) Login(c *gin.Context) {
	if api.DB == nil {
		respondError(c, http.StatusServiceUnavailable, "El inicio de sesión no está disponible en modo demo")
		return
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Credenciales incompletas")
		return
	}

	var user models.User
	if err := api.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		respondError(c, http.StatusUnauthorized, "Usuario o contraseña incorrectos")
		return
	}
	if !user.IsActive {
		respondError(c, http.StatusForbidden, "La cuenta está desactivada")
		return
	}
	if !user.CheckPassword(req.Password) {
		respondError(c, http.StatusUnauthorized, "Usuario o contraseña incorrectos")
		return
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(api.TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(api.JWTSecret))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error al emitir el token: "+err.Error())
		return
	}

	api.DB.Model(&user).Update("last_login", now)

	respondData(c, http.StatusOK, false, gin.H{
		"token":      signed,
		"expires_at": now.Add(api.TokenTTL),
		"user": gin.H{
			"id":         user.ID,
			"username":   user.Username,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"role":       user.Role,
		},
	})
}

// GetCurrentUser devuelve el usuario autenticado según el token
func (api *AuthAPI) GetCurrentUser(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 || api.DB == nil {
		respondError(c, http.StatusUnauthorized, "No autenticado")
		return
	}

	var user models.User
	if err := api.DB.First(&user, userID).Error; err != nil {
		respondError(c, http.StatusNotFound, "Usuario no encontrado")
		return
	}

	respondData(c, http.StatusOK, false, user)
}
