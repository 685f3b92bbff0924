package api

import (
	"net/http"

	"backend_maquinaria/models"
	"backend_maquinaria/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserAPI administra las cuentas del sistema. Solo accesible para admin.
type UserAPI struct {
	DB      *gorm.DB
	History *services.HistoryService
}

// NewUserAPI crea un nuevo UserAPI
func NewUserAPI(db *gorm.DB, history *services.HistoryService) *UserAPI {
	return &UserAPI{DB: db, History: history}
}

// CreateUserRequest es el alta de una cuenta
type CreateUserRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=64"`
	Email     string `json:"email" binding:"omitempty,email"`
	Password  string `json:"password" binding:"required,min=6,max=100"`
	FirstName string `json:"first_name" binding:"max=100"`
	LastName  string `json:"last_name" binding:"max=100"`
	Role      string `json:"role" binding:"required"`
}

// UpdateUserRequest es la edición de una cuenta
type UpdateUserRequest struct {
	Email     string  `json:"email" binding:"omitempty,email"`
	Password  string  `json:"password" binding:"omitempty,min=6,max=100"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Role      string  `json:"role"`
	IsActive  *bool   `json:"is_active"`
}

// GetUsers devuelve todas las cuentas
func (api *UserAPI) GetUsers(c *gin.Context) {
	if api.DB == nil {
		respondError(c, http.StatusServiceUnavailable, "La administración de usuarios no está disponible en modo demo")
		return
	}

	var users []models.User
	if err := api.DB.Order("username ASC").Find(&users).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al obtener los usuarios: "+err.Error())
		return
	}

	respondData(c, http.StatusOK, false, gin.H{
		"items": users,
		"total": len(users),
		"roles": models.KnownRoles(),
	})
}

// CreateUser crea una cuenta nueva
func (api *UserAPI) CreateUser(c *gin.Context) {
	if api.DB == nil {
		respondError(c, http.StatusServiceUnavailable, "La administración de usuarios no está disponible en modo demo")
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Datos inválidos: "+err.Error())
		return
	}

	if !validRole(req.Role) {
		respondError(c, http.StatusBadRequest, "Rol desconocido: "+req.Role)
		return
	}

	var existing models.User
	if err := api.DB.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		respondError(c, http.StatusConflict, "El nombre de usuario ya está en uso")
		return
	}

	user := models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		IsActive:  true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		respondError(c, http.StatusInternalServerError, "Error al procesar la contraseña: "+err.Error())
		return
	}

	if err := api.DB.Create(&user).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al crear el usuario: "+err.Error())
		return
	}

	api.History.Record(services.HistoryEntry{
		TableName: user.TableName(),
		Action:    services.HistoryActionCreate,
		RecordID:  user.ID,
		NewValues: gin.H{"username": user.Username, "role": user.Role},
		Username:  c.GetString("username"),
		IPAddress: c.ClientIP(),
	})

	respondMessage(c, http.StatusCreated, false, "Usuario creado correctamente", user)
}

// UpdateUser edita una cuenta: rol, datos o contraseña
func (api *UserAPI) UpdateUser(c *gin.Context) {
	if api.DB == nil {
		respondError(c, http.StatusServiceUnavailable, "La administración de usuarios no está disponible en modo demo")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var user models.User
	if err := api.DB.First(&user, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "Usuario no encontrado")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Datos inválidos: "+err.Error())
		return
	}

	if req.Role != "" {
		if !validRole(req.Role) {
			respondError(c, http.StatusBadRequest, "Rol desconocido: "+req.Role)
			return
		}
		user.Role = req.Role
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != "" {
		if err := user.SetPassword(req.Password); err != nil {
			respondError(c, http.StatusInternalServerError, "Error al procesar la contraseña: "+err.Error())
			return
		}
	}

	if err := api.DB.Save(&user).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al actualizar el usuario: "+err.Error())
		return
	}

	api.History.Record(services.HistoryEntry{
		TableName: user.TableName(),
		Action:    services.HistoryActionUpdate,
		RecordID:  user.ID,
		NewValues: gin.H{"username": user.Username, "role": user.Role, "is_active": user.IsActive},
		Username:  c.GetString("username"),
		IPAddress: c.ClientIP(),
	})

	respondMessage(c, http.StatusOK, false, "Usuario actualizado", user)
}

// DeleteUser desactiva una cuenta. No se borra para conservar el historial.
func (api *UserAPI) DeleteUser(c *gin.Context) {
	if api.DB == nil {
		respondError(c, http.StatusServiceUnavailable, "La administración de usuarios no está disponible en modo demo")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var user models.User
	if err := api.DB.First(&user, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "Usuario no encontrado")
		return
	}
	if user.Username == c.GetString("username") {
		respondError(c, http.StatusBadRequest, "No puedes desactivar tu propia cuenta")
		return
	}

	if err := api.DB.Model(&user).Update("is_active", false).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al desactivar el usuario: "+err.Error())
		return
	}

	api.History.Record(services.HistoryEntry{
		TableName: user.TableName(),
		Action:    services.HistoryActionDelete,
		RecordID:  user.ID,
		OldValues: gin.H{"username": user.Username},
		Username:  c.GetString("username"),
		IPAddress: c.ClientIP(),
	})

	respondMessage(c, http.StatusOK, false, "Usuario desactivado", nil)
}

func validRole(role string) bool {
	for _, known := range models.KnownRoles() {
		if role == known {
			return true
		}
	}
	return false
}
