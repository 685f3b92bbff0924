package api

import (
	"net/http"
	"strings"
	"time"

	"backend_maquinaria/models"
	"backend_maquinaria/services"

	"github.com/gin-gonic/gin"
)

// OperatorAPI expone el padrón de operadores y el control de sus documentos
type OperatorAPI struct {
	Repo    *services.Repository
	History *services.HistoryService
	Cache   DashboardInvalidator
	Now     func() time.Time
}

// NewOperatorAPI crea un nuevo OperatorAPI
func NewOperatorAPI(repo *services.Repository, history *services.HistoryService) *OperatorAPI {
	return &OperatorAPI{Repo: repo, History: history, Now: time.Now}
}

// GetOperators devuelve el padrón, opcionalmente filtrado por situación
func (api *OperatorAPI) GetOperators(c *gin.Context) {
	operators, err := api.Repo.ListOperators(strings.ToUpper(c.Query("status")))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error al obtener los operadores: "+err.Error())
		return
	}

	respondData(c, http.StatusOK, api.Repo.DemoMode(), gin.H{
		"items": operators,
		"total": len(operators),
	})
}

// GetOperatorExpiringDocuments devuelve, por operador, los documentos que
// requieren acción según la misma semaforización de SOAT/CITV
func (api *OperatorAPI) GetOperatorExpiringDocuments(c *gin.Context) {
	operators, err := api.Repo.ListOperators("")
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error al obtener los operadores: "+err.Error())
		return
	}

	type operatorAlerts struct {
		OperatorID uint                      `json:"operator_id"`
		FullName   string                    `json:"full_name"`
		Documents  []models.ExpiringDocument `json:"documents"`
	}

	today := api.Now()
	rows := make([]operatorAlerts, 0)
	for i := range operators {
		expiring := operators[i].ExpiringDocumentsAt(today)
		if len(expiring) > 0 {
			rows = append(rows, operatorAlerts{
				OperatorID: operators[i].ID,
				FullName:   operators[i].FullName(),
				Documents:  expiring,
			})
		}
	}

	respondData(c, http.StatusOK, api.Repo.DemoMode(), gin.H{
		"items": rows,
		"total": len(rows),
	})
}

// CreateOperator registra un operador nuevo. El DNI debe ser único.
func (api *OperatorAPI) CreateOperator(c *gin.Context) {
	db, err := api.Repo.DB()
	if err != nil {
		respondMutationError(c, err)
		return
	}

	var operator models.Operator
	if err := c.ShouldBindJSON(&operator); err != nil {
		respondError(c, http.StatusBadRequest, "Datos inválidos: "+err.Error())
		return
	}
	if operator.FirstName == "" || operator.LastName == "" || operator.DNI == "" {
		respondError(c, http.StatusBadRequest, "Nombres, apellidos y DNI son obligatorios")
		return
	}
	if operator.Status == "" {
		operator.Status = models.OperatorStatusActive
	}

	var existing models.Operator
	if err := db.Where("dni = ?", operator.DNI).First(&existing).Error; err == nil {
		respondError(c, http.StatusConflict, "Ya existe un operador con el DNI "+operator.DNI)
		return
	}

	if err := db.Create(&operator).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al crear el operador: "+err.Error())
		return
	}

	api.History.Record(services.HistoryEntry{
		TableName: operator.TableName(),
		Action:    services.HistoryActionCreate,
		RecordID:  operator.ID,
		NewValues: operator,
		Username:  c.GetString("username"),
		IPAddress: c.ClientIP(),
	})

	invalidateDashboard(api.Cache)
	respondMessage(c, http.StatusCreated, false, "Operador creado correctamente", operator)
}

// UpdateOperator actualiza los datos de un operador
func (api *OperatorAPI) UpdateOperator(c *gin.Context) {
	db, err := api.Repo.DB()
	if err != nil {
		respondMutationError(c, err)
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var operator models.Operator
	if err := db.First(&operator, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "Operador no encontrado")
		return
	}
	previous := operator

	var updates models.Operator
	if err := c.ShouldBindJSON(&updates); err != nil {
		respondError(c, http.StatusBadRequest, "Datos inválidos: "+err.Error())
		return
	}
	updates.ID = operator.ID
	updates.DNI = operator.DNI

	if err := db.Model(&operator).Updates(updates).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al actualizar el operador: "+err.Error())
		return
	}

	api.History.Record(services.HistoryEntry{
		TableName: operator.TableName(),
		Action:    services.HistoryActionUpdate,
		RecordID:  operator.ID,
		OldValues: previous,
		NewValues: operator,
		Username:  c.GetString("username"),
		IPAddress: c.ClientIP(),
	})

	invalidateDashboard(api.Cache)
	respondMessage(c, http.StatusOK, false, "Operador actualizado", operator)
}

// DeleteOperator elimina (soft delete) un operador
func (api *OperatorAPI) DeleteOperator(c *gin.Context) {
	db, err := api.Repo.DB()
	if err != nil {
		respondMutationError(c, err)
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var operator models.Operator
	if err := db.First(&operator, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "Operador no encontrado")
		return
	}

	if err := db.Delete(&operator).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al eliminar el operador: "+err.Error())
		return
	}

	api.History.Record(services.HistoryEntry{
		TableName: operator.TableName(),
		Action:    services.HistoryActionDelete,
		RecordID:  operator.ID,
		OldValues: operator,
		Username:  c.GetString("username"),
		IPAddress: c.ClientIP(),
	})

	invalidateDashboard(api.Cache)
	respondMessage(c, http.StatusOK, false, "Operador eliminado", nil)
}
