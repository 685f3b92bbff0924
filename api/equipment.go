package api

import (
	"net/http"
	"strings"

	"backend_maquinaria/models"
	"backend_maquinaria/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EquipmentAPI expone las operaciones sobre el inventario de maquinaria
type EquipmentAPI struct {
	Repo    *services.Repository
	History *services.HistoryService
	// Cache invalida el resumen del panel tras cada mutación
	Cache DashboardInvalidator
}

// NewEquipmentAPI crea un nuevo EquipmentAPI
func NewEquipmentAPI(repo *services.Repository, history *services.HistoryService) *EquipmentAPI {
	return &EquipmentAPI{Repo: repo, History: history}
}

// GetEquipmentList devuelve el inventario con filtros opcionales
func (api *EquipmentAPI) GetEquipmentList(c *gin.Context) {
	filters := services.EquipmentFilters{
		Type:    c.Query("type"),
		Status:  c.Query("status"),
		Company: c.Query("company"),
		Search:  c.Query("search"),
	}

	equipment, err := api.Repo.ListEquipment(filters)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error al obtener el inventario: "+err.Error())
		return
	}

	respondData(c, http.StatusOK, api.Repo.DemoMode(), gin.H{
		"items": equipment,
		"total": len(equipment),
	})
}

// GetEquipment devuelve una unidad por código
func (api *EquipmentAPI) GetEquipment(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))

	equipment, err := api.Repo.ListEquipment(services.EquipmentFilters{})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error al obtener la unidad: "+err.Error())
		return
	}
	for i := range equipment {
		if equipment[i].Code == code {
			respondData(c, http.StatusOK, api.Repo.DemoMode(), equipment[i])
			return
		}
	}
	respondError(c, http.StatusNotFound, "Unidad no encontrada: "+code)
}

// CreateEquipment registra una unidad nueva. El código interno debe ser único.
func (api *EquipmentAPI) CreateEquipment(c *gin.Context) {
	db, err := api.Repo.DB()
	if err != nil {
		respondMutationError(c, err)
		return
	}

	var equipment models.Equipment
	if err := c.ShouldBindJSON(&equipment); err != nil {
		respondError(c, http.StatusBadRequest, "Datos inválidos: "+err.Error())
		return
	}
	equipment.Code = strings.ToUpper(strings.TrimSpace(equipment.Code))
	if equipment.Code == "" || equipment.Type == "" {
		respondError(c, http.StatusBadRequest, "El código y el tipo son obligatorios")
		return
	}
	if equipment.Status == "" {
		equipment.Status = models.EquipmentStatusOperational
	}

	var existing models.Equipment
	if err := db.Where("code = ?", equipment.Code).First(&existing).Error; err == nil {
		respondError(c, http.StatusConflict, "Ya existe una unidad con el código "+equipment.Code)
		return
	}

	if err := db.Create(&equipment).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al crear la unidad: "+err.Error())
		return
	}

	api.History.Record(services.HistoryEntry{
		TableName: equipment.TableName(),
		Action:    services.HistoryActionCreate,
		RecordID:  equipment.ID,
		NewValues: equipment,
		Username:  c.GetString("username"),
		IPAddress: c.ClientIP(),
	})

	invalidateDashboard(api.Cache)
	respondMessage(c, http.StatusCreated, false, "Unidad creada correctamente", equipment)
}

// UpdateEquipment actualiza los datos de una unidad existente
func (api *EquipmentAPI) UpdateEquipment(c *gin.Context) {
	db, err := api.Repo.DB()
	if err != nil {
		respondMutationError(c, err)
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var equipment models.Equipment
	if err := db.First(&equipment, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "Unidad no encontrada")
		return
	}
	previous := equipment

	var updates models.Equipment
	if err := c.ShouldBindJSON(&updates); err != nil {
		respondError(c, http.StatusBadRequest, "Datos inválidos: "+err.Error())
		return
	}

	// El código interno no se cambia por esta vía: las relaciones cuelgan de él
	updates.Code = equipment.Code
	updates.ID = equipment.ID

	if err := db.Model(&equipment).Updates(updates).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al actualizar la unidad: "+err.Error())
		return
	}

	api.History.Record(services.HistoryEntry{
		TableName: equipment.TableName(),
		Action:    services.HistoryActionUpdate,
		RecordID:  equipment.ID,
		OldValues: previous,
		NewValues: equipment,
		Username:  c.GetString("username"),
		IPAddress: c.ClientIP(),
	})

	invalidateDashboard(api.Cache)
	respondMessage(c, http.StatusOK, false, "Unidad actualizada correctamente", equipment)
}

// DeleteEquipment elimina (soft delete) una unidad
func (api *EquipmentAPI) DeleteEquipment(c *gin.Context) {
	db, err := api.Repo.DB()
	if err != nil {
		respondMutationError(c, err)
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var equipment models.Equipment
	if err := db.First(&equipment, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "Unidad no encontrada")
		return
	}

	if err := db.Delete(&equipment).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al eliminar la unidad: "+err.Error())
		return
	}

	api.History.Record(services.HistoryEntry{
		TableName: equipment.TableName(),
		Action:    services.HistoryActionDelete,
		RecordID:  equipment.ID,
		OldValues: equipment,
		Username:  c.GetString("username"),
		IPAddress: c.ClientIP(),
	})

	invalidateDashboard(api.Cache)
	respondMessage(c, http.StatusOK, false, "Unidad eliminada correctamente", nil)
}

// UpdateHourMeterRequest es la lectura nueva del horómetro
type UpdateHourMeterRequest struct {
	Hours decimal.Decimal `json:"hours" binding:"required"`
}

// UpdateHourMeter actualiza el horómetro de la unidad y propaga la lectura
// al registro de mantenimiento en una sola transacción, para que el tablero
// de alertas nunca vea lecturas a medias.
func (api *EquipmentAPI) UpdateHourMeter(c *gin.Context) {
	db, err := api.Repo.DB()
	if err != nil {
		respondMutationError(c, err)
		return
	}

	code := strings.ToUpper(c.Param("code"))

	var req UpdateHourMeterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Datos inválidos: "+err.Error())
		return
	}
	if req.Hours.IsNegative() {
		respondError(c, http.StatusBadRequest, "La lectura del horómetro no puede ser negativa")
		return
	}

	var equipment models.Equipment
	if err := db.Where("code = ?", code).First(&equipment).Error; err != nil {
		respondError(c, http.StatusNotFound, "Unidad no encontrada: "+code)
		return
	}
	if req.Hours.LessThan(equipment.HoursCurrent) {
		respondError(c, http.StatusBadRequest, "La lectura nueva no puede ser menor que la actual")
		return
	}
	previousHours := equipment.HoursCurrent

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&equipment).Update("hours_current", req.Hours).Error; err != nil {
			return err
		}
		// El registro de mantenimiento puede no existir todavía
		result := tx.Model(&models.Maintenance{}).
			Where("equipment_code = ?", code).
			Update("hours_current", req.Hours)
		return result.Error
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error al actualizar el horómetro: "+err.Error())
		return
	}

	api.History.Record(services.HistoryEntry{
		TableName: equipment.TableName(),
		Action:    services.HistoryActionUpdate,
		RecordID:  equipment.ID,
		OldValues: gin.H{"hours_current": previousHours},
		NewValues: gin.H{"hours_current": req.Hours},
		Username:  c.GetString("username"),
		IPAddress: c.ClientIP(),
	})

	invalidateDashboard(api.Cache)
	respondMessage(c, http.StatusOK, false, "Horómetro actualizado", gin.H{
		"code":          code,
		"hours_current": req.Hours,
	})
}

// GetEquipmentStatistics devuelve los contadores por estado y por tipo
func (api *EquipmentAPI) GetEquipmentStatistics(c *gin.Context) {
	equipment, err := api.Repo.ListEquipment(services.EquipmentFilters{})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error al obtener las estadísticas: "+err.Error())
		return
	}

	byStatus := make(map[string]int)
	byType := make(map[string]int)
	for i := range equipment {
		byStatus[equipment[i].Status]++
		byType[equipment[i].Type]++
	}

	respondData(c, http.StatusOK, api.Repo.DemoMode(), gin.H{
		"total":     len(equipment),
		"by_status": byStatus,
		"by_type":   byType,
	})
}
