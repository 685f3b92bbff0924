package api

import (
	"net/http"
	"strings"

	"backend_maquinaria/models"
	"backend_maquinaria/services"

	"github.com/gin-gonic/gin"
)

// MaintenanceAPI expone el tablero de mantenimiento preventivo
type MaintenanceAPI struct {
	Repo    *services.Repository
	History *services.HistoryService
	Cache   DashboardInvalidator
}

// NewMaintenanceAPI crea un nuevo MaintenanceAPI
func NewMaintenanceAPI(repo *services.Repository, history *services.HistoryService) *MaintenanceAPI {
	return &MaintenanceAPI{Repo: repo, History: history}
}

// MaintenanceRow es una fila del tablero: el registro más sus campos
// derivados. Las horas restantes y el estado se calculan en cada petición,
// nunca se guardan.
type MaintenanceRow struct {
	models.Maintenance
	HoursRemaining string `json:"hours_remaining"`
	AlertState     string `json:"alert_state"`
}

// GetMaintenanceBoard devuelve el tablero completo con estados derivados
func (api *MaintenanceAPI) GetMaintenanceBoard(c *gin.Context) {
	records, err := api.Repo.ListMaintenance()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error al obtener el tablero: "+err.Error())
		return
	}

	state := c.Query("state")
	rows := make([]MaintenanceRow, 0, len(records))
	counters := make(map[string]int)
	for i := range records {
		alertState := records[i].AlertState()
		counters[alertState]++
		if state != "" && alertState != state {
			continue
		}
		rows = append(rows, MaintenanceRow{
			Maintenance:    records[i],
			HoursRemaining: records[i].HoursRemaining().StringFixed(1),
			AlertState:     alertState,
		})
	}

	respondData(c, http.StatusOK, api.Repo.DemoMode(), gin.H{
		"items":    rows,
		"total":    len(rows),
		"counters": counters,
	})
}

// CreateMaintenance crea el registro de mantenimiento de una unidad.
// Cada unidad tiene a lo sumo un registro.
func (api *MaintenanceAPI) CreateMaintenance(c *gin.Context) {
	db, err := api.Repo.DB()
	if err != nil {
		respondMutationError(c, err)
		return
	}

	var record models.Maintenance
	if err := c.ShouldBindJSON(&record); err != nil {
		respondError(c, http.StatusBadRequest, "Datos inválidos: "+err.Error())
		return
	}
	record.EquipmentCode = strings.ToUpper(strings.TrimSpace(record.EquipmentCode))
	if record.EquipmentCode == "" {
		respondError(c, http.StatusBadRequest, "El código de la unidad es obligatorio")
		return
	}

	var equipment models.Equipment
	if err := db.Where("code = ?", record.EquipmentCode).First(&equipment).Error; err != nil {
		respondError(c, http.StatusNotFound, "Unidad no encontrada: "+record.EquipmentCode)
		return
	}

	var existing models.Maintenance
	if err := db.Where("equipment_code = ?", record.EquipmentCode).First(&existing).Error; err == nil {
		respondError(c, http.StatusConflict, "La unidad ya tiene registro de mantenimiento")
		return
	}

	if record.Type == "" {
		record.Type = models.MaintenancePreventive
	}
	if err := db.Create(&record).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al crear el registro: "+err.Error())
		return
	}

	api.History.Record(services.HistoryEntry{
		TableName: record.TableName(),
		Action:    services.HistoryActionCreate,
		RecordID:  record.ID,
		NewValues: record,
		Username:  c.GetString("username"),
		IPAddress: c.ClientIP(),
	})

	invalidateDashboard(api.Cache)
	respondMessage(c, http.StatusCreated, false, "Registro de mantenimiento creado", record)
}

// UpdateMaintenance actualiza las lecturas u observaciones de un registro
func (api *MaintenanceAPI) UpdateMaintenance(c *gin.Context) {
	db, err := api.Repo.DB()
	if err != nil {
		respondMutationError(c, err)
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var record models.Maintenance
	if err := db.First(&record, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "Registro no encontrado")
		return
	}
	previous := record

	var updates models.Maintenance
	if err := c.ShouldBindJSON(&updates); err != nil {
		respondError(c, http.StatusBadRequest, "Datos inválidos: "+err.Error())
		return
	}
	updates.ID = record.ID
	updates.EquipmentCode = record.EquipmentCode

	if err := db.Model(&record).Updates(updates).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al actualizar el registro: "+err.Error())
		return
	}

	api.History.Record(services.HistoryEntry{
		TableName: record.TableName(),
		Action:    services.HistoryActionUpdate,
		RecordID:  record.ID,
		OldValues: previous,
		NewValues: record,
		Username:  c.GetString("username"),
		IPAddress: c.ClientIP(),
	})

	invalidateDashboard(api.Cache)
	respondMessage(c, http.StatusOK, false, "Registro actualizado", record)
}

// RegisterService registra un servicio ejecutado: la lectura actual pasa a
// ser la del último servicio y el próximo queda 250 horas adelante
func (api *MaintenanceAPI) RegisterService(c *gin.Context) {
	db, err := api.Repo.DB()
	if err != nil {
		respondMutationError(c, err)
		return
	}

	code := strings.ToUpper(c.Param("code"))

	var record models.Maintenance
	if err := db.Where("equipment_code = ?", code).First(&record).Error; err != nil {
		respondError(c, http.StatusNotFound, "La unidad no tiene registro de mantenimiento: "+code)
		return
	}
	previous := record

	record.RegisterService()
	if err := db.Save(&record).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al registrar el servicio: "+err.Error())
		return
	}

	api.History.Record(services.HistoryEntry{
		TableName: record.TableName(),
		Action:    services.HistoryActionUpdate,
		RecordID:  record.ID,
		OldValues: previous,
		NewValues: record,
		Username:  c.GetString("username"),
		IPAddress: c.ClientIP(),
	})

	invalidateDashboard(api.Cache)
	respondMessage(c, http.StatusOK, false, "Servicio registrado", MaintenanceRow{
		Maintenance:    record,
		HoursRemaining: record.HoursRemaining().StringFixed(1),
		AlertState:     record.AlertState(),
	})
}
