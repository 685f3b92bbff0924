package api

import (
	"net/http"
	"strings"
	"time"

	"backend_maquinaria/models"
	"backend_maquinaria/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// FuelAPI expone el control de combustible: ingresos al tanque estacionario
// y despachos a las unidades
type FuelAPI struct {
	Repo    *services.Repository
	History *services.HistoryService
	Cache   DashboardInvalidator
}

// NewFuelAPI crea un nuevo FuelAPI
func NewFuelAPI(repo *services.Repository, history *services.HistoryService) *FuelAPI {
	return &FuelAPI{Repo: repo, History: history}
}

// GetFuelMovements devuelve los movimientos, opcionalmente por tipo o unidad
func (api *FuelAPI) GetFuelMovements(c *gin.Context) {
	movements, err := api.Repo.ListFuelMovements()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error al obtener los movimientos: "+err.Error())
		return
	}

	kind := strings.ToUpper(c.Query("kind"))
	code := strings.ToUpper(c.Query("equipment_code"))
	filtered := make([]models.FuelMovement, 0, len(movements))
	for i := range movements {
		if kind != "" && movements[i].Kind != kind {
			continue
		}
		if code != "" && movements[i].EquipmentCode != code {
			continue
		}
		filtered = append(filtered, movements[i])
	}

	respondData(c, http.StatusOK, api.Repo.DemoMode(), gin.H{
		"items": filtered,
		"total": len(filtered),
	})
}

// GetFuelSummary devuelve los totales del tanque. El stock es la resta
// directa de ingresos y salidas; si sale negativo hay un error de registro
// y el frontend debe verlo, no esconderlo.
func (api *FuelAPI) GetFuelSummary(c *gin.Context) {
	movements, err := api.Repo.ListFuelMovements()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error al obtener el resumen: "+err.Error())
		return
	}

	respondData(c, http.StatusOK, api.Repo.DemoMode(), models.SummarizeFuel(movements))
}

// CreateFuelMovementRequest es un movimiento nuevo. Para las salidas se
// puede mandar la lectura del horómetro al momento del despacho.
type CreateFuelMovementRequest struct {
	models.FuelMovement
	UpdateHourMeter bool `json:"update_hour_meter"`
}

// CreateFuelMovement registra un ingreso o un despacho. Si el despacho trae
// lectura de horómetro y update_hour_meter, la unidad se actualiza en la
// misma transacción.
func (api *FuelAPI) CreateFuelMovement(c *gin.Context) {
	db, err := api.Repo.DB()
	if err != nil {
		respondMutationError(c, err)
		return
	}

	var req CreateFuelMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Datos inválidos: "+err.Error())
		return
	}
	movement := req.FuelMovement
	movement.Kind = strings.ToUpper(strings.TrimSpace(movement.Kind))
	movement.EquipmentCode = strings.ToUpper(strings.TrimSpace(movement.EquipmentCode))

	if movement.Kind != models.FuelKindInflow && movement.Kind != models.FuelKindOutflow {
		respondError(c, http.StatusBadRequest, "El tipo debe ser INGRESO o SALIDA")
		return
	}
	if !movement.Gallons.IsPositive() {
		respondError(c, http.StatusBadRequest, "Los galones deben ser mayores a cero")
		return
	}
	if movement.Kind == models.FuelKindOutflow && movement.EquipmentCode == "" {
		respondError(c, http.StatusBadRequest, "La salida necesita el código de la unidad")
		return
	}
	if movement.Date.IsZero() {
		movement.Date = time.Now()
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if movement.Kind == models.FuelKindOutflow {
			var equipment models.Equipment
			if err := tx.Where("code = ?", movement.EquipmentCode).First(&equipment).Error; err != nil {
				return err
			}
			if req.UpdateHourMeter && movement.HourReading.GreaterThan(equipment.HoursCurrent) {
				if err := tx.Model(&equipment).Update("hours_current", movement.HourReading).Error; err != nil {
					return err
				}
				result := tx.Model(&models.Maintenance{}).
					Where("equipment_code = ?", movement.EquipmentCode).
					Update("hours_current", movement.HourReading)
				if result.Error != nil {
					return result.Error
				}
			}
		}
		return tx.Create(&movement).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, http.StatusNotFound, "Unidad no encontrada: "+movement.EquipmentCode)
			return
		}
		respondError(c, http.StatusInternalServerError, "Error al registrar el movimiento: "+err.Error())
		return
	}

	api.History.Record(services.HistoryEntry{
		TableName: movement.TableName(),
		Action:    services.HistoryActionCreate,
		RecordID:  movement.ID,
		NewValues: movement,
		Username:  c.GetString("username"),
		IPAddress: c.ClientIP(),
	})

	invalidateDashboard(api.Cache)
	respondMessage(c, http.StatusCreated, false, "Movimiento registrado", movement)
}

// DeleteFuelMovement elimina un movimiento mal registrado
func (api *FuelAPI) DeleteFuelMovement(c *gin.Context) {
	db, err := api.Repo.DB()
	if err != nil {
		respondMutationError(c, err)
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var movement models.FuelMovement
	if err := db.First(&movement, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "Movimiento no encontrado")
		return
	}

	if err := db.Delete(&movement).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al eliminar el movimiento: "+err.Error())
		return
	}

	api.History.Record(services.HistoryEntry{
		TableName: movement.TableName(),
		Action:    services.HistoryActionDelete,
		RecordID:  movement.ID,
		OldValues: movement,
		Username:  c.GetString("username"),
		IPAddress: c.ClientIP(),
	})

	invalidateDashboard(api.Cache)
	respondMessage(c, http.StatusOK, false, "Movimiento eliminado", nil)
}
