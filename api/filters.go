package api

import (
	"net/http"
	"strings"

	"backend_maquinaria/models"
	"backend_maquinaria/services"

	"github.com/gin-gonic/gin"
)

// FilterAPI expone el catálogo de filtros por unidad y la lista de compras
// consolidada
type FilterAPI struct {
	Repo    *services.Repository
	History *services.HistoryService
}

// NewFilterAPI crea un nuevo FilterAPI
func NewFilterAPI(repo *services.Repository, history *services.HistoryService) *FilterAPI {
	return &FilterAPI{Repo: repo, History: history}
}

// parseCodes lee el parámetro ?codes=EXC-001,CF-002
func parseCodes(c *gin.Context) []string {
	raw := c.Query("codes")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	codes := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.ToUpper(strings.TrimSpace(p)); p != "" {
			codes = append(codes, p)
		}
	}
	return codes
}

// GetFilterKits devuelve los catálogos, opcionalmente solo de ciertas unidades
func (api *FilterAPI) GetFilterKits(c *gin.Context) {
	kits, err := api.Repo.ListFilterKits(parseCodes(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error al obtener los catálogos: "+err.Error())
		return
	}

	respondData(c, http.StatusOK, api.Repo.DemoMode(), gin.H{
		"items": kits,
		"total": len(kits),
	})
}

// GetPurchaseList arma la lista de compras consolidada: mismas referencias
// de distintas unidades se suman en una sola línea, en el orden en que
// aparecen
func (api *FilterAPI) GetPurchaseList(c *gin.Context) {
	kits, err := api.Repo.ListFilterKits(parseCodes(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error al armar la lista de compras: "+err.Error())
		return
	}

	lines := models.ConsolidatePurchaseList(kits)
	totalUnits := 0
	for _, line := range lines {
		totalUnits += line.Quantity
	}

	respondData(c, http.StatusOK, api.Repo.DemoMode(), gin.H{
		"items":       lines,
		"total_lines": len(lines),
		"total_units": totalUnits,
	})
}

// UpsertFilterKit crea o reemplaza el catálogo de filtros de una unidad
func (api *FilterAPI) UpsertFilterKit(c *gin.Context) {
	db, err := api.Repo.DB()
	if err != nil {
		respondMutationError(c, err)
		return
	}

	code := strings.ToUpper(c.Param("code"))

	var equipment models.Equipment
	if err := db.Where("code = ?", code).First(&equipment).Error; err != nil {
		respondError(c, http.StatusNotFound, "Unidad no encontrada: "+code)
		return
	}

	var kit models.FilterKit
	if err := c.ShouldBindJSON(&kit); err != nil {
		respondError(c, http.StatusBadRequest, "Datos inválidos: "+err.Error())
		return
	}
	kit.EquipmentCode = code

	var existing models.FilterKit
	action := services.HistoryActionCreate
	if err := db.Where("equipment_code = ?", code).First(&existing).Error; err == nil {
		kit.ID = existing.ID
		kit.CreatedAt = existing.CreatedAt
		action = services.HistoryActionUpdate
	}

	if err := db.Save(&kit).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al guardar el catálogo: "+err.Error())
		return
	}

	api.History.Record(services.HistoryEntry{
		TableName: kit.TableName(),
		Action:    action,
		RecordID:  kit.ID,
		OldValues: existing,
		NewValues: kit,
		Username:  c.GetString("username"),
		IPAddress: c.ClientIP(),
	})

	respondMessage(c, http.StatusOK, false, "Catálogo de filtros guardado", kit)
}

// DeleteFilterKit elimina el catálogo de una unidad
func (api *FilterAPI) DeleteFilterKit(c *gin.Context) {
	db, err := api.Repo.DB()
	if err != nil {
		respondMutationError(c, err)
		return
	}

	code := strings.ToUpper(c.Param("code"))

	var kit models.FilterKit
	if err := db.Where("equipment_code = ?", code).First(&kit).Error; err != nil {
		respondError(c, http.StatusNotFound, "La unidad no tiene catálogo de filtros: "+code)
		return
	}

	if err := db.Delete(&kit).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al eliminar el catálogo: "+err.Error())
		return
	}

	api.History.Record(services.HistoryEntry{
		TableName: kit.TableName(),
		Action:    services.HistoryActionDelete,
		RecordID:  kit.ID,
		OldValues: kit,
		Username:  c.GetString("username"),
		IPAddress: c.ClientIP(),
	})

	respondMessage(c, http.StatusOK, false, "Catálogo eliminado", nil)
}
