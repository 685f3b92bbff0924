package api

import (
	"net/http"
	"strconv"
	"time"

	"backend_maquinaria/services"

	"github.com/gin-gonic/gin"
)

// HistoryAPI expone el historial de cambios para auditoría
type HistoryAPI struct {
	History *services.HistoryService
}

// NewHistoryAPI crea un nuevo HistoryAPI
func NewHistoryAPI(history *services.HistoryService) *HistoryAPI {
	return &HistoryAPI{History: history}
}

// GetHistory devuelve el historial filtrado por tabla, acción, registro,
// usuario o rango de fechas
func (api *HistoryAPI) GetHistory(c *gin.Context) {
	filters := services.HistoryFilters{
		TableName: c.Query("table"),
		Action:    c.Query("action"),
		Username:  c.Query("username"),
	}

	if raw := c.Query("record_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondError(c, http.StatusBadRequest, "record_id inválido")
			return
		}
		recordID := uint(id)
		filters.RecordID = &recordID
	}

	for _, bound := range []struct {
		param string
		dest  *time.Time
	}{
		{"start_date", &filters.StartDate},
		{"end_date", &filters.EndDate},
	} {
		if raw := c.Query(bound.param); raw != "" {
			t, err := time.Parse("2006-01-02", raw)
			if err != nil {
				respondError(c, http.StatusBadRequest, bound.param+" inválida, formato esperado YYYY-MM-DD")
				return
			}
			*bound.dest = t
		}
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit < 1 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	filters.Limit = limit
	filters.Offset = offset

	entries, err := api.History.List(filters)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error al obtener el historial: "+err.Error())
		return
	}

	respondData(c, http.StatusOK, false, gin.H{
		"items":  entries,
		"total":  len(entries),
		"limit":  limit,
		"offset": offset,
	})
}
