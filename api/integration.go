package api

import (
	"net/http"

	"backend_maquinaria/services"

	"github.com/gin-gonic/gin"
)

// IntegrationAPI dispara la importación desde el backend de datos heredado
type IntegrationAPI struct {
	Importer *services.ImportService
}

// NewIntegrationAPI crea un nuevo IntegrationAPI
func NewIntegrationAPI(importer *services.ImportService) *IntegrationAPI {
	return &IntegrationAPI{Importer: importer}
}

// ImportLegacyData importa las tablas remotas indicadas (equipos y
// documentos). Solo tiene sentido durante la migración; requiere rol admin.
func (api *IntegrationAPI) ImportLegacyData(c *gin.Context) {
	if api.Importer == nil {
		respondError(c, http.StatusServiceUnavailable, "La integración con el backend heredado no está configurada")
		return
	}

	results := make([]*services.ImportResult, 0, 2)

	switch c.DefaultQuery("table", "all") {
	case "equipos":
		result, err := api.Importer.ImportEquipment(c.Request.Context())
		if err != nil {
			respondError(c, http.StatusBadGateway, err.Error())
			return
		}
		results = append(results, result)
	case "documentos":
		result, err := api.Importer.ImportDocuments(c.Request.Context())
		if err != nil {
			respondError(c, http.StatusBadGateway, err.Error())
			return
		}
		results = append(results, result)
	case "all":
		equipment, err := api.Importer.ImportEquipment(c.Request.Context())
		if err != nil {
			respondError(c, http.StatusBadGateway, err.Error())
			return
		}
		results = append(results, equipment)

		documents, err := api.Importer.ImportDocuments(c.Request.Context())
		if err != nil {
			respondError(c, http.StatusBadGateway, err.Error())
			return
		}
		results = append(results, documents)
	default:
		respondError(c, http.StatusBadRequest, "Tabla desconocida: "+c.Query("table"))
		return
	}

	respondMessage(c, http.StatusOK, false, "Importación completada", results)
}
