package api

import (
	"net/http"
	"path/filepath"

	"backend_maquinaria/services"

	"github.com/gin-gonic/gin"
)

// ExportAPI genera archivos descargables de los tableros
type ExportAPI struct {
	Exports *services.ExportService
}

// NewExportAPI crea un nuevo ExportAPI
func NewExportAPI(exports *services.ExportService) *ExportAPI {
	return &ExportAPI{Exports: exports}
}

// ExportDataset genera la exportación pedida y la sirve como descarga.
// Ruta: GET /exports/:dataset?format=xlsx|pdf|csv|json
func (api *ExportAPI) ExportDataset(c *gin.Context) {
	format := c.DefaultQuery("format", services.ExportFormatExcel)
	switch format {
	case services.ExportFormatExcel, services.ExportFormatPDF, services.ExportFormatCSV, services.ExportFormatJSON:
	default:
		respondError(c, http.StatusBadRequest, "Formato no soportado: "+format)
		return
	}

	var (
		data *services.TableData
		err  error
	)
	switch c.Param("dataset") {
	case "equipos":
		data, err = api.Exports.BuildEquipmentTable()
	case "mantenimiento":
		data, err = api.Exports.BuildMaintenanceTable()
	case "documentos":
		data, err = api.Exports.BuildDocumentsTable(c.Query("kind"))
	case "combustible":
		data, err = api.Exports.BuildFuelTable()
	case "filtros":
		data, err = api.Exports.BuildPurchaseListTable(parseCodes(c))
	case "operadores":
		data, err = api.Exports.BuildOperatorsTable()
	default:
		respondError(c, http.StatusNotFound, "Conjunto de datos desconocido: "+c.Param("dataset"))
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error al preparar la exportación: "+err.Error())
		return
	}

	filePath, err := api.Exports.Export(data, format)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error al generar el archivo: "+err.Error())
		return
	}

	c.FileAttachment(filePath, filepath.Base(filePath))
}
