package api

import (
	"net/http"
	"time"

	"backend_maquinaria/services"

	"github.com/gin-gonic/gin"
)

// AlertAPI expone las alertas consolidadas y el disparo manual del barrido
type AlertAPI struct {
	Alerts *services.AlertService
	Repo   *services.Repository
	Now    func() time.Time
}

// NewAlertAPI crea un nuevo AlertAPI
func NewAlertAPI(alerts *services.AlertService, repo *services.Repository) *AlertAPI {
	return &AlertAPI{Alerts: alerts, Repo: repo, Now: time.Now}
}

// GetAlerts devuelve las alertas vigentes de mantenimiento y documentos
func (api *AlertAPI) GetAlerts(c *gin.Context) {
	maintenance, err := api.Alerts.CollectMaintenanceAlerts()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error al evaluar el mantenimiento: "+err.Error())
		return
	}

	documents, err := api.Alerts.CollectDocumentAlerts(api.Now())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error al evaluar los documentos: "+err.Error())
		return
	}

	respondData(c, http.StatusOK, api.Repo.DemoMode(), gin.H{
		"maintenance": maintenance,
		"documents":   documents,
	})
}

// TriggerScan dispara el barrido diario a demanda (normalmente lo corre
// el programador a las 8am)
func (api *AlertAPI) TriggerScan(c *gin.Context) {
	if err := api.Alerts.ScanAndNotify(api.Now()); err != nil {
		respondError(c, http.StatusInternalServerError, "Error en el barrido de alertas: "+err.Error())
		return
	}
	respondMessage(c, http.StatusOK, api.Repo.DemoMode(), "Barrido de alertas ejecutado", nil)
}
