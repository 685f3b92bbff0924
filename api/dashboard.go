package api

import (
	"net/http"
	"time"

	"backend_maquinaria/models"
	"backend_maquinaria/services"

	"github.com/gin-gonic/gin"
)

// DashboardAPI arma el resumen general de la flota
type DashboardAPI struct {
	Repo  *services.Repository
	Cache *services.CacheService
	Now   func() time.Time
}

// NewDashboardAPI crea un nuevo DashboardAPI
func NewDashboardAPI(repo *services.Repository, cache *services.CacheService) *DashboardAPI {
	return &DashboardAPI{Repo: repo, Cache: cache, Now: time.Now}
}

// DashboardSummary es el resumen que consume la pantalla principal
type DashboardSummary struct {
	GeneratedAt         time.Time          `json:"generated_at"`
	EquipmentTotal      int                `json:"equipment_total"`
	EquipmentByStatus   map[string]int     `json:"equipment_by_status"`
	MaintenanceStates   map[string]int     `json:"maintenance_states"`
	DocumentActions     map[string]int     `json:"document_actions"`
	FuelSummary         models.FuelSummary `json:"fuel_summary"`
	OperatorsActive     int                `json:"operators_active"`
	OperatorsWithAlerts int                `json:"operators_with_alerts"`
}

// GetDashboard devuelve el resumen. Se cachea en Redis por unos minutos;
// las mutaciones lo invalidan.
func (api *DashboardAPI) GetDashboard(c *gin.Context) {
	if api.Cache != nil {
		var cached DashboardSummary
		if err := api.Cache.GetCachedDashboard(&cached); err == nil {
			respondData(c, http.StatusOK, api.Repo.DemoMode(), cached)
			return
		}
	}

	summary, err := api.buildSummary()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error al armar el resumen: "+err.Error())
		return
	}

	if api.Cache != nil {
		api.Cache.CacheDashboard(summary)
	}

	respondData(c, http.StatusOK, api.Repo.DemoMode(), summary)
}

func (api *DashboardAPI) buildSummary() (*DashboardSummary, error) {
	summary := &DashboardSummary{
		GeneratedAt:       api.Now(),
		EquipmentByStatus: make(map[string]int),
		MaintenanceStates: make(map[string]int),
		DocumentActions:   make(map[string]int),
	}

	equipment, err := api.Repo.ListEquipment(services.EquipmentFilters{})
	if err != nil {
		return nil, err
	}
	summary.EquipmentTotal = len(equipment)
	for i := range equipment {
		summary.EquipmentByStatus[equipment[i].Status]++
	}

	maintenance, err := api.Repo.ListMaintenance()
	if err != nil {
		return nil, err
	}
	for i := range maintenance {
		summary.MaintenanceStates[maintenance[i].AlertState()]++
	}

	documents, err := api.Repo.ListDocuments("")
	if err != nil {
		return nil, err
	}
	today := api.Now()
	for i := range documents {
		summary.DocumentActions[documents[i].StatusAt(today).Action]++
	}

	movements, err := api.Repo.ListFuelMovements()
	if err != nil {
		return nil, err
	}
	summary.FuelSummary = models.SummarizeFuel(movements)

	operators, err := api.Repo.ListOperators("")
	if err != nil {
		return nil, err
	}
	for i := range operators {
		if operators[i].Status == models.OperatorStatusActive {
			summary.OperatorsActive++
		}
		if len(operators[i].ExpiringDocumentsAt(today)) > 0 {
			summary.OperatorsWithAlerts++
		}
	}

	return summary, nil
}

// GetHealth es el chequeo de salud del servicio
func (api *DashboardAPI) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"demo_mode": api.Repo.DemoMode(),
		"time":      time.Now().Format(time.RFC3339),
	})
}
