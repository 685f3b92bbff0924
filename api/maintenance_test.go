package api

import (
	"net/http"
	"testing"

	"backend_maquinaria/models"
	"backend_maquinaria/testutils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGetMaintenanceBoard(t *testing.T) {
	db, repo, history := newTestServices(t)
	maintenanceAPI := NewMaintenanceAPI(repo, history)
	testutils.CreateTestEquipment(db, "EXC-001", "3180.5")
	testutils.CreateTestEquipment(db, "CF-002", "7420")
	testutils.CreateTestMaintenance(db, "EXC-001", "3000", "3250", "3180.5")
	testutils.CreateTestMaintenance(db, "CF-002", "7150", "7400", "7420")

	router := gin.New()
	router.GET("/mantenimiento", maintenanceAPI.GetMaintenanceBoard)

	w := doJSON(router, "GET", "/mantenimiento", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := parseBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total"])

	counters := data["counters"].(map[string]interface{})
	assert.Equal(t, float64(1), counters[models.AlertOverdue])
	assert.Equal(t, float64(1), counters[models.AlertUpcoming])

	// Cada fila trae el estado y las horas restantes derivadas
	items := data["items"].([]interface{})
	for _, raw := range items {
		row := raw.(map[string]interface{})
		assert.NotEmpty(t, row["alert_state"])
		assert.NotEmpty(t, row["hours_remaining"])
	}
}

func TestGetMaintenanceBoardFilterByState(t *testing.T) {
	db, repo, history := newTestServices(t)
	maintenanceAPI := NewMaintenanceAPI(repo, history)
	testutils.CreateTestEquipment(db, "EXC-001", "3180.5")
	testutils.CreateTestEquipment(db, "CF-002", "7420")
	testutils.CreateTestMaintenance(db, "EXC-001", "3000", "3250", "3180.5")
	testutils.CreateTestMaintenance(db, "CF-002", "7150", "7400", "7420")

	router := gin.New()
	router.GET("/mantenimiento", maintenanceAPI.GetMaintenanceBoard)

	w := doJSON(router, "GET", "/mantenimiento?state=VENCIDO", nil)
	data := parseBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total"])
}

func TestCreateMaintenanceRequiresEquipment(t *testing.T) {
	_, repo, history := newTestServices(t)
	maintenanceAPI := NewMaintenanceAPI(repo, history)

	router := gin.New()
	router.POST("/mantenimiento", maintenanceAPI.CreateMaintenance)

	w := doJSON(router, "POST", "/mantenimiento", gin.H{"equipment_code": "EXC-404"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateMaintenanceOnePerUnit(t *testing.T) {
	db, repo, history := newTestServices(t)
	maintenanceAPI := NewMaintenanceAPI(repo, history)
	testutils.CreateTestEquipment(db, "EXC-001", "3180.5")
	testutils.CreateTestMaintenance(db, "EXC-001", "3000", "3250", "3180.5")

	router := gin.New()
	router.POST("/mantenimiento", maintenanceAPI.CreateMaintenance)

	w := doJSON(router, "POST", "/mantenimiento", gin.H{"equipment_code": "EXC-001"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterServiceEndpoint(t *testing.T) {
	db, repo, history := newTestServices(t)
	maintenanceAPI := NewMaintenanceAPI(repo, history)
	testutils.CreateTestEquipment(db, "CF-002", "7420")
	testutils.CreateTestMaintenance(db, "CF-002", "7150", "7400", "7420")

	router := gin.New()
	router.POST("/mantenimiento/:code/servicio", maintenanceAPI.RegisterService)

	w := doJSON(router, "POST", "/mantenimiento/CF-002/servicio", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var record models.Maintenance
	db.Where("equipment_code = ?", "CF-002").First(&record)
	assert.True(t, record.HoursLastService.Equal(decimal.NewFromInt(7420)))
	assert.True(t, record.HoursNextDue.Equal(decimal.NewFromInt(7670)))
	assert.Equal(t, models.AlertInOrder, record.AlertState())
}

func TestRegisterServiceUnknownUnit(t *testing.T) {
	_, repo, history := newTestServices(t)
	maintenanceAPI := NewMaintenanceAPI(repo, history)

	router := gin.New()
	router.POST("/mantenimiento/:code/servicio", maintenanceAPI.RegisterService)

	w := doJSON(router, "POST", "/mantenimiento/EXC-404/servicio", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
