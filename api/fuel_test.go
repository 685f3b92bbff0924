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

func TestCreateFuelInflow(t *testing.T) {
	db, repo, history := newTestServices(t)
	fuelAPI := NewFuelAPI(repo, history)

	router := gin.New()
	router.POST("/combustible", fuelAPI.CreateFuelMovement)

	w := doJSON(router, "POST", "/combustible", gin.H{
		"kind":             "INGRESO",
		"gallons":          "500",
		"price_per_gallon": "15.90",
		"supplier":         "Grifo San Martín",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var movement models.FuelMovement
	assert.NoError(t, db.First(&movement).Error)
	assert.Equal(t, models.FuelKindInflow, movement.Kind)
	assert.True(t, movement.Total().Equal(decimal.RequireFromString("7950.00")))
}

func TestCreateFuelOutflowRequiresEquipment(t *testing.T) {
	_, repo, history := newTestServices(t)
	fuelAPI := NewFuelAPI(repo, history)

	router := gin.New()
	router.POST("/combustible", fuelAPI.CreateFuelMovement)

	// Sin código de unidad
	w := doJSON(router, "POST", "/combustible", gin.H{"kind": "SALIDA", "gallons": "45"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Con unidad inexistente
	w = doJSON(router, "POST", "/combustible", gin.H{
		"kind": "SALIDA", "gallons": "45", "equipment_code": "EXC-404",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateFuelOutflowBumpsHourMeter(t *testing.T) {
	db, repo, history := newTestServices(t)
	fuelAPI := NewFuelAPI(repo, history)
	testutils.CreateTestEquipment(db, "EXC-001", "3180.5")
	testutils.CreateTestMaintenance(db, "EXC-001", "3000", "3250", "3180.5")

	router := gin.New()
	router.POST("/combustible", fuelAPI.CreateFuelMovement)

	w := doJSON(router, "POST", "/combustible", gin.H{
		"kind":              "SALIDA",
		"gallons":           "45",
		"equipment_code":    "EXC-001",
		"hour_reading":      "3195",
		"update_hour_meter": true,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// El despacho y la lectura del horómetro entran juntos
	var equipment models.Equipment
	db.Where("code = ?", "EXC-001").First(&equipment)
	assert.True(t, equipment.HoursCurrent.Equal(decimal.NewFromInt(3195)))

	var record models.Maintenance
	db.Where("equipment_code = ?", "EXC-001").First(&record)
	assert.True(t, record.HoursCurrent.Equal(decimal.NewFromInt(3195)))
}

func TestCreateFuelOutflowIgnoresStaleReading(t *testing.T) {
	db, repo, history := newTestServices(t)
	fuelAPI := NewFuelAPI(repo, history)
	testutils.CreateTestEquipment(db, "EXC-001", "3180.5")

	router := gin.New()
	router.POST("/combustible", fuelAPI.CreateFuelMovement)

	// Una lectura menor a la vigente no retrocede el horómetro
	w := doJSON(router, "POST", "/combustible", gin.H{
		"kind":              "SALIDA",
		"gallons":           "20",
		"equipment_code":    "EXC-001",
		"hour_reading":      "3000",
		"update_hour_meter": true,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var equipment models.Equipment
	db.Where("code = ?", "EXC-001").First(&equipment)
	assert.True(t, equipment.HoursCurrent.Equal(decimal.RequireFromString("3180.5")))
}

func TestGetFuelSummary(t *testing.T) {
	db, repo, history := newTestServices(t)
	fuelAPI := NewFuelAPI(repo, history)
	testutils.CreateTestEquipment(db, "EXC-001", "100")

	db.Create(&models.FuelMovement{Kind: models.FuelKindInflow, Gallons: decimal.NewFromInt(500), PricePerGallon: decimal.RequireFromString("15.90")})
	db.Create(&models.FuelMovement{Kind: models.FuelKindInflow, Gallons: decimal.NewFromInt(1000), PricePerGallon: decimal.RequireFromString("15.50")})
	db.Create(&models.FuelMovement{Kind: models.FuelKindOutflow, Gallons: decimal.NewFromInt(160), EquipmentCode: "EXC-001"})

	router := gin.New()
	router.GET("/combustible/resumen", fuelAPI.GetFuelSummary)

	w := doJSON(router, "GET", "/combustible/resumen", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := parseBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "1340", data["tank_stock"])
	assert.Equal(t, "23450.00", data["total_spent"])
}

func TestGetFuelSummaryDemoMode(t *testing.T) {
	repo, history := newDemoServices(t)
	fuelAPI := NewFuelAPI(repo, history)

	router := gin.New()
	router.GET("/combustible/resumen", fuelAPI.GetFuelSummary)

	w := doJSON(router, "GET", "/combustible/resumen", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	response := parseBody(t, w)
	assert.Equal(t, true, response["demo_mode"])

	// Los datos de muestra cuadran con el tablero conocido
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "1340", data["tank_stock"])
}
