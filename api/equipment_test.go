package api

import (
	"net/http"
	"testing"

	"backend_maquinaria/models"
	"backend_maquinaria/services"
	"backend_maquinaria/testutils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCreateEquipment(t *testing.T) {
	db, repo, history := newTestServices(t)
	equipmentAPI := NewEquipmentAPI(repo, history)

	router := gin.New()
	router.POST("/equipos", equipmentAPI.CreateEquipment)

	w := doJSON(router, "POST", "/equipos", gin.H{
		"code":  "exc-010",
		"type":  "Excavadora",
		"brand": "Caterpillar",
		"model": "336",
		"year":  2023,
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	response := parseBody(t, w)
	assert.Equal(t, "success", response["status"])
	assert.Equal(t, false, response["demo_mode"])

	// El código se normaliza a mayúsculas y el estado queda OPERATIVO
	var created models.Equipment
	assert.NoError(t, db.Where("code = ?", "EXC-010").First(&created).Error)
	assert.Equal(t, models.EquipmentStatusOperational, created.Status)
}

func TestCreateEquipmentDuplicateCode(t *testing.T) {
	db, repo, history := newTestServices(t)
	equipmentAPI := NewEquipmentAPI(repo, history)
	testutils.CreateTestEquipment(db, "EXC-001", "100")

	router := gin.New()
	router.POST("/equipos", equipmentAPI.CreateEquipment)

	w := doJSON(router, "POST", "/equipos", gin.H{"code": "EXC-001", "type": "Excavadora"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateEquipmentMissingFields(t *testing.T) {
	_, repo, history := newTestServices(t)
	equipmentAPI := NewEquipmentAPI(repo, history)

	router := gin.New()
	router.POST("/equipos", equipmentAPI.CreateEquipment)

	w := doJSON(router, "POST", "/equipos", gin.H{"brand": "Caterpillar"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetEquipmentList(t *testing.T) {
	db, repo, history := newTestServices(t)
	equipmentAPI := NewEquipmentAPI(repo, history)
	testutils.CreateTestEquipment(db, "EXC-001", "3180.5")
	testutils.CreateTestEquipment(db, "VOL-003", "1890")

	router := gin.New()
	router.GET("/equipos", equipmentAPI.GetEquipmentList)

	w := doJSON(router, "GET", "/equipos", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	response := parseBody(t, w)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total"])
}

func TestUpdateHourMeterPropagatesToMaintenance(t *testing.T) {
	db, repo, history := newTestServices(t)
	equipmentAPI := NewEquipmentAPI(repo, history)
	testutils.CreateTestEquipment(db, "EXC-001", "3180.5")
	testutils.CreateTestMaintenance(db, "EXC-001", "3000", "3250", "3180.5")

	router := gin.New()
	router.PUT("/equipos/horometro/:code", equipmentAPI.UpdateHourMeter)

	w := doJSON(router, "PUT", "/equipos/horometro/EXC-001", gin.H{"hours": "3255"})
	assert.Equal(t, http.StatusOK, w.Code)

	// Las dos tablas quedan con la misma lectura
	var equipment models.Equipment
	db.Where("code = ?", "EXC-001").First(&equipment)
	assert.True(t, equipment.HoursCurrent.Equal(decimal.NewFromInt(3255)))

	var record models.Maintenance
	db.Where("equipment_code = ?", "EXC-001").First(&record)
	assert.True(t, record.HoursCurrent.Equal(decimal.NewFromInt(3255)))
	assert.Equal(t, models.AlertOverdue, record.AlertState())
}

func TestUpdateHourMeterRejectsLowerReading(t *testing.T) {
	db, repo, history := newTestServices(t)
	equipmentAPI := NewEquipmentAPI(repo, history)
	testutils.CreateTestEquipment(db, "EXC-001", "3180.5")

	router := gin.New()
	router.PUT("/equipos/horometro/:code", equipmentAPI.UpdateHourMeter)

	w := doJSON(router, "PUT", "/equipos/horometro/EXC-001", gin.H{"hours": "3000"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMutationsRejectedInDemoMode(t *testing.T) {
	repo, history := newDemoServices(t)
	equipmentAPI := NewEquipmentAPI(repo, history)

	router := gin.New()
	router.POST("/equipos", equipmentAPI.CreateEquipment)

	w := doJSON(router, "POST", "/equipos", gin.H{"code": "EXC-010", "type": "Excavadora"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	response := parseBody(t, w)
	assert.Equal(t, true, response["demo_mode"])
}

func TestGetEquipmentListInDemoMode(t *testing.T) {
	repo, history := newDemoServices(t)
	equipmentAPI := NewEquipmentAPI(repo, history)

	router := gin.New()
	router.GET("/equipos", equipmentAPI.GetEquipmentList)

	w := doJSON(router, "GET", "/equipos", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Las lecturas sirven los datos de muestra con la bandera demo_mode
	response := parseBody(t, w)
	assert.Equal(t, true, response["demo_mode"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(4), data["total"])
}

func TestHistoryRecordedOnCreate(t *testing.T) {
	_, repo, history := newTestServices(t)
	equipmentAPI := NewEquipmentAPI(repo, history)

	router := gin.New()
	router.POST("/equipos", equipmentAPI.CreateEquipment)

	doJSON(router, "POST", "/equipos", gin.H{"code": "EXC-020", "type": "Excavadora"})

	entries, err := history.List(services.HistoryFilters{TableName: "equipment"})
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, services.HistoryActionCreate, entries[0].Action)
}
