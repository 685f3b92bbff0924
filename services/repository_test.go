package services

import (
	"testing"

	"backend_maquinaria/models"

	"github.com/stretchr/testify/assert"
)

func TestRepositoryDemoMode(t *testing.T) {
	repo := NewRepository(nil)

	assert.True(t, repo.DemoMode())

	_, err := repo.DB()
	assert.ErrorIs(t, err, ErrDemoMode)
}

func TestDemoEquipmentServed(t *testing.T) {
	repo := NewRepository(nil)

	equipment, err := repo.ListEquipment(EquipmentFilters{})
	assert.NoError(t, err)
	assert.Len(t, equipment, 4)
	assert.Equal(t, "EXC-001", equipment[0].Code)
}

func TestDemoEquipmentFilters(t *testing.T) {
	repo := NewRepository(nil)

	byType, err := repo.ListEquipment(EquipmentFilters{Type: "Volquete"})
	assert.NoError(t, err)
	assert.Len(t, byType, 1)
	assert.Equal(t, "VOL-003", byType[0].Code)

	byStatus, err := repo.ListEquipment(EquipmentFilters{Status: models.EquipmentStatusRented})
	assert.NoError(t, err)
	assert.Len(t, byStatus, 1)
	assert.Equal(t, "RDL-004", byStatus[0].Code)
}

func TestDemoEquipmentSearch(t *testing.T) {
	repo := NewRepository(nil)

	// La búsqueda demo cubre las mismas columnas que el ILIKE con base
	// de datos: código, serie, marca y modelo, sin distinguir mayúsculas
	byBrand, err := repo.ListEquipment(EquipmentFilters{Search: "caterpillar"})
	assert.NoError(t, err)
	assert.Len(t, byBrand, 1)
	assert.Equal(t, "EXC-001", byBrand[0].Code)

	byModel, err := repo.ListEquipment(EquipmentFilters{Search: "wa450"})
	assert.NoError(t, err)
	assert.Len(t, byModel, 1)
	assert.Equal(t, "CF-002", byModel[0].Code)

	none, err := repo.ListEquipment(EquipmentFilters{Search: "scania"})
	assert.NoError(t, err)
	assert.Empty(t, none)
}

func TestDemoMaintenanceHasOverdueUnit(t *testing.T) {
	repo := NewRepository(nil)

	records, err := repo.ListMaintenance()
	assert.NoError(t, err)
	assert.Len(t, records, 4)

	states := make(map[string]string)
	for i := range records {
		states[records[i].EquipmentCode] = records[i].AlertState()
	}
	// CF-002 está pasada 20 horas del próximo servicio
	assert.Equal(t, models.AlertOverdue, states["CF-002"])
	assert.Equal(t, models.AlertUrgent, states["RDL-004"])
}

func TestDemoDocumentsByKind(t *testing.T) {
	repo := NewRepository(nil)

	all, err := repo.ListDocuments("")
	assert.NoError(t, err)
	assert.Len(t, all, 5)

	soat, err := repo.ListDocuments(models.DocumentKindSOAT)
	assert.NoError(t, err)
	assert.Len(t, soat, 3)
	for i := range soat {
		assert.Equal(t, models.DocumentKindSOAT, soat[i].Kind)
	}
}

func TestDemoFilterKitsByCodes(t *testing.T) {
	repo := NewRepository(nil)

	all, err := repo.ListFilterKits(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, all)

	subset, err := repo.ListFilterKits([]string{"EXC-001"})
	assert.NoError(t, err)
	assert.Len(t, subset, 1)
	assert.Equal(t, "EXC-001", subset[0].EquipmentCode)
}

func TestDemoOperatorsByStatus(t *testing.T) {
	repo := NewRepository(nil)

	active, err := repo.ListOperators(models.OperatorStatusActive)
	assert.NoError(t, err)
	for i := range active {
		assert.Equal(t, models.OperatorStatusActive, active[i].Status)
	}
}

func TestRepositoryWithLiveDatabase(t *testing.T) {
	// Con una conexión real el repositorio deja el modo demo
	db := setupRepoTestDB(t)
	repo := NewRepository(db)

	assert.False(t, repo.DemoMode())

	gotDB, err := repo.DB()
	assert.NoError(t, err)
	assert.NotNil(t, gotDB)

	db.Create(&models.Equipment{Code: "EXC-900", Type: "Excavadora", Status: models.EquipmentStatusOperational})

	equipment, err := repo.ListEquipment(EquipmentFilters{})
	assert.NoError(t, err)
	assert.Len(t, equipment, 1)
	assert.Equal(t, "EXC-900", equipment[0].Code)
}
