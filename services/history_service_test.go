package services

import (
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryRecordAndList(t *testing.T) {
	db := setupRepoTestDB(t)
	hs := NewHistoryService(db, log.New(io.Discard, "", 0))

	err := hs.Record(HistoryEntry{
		TableName: "equipment",
		Action:    HistoryActionCreate,
		RecordID:  1,
		NewValues: map[string]string{"code": "EXC-001"},
		Username:  "jramos",
		IPAddress: "10.0.0.5",
	})
	assert.NoError(t, err)

	err = hs.Record(HistoryEntry{
		TableName: "fuel_movements",
		Action:    HistoryActionDelete,
		RecordID:  7,
		Username:  "admin",
	})
	assert.NoError(t, err)

	all, err := hs.List(HistoryFilters{})
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	// Filtro por tabla
	byTable, err := hs.List(HistoryFilters{TableName: "equipment"})
	assert.NoError(t, err)
	assert.Len(t, byTable, 1)
	assert.Equal(t, "equipment", byTable[0].Table)
	assert.Equal(t, "jramos", byTable[0].Username)
	assert.Contains(t, byTable[0].NewValues, "EXC-001")

	// Filtro por acción
	byAction, err := hs.List(HistoryFilters{Action: HistoryActionDelete})
	assert.NoError(t, err)
	assert.Len(t, byAction, 1)
	assert.Equal(t, uint(7), byAction[0].RecordID)
}

func TestHistoryListLimit(t *testing.T) {
	db := setupRepoTestDB(t)
	hs := NewHistoryService(db, log.New(io.Discard, "", 0))

	for i := 0; i < 5; i++ {
		hs.Record(HistoryEntry{TableName: "equipment", Action: HistoryActionUpdate, RecordID: uint(i + 1)})
	}

	limited, err := hs.List(HistoryFilters{Limit: 3})
	assert.NoError(t, err)
	assert.Len(t, limited, 3)
}

func TestHistoryNoopWithoutDatabase(t *testing.T) {
	hs := NewHistoryService(nil, log.New(io.Discard, "", 0))

	// En modo demo el historial no escribe ni falla
	assert.NoError(t, hs.Record(HistoryEntry{TableName: "equipment", Action: HistoryActionCreate}))

	entries, err := hs.List(HistoryFilters{})
	assert.NoError(t, err)
	assert.Empty(t, entries)
}
