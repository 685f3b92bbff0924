package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsolidatePurchaseList(t *testing.T) {
	kits := []FilterKit{
		{
			EquipmentCode: "EXC-001",
			Separator:     FilterSlot{PartNumber: "326-1644", Quantity: 1},
			Oil:           FilterSlot{PartNumber: "1R-0751", Quantity: 2},
			AirPrimary:    FilterSlot{PartNumber: "6I-2501", Quantity: 1},
		},
		{
			EquipmentCode: "CF-002",
			Oil:           FilterSlot{PartNumber: "1R-0751", Quantity: 1},
			AirPrimary:    FilterSlot{PartNumber: "6I-2501", Quantity: 1},
		},
	}

	lines := ConsolidatePurchaseList(kits)

	assert.Len(t, lines, 3)

	// El orden es el de inserción: la primera parte encontrada sale primero
	assert.Equal(t, "326-1644", lines[0].PartNumber)
	assert.Equal(t, 1, lines[0].Quantity)

	// Mismas partes de distintas unidades se funden sumando cantidades
	assert.Equal(t, "1R-0751", lines[1].PartNumber)
	assert.Equal(t, 3, lines[1].Quantity)
	assert.Equal(t, []string{"EXC-001", "CF-002"}, lines[1].Equipment)

	assert.Equal(t, "6I-2501", lines[2].PartNumber)
	assert.Equal(t, 2, lines[2].Quantity)
}

func TestConsolidatePurchaseListDefaultsQuantity(t *testing.T) {
	// Cantidad vacía o cero cuenta como 1
	kits := []FilterKit{
		{
			EquipmentCode: "VOL-003",
			Fuel:          FilterSlot{PartNumber: "21879886"},
			Oil:           FilterSlot{PartNumber: "21707132", Quantity: 0},
		},
	}

	lines := ConsolidatePurchaseList(kits)

	assert.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestConsolidatePurchaseListSkipsEmptySlots(t *testing.T) {
	kits := []FilterKit{
		{
			EquipmentCode: "RDL-004",
			Oil:           FilterSlot{PartNumber: "P550367", Quantity: 1},
			// El resto de posiciones sin número de parte no generan líneas
		},
	}

	lines := ConsolidatePurchaseList(kits)
	assert.Len(t, lines, 1)
	assert.Equal(t, "P550367", lines[0].PartNumber)
}

func TestSlotsCoversAllPositions(t *testing.T) {
	kit := FilterKit{
		Separator:    FilterSlot{PartNumber: "a"},
		Fuel:         FilterSlot{PartNumber: "b"},
		Fuel2:        FilterSlot{PartNumber: "c"},
		Oil:          FilterSlot{PartNumber: "d"},
		Oil2:         FilterSlot{PartNumber: "e"},
		AirPrimary:   FilterSlot{PartNumber: "f"},
		AirSecondary: FilterSlot{PartNumber: "g"},
	}

	assert.Len(t, kit.Slots(), 7)
}
