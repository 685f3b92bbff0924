package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSummarizeFuel(t *testing.T) {
	movements := []FuelMovement{
		{Kind: FuelKindInflow, Gallons: dec("500"), PricePerGallon: dec("15.90")},
		{Kind: FuelKindInflow, Gallons: dec("1000"), PricePerGallon: dec("15.50")},
		{Kind: FuelKindOutflow, Gallons: dec("45"), EquipmentCode: "EXC-001"},
		{Kind: FuelKindOutflow, Gallons: dec("80"), EquipmentCode: "CF-002"},
		{Kind: FuelKindOutflow, Gallons: dec("35"), EquipmentCode: "VOL-003"},
	}

	summary := SummarizeFuel(movements)

	assert.True(t, summary.TotalInflow.Equal(dec("1500")), "ingresos: %s", summary.TotalInflow)
	assert.True(t, summary.TotalOutflow.Equal(dec("160")), "salidas: %s", summary.TotalOutflow)
	assert.True(t, summary.TankStock.Equal(dec("1340")), "stock: %s", summary.TankStock)
	// 500*15.90 + 1000*15.50 = 7950 + 15500
	assert.True(t, summary.TotalSpent.Equal(dec("23450.00")), "gasto: %s", summary.TotalSpent)
	assert.Equal(t, 5, summary.Movements)
}

func TestSummarizeFuelNegativeStock(t *testing.T) {
	// El stock puede quedar negativo si faltan ingresos por registrar:
	// se muestra tal cual, sin recortar a cero
	movements := []FuelMovement{
		{Kind: FuelKindInflow, Gallons: dec("100"), PricePerGallon: dec("15.00")},
		{Kind: FuelKindOutflow, Gallons: dec("150"), EquipmentCode: "EXC-001"},
	}

	summary := SummarizeFuel(movements)
	assert.True(t, summary.TankStock.Equal(dec("-50")))
}

func TestSummarizeFuelEmpty(t *testing.T) {
	summary := SummarizeFuel(nil)
	assert.True(t, summary.TankStock.IsZero())
	assert.True(t, summary.TotalSpent.IsZero())
	assert.Equal(t, 0, summary.Movements)
}

func TestFuelMovementTotal(t *testing.T) {
	inflow := FuelMovement{Kind: FuelKindInflow, Gallons: dec("500"), PricePerGallon: dec("15.90")}
	assert.True(t, inflow.Total().Equal(dec("7950.00")))

	// Las salidas no llevan importe aunque traigan precio por error
	outflow := FuelMovement{Kind: FuelKindOutflow, Gallons: dec("45"), PricePerGallon: dec("15.90")}
	assert.True(t, outflow.Total().IsZero())
}
