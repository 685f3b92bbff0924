package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Tipos de movimiento del libro de combustible
const (
	FuelKindInflow  = "INGRESO" // Recarga del tanque
	FuelKindOutflow = "SALIDA"  // Despacho a una unidad
)

// FuelMovement es un asiento del libro de combustible. El stock del tanque
// no se persiste: es un agregado derivado sobre el libro completo.
type FuelMovement struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	Kind    string    `json:"kind" gorm:"not null;type:varchar(10);index"`
	Date    time.Time `json:"date" gorm:"not null;index"`
	Gallons decimal.Decimal `json:"gallons" gorm:"type:decimal(12,2);not null"`

	// Solo para INGRESO
	PricePerGallon decimal.Decimal `json:"price_per_gallon" gorm:"type:decimal(12,2);default:0"`
	Supplier       string          `json:"supplier" gorm:"type:varchar(100)"`
	InvoiceNumber  string          `json:"invoice_number" gorm:"type:varchar(50)"`

	// Solo para SALIDA
	EquipmentCode string          `json:"equipment_code" gorm:"type:varchar(50);index"`
	HourReading   decimal.Decimal `json:"hour_reading" gorm:"type:decimal(12,1);default:0"`
	Operator      string          `json:"operator" gorm:"type:varchar(100)"`

	Notes string `json:"notes" gorm:"type:text"`
}

// TableName define el nombre de la tabla para el modelo FuelMovement
func (FuelMovement) TableName() string {
	return "fuel_movements"
}

// Total calcula el importe del asiento: galones por precio. Solo tiene
// sentido para INGRESO; las salidas no llevan precio.
func (fm *FuelMovement) Total() decimal.Decimal {
	if fm.Kind != FuelKindInflow {
		return decimal.Zero
	}
	return fm.Gallons.Mul(fm.PricePerGallon)
}

// FuelSummary son los agregados derivados sobre el libro visible
type FuelSummary struct {
	TotalInflow  decimal.Decimal `json:"total_inflow"`
	TotalOutflow decimal.Decimal `json:"total_outflow"`
	TankStock    decimal.Decimal `json:"tank_stock"`
	TotalSpent   decimal.Decimal `json:"total_spent"`
	Movements    int             `json:"movements"`
}

// SummarizeFuel recorre el libro y acumula los agregados. El stock no se
// recorta a cero: puede quedar negativo si se registran salidas sin sus
// ingresos correspondientes, y el sistema lo acepta tal cual.
func SummarizeFuel(movements []FuelMovement) FuelSummary {
	summary := FuelSummary{
		TotalInflow:  decimal.Zero,
		TotalOutflow: decimal.Zero,
		TotalSpent:   decimal.Zero,
		Movements:    len(movements),
	}

	for _, m := range movements {
		switch m.Kind {
		case FuelKindInflow:
			summary.TotalInflow = summary.TotalInflow.Add(m.Gallons)
			summary.TotalSpent = summary.TotalSpent.Add(m.Gallons.Mul(m.PricePerGallon))
		case FuelKindOutflow:
			summary.TotalOutflow = summary.TotalOutflow.Add(m.Gallons)
		}
	}

	summary.TankStock = summary.TotalInflow.Sub(summary.TotalOutflow)
	return summary
}
