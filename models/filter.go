package models

import (
	"time"

	"gorm.io/gorm"
)

// FilterSlot es una posición del kit de filtros: número de parte y cantidad.
// La cantidad vacía se interpreta como 1 al consolidar.
type FilterSlot struct {
	PartNumber string `json:"part_number" gorm:"type:varchar(50)"`
	Quantity   int    `json:"quantity"`
}

// FilterKit es el catálogo de filtros de una unidad: hasta siete posiciones
// (separador, combustible, aceite, aire primario/secundario y dos repetidos)
type FilterKit struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	EquipmentCode string `json:"equipment_code" gorm:"uniqueIndex;not null;type:varchar(50)"`

	Separator    FilterSlot `json:"separator" gorm:"embedded;embeddedPrefix:separator_"`
	Fuel         FilterSlot `json:"fuel" gorm:"embedded;embeddedPrefix:fuel_"`
	Fuel2        FilterSlot `json:"fuel2" gorm:"embedded;embeddedPrefix:fuel2_"`
	Oil          FilterSlot `json:"oil" gorm:"embedded;embeddedPrefix:oil_"`
	Oil2         FilterSlot `json:"oil2" gorm:"embedded;embeddedPrefix:oil2_"`
	AirPrimary   FilterSlot `json:"air_primary" gorm:"embedded;embeddedPrefix:air_primary_"`
	AirSecondary FilterSlot `json:"air_secondary" gorm:"embedded;embeddedPrefix:air_secondary_"`
}

// TableName define el nombre de la tabla para el modelo FilterKit
func (FilterKit) TableName() string {
	return "filter_kits"
}

// Slots devuelve las siete posiciones en orden fijo
func (fk *FilterKit) Slots() []FilterSlot {
	return []FilterSlot{
		fk.Separator,
		fk.Fuel,
		fk.Fuel2,
		fk.Oil,
		fk.Oil2,
		fk.AirPrimary,
		fk.AirSecondary,
	}
}

// PurchaseLine es una línea de la lista consolidada de compra
type PurchaseLine struct {
	PartNumber string   `json:"part_number"`
	Quantity   int      `json:"quantity"`
	Equipment  []string `json:"equipment"` // Códigos de las unidades que usan la parte
}

// ConsolidatePurchaseList acumula cantidades por número de parte sobre los
// kits seleccionados. Dos unidades con la misma parte se funden en una sola
// línea con la cantidad sumada. El orden de salida es el de inserción:
// la primera parte encontrada sale primero.
func ConsolidatePurchaseList(kits []FilterKit) []PurchaseLine {
	index := make(map[string]int)
	lines := make([]PurchaseLine, 0)

	for _, kit := range kits {
		for _, slot := range kit.Slots() {
			if slot.PartNumber == "" {
				continue
			}
			qty := slot.Quantity
			if qty <= 0 {
				qty = 1
			}
			if i, ok := index[slot.PartNumber]; ok {
				lines[i].Quantity += qty
				lines[i].Equipment = appendUnique(lines[i].Equipment, kit.EquipmentCode)
				continue
			}
			index[slot.PartNumber] = len(lines)
			lines = append(lines, PurchaseLine{
				PartNumber: slot.PartNumber,
				Quantity:   qty,
				Equipment:  []string{kit.EquipmentCode},
			})
		}
	}

	return lines
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}
