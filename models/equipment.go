package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Estados operativos de una máquina
const (
	EquipmentStatusOperational   = "OPERATIVO"
	EquipmentStatusInMaintenance = "EN MANTENIMIENTO"
	EquipmentStatusInoperative   = "INOPERATIVO"
	EquipmentStatusRented        = "ALQUILADO"
)

// Equipment representa una unidad de maquinaria pesada del inventario
type Equipment struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	// Identificación de la unidad
	Code         string `json:"code" gorm:"uniqueIndex;not null;type:varchar(50)"` // Código interno, ej: EXC-001
	SerialNumber string `json:"serial_number" gorm:"type:varchar(100)"`
	Type         string `json:"type" gorm:"not null;type:varchar(50);index"` // Excavadora, Cargador, Volquete, etc.
	Brand        string `json:"brand" gorm:"type:varchar(50)"`
	Model        string `json:"model" gorm:"type:varchar(100)"`
	Year         int    `json:"year"`

	// Asignación
	Company  string `json:"company" gorm:"type:varchar(100);index"`
	Operator string `json:"operator" gorm:"type:varchar(100)"`
	Location string `json:"location" gorm:"type:varchar(100)"`

	// Estado operativo y horómetro acumulado
	Status       string          `json:"status" gorm:"type:varchar(30);default:'OPERATIVO';index"`
	HoursCurrent decimal.Decimal `json:"hours_current" gorm:"type:decimal(12,1);default:0"`

	// Relaciones
	Maintenance *Maintenance `json:"maintenance,omitempty" gorm:"foreignKey:EquipmentCode;references:Code"`
	Documents   []Document   `json:"documents,omitempty" gorm:"foreignKey:EquipmentCode;references:Code"`
	FilterKit   *FilterKit   `json:"filter_kit,omitempty" gorm:"foreignKey:EquipmentCode;references:Code"`
}

// TableName define el nombre de la tabla para el modelo Equipment
func (Equipment) TableName() string {
	return "equipment"
}

// IsOperational indica si la unidad está disponible para trabajar
func (e *Equipment) IsOperational() bool {
	return e.Status == EquipmentStatusOperational
}
