package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Estados de alerta de mantenimiento
const (
	AlertOverdue  = "VENCIDO"
	AlertUrgent   = "URGENTE"
	AlertUpcoming = "PROXIMO"
	AlertInOrder  = "EN REGLA"
)

// Tipos de mantenimiento
const (
	MaintenancePreventive = "PREVENTIVO"
	MaintenanceCorrective = "CORRECTIVO"
)

// PreventiveIntervalHours es el intervalo fijo entre servicios preventivos.
// Política de la empresa: 250 horas para toda la flota, no configurable
// por tipo de equipo.
const PreventiveIntervalHours = 250

// Umbrales de alerta en horas restantes
const (
	AlertThresholdUrgent   = 50
	AlertThresholdUpcoming = 100
)

// Maintenance representa el programa de mantenimiento de una unidad
type Maintenance struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	EquipmentCode string `json:"equipment_code" gorm:"uniqueIndex;not null;type:varchar(50)"`

	// Lecturas del horómetro
	HoursLastService decimal.Decimal `json:"hours_last_service" gorm:"type:decimal(12,1);default:0"` // Lectura del último servicio
	HoursNextDue     decimal.Decimal `json:"hours_next_due" gorm:"type:decimal(12,1);default:0"`     // Lectura programada del próximo servicio
	HoursCurrent     decimal.Decimal `json:"hours_current" gorm:"type:decimal(12,1);default:0"`      // Lectura actual

	Type     string `json:"type" gorm:"type:varchar(20);default:'PREVENTIVO'"`
	Operator string `json:"operator" gorm:"type:varchar(100)"`
	Location string `json:"location" gorm:"type:varchar(100)"`

	Notes string `json:"notes" gorm:"type:text"`
}

// TableName define el nombre de la tabla para el modelo Maintenance
func (Maintenance) TableName() string {
	return "maintenance_records"
}

// ClassifyMaintenance clasifica las horas restantes hasta el próximo servicio.
// Las reglas se evalúan en orden y gana la primera que coincide:
// restante <= 0 es VENCIDO (a diferencia de los documentos, el cero cuenta
// como vencido), <= 50 URGENTE, <= 100 PROXIMO, el resto EN REGLA.
func ClassifyMaintenance(remaining decimal.Decimal) string {
	switch {
	case remaining.LessThanOrEqual(decimal.Zero):
		return AlertOverdue
	case remaining.LessThanOrEqual(decimal.NewFromInt(AlertThresholdUrgent)):
		return AlertUrgent
	case remaining.LessThanOrEqual(decimal.NewFromInt(AlertThresholdUpcoming)):
		return AlertUpcoming
	default:
		return AlertInOrder
	}
}

// HoursRemaining calcula las horas que faltan para el próximo servicio.
// Puede ser negativo si el servicio ya venció.
func (m *Maintenance) HoursRemaining() decimal.Decimal {
	return m.HoursNextDue.Sub(m.HoursCurrent)
}

// AlertState devuelve el estado de alerta derivado. Nunca se persiste:
// se recalcula en cada consulta a partir de las lecturas del horómetro.
func (m *Maintenance) AlertState() string {
	return ClassifyMaintenance(m.HoursRemaining())
}

// RegisterService registra un servicio realizado con la lectura actual:
// el último servicio pasa a ser la lectura actual y el próximo se programa
// a 250 horas, con lo que el estado vuelve a EN REGLA.
func (m *Maintenance) RegisterService() {
	m.HoursLastService = m.HoursCurrent
	m.HoursNextDue = m.HoursCurrent.Add(decimal.NewFromInt(PreventiveIntervalHours))
}
