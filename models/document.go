package models

import (
	"time"

	"gorm.io/gorm"
)

// Tipos de documento legal por unidad
const (
	DocumentKindSOAT = "SOAT"
	DocumentKindCITV = "CITV"
)

// Acciones derivadas del vencimiento de un documento
const (
	DocActionOverdue    = "VENCIDO"
	DocActionRenewWeek  = "RENOVAR ESTA SEMANA"
	DocActionRenewSoon  = "RENOVAR PRONTO"
	DocActionSchedule   = "PROGRAMAR RENOVACIÓN"
	DocActionInOrder    = "EN REGLA"
)

// Colores de la semaforización en el tablero
const (
	DocColorDarkRed = "darkred"
	DocColorRed     = "red"
	DocColorAmber   = "amber"
	DocColorBlue    = "blue"
	DocColorGreen   = "green"
)

// Umbrales en días restantes
const (
	DocThresholdWeek     = 7
	DocThresholdSoon     = 15
	DocThresholdSchedule = 30
)

// Document representa un documento legal con vencimiento (SOAT o CITV)
// asociado a una unidad por su código
type Document struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	EquipmentCode string `json:"equipment_code" gorm:"not null;type:varchar(50);index"`
	Kind          string `json:"kind" gorm:"not null;type:varchar(10);index"` // SOAT o CITV

	Insurer       string    `json:"insurer" gorm:"type:varchar(100)"` // Aseguradora o planta de revisión
	PolicyNumber  string    `json:"policy_number" gorm:"type:varchar(50)"`
	IssuedAt      time.Time `json:"issued_at"`
	ExpiresAt     time.Time `json:"expires_at" gorm:"not null;index"`
}

// TableName define el nombre de la tabla para el modelo Document
func (Document) TableName() string {
	return "documents"
}

// DocumentStatus es el estado derivado de un documento. Nunca se persiste.
type DocumentStatus struct {
	DaysRemaining int    `json:"days_remaining"`
	Action        string `json:"action"`
	Color         string `json:"color"`
}

// ClassifyExpiry clasifica los días restantes de un documento. Gana la
// primera regla que coincide. Ojo con el borde: el día 0 NO es VENCIDO
// (cae en RENOVAR ESTA SEMANA), a diferencia del mantenimiento donde el
// cero sí cuenta como vencido. La asimetría viene del producto y se
// mantiene a propósito.
func ClassifyExpiry(daysRemaining int) DocumentStatus {
	status := DocumentStatus{DaysRemaining: daysRemaining}
	switch {
	case daysRemaining < 0:
		status.Action = DocActionOverdue
		status.Color = DocColorDarkRed
	case daysRemaining <= DocThresholdWeek:
		status.Action = DocActionRenewWeek
		status.Color = DocColorRed
	case daysRemaining <= DocThresholdSoon:
		status.Action = DocActionRenewSoon
		status.Color = DocColorAmber
	case daysRemaining <= DocThresholdSchedule:
		status.Action = DocActionSchedule
		status.Color = DocColorBlue
	default:
		status.Action = DocActionInOrder
		status.Color = DocColorGreen
	}
	return status
}

// DaysRemainingAt calcula los días calendario hasta el vencimiento,
// normalizando ambas fechas a medianoche. La resta se hace en UTC para que
// un cambio de horario de verano no corra el resultado un día.
func (d *Document) DaysRemainingAt(today time.Time) int {
	expiry := time.Date(d.ExpiresAt.Year(), d.ExpiresAt.Month(), d.ExpiresAt.Day(), 0, 0, 0, 0, time.UTC)
	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(expiry.Sub(midnight).Hours() / 24)
}

// StatusAt devuelve la clasificación del documento respecto a una fecha
func (d *Document) StatusAt(today time.Time) DocumentStatus {
	return ClassifyExpiry(d.DaysRemainingAt(today))
}

// RenewalDefault propone la nueva fecha de vencimiento al renovar:
// exactamente un año calendario después de la fecha actual de vencimiento.
// El usuario puede sobreescribirla antes de guardar.
func (d *Document) RenewalDefault() time.Time {
	return d.ExpiresAt.AddDate(1, 0, 0)
}
