package models

import (
	"time"

	"gorm.io/gorm"
)

// Estados laborales de un operador
const (
	OperatorStatusActive   = "ACTIVO"
	OperatorStatusInactive = "INACTIVO"
	OperatorStatusVacation = "VACACIONES"
	OperatorStatusLeave    = "LICENCIA"
)

// OperatorDocument es una referencia a un documento subido del operador,
// con su propio seguimiento de vencimiento cuando aplica
type OperatorDocument struct {
	FileURL   string     `json:"file_url" gorm:"type:varchar(255)"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// Operator representa a un operador de maquinaria con sus datos personales,
// de licencia y hasta cuatro documentos adjuntos (DNI, licencia, CV y
// examen médico)
type Operator struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	// Datos personales
	FirstName string `json:"first_name" gorm:"not null;type:varchar(100)"`
	LastName  string `json:"last_name" gorm:"not null;type:varchar(100)"`
	DNI       string `json:"dni" gorm:"uniqueIndex;not null;type:varchar(15)"`
	Phone     string `json:"phone" gorm:"type:varchar(20)"`
	Email     string `json:"email" gorm:"type:varchar(100)"`
	Address   string `json:"address" gorm:"type:varchar(200)"`
	BirthDate *time.Time `json:"birth_date"`

	// Licencia de conducir
	LicenseNumber   string     `json:"license_number" gorm:"type:varchar(20)"`
	LicenseCategory string     `json:"license_category" gorm:"type:varchar(10)"` // A-IIIb, A-IIIc, etc.
	LicenseExpires  *time.Time `json:"license_expires"`

	// Situación laboral
	Status   string     `json:"status" gorm:"type:varchar(20);default:'ACTIVO';index"`
	HiredAt  *time.Time `json:"hired_at"`
	Assigned string     `json:"assigned" gorm:"type:varchar(100)"` // Unidad o frente asignado

	// Documentos adjuntos
	DocDNI     OperatorDocument `json:"doc_dni" gorm:"embedded;embeddedPrefix:doc_dni_"`
	DocLicense OperatorDocument `json:"doc_license" gorm:"embedded;embeddedPrefix:doc_license_"`
	DocCV      OperatorDocument `json:"doc_cv" gorm:"embedded;embeddedPrefix:doc_cv_"`
	DocMedical OperatorDocument `json:"doc_medical" gorm:"embedded;embeddedPrefix:doc_medical_"`
}

// TableName define el nombre de la tabla para el modelo Operator
func (Operator) TableName() string {
	return "operators"
}

// FullName devuelve el nombre completo del operador
func (o *Operator) FullName() string {
	return o.FirstName + " " + o.LastName
}

// ExpiringDocument es un documento del operador próximo a vencer
type ExpiringDocument struct {
	Label  string         `json:"label"`
	Status DocumentStatus `json:"status"`
}

// ExpiringDocumentsAt clasifica los documentos del operador que llevan fecha
// de vencimiento usando las mismas reglas de semaforización que SOAT/CITV.
// Los documentos EN REGLA no se incluyen.
func (o *Operator) ExpiringDocumentsAt(today time.Time) []ExpiringDocument {
	type dated struct {
		label string
		when  *time.Time
	}
	candidates := []dated{
		{"Licencia de conducir", o.LicenseExpires},
		{"DNI", o.DocDNI.ExpiresAt},
		{"Licencia (adjunto)", o.DocLicense.ExpiresAt},
		{"Examen médico", o.DocMedical.ExpiresAt},
	}

	var expiring []ExpiringDocument
	for _, c := range candidates {
		if c.when == nil {
			continue
		}
		doc := Document{ExpiresAt: *c.when}
		status := doc.StatusAt(today)
		if status.Action == DocActionInOrder {
			continue
		}
		expiring = append(expiring, ExpiringDocument{Label: c.label, Status: status})
	}
	return expiring
}
