package database

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"
)

// DatabaseIndex describe un índice de la base de datos
type DatabaseIndex struct {
	Name    string
	Table   string
	Columns []string
	Unique  bool
}

// PerformanceIndexes son los índices que aceleran los tableros del panel
var PerformanceIndexes = []DatabaseIndex{
	// Inventario de equipos
	{Name: "idx_equipment_status", Table: "equipment", Columns: []string{"status"}},
	{Name: "idx_equipment_type_status", Table: "equipment", Columns: []string{"type", "status"}},
	{Name: "idx_equipment_company", Table: "equipment", Columns: []string{"company"}},
	{Name: "idx_equipment_deleted", Table: "equipment", Columns: []string{"deleted_at"}},

	// Mantenimiento: el tablero de alertas ordena por horas restantes
	{Name: "idx_maintenance_equipment", Table: "maintenance_records", Columns: []string{"equipment_code"}, Unique: true},
	{Name: "idx_maintenance_next_due", Table: "maintenance_records", Columns: []string{"hours_next_due"}},

	// Documentos: el tablero de vencimientos filtra por tipo y ordena por fecha
	{Name: "idx_documents_equipment_kind", Table: "documents", Columns: []string{"equipment_code", "kind"}},
	{Name: "idx_documents_expires", Table: "documents", Columns: []string{"expires_at"}},

	// Libro de combustible
	{Name: "idx_fuel_kind_date", Table: "fuel_movements", Columns: []string{"kind", "date"}},
	{Name: "idx_fuel_equipment", Table: "fuel_movements", Columns: []string{"equipment_code"}},

	// Operadores
	{Name: "idx_operators_status", Table: "operators", Columns: []string{"status"}},
	{Name: "idx_operators_license_expires", Table: "operators", Columns: []string{"license_expires"}},

	// Historial de cambios
	{Name: "idx_history_table_record", Table: "change_history", Columns: []string{"table_name", "record_id"}},
	{Name: "idx_history_created", Table: "change_history", Columns: []string{"created_at"}},
}

// CreatePerformanceIndexes crea los índices de rendimiento
func CreatePerformanceIndexes(db *gorm.DB) error {
	log.Printf("Creando índices de rendimiento...")

	for _, index := range PerformanceIndexes {
		if err := CreateIndex(db, index); err != nil {
			log.Printf("No se pudo crear el índice %s: %v", index.Name, err)
			// Seguimos con el resto aunque uno falle
			continue
		}
	}

	log.Printf("Índices de rendimiento creados")
	return nil
}

// CreateIndex crea un índice individual
func CreateIndex(db *gorm.DB, index DatabaseIndex) error {
	uniqueStr := ""
	if index.Unique {
		uniqueStr = "UNIQUE "
	}

	sql := fmt.Sprintf("CREATE %sINDEX IF NOT EXISTS %s ON %s (%s)",
		uniqueStr, index.Name, index.Table, strings.Join(index.Columns, ", "))

	return db.Exec(sql).Error
}
