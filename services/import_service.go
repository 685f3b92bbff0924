package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"backend_maquinaria/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ImportService trae las filas heredadas del backend de datos alojado y las
// vuelca en la base local. Se usa una sola vez por tabla durante la
// migración; la operación es idempotente (upsert por código).
type ImportService struct {
	db     *gorm.DB
	client *DataAPIClient
	logger *log.Logger
}

// NewImportService crea el servicio de importación. Requiere base de datos
// viva y cliente remoto configurado.
func NewImportService(db *gorm.DB, client *DataAPIClient, logger *log.Logger) *ImportService {
	return &ImportService{db: db, client: client, logger: logger}
}

// ImportResult resume una corrida de importación
type ImportResult struct {
	Table    string `json:"table"`
	Fetched  int    `json:"fetched"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

// ImportEquipment importa el inventario desde la tabla remota "equipos"
func (is *ImportService) ImportEquipment(ctx context.Context) (*ImportResult, error) {
	rows, err := is.client.FetchRows(ctx, "equipos", QueryOptions{Order: "codigo.asc"})
	if err != nil {
		return nil, fmt.Errorf("error trayendo el inventario remoto: %w", err)
	}

	result := &ImportResult{Table: "equipos", Fetched: len(rows)}

	for _, row := range rows {
		code := stringField(row, "codigo")
		if code == "" {
			result.Skipped++
			continue
		}

		equipment := models.Equipment{
			Code:         code,
			SerialNumber: stringField(row, "serie"),
			Type:         stringField(row, "tipo"),
			Brand:        stringField(row, "marca"),
			Model:        stringField(row, "modelo"),
			Year:         intField(row, "anio"),
			Company:      stringField(row, "empresa"),
			Operator:     stringField(row, "operador"),
			Location:     stringField(row, "ubicacion"),
			Status:       stringField(row, "estado"),
			HoursCurrent: decimalField(row, "horometro"),
		}
		if equipment.Status == "" {
			equipment.Status = models.EquipmentStatusOperational
		}

		err := is.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			UpdateAll: true,
		}).Create(&equipment).Error
		if err != nil {
			is.logger.Printf("No se pudo importar la unidad %s: %v", code, err)
			result.Skipped++
			continue
		}
		result.Imported++
	}

	is.logger.Printf("Importación de equipos: %d traídos, %d importados, %d omitidos",
		result.Fetched, result.Imported, result.Skipped)
	return result, nil
}

// ImportDocuments importa los documentos desde las tablas remotas "soat"
// y "citv", que comparten la misma forma. Las tablas remotas llevan una
// fila vigente por unidad, así que el upsert va por (unidad, tipo):
// una unidad puede conservar su documento vencido junto al renovado, y
// eso descarta una restricción única a nivel de esquema.
func (is *ImportService) ImportDocuments(ctx context.Context) (*ImportResult, error) {
	result := &ImportResult{Table: "soat+citv"}

	for table, kind := range map[string]string{"soat": models.DocumentKindSOAT, "citv": models.DocumentKindCITV} {
		rows, err := is.client.FetchRows(ctx, table, QueryOptions{Order: "vencimiento.asc"})
		if err != nil {
			return nil, fmt.Errorf("error trayendo la tabla %s: %w", table, err)
		}
		result.Fetched += len(rows)

		for _, row := range rows {
			code := stringField(row, "codigo")
			expires, ok := dateField(row, "vencimiento")
			if code == "" || !ok {
				result.Skipped++
				continue
			}

			var doc models.Document
			err := is.db.Where("equipment_code = ? AND kind = ?", code, kind).
				Order("expires_at DESC").First(&doc).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				is.logger.Printf("No se pudo importar el documento %s de %s: %v", kind, code, err)
				result.Skipped++
				continue
			}

			doc.EquipmentCode = code
			doc.Kind = kind
			doc.Insurer = stringField(row, "emisor")
			doc.PolicyNumber = stringField(row, "poliza")
			doc.ExpiresAt = expires
			if issued, ok := dateField(row, "emision"); ok {
				doc.IssuedAt = issued
			}

			if err := is.db.Save(&doc).Error; err != nil {
				is.logger.Printf("No se pudo importar el documento %s de %s: %v", kind, code, err)
				result.Skipped++
				continue
			}
			result.Imported++
		}
	}

	return result, nil
}

// Lectores tolerantes para las filas JSON del backend remoto

func stringField(row map[string]interface{}, key string) string {
	if v, ok := row[key].(string); ok {
		return v
	}
	return ""
}

func intField(row map[string]interface{}, key string) int {
	switch v := row[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func decimalField(row map[string]interface{}, key string) decimal.Decimal {
	switch v := row[key].(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case string:
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return decimal.Zero
}

func dateField(row map[string]interface{}, key string) (time.Time, bool) {
	s, ok := row[key].(string)
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
