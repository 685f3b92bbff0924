package services

import (
	"encoding/json"
	"log"
	"time"

	"gorm.io/gorm"
)

// ChangeHistory es una fila del historial de cambios. Solo se agrega:
// nunca se actualiza ni se borra desde la aplicación.
type ChangeHistory struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Table     string    `json:"table_name" gorm:"column:table_name;not null;index;type:varchar(50)"`
	Action    string    `json:"action" gorm:"not null;index;type:varchar(20)"`
	RecordID  uint      `json:"record_id" gorm:"index"`
	OldValues string    `json:"old_values" gorm:"type:text"`
	NewValues string    `json:"new_values" gorm:"type:text"`
	Username  string    `json:"username" gorm:"type:varchar(64);index"`
	IPAddress string    `json:"ip_address" gorm:"size:45"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// TableName define el nombre de la tabla para el modelo ChangeHistory
func (ChangeHistory) TableName() string {
	return "change_history"
}

// Acciones registradas en el historial
const (
	HistoryActionCreate = "crear"
	HistoryActionUpdate = "actualizar"
	HistoryActionDelete = "eliminar"
)

// HistoryService escribe y consulta el historial de cambios
type HistoryService struct {
	db     *gorm.DB
	logger *log.Logger
}

// NewHistoryService crea un nuevo servicio de historial
func NewHistoryService(db *gorm.DB, logger *log.Logger) *HistoryService {
	return &HistoryService{db: db, logger: logger}
}

// HistoryEntry es el contexto de una anotación de historial
type HistoryEntry struct {
	TableName string
	Action    string
	RecordID  uint
	OldValues interface{}
	NewValues interface{}
	Username  string
	IPAddress string
}

// Record escribe una fila de historial. Es un efecto secundario de las
// mutaciones: si falla, se registra en el log pero no revienta la operación
// principal.
func (hs *HistoryService) Record(entry HistoryEntry) error {
	if hs.db == nil {
		// Modo demo: no hay dónde escribir
		return nil
	}

	row := &ChangeHistory{
		Table:     entry.TableName,
		Action:    entry.Action,
		RecordID:  entry.RecordID,
		Username:  entry.Username,
		IPAddress: entry.IPAddress,
		CreatedAt: time.Now(),
	}

	if entry.OldValues != nil {
		if oldJSON, err := json.Marshal(entry.OldValues); err == nil {
			row.OldValues = string(oldJSON)
		}
	}

	if entry.NewValues != nil {
		if newJSON, err := json.Marshal(entry.NewValues); err == nil {
			row.NewValues = string(newJSON)
		}
	}

	if err := hs.db.Create(row).Error; err != nil {
		if hs.logger != nil {
			hs.logger.Printf("No se pudo escribir el historial de cambios: %v", err)
		}
		return err
	}

	return nil
}

// HistoryFilters filtra la consulta del historial
type HistoryFilters struct {
	TableName string
	Action    string
	RecordID  *uint
	Username  string
	StartDate time.Time
	EndDate   time.Time
	Limit     int
	Offset    int
}

// List devuelve el historial filtrado, del más reciente al más antiguo
func (hs *HistoryService) List(filters HistoryFilters) ([]ChangeHistory, error) {
	if hs.db == nil {
		return []ChangeHistory{}, nil
	}

	query := hs.db.Model(&ChangeHistory{})

	if filters.TableName != "" {
		query = query.Where("table_name = ?", filters.TableName)
	}
	if filters.Action != "" {
		query = query.Where("action = ?", filters.Action)
	}
	if filters.RecordID != nil {
		query = query.Where("record_id = ?", *filters.RecordID)
	}
	if filters.Username != "" {
		query = query.Where("username = ?", filters.Username)
	}
	if !filters.StartDate.IsZero() {
		query = query.Where("created_at >= ?", filters.StartDate)
	}
	if !filters.EndDate.IsZero() {
		query = query.Where("created_at <= ?", filters.EndDate)
	}

	query = query.Order("created_at DESC")

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var rows []ChangeHistory
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// CleanupOldEntries elimina historial más antiguo que la retención indicada
func (hs *HistoryService) CleanupOldEntries(retentionDays int) error {
	if hs.db == nil {
		return nil
	}

	cutoffDate := time.Now().AddDate(0, 0, -retentionDays)

	result := hs.db.Where("created_at < ?", cutoffDate).Delete(&ChangeHistory{})
	if result.Error != nil {
		return result.Error
	}

	if hs.logger != nil {
		hs.logger.Printf("Se eliminaron %d filas de historial con más de %d días",
			result.RowsAffected, retentionDays)
	}

	return nil
}
