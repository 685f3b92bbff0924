package services

import (
	"errors"
	"strings"

	"backend_maquinaria/fixtures"
	"backend_maquinaria/models"

	"gorm.io/gorm"
)

// ErrDemoMode se devuelve cuando se intenta mutar datos en modo demo
var ErrDemoMode = errors.New("el servidor está en modo demo: los cambios no se guardan")

// Repository es la estrategia única de acceso a datos: base de datos viva
// cuando hay conexión, fixtures empaquetados cuando no. Cada página NO
// reimplementa su propio "intenta remoto y si no demo"; todas pasan por acá.
type Repository struct {
	db *gorm.DB
}

// NewRepository crea el repositorio. Con db nil el repositorio queda en
// modo demo y sirve los datos de demostración.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// DemoMode indica si el repositorio sirve datos de demostración
func (r *Repository) DemoMode() bool {
	return r.db == nil
}

// DB devuelve la conexión viva o ErrDemoMode. Los handlers lo usan antes
// de cualquier mutación: en modo demo no se escribe nada.
func (r *Repository) DB() (*gorm.DB, error) {
	if r.db == nil {
		return nil, ErrDemoMode
	}
	return r.db, nil
}

// EquipmentFilters filtra el listado de inventario
type EquipmentFilters struct {
	Type    string
	Status  string
	Company string
	Search  string
}

// ListEquipment devuelve el inventario, filtrado
func (r *Repository) ListEquipment(filters EquipmentFilters) ([]models.Equipment, error) {
	if r.DemoMode() {
		return filterEquipmentLocal(fixtures.Equipment(), filters), nil
	}

	query := r.db.Model(&models.Equipment{})
	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Company != "" {
		query = query.Where("company = ?", filters.Company)
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("code ILIKE ? OR serial_number ILIKE ? OR brand ILIKE ? OR model ILIKE ?",
			like, like, like, like)
	}

	var equipment []models.Equipment
	if err := query.Order("code").Find(&equipment).Error; err != nil {
		return nil, err
	}
	return equipment, nil
}

func filterEquipmentLocal(list []models.Equipment, filters EquipmentFilters) []models.Equipment {
	out := make([]models.Equipment, 0, len(list))
	for _, e := range list {
		if filters.Type != "" && e.Type != filters.Type {
			continue
		}
		if filters.Status != "" && e.Status != filters.Status {
			continue
		}
		if filters.Company != "" && e.Company != filters.Company {
			continue
		}
		if filters.Search != "" && !matchesEquipmentSearch(e, filters.Search) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// matchesEquipmentSearch replica en memoria la búsqueda ILIKE del camino
// con base de datos: las mismas columnas, sin distinguir mayúsculas
func matchesEquipmentSearch(e models.Equipment, search string) bool {
	needle := strings.ToLower(search)
	for _, field := range []string{e.Code, e.SerialNumber, e.Brand, e.Model} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// ListMaintenance devuelve todos los programas de mantenimiento
func (r *Repository) ListMaintenance() ([]models.Maintenance, error) {
	if r.DemoMode() {
		return fixtures.Maintenance(), nil
	}

	var records []models.Maintenance
	if err := r.db.Order("equipment_code").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ListDocuments devuelve los documentos, opcionalmente por tipo (SOAT/CITV)
func (r *Repository) ListDocuments(kind string) ([]models.Document, error) {
	if r.DemoMode() {
		docs := fixtures.Documents()
		if kind == "" {
			return docs, nil
		}
		out := make([]models.Document, 0, len(docs))
		for _, d := range docs {
			if d.Kind == kind {
				out = append(out, d)
			}
		}
		return out, nil
	}

	query := r.db.Model(&models.Document{})
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var docs []models.Document
	if err := query.Order("expires_at").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// ListFuelMovements devuelve el libro de combustible completo
func (r *Repository) ListFuelMovements() ([]models.FuelMovement, error) {
	if r.DemoMode() {
		return fixtures.FuelMovements(), nil
	}

	var movements []models.FuelMovement
	if err := r.db.Order("date").Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// ListFilterKits devuelve los kits de filtros; con códigos limita a ese
// subconjunto de unidades
func (r *Repository) ListFilterKits(codes []string) ([]models.FilterKit, error) {
	if r.DemoMode() {
		kits := fixtures.FilterKits()
		if len(codes) == 0 {
			return kits, nil
		}
		wanted := make(map[string]bool, len(codes))
		for _, c := range codes {
			wanted[c] = true
		}
		out := make([]models.FilterKit, 0, len(kits))
		for _, k := range kits {
			if wanted[k.EquipmentCode] {
				out = append(out, k)
			}
		}
		return out, nil
	}

	query := r.db.Model(&models.FilterKit{})
	if len(codes) > 0 {
		query = query.Where("equipment_code IN ?", codes)
	}

	var kits []models.FilterKit
	if err := query.Order("equipment_code").Find(&kits).Error; err != nil {
		return nil, err
	}
	return kits, nil
}

// ListOperators devuelve los operadores, opcionalmente por estado laboral
func (r *Repository) ListOperators(status string) ([]models.Operator, error) {
	if r.DemoMode() {
		ops := fixtures.Operators()
		if status == "" {
			return ops, nil
		}
		out := make([]models.Operator, 0, len(ops))
		for _, o := range ops {
			if o.Status == status {
				out = append(out, o)
			}
		}
		return out, nil
	}

	query := r.db.Model(&models.Operator{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var ops []models.Operator
	if err := query.Order("last_name, first_name").Find(&ops).Error; err != nil {
		return nil, err
	}
	return ops, nil
}
