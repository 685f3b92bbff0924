package testutils

import (
	"time"

	"backend_maquinaria/models"
	"backend_maquinaria/services"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB crea una base de datos de prueba en memoria con todas las
// migraciones aplicadas. Todos los tests deben usarla para mantener
// consistencia.
func SetupTestDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Equipment{},
		&models.Maintenance{},
		&models.Document{},
		&models.FuelMovement{},
		&models.FilterKit{},
		&models.Operator{},
		&services.ChangeHistory{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// CreateTestEquipment inserta una unidad de prueba
func CreateTestEquipment(db *gorm.DB, code string, hours string) (*models.Equipment, error) {
	equipment := &models.Equipment{
		Code:         code,
		Type:         "Excavadora",
		Brand:        "Caterpillar",
		Model:        "320D",
		Year:         2018,
		Company:      "Constructora Andina",
		Status:       models.EquipmentStatusOperational,
		HoursCurrent: mustDecimal(hours),
	}
	if err := db.Create(equipment).Error; err != nil {
		return nil, err
	}
	return equipment, nil
}

// CreateTestMaintenance inserta el registro de mantenimiento de una unidad
func CreateTestMaintenance(db *gorm.DB, code string, last, next, current string) (*models.Maintenance, error) {
	record := &models.Maintenance{
		EquipmentCode:    code,
		HoursLastService: mustDecimal(last),
		HoursNextDue:     mustDecimal(next),
		HoursCurrent:     mustDecimal(current),
		Type:             models.MaintenancePreventive,
	}
	if err := db.Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// CreateTestDocument inserta un documento que vence en daysFromNow días
func CreateTestDocument(db *gorm.DB, code, kind string, daysFromNow int) (*models.Document, error) {
	doc := &models.Document{
		EquipmentCode: code,
		Kind:          kind,
		Insurer:       "Rímac Seguros",
		PolicyNumber:  "POL-123456",
		IssuedAt:      time.Now().AddDate(-1, 0, 0),
		ExpiresAt:     time.Now().AddDate(0, 0, daysFromNow),
	}
	if err := db.Create(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

// CreateTestUser inserta una cuenta con el rol indicado
func CreateTestUser(db *gorm.DB, username, password, role string) (*models.User, error) {
	user := &models.User{
		Username: username,
		Role:     role,
		IsActive: true,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	if err := db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func mustDecimal(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return d
}
