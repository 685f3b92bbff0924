package services

import (
	"testing"

	"backend_maquinaria/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupRepoTestDB levanta una base sqlite en memoria con las migraciones.
// No se usa testutils aquí para no ciclar los imports.
func setupRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("no se pudo abrir la base de prueba: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Equipment{},
		&models.Maintenance{},
		&models.Document{},
		&models.FuelMovement{},
		&models.FilterKit{},
		&models.Operator{},
		&ChangeHistory{},
	)
	if err != nil {
		t.Fatalf("no se pudieron correr las migraciones: %v", err)
	}

	return db
}
