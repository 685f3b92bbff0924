package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"backend_maquinaria/models"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// CreateDatabaseIfNotExists crea la base de datos si todavía no existe
func CreateDatabaseIfNotExists() error {
	// Configuración de conexión
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "")
	dbname := getEnv("DB_NAME", "maquinaria_db")
	sslmode := getEnv("DB_SSLMODE", "disable")

	// Conectamos a PostgreSQL sin indicar la base concreta (la postgres por defecto)
	adminDSN := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=postgres sslmode=%s",
		host, port, user, password, sslmode)

	db, err := sql.Open("postgres", adminDSN)
	if err != nil {
		return fmt.Errorf("no se pudo conectar a PostgreSQL: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("no se pudo verificar la conexión a PostgreSQL: %w", err)
	}

	// Verificamos si la base ya existe
	var exists bool
	query := "SELECT EXISTS(SELECT datname FROM pg_catalog.pg_database WHERE datname = $1);"
	err = db.QueryRow(query, dbname).Scan(&exists)
	if err != nil {
		return fmt.Errorf("error al verificar la existencia de la base de datos: %w", err)
	}

	if exists {
		log.Printf("✅ La base de datos '%s' ya existe", dbname)
		return nil
	}

	createQuery := fmt.Sprintf("CREATE DATABASE %s;", dbname)
	_, err = db.Exec(createQuery)
	if err != nil {
		return fmt.Errorf("no se pudo crear la base de datos '%s': %w", dbname, err)
	}

	log.Printf("✅ Base de datos '%s' creada correctamente", dbname)
	return nil
}

// ConnectDatabase inicializa la conexión a PostgreSQL
func ConnectDatabase() error {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "")
	dbname := getEnv("DB_NAME", "maquinaria_db")
	sslmode := getEnv("DB_SSLMODE", "disable")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return fmt.Errorf("no se pudo conectar a la base de datos: %w", err)
	}

	log.Println("✅ Conectado a PostgreSQL")

	if err := autoMigrate(); err != nil {
		return fmt.Errorf("error de automigración: %w", err)
	}

	return nil
}

// getEnv obtiene una variable de entorno o devuelve el valor por defecto
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetDB devuelve la instancia de la base de datos. Es nil en modo demo.
func GetDB() *gorm.DB {
	return DB
}

// IsConnected indica si hay una base de datos viva detrás del servidor
func IsConnected() bool {
	return DB != nil
}

// autoMigrate ejecuta la automigración de todos los modelos
func autoMigrate() error {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Equipment{},
		&models.Maintenance{},
		&models.Document{},
		&models.FuelMovement{},
		&models.FilterKit{},
		&models.Operator{},
		// Agregue los modelos nuevos aquí
	)

	if err != nil {
		return err
	}

	log.Println("✅ Automigración de modelos completada")
	return nil
}
