package database

import (
	"log"
	"time"

	"github.com/arnavshah/workload-governance-go/pkg/config"
	"github.com/arnavshah/workload-governance-go/pkg/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// APIKey represents the api_keys table
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Key        string     `gorm:"unique;not null" json:"-"`
	KeyPreview string     `json:"key_preview"`
	Name       string     `gorm:"not null" json:"name"`
	RateLimit  int        `gorm:"default:10000" json:"rate_limit"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsed   *time.Time `json:"last_used"`
}

// APIUsage represents the api_usage table
type APIUsage struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	KeyID          uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date           string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount   int    `gorm:"default:0" json:"request_count"`
	TotalShifts    int    `gorm:"default:0" json:"total_shifts"`
	TotalEmployees int    `gorm:"default:0" json:"total_employees"`
}

// MasterUser represents the master_users table
type MasterUser struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Username     string      `gorm:"unique;not null" json:"username"`
	PasswordHash string      `gorm:"not null" json:"-"`
	Role         models.Role `gorm:"type:varchar(20);default:'admin'" json:"role"`
	CreatedAt    time.Time   `json:"created_at"`
}

// InitDB initializes the database connection and migrates the schema
func InitDB(cfg *config.Config) *gorm.DB {
	var db *gorm.DB
	var err error

	if cfg.DatabaseURL != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  cfg.DatabaseURL,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	} else {
		db, err = gorm.Open(sqlite.Open(cfg.DataPath), &gorm.Config{})
	}

	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

// Migrate creates or updates every table the service uses
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Employee{},
		&models.Store{},
		&models.Shift{},
		&APIKey{},
		&APIUsage{},
		&MasterUser{},
	)
}
