package db

import (
	"log"
	"time"

	"github.com/kristins-brudesalong/salon-scheduler/internal/config"
	"github.com/kristins-brudesalong/salon-scheduler/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Staff{},
		&models.Service{},
		&models.AvailabilityRule{},
		&models.Blackout{},
		&models.Appointment{},
		&models.Payment{},
		&models.Dress{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Storage-level interval exclusion: no two pending/confirmed
	// appointments for the same stylist may overlap, whatever the
	// application layer does.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
        DO $$ BEGIN
            ALTER TABLE appointments
                ADD CONSTRAINT appointments_staff_no_overlap
                EXCLUDE USING gist (
                    staff_id WITH =,
                    tsrange(start_time, end_time) WITH &&
                )
                WHERE (status IN ('pending', 'confirmed'));
        EXCEPTION
            WHEN duplicate_object THEN NULL;
            WHEN duplicate_table THEN NULL;
        END $$
    `)

	return db
}
