package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/MedAgendaServices/clinic-scheduler/internal/config"
	"github.com/MedAgendaServices/clinic-scheduler/internal/models"
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
		&models.Clinic{},
		&models.User{},
		&models.DoctorSchedule{},
		&models.ScheduleException{},
		&models.Appointment{},
		&models.AppointmentStatusHistory{},
		&models.Consultation{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Constraint de exclusão: dois agendamentos ativos do mesmo médico não
	// podem ter intervalos sobrepostos, mesmo que duas requisições passem
	// pela checagem de conflito simultaneamente.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)

	db.Exec(`
        DO $$ BEGIN
            ALTER TABLE appointments
                ADD CONSTRAINT appointments_no_overlap
                EXCLUDE USING gist (
                    doctor_id WITH =,
                    tsrange(
                        (scheduled_date || ' ' || scheduled_time)::timestamp,
                        (scheduled_date || ' ' || scheduled_time)::timestamp
                            + make_interval(mins => estimated_duration)
                    ) WITH &&
                )
                WHERE (status IN ('scheduled', 'confirmed', 'in-progress'));
        EXCEPTION
            WHEN duplicate_object THEN NULL;
            WHEN duplicate_table THEN NULL;
        END $$;
    `)

	return db
}
