package database

import (
	"fmt"
	"time"

	"travel-agency/config"
	"travel-agency/logger"
	"travel-agency/models/blog"
	"travel-agency/models/generation"
	"travel-agency/models/inquiry"
	"travel-agency/models/log"
	"travel-agency/models/testimonial"
	"travel-agency/models/tour"
	"travel-agency/models/user_role"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DSN builds the PostgreSQL connection string of cfg.
func DSN(cfg config.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUsername, cfg.DBPassword, cfg.DBDatabase, cfg.DBSSLMode)
}

// InitDB opens the database and brings the schema up to date.
func InitDB(cfg config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(DSN(cfg)), &gorm.Config{
		// constraints are created by createForeignKeyConstraints
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table, then the constraints and indexes
// AutoMigrate does not cover.
func Migrate(db *gorm.DB) error {
	if err := autoMigrate(db); err != nil {
		logger.Error("Failed to migrate tables", err)
		return err
	}
	logger.Success("All tables migrated successfully")

	if err := createForeignKeyConstraints(db); err != nil {
		logger.Error("Failed to create foreign key constraints", err)
		return err
	}
	if err := createIndexes(db); err != nil {
		logger.Error("Failed to create indexes", err)
		return err
	}
	logger.Success("All indexes created successfully")
	return nil
}

func autoMigrate(db *gorm.DB) error {
	// Stage 1: records other tables point at
	stage1Models := []interface{}{
		&tour.Tour{},
		&blog.BlogPost{},
		&user_role.UserRole{},
	}
	// Stage 2: dependent and standalone records
	stage2Models := []interface{}{
		&tour.ItineraryDay{},
		&inquiry.Inquiry{},
		&testimonial.Testimonial{},
		&generation.GenerationRequest{},
		&log.Log{},
	}

	for _, stage := range [][]interface{}{stage1Models, stage2Models} {
		for _, model := range stage {
			if err := db.AutoMigrate(model); err != nil {
				return fmt.Errorf("failed to migrate %T: %w", model, err)
			}
		}
	}
	return nil
}

func createIndexes(db *gorm.DB) error {
	statements := []struct {
		name string
		sql  string
	}{
		{"itinerary order", "CREATE INDEX IF NOT EXISTS idx_itinerary_days_tour_day ON itinerary_days(tour_id, day_number)"},
		{"active tour listing", "CREATE INDEX IF NOT EXISTS idx_tours_active_created ON tours(is_active, created_at DESC)"},
		{"published posts", "CREATE INDEX IF NOT EXISTS idx_blog_posts_published_date ON blog_posts(is_published, publish_date DESC)"},
		{"log method", "CREATE INDEX IF NOT EXISTS idx_logs_method ON logs(method)"},
		{"log status_code", "CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)"},
		{"log created_at", "CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)"},
	}
	for _, s := range statements {
		if err := db.Exec(s.sql).Error; err != nil {
			return fmt.Errorf("failed to create %s index: %w", s.name, err)
		}
	}
	return nil
}

func createForeignKeyConstraints(db *gorm.DB) error {
	constraints := []struct {
		name string
		sql  string
	}{
		{
			name: "fk_itinerary_days_tour",
			sql: `ALTER TABLE itinerary_days ADD CONSTRAINT fk_itinerary_days_tour
				  FOREIGN KEY (tour_id) REFERENCES tours(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
		{
			name: "fk_inquiries_tour",
			sql: `ALTER TABLE inquiries ADD CONSTRAINT fk_inquiries_tour
				  FOREIGN KEY (tour_id) REFERENCES tours(id)
				  ON UPDATE CASCADE ON DELETE SET NULL`,
		},
	}

	for _, constraint := range constraints {
		var exists bool
		checkSQL := `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.table_constraints
				WHERE constraint_name = $1
			)
		`
		if err := db.Raw(checkSQL, constraint.name).Scan(&exists).Error; err != nil {
			logger.Warning(fmt.Sprintf("Failed to check constraint existence: %s - Error: %v", constraint.name, err))
			continue
		}
		if exists {
			logger.Debug(fmt.Sprintf("Constraint already exists: %s", constraint.name))
			continue
		}
		if err := db.Exec(constraint.sql).Error; err != nil {
			logger.Warning(fmt.Sprintf("Failed to create constraint: %s - Error: %v", constraint.name, err))
		} else {
			logger.Success(fmt.Sprintf("Successfully created constraint: %s", constraint.name))
		}
	}
	return nil
}
