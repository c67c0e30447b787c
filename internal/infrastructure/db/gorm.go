package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"oalass-backend/internal/domain/catalog"
	"oalass-backend/internal/domain/leave"
	"oalass-backend/internal/domain/period"
	"oalass-backend/internal/domain/probation"
	"oalass-backend/internal/domain/travel"
	"oalass-backend/internal/domain/user"
)

func OpenGorm(dsn string, verbose bool) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn), verbose)
}

// OpenGormWithDialector opens, tunes the pool and pings.
func OpenGormWithDialector(dial gorm.Dialector, verbose bool) (*gorm.DB, error) {
	level := logger.Warn
	if verbose {
		level = logger.Info
	}
	cfg := &gorm.Config{
		Logger:  logger.Default.LogMode(level),
		NowFunc: func() time.Time { return time.Now().UTC() },
		// pinged below, once the pool is tuned
		DisableAutomaticPing: true,
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	zap.L().Info("gorm: connected", zap.String("dialect", dial.Name()))
	return db, nil
}

// Models lists every table in migration order.
func Models() []any {
	return []any{
		&catalog.Department{},
		&catalog.EmploymentStatus{},
		&catalog.LeaveType{},
		&user.User{},
		&period.CalendarPeriod{},
		&leave.Limit{},
		&leave.Balance{},
		&leave.Application{},
		&travel.Order{},
		&probation.Probation{},
	}
}

func Migrate(db *gorm.DB) error { return db.AutoMigrate(Models()...) }
