package mysql

import (
	"testing"
	"time"

	"oalass-backend/internal/domain/user"
	"oalass-backend/internal/infrastructure/db"
	"oalass-backend/pkg/id"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB creates an in-memory sqlite DB with the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// one connection = one in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return gdb
}

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func seedUser(t *testing.T, gdb *gorm.DB, email string, role user.Role, dept uint64) *user.User {
	t.Helper()
	u := &user.User{
		UserID: id.NewID32(), Email: email, FirstName: "F", LastName: email,
		PasswordHash: "x", Role: role, DepartmentID: dept, StatusID: 1, IsActive: true,
	}
	if err := gdb.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}
