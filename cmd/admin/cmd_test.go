package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"oalass-backend/internal/domain/probation"
	"oalass-backend/internal/domain/user"
	"oalass-backend/internal/notify"
	"oalass-backend/internal/testutil/notifymock"
	"oalass-backend/internal/usecase/seed"
	"oalass-backend/pkg/id"
)

const sample = `
departments:
  - {code: CS, name: Computer Studies}
statuses:
  - {code: REGULAR, name: Regular}
leave_types:
  - {code: VACATION, name: Vacation Leave}
periods:
  - {academic_year: 2025-2026, term: FIRST, start_date: 2025-08-01, end_date: 2025-12-20, current: true}
limits:
  - {status: REGULAR, term: FIRST, leave_type: VACATION, allowed_days: 15}
users:
  - email: admin@school.edu
    first_name: Ada
    last_name: Admin
    role: ADMIN
    password: changeme123
`

func setup(t *testing.T) (*commandLine, *gorm.DB, *notifymock.Notifier) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := gdb.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	n := &notifymock.Notifier{}
	cli := &commandLine{
		openDB:   func() (*gorm.DB, error) { return gdb, nil },
		log:      zap.NewNop(),
		notifier: n,
	}
	if _, err := run(cli, "migrate"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return cli, gdb, n
}

func run(cli *commandLine, args ...string) (string, error) {
	var out bytes.Buffer
	root := cli.root()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.Execute()
	return out.String(), err
}

func withPassword(t *testing.T, pwd string) {
	t.Helper()
	prev := readPasswordFunc
	readPasswordFunc = func(int) ([]byte, error) { return []byte(pwd), nil }
	t.Cleanup(func() { readPasswordFunc = prev })
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func Test_commandLine_seedAndDump(t *testing.T) {
	cli, gdb, _ := setup(t)
	path := writeFile(t, sample)

	out, err := run(cli, "seed", "--file", path)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !strings.Contains(out, "users        created=1 updated=0") {
		t.Fatalf("unexpected report:\n%s", out)
	}
	out, err = run(cli, "seed", "-f", path)
	if err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if !strings.Contains(out, "users        created=0 updated=1") {
		t.Fatalf("rerun should only update:\n%s", out)
	}

	dumpPath := filepath.Join(t.TempDir(), "backup.yaml")
	if _, err := run(cli, "dump", "--file", dumpPath); err != nil {
		t.Fatalf("dump: %v", err)
	}
	f, err := os.Open(dumpPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	doc, err := seed.Load(f)
	if err != nil {
		t.Fatalf("reload dump: %v", err)
	}
	if len(doc.Users) != 1 || doc.Users[0].PasswordHash == "" || doc.Users[0].Password != "" {
		t.Fatalf("dump should carry the hash only: %+v", doc.Users)
	}
	if len(doc.Limits) != 1 || doc.Limits[0].AllowedDays != 15 {
		t.Fatalf("unexpected limits: %+v", doc.Limits)
	}

	var count int64
	gdb.Model(&user.User{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 user, got %d", count)
	}
}

func Test_commandLine_seedErrors(t *testing.T) {
	cli, _, _ := setup(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "no file flag", args: []string{"seed"}, wantErr: `required flag(s) "file" not set`},
		{name: "missing file", args: []string{"seed", "--file", filepath.Join(t.TempDir(), "nope.yaml")}, wantErr: "no such file"},
		{name: "unknown key", args: []string{"seed", "--file", writeFile(t, "colours: [red]\n")}, wantErr: "colours"},
		{name: "unknown department", args: []string{"seed", "--file", writeFile(t, "users:\n  - {email: a@b.c, role: ADMIN, department: XX, password: changeme123}\n")}, wantErr: "XX"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(cli, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_addUser(t *testing.T) {
	cli, gdb, _ := setup(t)
	withPassword(t, "first-password")

	out, err := run(cli, "adduser", "--email", " Root@School.edu ", "--first-name", "Root", "--last-name", "User")
	if err != nil {
		t.Fatalf("adduser: %v", err)
	}
	if !strings.Contains(out, "created root@school.edu (ADMIN)") {
		t.Fatalf("unexpected output: %q", out)
	}

	withPassword(t, "second-password")
	out, err = run(cli, "adduser", "--email", "root@school.edu", "--first-name", "Root", "--last-name", "Renamed", "--role", "FINANCE")
	if err != nil {
		t.Fatalf("adduser again: %v", err)
	}
	if !strings.Contains(out, "updated root@school.edu (FINANCE)") {
		t.Fatalf("unexpected output: %q", out)
	}

	var usr user.User
	if err := gdb.Where("email = ?", "root@school.edu").First(&usr).Error; err != nil {
		t.Fatal(err)
	}
	if usr.Role != user.RoleFinance || usr.LastName != "Renamed" {
		t.Fatalf("user not updated: %+v", usr)
	}
	if err := usr.CheckPassword("second-password"); err != nil {
		t.Fatalf("password not replaced: %v", err)
	}

	if _, err := run(cli, "adduser", "--email", "x@school.edu", "--role", "JANITOR"); !errors.Is(err, user.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli, gdb, n := setup(t)
	if _, err := run(cli, "seed", "--file", writeFile(t, sample)); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		args    []string
		pwd     string
		wantErr error
	}{
		{name: "unknown user", args: []string{"resetpassword", "--email", "ghost@school.edu"}, pwd: "whatever123", wantErr: user.ErrNotFound},
		{name: "empty password", args: []string{"resetpassword", "--email", "admin@school.edu"}, pwd: "", wantErr: errEmptyPassword},
		{name: "too short", args: []string{"resetpassword", "--email", "admin@school.edu"}, pwd: "short", wantErr: user.ErrInvalidPassword},
		{name: "ok", args: []string{"resetpassword", "--email", "ADMIN@school.edu"}, pwd: "brand-new-pass"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withPassword(t, tt.pwd)
			_, err := run(cli, tt.args...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	var usr user.User
	if err := gdb.Where("email = ?", "admin@school.edu").First(&usr).Error; err != nil {
		t.Fatal(err)
	}
	if err := usr.CheckPassword("brand-new-pass"); err != nil {
		t.Fatalf("password not reset: %v", err)
	}
	if got := n.Templates(); len(got) != 1 || got[0] != notify.TmplPasswordReset {
		t.Fatalf("expected one password_reset mail, got %v", got)
	}
}

func Test_commandLine_notifyDue(t *testing.T) {
	cli, gdb, n := setup(t)
	if _, err := run(cli, "seed", "--file", writeFile(t, sample)); err != nil {
		t.Fatal(err)
	}

	out, err := run(cli, "notify-due")
	if err != nil {
		t.Fatalf("notify-due: %v", err)
	}
	if !strings.Contains(out, "0 probation(s) due within 30 days") {
		t.Fatalf("unexpected output: %q", out)
	}

	emp := &user.User{UserID: id.NewID32(), Email: "new@school.edu", FirstName: "New", LastName: "Hire",
		PasswordHash: "x", Role: user.RoleTeacher, IsActive: true}
	if err := gdb.Create(emp).Error; err != nil {
		t.Fatal(err)
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	p := &probation.Probation{UserID: emp.ID, StartDate: today.AddDate(0, -6, 0), EndDate: today.AddDate(0, 0, 5), Status: probation.StatusOngoing}
	if err := gdb.Create(p).Error; err != nil {
		t.Fatal(err)
	}

	out, err = run(cli, "notify-due", "--days", "7")
	if err != nil {
		t.Fatalf("notify-due: %v", err)
	}
	if !strings.Contains(out, "1 probation(s) due within 7 days") {
		t.Fatalf("unexpected output: %q", out)
	}
	sent := n.Sent()
	if len(sent) != 1 || sent[0].Template != notify.TmplProbationDue || sent[0].To[0].Address != "admin@school.edu" {
		t.Fatalf("unexpected notifications: %+v", sent)
	}
}
