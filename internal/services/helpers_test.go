package services_test

import (
	"path/filepath"
	"testing"

	"github.com/atlasops/planner-api/internal/database"
	"github.com/atlasops/planner-api/internal/models"
	"github.com/atlasops/planner-api/internal/services"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	DB          *gorm.DB
	Employees   *services.EmployeeService
	Products    *services.ProductService
	Formations  *services.FormationService
	Initiatives *services.InitiativeService
	Threads     *services.ThreadService
	Allocation  *services.AllocationService
	Notify      *services.NotifyService
	Actor       models.Employee
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	// Busy timeout keeps async notification writes from tripping over the
	// test's own writes.
	dsn := filepath.Join(t.TempDir(), "planner.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	zlog := zap.NewNop()
	notify := services.NewNotifyService(db, zlog)
	allocation := services.NewAllocationService(db)

	env := testEnv{
		DB:          db,
		Employees:   services.NewEmployeeService(db),
		Products:    services.NewProductService(db, zlog),
		Formations:  services.NewFormationService(db, zlog, allocation),
		Initiatives: services.NewInitiativeService(db, zlog, notify),
		Threads:     services.NewThreadService(db, zlog, notify),
		Allocation:  allocation,
		Notify:      notify,
	}

	env.Actor = env.seedEmployee(t, "actor@example.com", "Actor")
	return env
}

func (e *testEnv) seedEmployee(t *testing.T, email, name string) models.Employee {
	t.Helper()
	employee := models.Employee{Email: email, Password: "x", Name: name}
	if err := e.DB.Create(&employee).Error; err != nil {
		t.Fatalf("seed employee %s: %v", email, err)
	}
	return employee
}

func (e *testEnv) seedInitiative(t *testing.T, title string) *models.Initiative {
	t.Helper()
	initiative, err := e.Initiatives.Create(models.CreateInitiativeRequest{Title: title}, e.Actor.ID)
	if err != nil {
		t.Fatalf("seed initiative %q: %v", title, err)
	}
	return initiative
}

func (e *testEnv) seedFormation(t *testing.T, name string) *models.Formation {
	t.Helper()
	formation, err := e.Formations.Create(models.CreateFormationRequest{Name: name}, e.Actor.ID)
	if err != nil {
		t.Fatalf("seed formation %q: %v", name, err)
	}
	return formation
}

func strPtr(s string) *string { return &s }
