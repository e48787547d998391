package handler

import (
	"github.com/focuslog/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db         *gorm.DB
	habits     *service.HabitService
	tasks      *service.TaskService
	categories *service.CategoryService
	expenses   *service.ExpenseService
	planner    *service.PlannerService
	pomodoro   *service.PomodoroService
	dsa        *service.DSAService
	exportDir  string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, exportDir string, pomodoroDefaultMinutes int) *API {
	return &API{
		db:         gdb,
		habits:     service.NewHabitService(gdb),
		tasks:      service.NewTaskService(gdb),
		categories: service.NewCategoryService(gdb),
		expenses:   service.NewExpenseService(gdb),
		planner:    service.NewPlannerService(gdb),
		pomodoro:   service.NewPomodoroService(gdb, pomodoroDefaultMinutes),
		dsa:        service.NewDSAService(gdb),
		exportDir:  exportDir,
	}
}

// DB exposes the underlying gorm instance for tests.
func (a *API) DB() *gorm.DB {
	return a.db
}

// Planner exposes the planner service so the scheduler can refresh the clock.
func (a *API) Planner() *service.PlannerService {
	return a.planner
}

// Pomodoro exposes the pomodoro service so the scheduler can drive the countdown.
func (a *API) Pomodoro() *service.PomodoroService {
	return a.pomodoro
}
