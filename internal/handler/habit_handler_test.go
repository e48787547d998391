package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/focuslog/internal/db"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) (*API, func()) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb

	return NewAPI(gdb, t.TempDir(), 25), func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func postJSON(t *testing.T, target string, payload any) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return w, c
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return body
}

func TestCreateHabitEmptyName(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	w, c := postJSON(t, "/api/habits", map[string]any{"name": "   "})
	api.CreateHabit(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestToggleHabitCompletionEndpoint(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	habit := db.Habit{Name: "晨跑"}
	if err := db.DB.Create(&habit).Error; err != nil {
		t.Fatalf("failed to seed habit: %v", err)
	}

	id := strconv.Itoa(int(habit.ID))

	w, c := postJSON(t, "/api/habits/"+id+"/toggle", map[string]any{"date": "2025-06-04"})
	c.Params = gin.Params{gin.Param{Key: "id", Value: id}}
	api.ToggleHabitCompletion(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if body := decodeBody(t, w); body["done"] != true {
		t.Fatalf("expected done=true, got %v", body["done"])
	}

	// 再次翻转回到未打卡
	w, c = postJSON(t, "/api/habits/"+id+"/toggle", map[string]any{"date": "2025-06-04"})
	c.Params = gin.Params{gin.Param{Key: "id", Value: id}}
	api.ToggleHabitCompletion(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if body := decodeBody(t, w); body["done"] != false {
		t.Fatalf("expected done=false, got %v", body["done"])
	}
}

func TestToggleHabitCompletionMissingHabit(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	w, c := postJSON(t, "/api/habits/999/toggle", map[string]any{"date": "2025-06-04"})
	c.Params = gin.Params{gin.Param{Key: "id", Value: "999"}}
	api.ToggleHabitCompletion(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}
