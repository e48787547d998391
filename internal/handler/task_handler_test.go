package handler

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/focuslog/internal/db"
	"github.com/gin-gonic/gin"
)

func TestCreateTaskEmptyTitle(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	w, c := postJSON(t, "/api/tasks", map[string]any{"title": ""})
	api.CreateTask(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestToggleTaskStatusCycle(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	task := db.Task{Title: "整理周报", Status: db.TaskStatusTodo, Category: "Personal", Priority: db.TaskPriorityMedium}
	if err := db.DB.Create(&task).Error; err != nil {
		t.Fatalf("failed to seed task: %v", err)
	}

	id := strconv.Itoa(int(task.ID))
	expected := []string{db.TaskStatusInProgress, db.TaskStatusDone, db.TaskStatusTodo}

	for _, want := range expected {
		req := httptest.NewRequest(http.MethodPost, "/api/tasks/"+id+"/toggle", nil)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = req
		c.Params = gin.Params{gin.Param{Key: "id", Value: id}}

		api.ToggleTaskStatus(c)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		if body := decodeBody(t, w); body["status"] != want {
			t.Fatalf("expected status %s, got %v", want, body["status"])
		}
	}
}

func TestAddChecklistItemEmptyText(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	task := db.Task{Title: "读书", Status: db.TaskStatusTodo, Category: "Personal", Priority: db.TaskPriorityMedium}
	if err := db.DB.Create(&task).Error; err != nil {
		t.Fatalf("failed to seed task: %v", err)
	}

	id := strconv.Itoa(int(task.ID))

	w, c := postJSON(t, "/api/tasks/"+id+"/checklist", map[string]any{"text": "  "})
	c.Params = gin.Params{gin.Param{Key: "id", Value: id}}
	api.AddChecklistItem(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}
