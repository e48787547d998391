package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/focuslog/internal/db"
	"github.com/focuslog/internal/service"
	"github.com/gin-gonic/gin"
)

type pomodoroStatePayload struct {
	RemainingSeconds int    `json:"remaining_seconds"`
	InitialSeconds   int    `json:"initial_seconds"`
	TaskName         string `json:"task_name"`
	Running          bool   `json:"running"`
	Paused           bool   `json:"paused"`
	Completed        bool   `json:"completed"`
}

type pomodoroSessionPayload struct {
	ID              uint   `json:"id"`
	TaskName        string `json:"task_name"`
	DurationSeconds int    `json:"duration_seconds"`
	Completed       bool   `json:"completed"`
	CreatedAt       string `json:"created_at"`
}

func pomodoroStateToPayload(state service.PomodoroState) pomodoroStatePayload {
	return pomodoroStatePayload{
		RemainingSeconds: state.RemainingSeconds,
		InitialSeconds:   state.InitialSeconds,
		TaskName:         state.TaskName,
		Running:          state.Running,
		Paused:           state.Paused,
		Completed:        state.Completed,
	}
}

func pomodoroSessionToPayload(session db.PomodoroSession) pomodoroSessionPayload {
	return pomodoroSessionPayload{
		ID:              session.ID,
		TaskName:        session.TaskName,
		DurationSeconds: session.DurationSeconds,
		Completed:       session.Completed,
		CreatedAt:       session.CreatedAt.Format(time.RFC3339),
	}
}

// GetPomodoroState 返回倒计时快照
func (a *API) GetPomodoroState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"state": pomodoroStateToPayload(a.pomodoro.Snapshot())})
}

// SetPomodoroTimer 配置倒计时时长（预设或 1–480 分钟自定义）
func (a *API) SetPomodoroTimer(c *gin.Context) {
	var payload struct {
		Minutes int `json:"minutes"`
	}
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	state, err := a.pomodoro.SetTimer(payload.Minutes)
	if err != nil {
		respondError(c, http.StatusBadRequest, "时长需在 1 到 480 分钟之间")
		return
	}

	c.JSON(http.StatusOK, gin.H{"state": pomodoroStateToPayload(state)})
}

// StartPomodoro 启动倒计时并记录任务名
func (a *API) StartPomodoro(c *gin.Context) {
	var payload struct {
		TaskName string `json:"task_name"`
	}
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	state, err := a.pomodoro.Start(payload.TaskName)
	if err != nil {
		if errors.Is(err, service.ErrPomodoroNotRunnable) {
			respondError(c, http.StatusBadRequest, "倒计时已结束，请先重新配置")
			return
		}
		respondError(c, http.StatusInternalServerError, "启动失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"state": pomodoroStateToPayload(state)})
}

// PausePomodoro 冻结倒计时
func (a *API) PausePomodoro(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"state": pomodoroStateToPayload(a.pomodoro.Pause())})
}

// ResumePomodoro 从冻结值继续倒数
func (a *API) ResumePomodoro(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"state": pomodoroStateToPayload(a.pomodoro.Resume())})
}

// StopPomodoro 主动停止并回到默认预设
func (a *API) StopPomodoro(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"state": pomodoroStateToPayload(a.pomodoro.Stop())})
}

// ListPomodoroSessions 返回已完成会话
func (a *API) ListPomodoroSessions(c *gin.Context) {
	sessions, err := a.pomodoro.Sessions()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取会话失败")
		return
	}

	items := make([]pomodoroSessionPayload, 0, len(sessions))
	for _, session := range sessions {
		items = append(items, pomodoroSessionToPayload(session))
	}

	c.JSON(http.StatusOK, gin.H{"sessions": items})
}

// DeletePomodoroSession 删除一条会话记录
func (a *API) DeletePomodoroSession(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的会话ID")
		return
	}

	if err := a.pomodoro.DeleteSession(id); err != nil {
		if errors.Is(err, service.ErrPomodoroSessionNotFound) {
			respondError(c, http.StatusNotFound, "会话不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "删除会话失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
