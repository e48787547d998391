package router

import (
	"github.com/focuslog/internal/handler"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// Setup 配置 Gin 引擎和路由
func Setup(api *handler.API, sessionSecret string) *gin.Engine {
	r := gin.Default()

	// 会话只承载各功能的当前分类过滤器
	store := cookie.NewStore([]byte(sessionSecret))
	r.Use(sessions.Sessions("focuslog_session", store))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/dashboard", api.GetDashboard)

		habits := apiGroup.Group("/habits")
		{
			habits.GET("", api.ListHabits)
			habits.POST("", api.CreateHabit)
			habits.PUT("/:id", api.UpdateHabit)
			habits.DELETE("/:id", api.DeleteHabit)
			habits.POST("/:id/toggle", api.ToggleHabitCompletion)
			habits.GET("/:id/week", api.GetHabitWeek)
			habits.GET("/:id/month", api.GetHabitMonth)
		}

		tasks := apiGroup.Group("/tasks")
		{
			tasks.GET("", api.ListTasks)
			tasks.POST("", api.CreateTask)
			tasks.GET("/:id", api.GetTask)
			tasks.PUT("/:id", api.UpdateTask)
			tasks.DELETE("/:id", api.DeleteTask)
			tasks.POST("/:id/toggle", api.ToggleTaskStatus)
			tasks.POST("/:id/checklist", api.AddChecklistItem)
			tasks.POST("/:id/checklist/:itemId/toggle", api.ToggleChecklistItem)
			tasks.DELETE("/:id/checklist/:itemId", api.DeleteChecklistItem)
		}

		expenses := apiGroup.Group("/expenses")
		{
			expenses.GET("", api.ListExpenses)
			expenses.GET("/summary", api.GetExpenseSummary)
			expenses.GET("/export", api.ExportExpenses)
			expenses.POST("", api.CreateExpense)
			expenses.PUT("/:id", api.UpdateExpense)
			expenses.DELETE("/:id", api.DeleteExpense)
		}

		planner := apiGroup.Group("/planner")
		{
			planner.GET("/slots", api.GetPlannerSlots)
			planner.GET("/current", api.GetPlannerCurrent)
			planner.PUT("/slots/:position", api.UpdatePlannerSlot)
			planner.POST("/slots/:position/toggle", api.TogglePlannerSlot)
			planner.POST("/clear", api.ClearPlanner)
		}

		pomodoro := apiGroup.Group("/pomodoro")
		{
			pomodoro.GET("", api.GetPomodoroState)
			pomodoro.POST("/timer", api.SetPomodoroTimer)
			pomodoro.POST("/start", api.StartPomodoro)
			pomodoro.POST("/pause", api.PausePomodoro)
			pomodoro.POST("/resume", api.ResumePomodoro)
			pomodoro.POST("/stop", api.StopPomodoro)
			pomodoro.GET("/sessions", api.ListPomodoroSessions)
			pomodoro.DELETE("/sessions/:id", api.DeletePomodoroSession)
		}

		dsa := apiGroup.Group("/dsa")
		{
			dsa.GET("/logs", api.ListDSALogs)
			dsa.GET("/calendar", api.GetDSACalendar)
			dsa.POST("/logs", api.CreateDSARecord)
			dsa.PUT("/logs/:id", api.UpdateDSARecord)
			dsa.DELETE("/logs/:id", api.DeleteDSARecord)
		}

		categories := apiGroup.Group("/categories")
		{
			categories.GET("/:feature", api.ListCategories)
			categories.POST("/:feature", api.AddCategory)
			categories.DELETE("/:feature", api.DeleteCategory)
		}
	}

	return r
}
