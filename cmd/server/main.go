package main

import (
	"log"
	"time"

	"github.com/focuslog/internal/config"
	"github.com/focuslog/internal/db"
	"github.com/focuslog/internal/handler"
	"github.com/focuslog/internal/router"
	"github.com/focuslog/internal/service"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	api := handler.NewAPI(db.DB, cfg.ExportDir, cfg.PomodoroDefaultMinutes)

	// 秒级任务驱动番茄钟倒数，分钟级任务刷新计划表当前时段
	scheduler := service.NewSchedulerService(time.Local)
	if _, err := scheduler.ScheduleInterval(time.Second, func() {
		if err := api.Pomodoro().Tick(); err != nil {
			log.Printf("pomodoro tick: %v", err)
		}
	}); err != nil {
		log.Fatalf("failed to schedule pomodoro tick: %v", err)
	}
	if _, err := scheduler.ScheduleInterval(time.Minute, func() {
		api.Planner().RefreshCurrent(time.Now().In(time.Local))
	}); err != nil {
		log.Fatalf("failed to schedule planner refresh: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// 设置并运行 Gin 服务器
	r := router.Setup(api, cfg.SessionSecret)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
