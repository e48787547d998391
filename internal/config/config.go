package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr             string
	Port                   string
	DatabasePath           string
	SessionSecret          string
	GinMode                string
	ExportDir              string
	PomodoroDefaultMinutes int
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "focuslog.db"
	}

	sessionSecret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if sessionSecret == "" {
		sessionSecret = "focuslog-dev-secret"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	exportDir := strings.TrimSpace(os.Getenv("EXPORT_DIR"))
	if exportDir == "" {
		exportDir = "exports"
	}

	pomodoroMinutes := 25
	if raw := strings.TrimSpace(os.Getenv("POMODORO_DEFAULT_MINUTES")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 1 && parsed <= 480 {
			pomodoroMinutes = parsed
		}
	}

	return AppConfig{
		ListenAddr:             listenAddr,
		Port:                   port,
		DatabasePath:           databasePath,
		SessionSecret:          sessionSecret,
		GinMode:                ginMode,
		ExportDir:              exportDir,
		PomodoroDefaultMinutes: pomodoroMinutes,
	}
}
