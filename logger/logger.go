package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

// Init sends log output to stdout and to a daily file inside dir.
// When the file cannot be opened logging continues on stdout only.
func Init(dir string) {
	if dir == "" {
		dir = filepath.Join("log", "app")
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		fmt.Println("❌ Could not create log directory:", err)
		return
	}

	fileName := filepath.Join(dir, fmt.Sprintf("app_%s.log", time.Now().Format("02-01-2006")))
	logFile, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		fmt.Println("❌ Could not open log file:", err)
		return
	}
	log.SetOutput(io.MultiWriter(os.Stdout, logFile))
	log.SetLevel(log.LevelInfo)
	log.Info("🚀 Logger initialized successfully!")
}

func Success(message string) {
	log.Info("✅ " + message)
}

func Error(message string, err error) {
	if err != nil {
		log.Error("❌ " + message + ": " + err.Error())
	} else {
		log.Error("❌ " + message)
	}
}

func Warning(message string) {
	log.Warn("⚠️ " + message)
}

func Debug(message string) {
	log.Debug("🐛 " + message)
}

func Info(message string) {
	log.Info("ℹ️ " + message)
}
