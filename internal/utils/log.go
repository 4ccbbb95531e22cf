// Package utils
package utils

import (
	"log"
	"os"
	"path/filepath"
	"sync"
)

var (
	logger *log.Logger
	once   sync.Once
)

func GetLogger() *log.Logger {
	once.Do(func() {
		if err := os.MkdirAll("logs", 0o755); err != nil {
			log.Fatal(err)
		}
		file, err := os.OpenFile(filepath.Join("logs", "bot.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Fatal(err)
		}
		logger = log.New(file, "Futbot: ", log.LstdFlags)
	})
	return logger
}
