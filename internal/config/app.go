package config

import "os"

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}

func LogFile() string {
	path, ok := os.LookupEnv("MINES_LOG_FILE")
	if !ok || path == "" {
		return "mines.log"
	}
	return path
}
