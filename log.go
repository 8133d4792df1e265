package main

import (
	"log"
	"os"
	"strings"
)

var currentLogLevel logLevel = logLevelInfo

type logLevel int

const (
	logLevelDebug logLevel = iota
	logLevelInfo
	logLevelWarn
)

func setLogLevelFromEnv() {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "verbose", "debug":
		currentLogLevel = logLevelDebug
	case "warning", "warn":
		currentLogLevel = logLevelWarn
	case "info", "":
		currentLogLevel = logLevelInfo
	default:
		currentLogLevel = logLevelInfo
		log.Printf("WARN: unknown LOG_LEVEL, defaulting to info\n")
	}
}

func logDebugf(format string, a ...interface{}) {
	if currentLogLevel <= logLevelDebug {
		log.Printf("DEBUG: "+format, a...)
	}
}

func logInfof(format string, a ...interface{}) {
	if currentLogLevel <= logLevelInfo {
		log.Printf("INFO: "+format, a...)
	}
}

func logWarnf(format string, a ...interface{}) {
	if currentLogLevel <= logLevelWarn {
		log.Printf("WARN: "+format, a...)
	}
}
