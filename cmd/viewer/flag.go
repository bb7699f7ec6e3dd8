package main

import (
	"flag"
	"fmt"
	"log/slog"
	"strings"
)

type logLevelFlag struct {
	value slog.Level
}

func (l *logLevelFlag) String() string {
	return l.value.String()
}

func (l *logLevelFlag) Set(value string) error {
	m := map[string]slog.Level{"DEBUG": slog.LevelDebug, "INFO": slog.LevelInfo, "WARN": slog.LevelWarn, "ERROR": slog.LevelError}
	v, ok := m[strings.ToUpper(value)]
	if !ok {
		return fmt.Errorf("unknown log level")
	}
	l.value = v
	return nil
}

// defined flags
var (
	levelFlag   logLevelFlag
	logFileFlag = flag.String("logfile", "", "Also write logs to this file (rotated)")
	configFlag  = flag.String("config", "config/viewer.yaml", "Path to the viewer preferences file")
	autoFlag    = flag.Bool("auto", false, "Show a .ply file without triangles as a point cloud")
)

func init() {
	levelFlag.value = slog.LevelDebug
	flag.Var(&levelFlag, "loglevel", "Log level name: DEBUG, INFO, WARN or ERROR")
}
