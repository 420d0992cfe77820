// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

// InitLogger sets up Apex with a custom handler and a log level from the
// DISKCACHE_LOG env variable. The default is WARN so settings file warnings
// reach the user.
func InitLogger() {
	level := strings.ToUpper(os.Getenv("DISKCACHE_LOG"))
	if level == "" {
		level = "WARN"
	}
	log.SetHandler(NewHandler(os.Stderr))

	// An unknown level would panic in SetLevelFromString.
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = log.WarnLevel
	}
	log.SetLevel(lvl)
}

// Area returns an entry tagged with the given trace area, e.g. CACHE. A nil
// logger falls back to the package-level Apex logger.
func Area(logger log.Interface, area string) *log.Entry {
	if logger == nil {
		logger = log.Log
	}
	return logger.WithField("area", area)
}

// OrDefault returns logger, or the package-level Apex logger when nil.
func OrDefault(logger log.Interface) log.Interface {
	if logger == nil {
		return log.Log
	}
	return logger
}

// CustomHandler formats log messages and writes them to w. Stdout is kept
// free for command results, so InitLogger points it at stderr.
type CustomHandler struct {
	mu sync.Mutex
	w  io.Writer
}

// NewHandler returns a CustomHandler writing to w.
func NewHandler(w io.Writer) *CustomHandler {
	return &CustomHandler{w: w}
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	level := strings.ToUpper(e.Level.String())

	var b strings.Builder
	fmt.Fprintf(&b, "%s %.1s %s", timestamp, level, e.Message)

	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, " %s=%v", name, e.Fields[name])
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(h.w, b.String())
	return err
}
