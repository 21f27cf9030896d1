package logger

import (
	"sync"
)

// Component names of the procout loggers. The launcher looks itself up
// under its configured name, which defaults to ComponentProcess.
const (
	ComponentProcess  = "process"
	ComponentOutput   = "output"
	ComponentProvider = "provider"
)

// DefaultComponents are the loggers seeded by RegisterDefaults when it is
// called without names.
var DefaultComponents = []string{ComponentProcess, ComponentOutput, ComponentProvider}

// registry is the global named-logger registry.
var registry = &loggerRegistry{
	loggers: make(map[string]*Logger),
}

type loggerRegistry struct {
	mu      sync.RWMutex
	loggers map[string]*Logger
}

// Register stores a named logger in the registry.
func Register(name string, l *Logger) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.loggers[name] = l
}

// Get retrieves a named logger. If the name is not registered it returns the
// global logger tagged with the requested component name.
func Get(name string) *Logger {
	registry.mu.RLock()
	l, ok := registry.loggers[name]
	registry.mu.RUnlock()
	if ok {
		return l
	}
	return GetGlobalLogger().WithComponent(name)
}

// RegisterDefaults registers component loggers derived from the global
// logger, replacing earlier registrations of the same names. Without names
// it seeds DefaultComponents. Call it after Init.
func RegisterDefaults(names ...string) {
	if len(names) == 0 {
		names = DefaultComponents
	}
	for _, name := range names {
		Register(name, GetGlobalLogger().WithComponent(name))
	}
}
