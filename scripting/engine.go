// Package scripting runs Lua game logic against an ecs.World.
package scripting

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/rotisserie/eris"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM.
// Single-goroutine access only (the goroutine that runs World.Update).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a VM with the standard Lua libraries opened.
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	return &Engine{vm: vm, log: log}
}

// LoadDir runs every .lua file in dir in name order. A missing directory is
// not an error.
func (e *Engine) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return eris.Wrapf(err, "read script dir %s", dir)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		names = append(names, entry.Name())
	}
	slices.Sort(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := e.vm.DoFile(path); err != nil {
			return eris.Wrapf(err, "load %s", path)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// LoadString runs a chunk of Lua source.
func (e *Engine) LoadString(src string) error {
	if err := e.vm.DoString(src); err != nil {
		return eris.Wrap(err, "load lua chunk")
	}
	return nil
}

// HasFunction reports whether a global function with the given name exists.
func (e *Engine) HasFunction(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// Global returns a global value converted to a Go number, string or bool.
// Other values yield nil.
func (e *Engine) Global(name string) any {
	switch v := e.vm.GetGlobal(name).(type) {
	case lua.LNumber:
		return float64(v)
	case lua.LString:
		return string(v)
	case lua.LBool:
		return bool(v)
	default:
		return nil
	}
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}
