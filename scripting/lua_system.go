package scripting

import (
	"math"

	"github.com/plus3/tickworld/ecs"
	"github.com/rotisserie/eris"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Values is a bag of named numbers that Lua scripts read and write through
// world.get and world.set.
type Values struct {
	Fields map[string]float64
}

// DefaultFunction is the global Lua function a LuaSystem calls each frame.
const DefaultFunction = "process"

// LuaSystem calls a global Lua function once per frame with the frame delta.
// While registered, a global "world" table exposes the owning World:
//
//	world.create()             -> index, token
//	world.destroy(i, t)
//	world.is_living(i, t)      -> bool
//	world.delta()              -> number
//	world.set(i, t, key, n)    -> bool
//	world.get(i, t, key)       -> number or nil
//	world.each(fn)             calls fn(i, t) for entities with values
//
// Script errors are logged and counted; they never abort the frame.
type LuaSystem struct {
	ecs.Order
	ecs.Toggle

	// Function is the global called each frame. Defaults to DefaultFunction.
	Function string

	engine *Engine
	errors int
}

// NewLuaSystem creates a LuaSystem running scripts loaded into engine.
func NewLuaSystem(engine *Engine, priority int) *LuaSystem {
	return &LuaSystem{
		Order:    ecs.Order(priority),
		Function: DefaultFunction,
		engine:   engine,
	}
}

// Errors returns how many frames ended in a script error.
func (s *LuaSystem) Errors() int {
	return s.errors
}

func (s *LuaSystem) OnRegistered(w *ecs.World) error {
	if s.Function == "" {
		s.Function = DefaultFunction
	}
	if !s.engine.HasFunction(s.Function) {
		return eris.Errorf("lua function %s not defined", s.Function)
	}
	s.engine.vm.SetGlobal("world", s.bindWorld(w))
	return nil
}

func (s *LuaSystem) OnUnregistered(w *ecs.World) {
	s.engine.vm.SetGlobal("world", lua.LNil)
}

func (s *LuaSystem) Process(frame *ecs.UpdateFrame) {
	vm := s.engine.vm
	err := vm.CallByParam(lua.P{
		Fn:      vm.GetGlobal(s.Function),
		NRet:    0,
		Protect: true,
	}, lua.LNumber(frame.DeltaTime))
	if err != nil {
		s.errors++
		s.engine.log.Error("lua system error",
			zap.String("function", s.Function),
			zap.Uint64("frame", frame.Index),
			zap.Error(err))
	}
}

func checkEntity(L *lua.LState, first int) ecs.Entity {
	return ecs.Entity{
		Index: checkUint32(L, first),
		Token: checkUint32(L, first+1),
	}
}

// checkUint32 raises an argument error unless argument n is an integer in
// the uint32 range, so out-of-range handles never alias a real entity.
func checkUint32(L *lua.LState, n int) uint32 {
	v := float64(L.CheckNumber(n))
	if v < 0 || v > math.MaxUint32 || v != math.Trunc(v) {
		L.ArgError(n, "entity handle part must be an integer in [0, 4294967295]")
		return 0
	}
	return uint32(v)
}

func (s *LuaSystem) bindWorld(w *ecs.World) *lua.LTable {
	vm := s.engine.vm
	tb := vm.NewTable()
	values := ecs.NewView[Values](w)

	vm.SetFuncs(tb, map[string]lua.LGFunction{
		"create": func(L *lua.LState) int {
			e := w.CreateEntity()
			L.Push(lua.LNumber(e.Index))
			L.Push(lua.LNumber(e.Token))
			return 2
		},
		"destroy": func(L *lua.LState) int {
			w.DestroyEntity(checkEntity(L, 1))
			return 0
		},
		"is_living": func(L *lua.LState) int {
			L.Push(lua.LBool(w.IsLiving(checkEntity(L, 1))))
			return 1
		},
		"delta": func(L *lua.LState) int {
			L.Push(lua.LNumber(w.Delta()))
			return 1
		},
		"set": func(L *lua.LState) int {
			e := checkEntity(L, 1)
			key := L.CheckString(3)
			n := float64(L.CheckNumber(4))

			if !w.IsLiving(e) {
				L.Push(lua.LFalse)
				return 1
			}
			v := values.Get(e)
			if v == nil {
				added, err := ecs.AddComponent(w, e, Values{Fields: make(map[string]float64)})
				if err != nil {
					L.RaiseError("%s", err.Error())
					return 0
				}
				v = added
			}
			if v.Fields == nil {
				v.Fields = make(map[string]float64)
			}
			v.Fields[key] = n
			L.Push(lua.LTrue)
			return 1
		},
		"get": func(L *lua.LState) int {
			e := checkEntity(L, 1)
			key := L.CheckString(3)

			v := values.Get(e)
			if v == nil {
				L.Push(lua.LNil)
				return 1
			}
			n, ok := v.Fields[key]
			if !ok {
				L.Push(lua.LNil)
				return 1
			}
			L.Push(lua.LNumber(n))
			return 1
		},
		"each": func(L *lua.LState) int {
			fn := L.CheckFunction(1)
			// Collect first so the callback may create or destroy entities.
			var entities []ecs.Entity
			for e := range values.All() {
				entities = append(entities, e)
			}
			for _, e := range entities {
				L.Push(fn)
				L.Push(lua.LNumber(e.Index))
				L.Push(lua.LNumber(e.Token))
				L.Call(2, 0)
			}
			return 0
		},
	})
	return tb
}
