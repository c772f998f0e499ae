package scripting_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/tickworld/ecs"
	"github.com/plus3/tickworld/scripting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, src string) *scripting.Engine {
	t.Helper()
	engine := scripting.NewEngine(nil)
	t.Cleanup(engine.Close)
	require.NoError(t, engine.LoadString(src))
	return engine
}

func TestLuaSystemCreatesAndWrites(t *testing.T) {
	engine := newEngine(t, `
spawned = 0
function process(dt)
  local i, t = world.create()
  world.set(i, t, "hp", 100 * dt)
  spawned = spawned + 1
end
`)
	w := ecs.NewWorld()
	_, err := ecs.AddSystem(w, scripting.NewLuaSystem(engine, 0))
	require.NoError(t, err)

	w.SetDelta(0.5)
	w.Update()
	w.Update()

	assert.Equal(t, float64(2), engine.Global("spawned"))

	var hp []float64
	for _, v := range ecs.Each[scripting.Values](w) {
		hp = append(hp, v.Fields["hp"])
	}
	assert.Equal(t, []float64{50, 50}, hp)
}

func TestLuaSystemReadsAndDestroys(t *testing.T) {
	engine := newEngine(t, `
function process(dt)
  world.each(function(i, t)
    local hp = world.get(i, t, "hp") - 1
    world.set(i, t, "hp", hp)
    if hp <= 0 then
      world.destroy(i, t)
    end
  end)
end
`)
	w := ecs.NewWorld()
	weak := w.CreateEntity()
	strong := w.CreateEntity()
	_, err := ecs.AddComponent(w, weak, scripting.Values{Fields: map[string]float64{"hp": 1}})
	require.NoError(t, err)
	_, err = ecs.AddComponent(w, strong, scripting.Values{Fields: map[string]float64{"hp": 3}})
	require.NoError(t, err)

	_, err = ecs.AddSystem(w, scripting.NewLuaSystem(engine, 0))
	require.NoError(t, err)

	w.Update()
	assert.True(t, w.IsLiving(weak), "destruction applies on the next update")
	w.Update()
	assert.False(t, w.IsLiving(weak))
	assert.True(t, w.IsLiving(strong))

	v, err := ecs.GetComponent[scripting.Values](w, strong)
	require.NoError(t, err)
	assert.Equal(t, float64(1), v.Fields["hp"])
}

func TestLuaSystemQueries(t *testing.T) {
	engine := newEngine(t, `
function process(dt)
  living = world.is_living(0, 0)
  stale = world.is_living(0, 9)
  missing = world.get(0, 0, "nope") == nil
  rejected = not world.set(0, 9, "x", 1)
  step = world.delta()
end
`)
	w := ecs.NewWorld()
	w.CreateEntity()
	_, err := ecs.AddSystem(w, scripting.NewLuaSystem(engine, 0))
	require.NoError(t, err)

	w.SetDelta(0.125)
	w.Update()

	assert.Equal(t, true, engine.Global("living"))
	assert.Equal(t, false, engine.Global("stale"))
	assert.Equal(t, true, engine.Global("missing"))
	assert.Equal(t, true, engine.Global("rejected"))
	assert.Equal(t, 0.125, engine.Global("step"))
}

func TestLuaSystemRejectsOutOfRangeHandles(t *testing.T) {
	engine := newEngine(t, `
function process(dt)
  wide_ok = pcall(world.is_living, 4294967296, 0)
  negative_ok = pcall(world.get, -1, 0, "hp")
  fraction_ok = pcall(world.destroy, 0.5, 0)
  max_ok, max_living = pcall(world.is_living, 4294967295, 0)
  world.is_living(4294967296, 0)
end
`)
	w := ecs.NewWorld()
	e := w.CreateEntity()
	s, err := ecs.AddSystem(w, scripting.NewLuaSystem(engine, 0))
	require.NoError(t, err)

	w.Update()

	assert.Equal(t, false, engine.Global("wide_ok"))
	assert.Equal(t, false, engine.Global("negative_ok"))
	assert.Equal(t, false, engine.Global("fraction_ok"))
	assert.Equal(t, true, engine.Global("max_ok"))
	assert.Equal(t, false, engine.Global("max_living"))
	assert.Equal(t, 1, s.Errors())

	w.Update()
	assert.True(t, w.IsLiving(e))
}

func TestLuaSystemErrorsDoNotAbortFrame(t *testing.T) {
	engine := newEngine(t, `
function process(dt)
  error("boom")
end
`)
	w := ecs.NewWorld()
	s, err := ecs.AddSystem(w, scripting.NewLuaSystem(engine, 0))
	require.NoError(t, err)

	assert.NotPanics(t, w.Update)
	assert.NotPanics(t, w.Update)
	assert.Equal(t, 2, s.Errors())
}

func TestLuaSystemRequiresFunction(t *testing.T) {
	engine := newEngine(t, `x = 1`)
	w := ecs.NewWorld()

	_, err := ecs.AddSystem(w, scripting.NewLuaSystem(engine, 0))
	assert.ErrorContains(t, err, "process")

	_, err = ecs.GetSystem[*scripting.LuaSystem](w)
	assert.ErrorIs(t, err, ecs.ErrNotRegistered)
}

func TestLuaSystemUnregisterClearsWorld(t *testing.T) {
	engine := newEngine(t, `function process(dt) end`)
	w := ecs.NewWorld()
	_, err := ecs.AddSystem(w, scripting.NewLuaSystem(engine, 0))
	require.NoError(t, err)

	require.NoError(t, engine.LoadString(`bound = world ~= nil`))
	assert.Equal(t, true, engine.Global("bound"))

	ecs.RemoveSystem[*scripting.LuaSystem](w)
	require.NoError(t, engine.LoadString(`bound = world ~= nil`))
	assert.Equal(t, false, engine.Global("bound"))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.lua"), []byte(`order = order .. "b"`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.lua"), []byte(`order = "a"`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`not lua`), 0o644))

	engine := scripting.NewEngine(nil)
	defer engine.Close()

	require.NoError(t, engine.LoadDir(dir))
	assert.Equal(t, "ab", engine.Global("order"))

	assert.NoError(t, engine.LoadDir(filepath.Join(dir, "missing")))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.lua"), []byte(`this is not lua`), 0o644))
	assert.ErrorContains(t, engine.LoadDir(dir), "c.lua")
}
