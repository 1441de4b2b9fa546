package lua

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	glua "github.com/yuin/gopher-lua"
)

func TestSandboxRemovesLoaders(t *testing.T) {
	state := NewState()
	defer state.Close()

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		assert.Equal(t, glua.LNil, state.GetGlobal(name), name)
	}
}

func TestSandboxLibraries(t *testing.T) {
	state := NewState()
	defer state.Close()

	for _, name := range []string{"string", "table", "math"} {
		assert.NotEqual(t, glua.LNil, state.GetGlobal(name), name)
	}
	for _, name := range []string{"io", "os", "debug"} {
		assert.Equal(t, glua.LNil, state.GetGlobal(name), name)
	}
}

func TestSandboxSafeRequire(t *testing.T) {
	state := NewState()
	defer state.Close()

	require.NoError(t, state.DoString(`local s = require("string"); r = s.upper("a")`))
	assert.Equal(t, glua.LString("A"), state.GetGlobal("r"))

	for _, mod := range []string{"io", "os", "debug", "somefile"} {
		err := state.DoString(`require("` + mod + `")`)
		assert.ErrorContains(t, err, "is not available", mod)
	}
}

func TestSandboxPreloadedModule(t *testing.T) {
	state := NewState()
	defer state.Close()

	state.L.PreloadModule("layouts", func(L *glua.LState) int {
		mod := L.NewTable()
		mod.RawSetString("name", glua.LString("qwerty"))
		L.Push(mod)
		return 1
	})
	require.NoError(t, state.DoString(`r = require("layouts").name`))
	assert.Equal(t, glua.LString("qwerty"), state.GetGlobal("r"))
}
