package lua

import (
	lua "github.com/yuin/gopher-lua"
)

// Sandbox restricts what scripts can reach.
type Sandbox struct {
	L *lua.LState
}

// NewSandbox creates a sandbox for the Lua state.
func NewSandbox(L *lua.LState) *Sandbox {
	return &Sandbox{L: L}
}

// safeModules are the modules require may return.
var safeModules = map[string]bool{
	"string": true,
	"table":  true,
	"math":   true,
}

// Install removes the functions that load code from outside the state and
// replaces require with a whitelist.
func (s *Sandbox) Install() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		s.L.SetGlobal(name, lua.LNil)
	}
	s.installSafeRequire()
}

// installSafeRequire clears package.path and package.cpath and only lets
// require return built-in safe modules or modules preloaded by the host.
func (s *Sandbox) installSafeRequire() {
	if pkg, ok := s.L.GetGlobal("package").(*lua.LTable); ok {
		s.L.SetField(pkg, "path", lua.LString(""))
		s.L.SetField(pkg, "cpath", lua.LString(""))
	}

	originalRequire := s.L.GetGlobal("require")
	s.L.SetGlobal("require", s.L.NewFunction(func(L *lua.LState) int {
		modName := L.CheckString(1)
		if !safeModules[modName] && !s.preloaded(modName) {
			L.RaiseError("module %q is not available", modName)
			return 0
		}
		L.Push(originalRequire)
		L.Push(lua.LString(modName))
		L.Call(1, 1)
		return 1
	}))
}

func (s *Sandbox) preloaded(name string) bool {
	pkg, ok := s.L.GetGlobal("package").(*lua.LTable)
	if !ok {
		return false
	}
	preload, ok := s.L.GetField(pkg, "preload").(*lua.LTable)
	if !ok {
		return false
	}
	return preload.RawGetString(name) != lua.LNil
}
