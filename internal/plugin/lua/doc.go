// Package lua runs user key scripts with gopher-lua.
//
// A key script defines a global modify_key function. It is called with the
// key being resolved and the active modifiers before the built-in modifier
// rules run:
//
//	function modify_key(k, mods)
//	  if k.char == "q" and mods.ctrl then
//	    return "esc"
//	  end
//	end
//
// k has the fields kind, symbol, char, keyevent and name. mods is a set of
// modifier names. Returning nil keeps the built-in behavior, false or ""
// types nothing and a string is read as a key definition.
//
// # Sandbox
//
// Scripts only see the base, string, table and math libraries. dofile,
// loadfile, load and loadstring are removed and require only returns safe
// built-in modules. Each call runs under a timeout.
//
// The global swipekey table exposes log(message), which writes to the
// hook's logger.
package lua
