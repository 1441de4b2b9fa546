package lua

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	glua "github.com/yuin/gopher-lua"

	"github.com/dshills/swipekey/internal/input/key"
)

func TestBridgeKeyTable(t *testing.T) {
	L := glua.NewState()
	defer L.Close()
	b := NewBridge(L)

	tbl := b.KeyTable(key.MakeChar('a'))
	assert.Equal(t, glua.LString("char"), tbl.RawGetString("kind"))
	assert.Equal(t, glua.LString("a"), tbl.RawGetString("symbol"))
	assert.Equal(t, glua.LString("a"), tbl.RawGetString("char"))
	assert.Equal(t, glua.LNil, tbl.RawGetString("keyevent"))

	enter, ok := key.Special("enter")
	require.True(t, ok)
	tbl = b.KeyTable(enter)
	assert.Equal(t, glua.LString("keyevent"), tbl.RawGetString("kind"))
	assert.Equal(t, glua.LNumber(key.KeycodeEnter), tbl.RawGetString("keyevent"))
	assert.Equal(t, glua.LString("enter"), tbl.RawGetString("name"))

	tbl = b.KeyTable(key.MakeString("hello", 0))
	assert.Equal(t, glua.LString("string"), tbl.RawGetString("kind"))
	assert.Equal(t, glua.LString("hello"), tbl.RawGetString("char"))
}

func TestBridgeModsTable(t *testing.T) {
	L := glua.NewState()
	defer L.Close()
	b := NewBridge(L)

	mods := key.NewModifiers(key.ByName("shift"), key.ByName("ctrl"), key.ByName("compose"))
	tbl := b.ModsTable(mods)
	assert.Equal(t, glua.LTrue, tbl.RawGetString("shift"))
	assert.Equal(t, glua.LTrue, tbl.RawGetString("ctrl"))
	assert.Equal(t, glua.LTrue, tbl.RawGetString("composepending"))
	assert.Equal(t, glua.LNil, tbl.RawGetString("alt"))
}

func TestBridgeToValue(t *testing.T) {
	L := glua.NewState()
	defer L.Close()
	b := NewBridge(L)

	tests := []struct {
		name   string
		in     glua.LValue
		want   key.Value
		ok     bool
		hasErr bool
	}{
		{"nil", glua.LNil, key.None, false, false},
		{"false", glua.LFalse, key.None, true, false},
		{"empty", glua.LString(""), key.None, true, false},
		{"char", glua.LString("x"), key.MakeChar('x'), true, false},
		{"colon", glua.LString(":"), key.MakeChar(':'), true, false},
		{"named", glua.LString("esc"), key.ByName("esc"), true, false},
		{"true", glua.LTrue, key.None, false, true},
		{"number", glua.LNumber(1), key.None, false, true},
		{"bad definition", glua.LString(":str 'x"), key.None, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := b.ToValue(tt.in)
			if tt.hasErr {
				assert.ErrorIs(t, err, ErrBadResult)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}
