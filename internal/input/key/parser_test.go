package key

import (
	"errors"
	"testing"
)

func TestParseAttributedString(t *testing.T) {
	tests := []struct {
		def  string
		want Value
	}{
		{":str:'Foo'", MakeString("Foo", 0)},
		{":str flags='dim':'Foo'", MakeString("Foo", FlagSecondary)},
		{":str symbol='Symbol':'Foo'", MakeStringSymbol("Foo", "Symbol", 0)},
		{":str symbol='Symbol' flags='dim':'Foo'", MakeStringSymbol("Foo", "Symbol", FlagSecondary)},
		{":str flags='dim,small':'Foo'", MakeString("Foo", FlagSecondary|FlagSmallerFont)},
		{":str flags=',,':'Foo'", MakeString("Foo", 0)},
		{":str:'It\\'s'", MakeString("It's", 0)},
	}

	for _, tt := range tests {
		got, err := Parse(tt.def)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.def, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("Parse(%q) = %v, want %v", tt.def, got, tt.want)
		}
	}
}

func TestParseAttributedChar(t *testing.T) {
	tests := []struct {
		def  string
		want Value
	}{
		{":char symbol='a':b", MakeCharSymbol('b', "a", 0)},
		{":char:b", MakeCharSymbol('b', "b", 0)},
		{":char:é", MakeChar('é')},
		{":keyevent:66", MakeKeyevent("66", KeycodeEnter, 0)},
		{":keyevent symbol='⏎':66", MakeKeyevent("⏎", KeycodeEnter, 0)},
	}

	for _, tt := range tests {
		got, err := Parse(tt.def)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.def, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("Parse(%q) = %v, want %v", tt.def, got, tt.want)
		}
	}
}

func TestParseAttributedErrors(t *testing.T) {
	defs := []string{
		":unknown:Foo",
		":str:Foo",
		":str flags:'Foo'",
		":str flags=dim:'Foo'",
		":str unknown='foo':'Foo'",
		":str flags='bold':'Foo'",
		":str",
		":str ",
		":str flags",
		":str flags=",
		":str flags='",
		":str flags='' ",
		":str flags='':",
		":str flags='':'",
		":char:",
		":char:ab",
		":keyevent:x",
		":",
		":str:'Foo' trailing",
	}

	for _, def := range defs {
		v, err := Parse(def)
		if err == nil {
			t.Errorf("Parse(%q) = %v, want error", def, v)
			continue
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("Parse(%q) error %T is not a *ParseError", def, err)
		}
		if !errors.Is(err, ErrInvalidSpec) {
			t.Errorf("Parse(%q) error should wrap ErrInvalidSpec", def)
		}
	}
}

func TestParseActions(t *testing.T) {
	tab := mod("tab")
	tests := []struct {
		def  string
		want Value
	}{
		{"⇥:tab", tab.WithSymbol("⇥")},
		{"Ω:'omega'", MakeStringSymbol("omega", "Ω", 0).WithFlags(0)},
		{"a:b", MakeCharSymbol('b', "a", 0)},
		{"љ:q", MakeCharSymbol('q', "љ", 0)},
		{"E:keyevent:33", MakeKeyevent("E", 33, 0)},
		{"C:ctrl,'c'", MakeMacro("C", []Value{mod("ctrl"), MakeChar('c')}, 0)},
		{"x:a\\,b", MakeStringSymbol("a,b", "x", 0)},
		{"ab:keyevent:29,keyevent:30", MakeMacro("ab", []Value{MakeKeyevent("29", 29, 0), MakeKeyevent("30", 30, 0)}, 0)},
	}

	for _, tt := range tests {
		got, err := Parse(tt.def)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.def, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("Parse(%q) = %v, want %v", tt.def, got, tt.want)
		}
	}
}

func TestParseActionErrors(t *testing.T) {
	defs := []string{
		"a:",
		"a:b,",
		"a:,b",
		"a:'b",
		"a:'b'c",
		"a:keyevent:",
		"a:keyevent:x",
		"a:b'c'",
	}

	for _, def := range defs {
		if v, err := Parse(def); err == nil {
			t.Errorf("Parse(%q) = %v, want error", def, v)
		}
	}
}

func TestParseNames(t *testing.T) {
	tests := []struct {
		def  string
		kind Kind
	}{
		{"shift", KindModifier},
		{"enter", KindKeyevent},
		{"compose", KindComposePending},
		{"cursor_left", KindSlider},
		{"copy", KindEditing},
		{"removed", KindPlaceholder},
		{"config", KindEvent},
		{"a", KindChar},
		{"foo", KindString},
		{"ㄱ", KindHangulInitial},
		{"f12", KindKeyevent},
	}

	for _, tt := range tests {
		got, err := Parse(tt.def)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.def, err)
			continue
		}
		if got.Kind() != tt.kind {
			t.Errorf("Parse(%q).Kind() = %v, want %v", tt.def, got.Kind(), tt.kind)
		}
	}
}

func TestByNameFallsBackToString(t *testing.T) {
	tests := []struct {
		name string
		want Value
	}{
		{":", MakeChar(':')},
		{":str", MakeString(":str", 0)},
		{"a:", MakeString("a:", 0)},
		{"shift", mod("shift")},
	}

	for _, tt := range tests {
		if got := ByName(tt.name); !got.Equal(tt.want) {
			t.Errorf("ByName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNameOf(t *testing.T) {
	for _, name := range []string{"shift", "enter", "cursor_left", "compose_cancel", "undo", "f5", "capslock"} {
		got, ok := NameOf(mod(name))
		if !ok || got != name {
			t.Errorf("NameOf(%s) = %q, %v", name, got, ok)
		}
	}
	if _, ok := NameOf(MakeChar('a')); ok {
		t.Errorf("characters should have no name")
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on invalid input")
		}
	}()
	MustParse(":str")
}

func TestParseErrorMessage(t *testing.T) {
	_, err := Parse(":str flags='bold':'Foo'")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if pe.Pos != 5 {
		t.Errorf("Pos = %d, want 5", pe.Pos)
	}
	if pe.Input != ":str flags='bold':'Foo'" {
		t.Errorf("Input = %q", pe.Input)
	}
}
