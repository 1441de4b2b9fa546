package key

import "strconv"

// Event is an application-level event raised by a key.
type Event uint8

const (
	// EventNone is the zero Event.
	EventNone Event = iota
	EventConfig
	EventSwitchText
	EventSwitchNumeric
	EventSwitchEmoji
	EventSwitchBackEmoji
	EventSwitchForward
	EventSwitchBackward
	EventSwitchGreekmath
	EventSwitchClipboard
	EventChangeMethod
	EventChangeMethodPrev
	EventChangeMethodPicker
	EventChangeMethodAuto
	EventAction
	EventCapsLock
	EventVoiceTyping
	EventVoiceTypingChooser
)

var eventNames = [...]string{
	EventNone:               "none",
	EventConfig:             "config",
	EventSwitchText:         "switch_text",
	EventSwitchNumeric:      "switch_numeric",
	EventSwitchEmoji:        "switch_emoji",
	EventSwitchBackEmoji:    "switch_back_emoji",
	EventSwitchForward:      "switch_forward",
	EventSwitchBackward:     "switch_backward",
	EventSwitchGreekmath:    "switch_greekmath",
	EventSwitchClipboard:    "switch_clipboard",
	EventChangeMethod:       "change_method",
	EventChangeMethodPrev:   "change_method_prev",
	EventChangeMethodPicker: "change_method_picker",
	EventChangeMethodAuto:   "change_method_auto",
	EventAction:             "action",
	EventCapsLock:           "capslock",
	EventVoiceTyping:        "voice_typing",
	EventVoiceTypingChooser: "voice_typing_chooser",
}

// String returns the event's key name.
func (e Event) String() string {
	if int(e) < len(eventNames) {
		return eventNames[e]
	}
	return "Event(" + strconv.Itoa(int(e)) + ")"
}

// Editing is a text editing action performed by the host.
type Editing uint8

const (
	// EditingNone is the zero Editing.
	EditingNone Editing = iota
	EditingCopy
	EditingPaste
	EditingCut
	EditingSelectAll
	EditingPastePlain
	EditingUndo
	EditingRedo
	EditingDeleteWord
	EditingForwardDeleteWord
	EditingSelectionCancel
)

var editingNames = [...]string{
	EditingNone:              "none",
	EditingCopy:              "copy",
	EditingPaste:             "paste",
	EditingCut:               "cut",
	EditingSelectAll:         "selectAll",
	EditingPastePlain:        "pasteAsPlainText",
	EditingUndo:              "undo",
	EditingRedo:              "redo",
	EditingDeleteWord:        "delete_word",
	EditingForwardDeleteWord: "forward_delete_word",
	EditingSelectionCancel:   "selection_cancel",
}

// String returns the action's key name.
func (e Editing) String() string {
	if int(e) < len(editingNames) {
		return editingNames[e]
	}
	return "Editing(" + strconv.Itoa(int(e)) + ")"
}

// Placeholder is a key that produces nothing.
type Placeholder uint8

const (
	// PlaceholderNone is the zero Placeholder.
	PlaceholderNone Placeholder = iota
	PlaceholderRemoved
	PlaceholderComposeCancel
	PlaceholderF11
	PlaceholderF12
	PlaceholderShindot
	PlaceholderSindot
	PlaceholderOle
	PlaceholderMeteg
)

var placeholderNames = [...]string{
	PlaceholderNone:          "none",
	PlaceholderRemoved:       "removed",
	PlaceholderComposeCancel: "compose_cancel",
	PlaceholderF11:           "f11_placeholder",
	PlaceholderF12:           "f12_placeholder",
	PlaceholderShindot:       "shindot",
	PlaceholderSindot:        "sindot",
	PlaceholderOle:           "ole",
	PlaceholderMeteg:         "meteg",
}

// String returns the placeholder's key name.
func (p Placeholder) String() string {
	if int(p) < len(placeholderNames) {
		return placeholderNames[p]
	}
	return "Placeholder(" + strconv.Itoa(int(p)) + ")"
}

// Slider is a key that moves the cursor while the pointer slides.
type Slider uint8

const (
	// SliderNone is the zero Slider.
	SliderNone Slider = iota
	SliderCursorLeft
	SliderCursorRight
	SliderCursorUp
	SliderCursorDown
	SliderSelectionLeft
	SliderSelectionRight
)

var sliderNames = [...]string{
	SliderNone:           "none",
	SliderCursorLeft:     "cursor_left",
	SliderCursorRight:    "cursor_right",
	SliderCursorUp:       "cursor_up",
	SliderCursorDown:     "cursor_down",
	SliderSelectionLeft:  "selection_cursor_left",
	SliderSelectionRight: "selection_cursor_right",
}

// String returns the slider's key name.
func (s Slider) String() string {
	if int(s) < len(sliderNames) {
		return sliderNames[s]
	}
	return "Slider(" + strconv.Itoa(int(s)) + ")"
}
