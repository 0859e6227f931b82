package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding the shell reacts to. Screens pick the subset
// they need.
type KeyMap struct {
	Tab, ShiftTab         key.Binding
	Quit, Back, Help      key.Binding
	Up, Down, Left, Right key.Binding
	Enter                 key.Binding
	Answer                key.Binding
	Share                 key.Binding
	Guess, Erase, NewGame key.Binding
	Calc, Profile         key.Binding
}

func bind(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab:      bind("tab", "next screen", "tab"),
		ShiftTab: bind("shift+tab", "previous screen", "shift+tab"),
		Quit:     bind("q", "quit", "q", "ctrl+c"),
		Back:     bind("esc", "back to menu", "esc"),
		Help:     bind("?", "more keys", "?"),
		Up:       bind("↑/k", "up", "up", "k"),
		Down:     bind("↓/j", "down", "down", "j"),
		Left:     bind("←/h", "left", "left", "h"),
		Right:    bind("→/l", "right", "right", "l"),
		Enter:    bind("enter", "choose", "enter", " "),
		Answer:   bind("1-4", "pick answer", "1", "2", "3", "4"),
		Share:    bind("s", "copy share text", "s"),
		Guess:    bind("enter", "submit guess", "enter"),
		Erase:    bind("backspace", "delete letter", "backspace"),
		NewGame:  bind("n", "new round", "n"),
		Calc:     bind("c", "price in hours", "c"),
		Profile:  bind("p", "profile", "p"),
	}
}
