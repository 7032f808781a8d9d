package tui

// Key bindings.
const (
	keyQuit       = "q"
	keyInterrupt  = "ctrl+c"
	keyUp         = "up"
	keyUpAlt      = "k"
	keyDown       = "down"
	keyDownAlt    = "j"
	keyOpen       = "enter"
	keyChart      = "c"
	keySearch     = "/"
	keyCategory   = "g"
	keyCity       = "t"
	keyStatus     = "s"
	keyAwards     = "a"
	keySort       = "o"
	keyReset      = "r"
	keyDismiss    = "esc"
	keyCloseBtn   = "x"
	keyBackdrop   = "b"
	keyForceClose = "ctrl+x"
	keyReload     = "ctrl+r"
	keyBackspace  = "backspace"
)

const (
	helpMain   = "↑/↓ move • enter details • c chart • / search • g category • t city • s status • a awards • o sort • r reset • q quit"
	helpDialog = "esc close top • x close button • b click backdrop • c chart • ctrl+x close all"
	helpSearch = "type to search • enter/esc done"
)
