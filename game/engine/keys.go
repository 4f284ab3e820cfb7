package engine

// Key codes for the user-visible bindings. Letters use
// their ASCII values so that per-power-up trigger characters compare
// directly; control and arrow keys sit above the ASCII range.
const (
	KeyUp = 0x100 + iota
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyEscape
	KeyEnter
	Key1
)
