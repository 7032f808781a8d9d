package dialog

// Surface is the presentation state the controller drives.
// Every method must tolerate ids that do not resolve to an element.
//
//nolint:interfacebloat // mirrors the page operations a dialog needs
type Surface interface {
	// Exists reports whether a dialog surface with id is mounted.
	Exists(id string) bool
	Show(id string)
	Hide(id string)
	// Remove unmounts a dialog surface entirely.
	Remove(id string)
	// RemoveBackdrops unmounts every transient backdrop element.
	RemoveBackdrops()
	// RemoveAll unmounts every dialog-related element, tracked or not.
	RemoveAll()
	// Visible lists dialog-related elements currently shown, in mount order.
	Visible() []string
	SetScrollLock(locked bool)
	// BindClose attaches onClose to the close triggers inside dialog id.
	// The returned func detaches exactly that binding.
	BindClose(id string, onClose func()) (unbind func())
}
