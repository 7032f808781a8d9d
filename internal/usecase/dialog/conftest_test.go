package dialog

import "slices"

// mockSurface records calls and keeps a minimal element model.
type mockSurface struct {
	mounted   map[string]bool
	visible   []string
	locked    bool
	lockCalls []bool
	binds     map[string]int
	unbinds   map[string]int
	handlers  map[string]func()
	removeAll int
	backdrops int
}

func newMockSurface(ids ...string) *mockSurface {
	m := &mockSurface{
		mounted:  make(map[string]bool),
		binds:    make(map[string]int),
		unbinds:  make(map[string]int),
		handlers: make(map[string]func()),
	}
	for _, id := range ids {
		m.mounted[id] = true
	}
	return m
}

func (m *mockSurface) Exists(id string) bool { return m.mounted[id] }

func (m *mockSurface) Show(id string) {
	if !slices.Contains(m.visible, id) {
		m.visible = append(m.visible, id)
	}
}

func (m *mockSurface) Hide(id string) {
	m.visible = slices.DeleteFunc(m.visible, func(v string) bool { return v == id })
}

func (m *mockSurface) Remove(id string) {
	m.Hide(id)
	delete(m.mounted, id)
}

func (m *mockSurface) RemoveBackdrops() { m.backdrops++ }

func (m *mockSurface) RemoveAll() {
	m.removeAll++
	m.visible = nil
	clear(m.mounted)
}

func (m *mockSurface) Visible() []string { return slices.Clone(m.visible) }

func (m *mockSurface) SetScrollLock(locked bool) {
	m.locked = locked
	m.lockCalls = append(m.lockCalls, locked)
}

func (m *mockSurface) BindClose(id string, onClose func()) func() {
	m.binds[id]++
	m.handlers[id] = onClose
	return func() {
		m.unbinds[id]++
		delete(m.handlers, id)
	}
}

// liveBindings is the number of close bindings not yet released for id.
func (m *mockSurface) liveBindings(id string) int { return m.binds[id] - m.unbinds[id] }
