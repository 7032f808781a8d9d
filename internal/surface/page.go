// Package surface holds the in-memory presentation state a dashboard
// session renders from: mounted dialogs, backdrops, close-button
// bindings and the page scroll lock.
package surface

import (
	"slices"
	"sync"

	"github.com/kailas-cloud/dinedash/internal/usecase/dialog"
)

var _ dialog.Surface = (*Page)(nil)

// BackdropPrefix marks the transient backdrop element shown with a dialog.
const BackdropPrefix = "backdrop:"

type element struct {
	id       string
	backdrop bool
	visible  bool
}

// Page is a mounted set of dialog elements.
type Page struct {
	mu       sync.Mutex
	elements []*element
	handlers map[string]map[int]func()
	nextBind int
	locked   bool
}

// NewPage mounts one hidden dialog element per id.
func NewPage(dialogIDs ...string) *Page {
	p := &Page{handlers: make(map[string]map[int]func())}
	p.Mount(dialogIDs...)
	return p
}

// Mount adds hidden dialog elements for ids not already mounted.
func (p *Page) Mount(ids ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, id := range ids {
		if p.findLocked(id) == nil {
			p.elements = append(p.elements, &element{id: id})
		}
	}
}

// Exists reports whether a dialog element with id is mounted.
func (p *Page) Exists(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	el := p.findLocked(id)
	return el != nil && !el.backdrop
}

// Show makes the dialog visible along with its backdrop.
func (p *Page) Show(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	el := p.findLocked(id)
	if el == nil {
		return
	}
	el.visible = true
	if p.findLocked(BackdropPrefix+id) == nil {
		p.elements = append(p.elements, &element{id: BackdropPrefix + id, backdrop: true, visible: true})
	}
}

// Hide hides the dialog; it stays mounted.
func (p *Page) Hide(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if el := p.findLocked(id); el != nil {
		el.visible = false
	}
}

// Remove unmounts an element and drops its close handlers.
func (p *Page) Remove(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.elements = slices.DeleteFunc(p.elements, func(el *element) bool { return el.id == id })
	delete(p.handlers, id)
}

// RemoveBackdrops unmounts every backdrop element.
func (p *Page) RemoveBackdrops() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.elements = slices.DeleteFunc(p.elements, func(el *element) bool { return el.backdrop })
}

// RemoveAll unmounts every dialog and backdrop element.
func (p *Page) RemoveAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.elements = nil
	clear(p.handlers)
}

// Visible lists the ids of shown elements in mount order.
func (p *Page) Visible() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, el := range p.elements {
		if el.visible {
			out = append(out, el.id)
		}
	}
	return out
}

// IsVisible reports whether element id is mounted and shown.
func (p *Page) IsVisible(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	el := p.findLocked(id)
	return el != nil && el.visible
}

// SetScrollLock sets the page scroll lock.
func (p *Page) SetScrollLock(locked bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.locked = locked
}

// ScrollLocked reports the page scroll lock.
func (p *Page) ScrollLocked() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.locked
}

// BindClose registers onClose for the close button of dialog id.
// Binding to an unmounted id returns a no-op unbind.
func (p *Page) BindClose(id string, onClose func()) func() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.findLocked(id) == nil {
		return func() {}
	}
	p.nextBind++
	n := p.nextBind
	if p.handlers[id] == nil {
		p.handlers[id] = make(map[int]func())
	}
	p.handlers[id][n] = onClose

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			delete(p.handlers[id], n)
		})
	}
}

// Bindings returns the number of close handlers attached to id.
func (p *Page) Bindings(id string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.handlers[id])
}

// ClickClose activates the close button of dialog id.
// Handlers run without the page lock held.
func (p *Page) ClickClose(id string) {
	p.mu.Lock()
	hs := make([]func(), 0, len(p.handlers[id]))
	for _, h := range p.handlers[id] {
		hs = append(hs, h)
	}
	p.mu.Unlock()

	for _, h := range hs {
		h()
	}
}

func (p *Page) findLocked(id string) *element {
	for _, el := range p.elements {
		if el.id == id {
			return el
		}
	}
	return nil
}
