package surface

import (
	"slices"
	"testing"

	"github.com/kailas-cloud/dinedash/internal/usecase/dialog"
)

func TestPage_ShowAddsBackdrop(t *testing.T) {
	p := NewPage("a")
	p.Show("a")

	want := []string{"a", BackdropPrefix + "a"}
	if got := p.Visible(); !slices.Equal(got, want) {
		t.Errorf("visible = %v, want %v", got, want)
	}
	if p.Exists(BackdropPrefix + "a") {
		t.Error("backdrops are not dialog surfaces")
	}
}

func TestPage_UnknownIDsAreNoops(t *testing.T) {
	p := NewPage()
	p.Show("ghost")
	p.Hide("ghost")
	p.Remove("ghost")
	p.ClickClose("ghost")
	p.BindClose("ghost", func() { t.Error("must not be called") })()
	if len(p.Visible()) != 0 {
		t.Error("nothing should be visible")
	}
}

func TestPage_BindAndUnbind(t *testing.T) {
	p := NewPage("a")
	calls := 0
	unbind := p.BindClose("a", func() { calls++ })
	p.ClickClose("a")
	unbind()
	unbind()
	p.ClickClose("a")

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if p.Bindings("a") != 0 {
		t.Errorf("bindings = %d, want 0", p.Bindings("a"))
	}
}

func TestPage_RemoveAll(t *testing.T) {
	p := NewPage("a", "b")
	p.Show("a")
	p.BindClose("b", func() {})
	p.RemoveAll()

	if p.Exists("a") || p.Exists("b") || len(p.Visible()) != 0 || p.Bindings("b") != 0 {
		t.Error("RemoveAll must unmount everything")
	}
	p.Mount("a")
	if !p.Exists("a") {
		t.Error("remount should restore the element")
	}
}

func TestPageWithController_CloseButton(t *testing.T) {
	p := NewPage(dialog.RestaurantDetail, dialog.RestaurantChart)
	c := dialog.NewController(p, nil)

	c.Open(dialog.RestaurantDetail)
	if !p.ScrollLocked() || !p.IsVisible(dialog.RestaurantDetail) {
		t.Fatal("open should show the dialog and lock scroll")
	}

	p.ClickClose(dialog.RestaurantDetail)

	if c.IsOpen(dialog.RestaurantDetail) || p.ScrollLocked() {
		t.Error("close button should close the dialog and unlock scroll")
	}
	if len(p.Visible()) != 0 {
		t.Errorf("backdrop should be gone, visible=%v", p.Visible())
	}
	if p.Bindings(dialog.RestaurantDetail) != 0 {
		t.Error("binding should be released on close")
	}
}

func TestPageWithController_RepeatedOpenSingleBinding(t *testing.T) {
	p := NewPage("x")
	c := dialog.NewController(p, nil)
	for i := 0; i < 3; i++ {
		c.Open("x")
		c.Close("x")
	}
	c.Open("x")
	c.Open("x")
	if p.Bindings("x") != 1 {
		t.Errorf("bindings = %d, want 1", p.Bindings("x"))
	}
}

func TestPageWithController_SweepHealsDrift(t *testing.T) {
	p := NewPage("a")
	c := dialog.NewController(p, nil)

	p.Show("a")
	p.SetScrollLock(true)

	if !c.Sweep() {
		t.Fatal("expected drift")
	}
	if len(p.Visible()) != 0 || p.ScrollLocked() {
		t.Error("sweep should remove stray surfaces and unlock")
	}
}

func TestPageWithController_ForceCloseAll(t *testing.T) {
	p := NewPage("a", "b")
	c := dialog.NewController(p, nil)
	c.Open("a")
	c.Open("b")

	c.ForceCloseAll(dialog.TriggerAPI)

	if len(c.Stack()) != 0 || p.ScrollLocked() || p.Exists("a") {
		t.Error("force close should unmount everything")
	}
	c.Open("a")
	if c.IsOpen("a") {
		t.Error("opening an unmounted dialog is a no-op")
	}
}
