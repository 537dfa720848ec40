package vango

import "testing"

func TestOwnerBasic(t *testing.T) {
	owner := NewOwner(nil)

	if owner.ID() == 0 {
		t.Error("owner should have non-zero ID")
	}
	if owner.Parent() != nil {
		t.Error("root owner should have nil parent")
	}
	if owner.IsDisposed() {
		t.Error("new owner should not be disposed")
	}
}

func TestOwnerDisposeOrder(t *testing.T) {
	root := NewOwner(nil)
	child1 := NewOwner(root)
	child2 := NewOwner(root)

	var order []string
	root.OnCleanup(func() { order = append(order, "root") })
	child1.OnCleanup(func() { order = append(order, "child1") })
	child2.OnCleanup(func() { order = append(order, "child2") })

	root.Dispose()

	want := []string{"child2", "child1", "root"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("cleanup %d: expected %s, got %s", i, want[i], order[i])
		}
	}
	if !child1.IsDisposed() || !child2.IsDisposed() {
		t.Error("children should be disposed with their parent")
	}
}

func TestOwnerDisposeTwice(t *testing.T) {
	owner := NewOwner(nil)
	calls := 0
	owner.OnCleanup(func() { calls++ })

	owner.Dispose()
	owner.Dispose()

	if calls != 1 {
		t.Errorf("expected cleanup to run once, got %d", calls)
	}
}

func TestOwnerCleanupAfterDispose(t *testing.T) {
	owner := NewOwner(nil)
	owner.Dispose()

	ran := false
	owner.OnCleanup(func() { ran = true })
	if !ran {
		t.Error("cleanup registered on a disposed owner should run immediately")
	}
}

func TestOwnerChildDisposeDetaches(t *testing.T) {
	root := NewOwner(nil)
	child := NewOwner(root)
	child.Dispose()

	ran := false
	child.OnCleanup(func() { ran = true })
	root.Dispose()

	if !ran {
		t.Error("expected immediate cleanup on detached disposed child")
	}
}

func TestOwnerValuesInherit(t *testing.T) {
	root := NewOwner(nil)
	child := NewOwner(root)
	root.SetValue("k", 1)

	if v, ok := child.GetValue("k"); !ok || v != 1 {
		t.Errorf("expected child to see parent value 1, got %v (found=%v)", v, ok)
	}

	child.SetValue("k", 2)
	if v, _ := child.GetValue("k"); v != 2 {
		t.Errorf("expected child value to shadow parent, got %v", v)
	}
	if v, _ := root.GetValue("k"); v != 1 {
		t.Errorf("expected parent value to be unchanged, got %v", v)
	}
}

func TestRenderHookSlots(t *testing.T) {
	owner := NewOwner(nil)
	created := 0

	use := func() *int {
		o := CurrentOwner()
		if slot := o.UseHookSlot(); slot != nil {
			return slot.(*int)
		}
		created++
		n := new(int)
		o.SetHookSlot(n)
		return n
	}

	first := Render(owner, use)
	second := Render(owner, use)

	if first != second {
		t.Error("expected the same slot value across renders")
	}
	if created != 1 {
		t.Errorf("expected 1 creation, got %d", created)
	}
}

func TestRenderRunsRenderedHooks(t *testing.T) {
	owner := NewOwner(nil)
	calls := 0
	owner.OnRendered(func() { calls++ })

	Render(owner, func() int { return 0 })
	Render(owner, func() int { return 0 })

	if calls != 2 {
		t.Errorf("expected rendered hook to run twice, got %d", calls)
	}

	owner.Dispose()
	Render(owner, func() int { return 0 })
	if calls != 2 {
		t.Errorf("expected no hook after Dispose, got %d calls", calls)
	}
}

func TestRenderTracksOwnerListener(t *testing.T) {
	owner := NewOwner(nil)
	listener := newTestListener()
	owner.SetListener(listener)
	name := NewSignal("a")

	Render(owner, func() string { return name.Get() })
	name.Set("b")

	if listener.getDirtyCount() != 1 {
		t.Errorf("expected owner listener to be notified once, got %d", listener.getDirtyCount())
	}
}

type expandRecorder struct {
	owner  *Owner
	events *[]string
}

func (e *expandRecorder) Expand() {
	e.owner = CurrentOwner()
	*e.events = append(*e.events, "expand")
}

func TestRenderExpandsResultInsideOwner(t *testing.T) {
	owner := NewOwner(nil)
	var events []string
	owner.OnRendered(func() { events = append(events, "rendered") })

	rec := Render(owner, func() *expandRecorder { return &expandRecorder{events: &events} })

	if rec.owner != owner {
		t.Error("expected Expand to run with the render owner current")
	}
	if len(events) != 2 || events[0] != "expand" || events[1] != "rendered" {
		t.Errorf("expected expand before rendered hooks, got %v", events)
	}
}
