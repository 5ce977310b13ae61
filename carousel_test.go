package fidget

import "testing"

type fakeToy struct {
	toyBase
	updates int
}

func (f *fakeToy) Update(dt float64) { f.updates++ }

func newTestCarousel() (*Carousel, *Classifier, []*fakeToy, *recordDevice) {
	dev := &recordDevice{}
	cls := NewClassifier()
	toys := []*fakeToy{
		{toyBase: toyBase{name: "a"}},
		{toyBase: toyBase{name: "b"}},
		{toyBase: toyBase{name: "c"}},
	}
	car := NewCarousel(cls, NewHaptics(dev), 390, 1,
		toys[0], toys[1], toys[2])
	return car, cls, toys, dev
}

// frame runs one simulation frame: apply events, tick the classifier and
// carousel, clear the one-shot flags.
func frame(cls *Classifier, car *Carousel, dt float64, events func()) {
	if events != nil {
		events()
	}
	cls.Update(dt)
	car.Update(dt)
	cls.ClearInteractionFlags()
}

func TestFirstToyStartsActive(t *testing.T) {
	car, _, toys, _ := newTestCarousel()

	if !toys[0].Active() || toys[1].Active() || toys[2].Active() {
		t.Errorf("active flags = %v %v %v, want only the first",
			toys[0].Active(), toys[1].Active(), toys[2].Active())
	}
	if car.ActiveIndex() != 0 || car.PageCount() != 3 {
		t.Errorf("index=%d pages=%d, want 0 and 3", car.ActiveIndex(), car.PageCount())
	}
	if car.ActiveToy() != Toy(toys[0]) {
		t.Error("ActiveToy is not the first toy")
	}
}

func TestDragFollowsPointer(t *testing.T) {
	car, cls, _, _ := newTestCarousel()
	dt := 1.0 / 60

	frame(cls, car, dt, func() { cls.PointerBegin(Vec2{X: 300, Y: 100}, cls.Now()) })
	frame(cls, car, dt, func() { cls.PointerMove(Vec2{X: 280, Y: 100}) })
	assertNear(t, "scroll after 20px drag", car.Scroll(), 20)

	frame(cls, car, dt, func() { cls.PointerMove(Vec2{X: 250, Y: 100}) })
	assertNear(t, "scroll after 50px drag", car.Scroll(), 50)
}

func TestDragCannotLeaveThePageRange(t *testing.T) {
	car, cls, _, _ := newTestCarousel()
	dt := 1.0 / 60

	// Dragging rightward from page 0 would scroll negative.
	frame(cls, car, dt, func() { cls.PointerBegin(Vec2{X: 100}, cls.Now()) })
	frame(cls, car, dt, func() { cls.PointerMove(Vec2{X: 350}) })
	assertNear(t, "clamped at first page", car.Scroll(), 0)
}

func TestSlowReleaseSnapsToNearestPage(t *testing.T) {
	car, cls, _, _ := newTestCarousel()
	dt := 1.0 / 60

	// Drag 250px over ~0.5s: past the midpoint, far too slow to swipe.
	frame(cls, car, dt, func() { cls.PointerBegin(Vec2{X: 300}, cls.Now()) })
	for i := 0; i < 25; i++ {
		x := 300 - float64(i+1)*10
		frame(cls, car, dt, func() { cls.PointerMove(Vec2{X: x}) })
	}
	for i := 0; i < 5; i++ {
		frame(cls, car, dt, nil) // hold still so the release isn't a swipe
	}
	frame(cls, car, dt, func() { cls.PointerEnd(Vec2{X: 50}, cls.Now()) })

	if !car.Snapping() {
		t.Fatal("no snap animation after release")
	}
	for i := 0; i < 25; i++ {
		frame(cls, car, dt, nil)
	}
	if car.Snapping() {
		t.Fatal("snap still running after its duration")
	}
	assertNear(t, "landed on page 1", car.Scroll(), 390)
	if car.ActiveIndex() != 1 {
		t.Errorf("active index = %d, want 1", car.ActiveIndex())
	}
}

func TestShortSlowDragSettlesBack(t *testing.T) {
	car, cls, _, _ := newTestCarousel()
	dt := 1.0 / 60

	// 60px is under the midpoint; a slow release rounds back to page 0.
	frame(cls, car, dt, func() { cls.PointerBegin(Vec2{X: 300}, cls.Now()) })
	frame(cls, car, dt, func() { cls.PointerMove(Vec2{X: 240}) })
	for i := 0; i < 30; i++ {
		frame(cls, car, dt, nil)
	}
	frame(cls, car, dt, func() { cls.PointerEnd(Vec2{X: 240}, cls.Now()) })

	for i := 0; i < 25; i++ {
		frame(cls, car, dt, nil)
	}
	assertNear(t, "back on page 0", car.Scroll(), 0)
	if car.ActiveIndex() != 0 {
		t.Errorf("active index = %d, want 0", car.ActiveIndex())
	}
}

func TestFastSwipeCommitsToNextPage(t *testing.T) {
	car, cls, _, _ := newTestCarousel()
	dt := 1.0 / 60

	// Only 90px of travel, but released within the swipe window: the
	// velocity bias commits to page 1 even though page 0 is nearer.
	frame(cls, car, dt, func() { cls.PointerBegin(Vec2{X: 300}, cls.Now()) })
	for i := 0; i < 6; i++ {
		x := 300 - float64(i+1)*15
		frame(cls, car, dt, func() { cls.PointerMove(Vec2{X: x}) })
	}
	frame(cls, car, dt, func() { cls.PointerEnd(Vec2{X: 210}, cls.Now()) })

	for i := 0; i < 25; i++ {
		frame(cls, car, dt, nil)
	}
	assertNear(t, "committed to page 1", car.Scroll(), 390)
	if car.ActiveIndex() != 1 {
		t.Errorf("active index = %d, want 1", car.ActiveIndex())
	}
}

func TestPageChangeFlipsToysAndPulses(t *testing.T) {
	car, cls, toys, dev := newTestCarousel()
	dt := 1.0 / 60

	// Drag past the midpoint: the active page flips mid-drag.
	frame(cls, car, dt, func() { cls.PointerBegin(Vec2{X: 350}, cls.Now()) })
	frame(cls, car, dt, func() { cls.PointerMove(Vec2{X: 100}) })

	if car.ActiveIndex() != 1 {
		t.Fatalf("active index = %d after 250px drag, want 1", car.ActiveIndex())
	}
	if toys[0].Active() || !toys[1].Active() {
		t.Error("toy active flags did not flip with the page")
	}
	if len(dev.calls) != 1 {
		t.Fatalf("got %d haptic calls, want the single page-turn pulse", len(dev.calls))
	}
	assertNear(t, "page-turn intensity", dev.last().intensity, 0.55)
}

func TestInteractingToyVetoesPageDrag(t *testing.T) {
	car, cls, toys, _ := newTestCarousel()
	dt := 1.0 / 60
	toys[0].interacting = true

	frame(cls, car, dt, func() { cls.PointerBegin(Vec2{X: 300}, cls.Now()) })
	frame(cls, car, dt, func() { cls.PointerMove(Vec2{X: 200}) })
	frame(cls, car, dt, func() { cls.PointerMove(Vec2{X: 100}) })

	assertNear(t, "scroll pinned while toy owns the drag", car.Scroll(), 0)
}

func TestToyTakeoverMidDragSettles(t *testing.T) {
	car, cls, toys, _ := newTestCarousel()
	dt := 1.0 / 60

	frame(cls, car, dt, func() { cls.PointerBegin(Vec2{X: 300}, cls.Now()) })
	frame(cls, car, dt, func() { cls.PointerMove(Vec2{X: 260}) })
	assertNear(t, "page drag in progress", car.Scroll(), 40)

	// The toy claims the gesture: the carousel abandons the drag and
	// snaps home.
	toys[0].interacting = true
	frame(cls, car, dt, func() { cls.PointerMove(Vec2{X: 200}) })

	if !car.Snapping() {
		t.Fatal("carousel did not start settling after toy takeover")
	}
	for i := 0; i < 25; i++ {
		frame(cls, car, dt, nil)
	}
	assertNear(t, "settled back to page 0", car.Scroll(), 0)
}

func TestAllToysUpdateEveryFrame(t *testing.T) {
	car, cls, toys, _ := newTestCarousel()

	for i := 0; i < 10; i++ {
		frame(cls, car, 1.0/60, nil)
	}
	for i, toy := range toys {
		if toy.updates != 10 {
			t.Errorf("toy %d updated %d times, want 10", i, toy.updates)
		}
	}
}

func TestScrollToPage(t *testing.T) {
	car, cls, toys, _ := newTestCarousel()

	car.ScrollToPage(2, false)
	assertNear(t, "immediate jump", car.Scroll(), 780)
	if car.ActiveIndex() != 2 || !toys[2].Active() {
		t.Errorf("index=%d active2=%v, want 2/true", car.ActiveIndex(), toys[2].Active())
	}

	car.ScrollToPage(0, true)
	if !car.Snapping() {
		t.Fatal("animated scroll did not start a snap")
	}
	for i := 0; i < 25; i++ {
		frame(cls, car, 1.0/60, nil)
	}
	assertNear(t, "animated landing", car.Scroll(), 0)
	if car.ActiveIndex() != 0 {
		t.Errorf("active index = %d, want 0", car.ActiveIndex())
	}

	// Out-of-range pages clamp.
	car.ScrollToPage(99, false)
	if car.ActiveIndex() != 2 {
		t.Errorf("active index = %d after clamped jump, want 2", car.ActiveIndex())
	}
}

func TestEmptyCarouselIsInert(t *testing.T) {
	dev := &recordDevice{}
	cls := NewClassifier()
	car := NewCarousel(cls, NewHaptics(dev), 390, 1)
	dt := 1.0 / 60

	// A full drag-and-release with no pages must not scroll, flip the
	// active index, or pulse a page turn.
	frame(cls, car, dt, func() { cls.PointerBegin(Vec2{X: 300}, cls.Now()) })
	for i := 0; i < 10; i++ {
		x := 300 - float64(i+1)*15
		frame(cls, car, dt, func() { cls.PointerMove(Vec2{X: x}) })
	}
	frame(cls, car, dt, func() { cls.PointerEnd(Vec2{X: 150}, cls.Now()) })
	for i := 0; i < 25; i++ {
		frame(cls, car, dt, nil)
	}

	assertNear(t, "scroll", car.Scroll(), 0)
	if car.ActiveIndex() != 0 || car.ActiveToy() != nil || car.PageCount() != 0 {
		t.Errorf("index=%d toy=%v pages=%d, want 0/nil/0",
			car.ActiveIndex(), car.ActiveToy(), car.PageCount())
	}
	if len(dev.calls) != 0 {
		t.Errorf("empty carousel emitted %d haptic calls", len(dev.calls))
	}

	car.ScrollToPage(2, false)
	assertNear(t, "scroll after jump", car.Scroll(), 0)
}
