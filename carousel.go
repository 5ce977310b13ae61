package fidget

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Carousel tuning constants.
const (
	// SnapDuration is the length of the page snap animation in seconds.
	SnapDuration = 0.3
	// SwipeVelocityThreshold is the horizontal swipe speed (scene units
	// per second) above which the snap target is biased one page in the
	// swipe direction instead of the nearest page.
	SwipeVelocityThreshold = 500.0
)

// Carousel pages horizontally through a fixed roster of toys. It consumes
// drag and swipe state from the shared Classifier, defers to the active
// toy while the user is interacting with it, and snaps to page boundaries
// with a cubic ease-out tween.
type Carousel struct {
	toys      []Toy
	pageWidth float64

	scroll float64
	active int

	dragging    bool
	scrollStart float64
	dragStartX  float64

	snap *gween.Tween

	displayScale float64
	input        *Classifier
	h            *Haptics
}

// NewCarousel creates a carousel over the given toys. pageWidth is the
// scene-space width of one page; displayScale converts the classifier's
// screen coordinates into scene units. The first toy starts active.
func NewCarousel(input *Classifier, h *Haptics, pageWidth, displayScale float64, toys ...Toy) *Carousel {
	if displayScale <= 0 {
		displayScale = 1
	}
	c := &Carousel{
		toys:         toys,
		pageWidth:    pageWidth,
		displayScale: displayScale,
		input:        input,
		h:            h,
	}
	if len(toys) > 0 {
		toys[0].SetActive(true)
	}
	return c
}

// Update advances the carousel and every toy by dt seconds. Call after
// the frame's pointer events have been applied to the classifier and
// before ClearInteractionFlags.
func (c *Carousel) Update(dt float64) {
	if len(c.toys) == 0 {
		return
	}

	toyBusy := false
	if t := c.ActiveToy(); t != nil {
		toyBusy = t.Interacting()
	}

	// Begin a page drag, unless the active toy owns the interaction.
	if c.input.DragStarted() && !c.dragging && !toyBusy {
		c.dragging = true
		c.snap = nil
		c.scrollStart = c.scroll
		c.dragStartX = c.input.StartPosition().X * c.displayScale
	}

	// Follow the pointer while dragging.
	if c.dragging && c.input.Dragging() && !toyBusy {
		currX := c.input.Position().X * c.displayScale
		c.scroll = c.clampScroll(c.scrollStart + (c.dragStartX - currX))
		c.updateActivePage()
	}

	// The toy took over mid-drag: abandon the page drag and settle.
	if c.dragging && toyBusy {
		c.dragging = false
		c.startSnap(c.snapTarget(0))
	}

	if c.input.DragEnded() && c.dragging {
		c.dragging = false

		// Swipe velocity is in screen units; flip sign so a leftward
		// swipe scrolls to the next page.
		velocityX := -c.input.SwipeVelocity().X * c.displayScale
		c.startSnap(c.snapTarget(velocityX))
	}

	if c.snap != nil && !c.dragging {
		v, done := c.snap.Update(float32(dt))
		c.scroll = float64(v)
		if done {
			c.snap = nil
		}
		c.updateActivePage()
	}

	for _, t := range c.toys {
		t.Update(dt)
	}
}

// updateActivePage recomputes which page is centered and flips toy active
// state on change, with a medium pulse marking the page turn.
func (c *Carousel) updateActivePage() {
	idx := int(math.Round(c.scroll / c.pageWidth))
	idx = min(max(idx, 0), len(c.toys)-1)
	if idx == c.active {
		return
	}
	c.active = idx

	for i, t := range c.toys {
		t.SetActive(i == idx)
	}
	c.h.Medium()
}

// snapTarget picks the page to settle on given the release velocity.
// Fast swipes commit to the next page in the swipe direction; slow
// releases settle on the nearest page.
func (c *Carousel) snapTarget(velocityX float64) int {
	page := c.scroll / c.pageWidth

	if math.Abs(velocityX) > SwipeVelocityThreshold {
		if velocityX > 0 {
			page = math.Ceil(page)
		} else {
			page = math.Floor(page)
		}
	} else {
		page = math.Round(page)
	}

	return min(max(int(page), 0), len(c.toys)-1)
}

// startSnap begins the ease-out tween from the current scroll position to
// the given page.
func (c *Carousel) startSnap(page int) {
	target := float64(page) * c.pageWidth
	c.snap = gween.New(float32(c.scroll), float32(target), SnapDuration, ease.OutCubic)
}

// clampScroll limits scroll to the valid page range.
func (c *Carousel) clampScroll(pos float64) float64 {
	return clamp(pos, 0, c.pageWidth*float64(len(c.toys)-1))
}

// ScrollToPage moves to the given page, animated or immediately.
func (c *Carousel) ScrollToPage(page int, animated bool) {
	if len(c.toys) == 0 {
		return
	}
	page = min(max(page, 0), len(c.toys)-1)
	if animated {
		c.startSnap(page)
		return
	}
	c.scroll = float64(page) * c.pageWidth
	c.snap = nil
	c.updateActivePage()
}

// Scroll returns the current scroll offset in scene units.
func (c *Carousel) Scroll() float64 { return c.scroll }

// ActiveIndex returns the index of the centered page.
func (c *Carousel) ActiveIndex() int { return c.active }

// ActiveToy returns the centered toy, or nil for an empty carousel.
func (c *Carousel) ActiveToy() Toy {
	if c.active < 0 || c.active >= len(c.toys) {
		return nil
	}
	return c.toys[c.active]
}

// PageCount returns the number of pages.
func (c *Carousel) PageCount() int { return len(c.toys) }

// Snapping reports whether a snap animation is running.
func (c *Carousel) Snapping() bool { return c.snap != nil }
