package fidget

// Toy is one page of the carousel: a self-contained simulation updated
// once per frame. The roster is fixed at composition time; the carousel
// holds a flat slice of this interface and never downcasts.
//
// Ordering contract per frame: pointer events are applied to the shared
// Classifier first, then every toy's Update runs, then the classifier's
// one-shot flags are cleared. Toys read the classifier, never write it.
type Toy interface {
	// Update advances the toy by dt seconds. Inactive toys are still
	// updated so ongoing animations can settle, but they must not react
	// to input or emit haptics.
	Update(dt float64)
	// SetActive marks the toy as the centered carousel page. Only the
	// active toy receives input and produces haptic output.
	SetActive(active bool)
	// Active reports whether this toy is the centered page.
	Active() bool
	// Interacting reports whether the user is mid-interaction with the
	// toy. While true the carousel must not start a page drag.
	Interacting() bool
	// Name returns a short display name.
	Name() string
}

// toyBase carries the state every toy shares. Embedded by the concrete
// toys; not exported.
type toyBase struct {
	name        string
	active      bool
	interacting bool
}

func (t *toyBase) SetActive(active bool) { t.active = active }
func (t *toyBase) Active() bool          { return t.active }
func (t *toyBase) Interacting() bool     { return t.interacting }
func (t *toyBase) Name() string          { return t.name }
