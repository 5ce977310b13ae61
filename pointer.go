package fidget

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// PointerSource polls ebiten mouse and touch state each frame and feeds
// the primary pointer into a Classifier. The mouse is the primary
// pointer on desktop; on touch devices the first touch to land claims it
// until it lifts. Additional touches are ignored, matching single-finger
// interaction throughout the toys.
type PointerSource struct {
	cls *Classifier

	// Input reads, swappable in tests.
	cursorPosition func() (int, int)
	mousePressed   func() bool
	appendTouchIDs func([]ebiten.TouchID) []ebiten.TouchID
	touchPosition  func(ebiten.TouchID) (int, int)

	touchIDs  []ebiten.TouchID
	touchID   ebiten.TouchID
	touching  bool
	mouseDown bool
	lastPos   Vec2
}

// NewPointerSource creates a pointer adapter feeding cls.
func NewPointerSource(cls *Classifier) *PointerSource {
	return &PointerSource{
		cls:            cls,
		cursorPosition: ebiten.CursorPosition,
		mousePressed: func() bool {
			return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
		},
		appendTouchIDs: ebiten.AppendTouchIDs,
		touchPosition:  ebiten.TouchPosition,
	}
}

// Poll reads the current input state and emits begin/move/end to the
// classifier. Call once per frame, before Classifier.Update.
func (p *PointerSource) Poll() {
	if p.touching {
		p.pollTouch()
		return
	}
	if p.pollTouchBegin() {
		return
	}
	p.pollMouse()
}

func (p *PointerSource) pollMouse() {
	mx, my := p.cursorPosition()
	pos := Vec2{X: float64(mx), Y: float64(my)}
	pressed := p.mousePressed()

	switch {
	case pressed && !p.mouseDown:
		p.mouseDown = true
		p.lastPos = pos
		p.cls.PointerBegin(pos, p.cls.Now())
	case !pressed && p.mouseDown:
		p.mouseDown = false
		p.cls.PointerEnd(pos, p.cls.Now())
	case pressed:
		if pos != p.lastPos {
			p.cls.PointerMove(pos)
			p.lastPos = pos
		}
	}
}

// pollTouchBegin claims the first new touch as the primary pointer.
func (p *PointerSource) pollTouchBegin() bool {
	p.touchIDs = p.appendTouchIDs(p.touchIDs[:0])
	if len(p.touchIDs) == 0 {
		return false
	}
	// A touch while the mouse is held would conflate two pointers: keep
	// polling the mouse until it releases, ignoring the touch.
	if p.mouseDown {
		return false
	}
	p.touchID = p.touchIDs[0]
	p.touching = true
	tx, ty := p.touchPosition(p.touchID)
	pos := Vec2{X: float64(tx), Y: float64(ty)}
	p.lastPos = pos
	p.cls.PointerBegin(pos, p.cls.Now())
	return true
}

func (p *PointerSource) pollTouch() {
	p.touchIDs = p.appendTouchIDs(p.touchIDs[:0])
	for _, tid := range p.touchIDs {
		if tid == p.touchID {
			tx, ty := p.touchPosition(tid)
			pos := Vec2{X: float64(tx), Y: float64(ty)}
			if pos != p.lastPos {
				p.cls.PointerMove(pos)
				p.lastPos = pos
			}
			return
		}
	}
	// Touch lifted. TouchPosition is zero for ended touches, so report
	// the last known position.
	p.touching = false
	p.cls.PointerEnd(p.lastPos, p.cls.Now())
}
