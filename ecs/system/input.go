package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/flickyfrog/ecs"
	"github.com/milk9111/flickyfrog/ecs/component"
)

type TouchPoint struct {
	ID           int
	X, Y         float64
	JustPressed  bool
	JustReleased bool
}

// PointerSource is the per-tick pointer state the input system reads.
type PointerSource interface {
	Touches() []TouchPoint
	ButtonJustPressed() bool
	ButtonJustReleased() bool
	// CursorPosition is the last known cursor position in screen pixels.
	CursorPosition() (float64, float64, bool)
	ViewportSize() (float64, float64)
}

// NormalizeIntent reduces one tick of pointer state to a single intent.
func NormalizeIntent(src PointerSource) component.Input {
	if src == nil {
		return component.Input{}
	}
	width, _ := src.ViewportSize()
	side := func(x float64) component.Side {
		if x < width*0.5 {
			return component.SideLeft
		}
		return component.SideRight
	}

	out := component.Input{}
	for _, t := range src.Touches() {
		if t.JustPressed {
			out = component.Input{Intent: component.IntentPressed, Side: side(t.X)}
			break
		} else if t.JustReleased {
			out = component.Input{Intent: component.IntentReleased}
			break
		}
	}

	if src.ButtonJustPressed() {
		out = component.Input{Intent: component.IntentPressed, Side: component.SideRight}
		if x, _, ok := src.CursorPosition(); ok {
			out.Side = side(x)
		}
	} else if src.ButtonJustReleased() {
		out = component.Input{Intent: component.IntentReleased}
	}

	return out
}

type InputSystem struct {
	source PointerSource
}

func NewInputSystem(source PointerSource) *InputSystem {
	return &InputSystem{source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil {
		return
	}

	intent := NormalizeIntent(i.source)
	ecs.ForEach(w, component.InputComponent, func(e ecs.Entity, input *component.Input) {
		*input = intent
	})
}

// EbitenPointer reads touches and the left mouse button from ebiten.
type EbitenPointer struct {
	Width  float64
	Height float64

	touchIDs []ebiten.TouchID
	released []ebiten.TouchID
	lastX    float64
	lastY    float64
	hasLast  bool
}

func NewEbitenPointer(width, height float64) *EbitenPointer {
	return &EbitenPointer{Width: width, Height: height}
}

func (p *EbitenPointer) Touches() []TouchPoint {
	var out []TouchPoint

	p.touchIDs = inpututil.AppendJustPressedTouchIDs(p.touchIDs[:0])
	for _, id := range p.touchIDs {
		x, y := ebiten.TouchPosition(id)
		out = append(out, TouchPoint{ID: int(id), X: float64(x), Y: float64(y), JustPressed: true})
	}

	p.released = inpututil.AppendJustReleasedTouchIDs(p.released[:0])
	for _, id := range p.released {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		out = append(out, TouchPoint{ID: int(id), X: float64(x), Y: float64(y), JustReleased: true})
	}

	return out
}

func (p *EbitenPointer) ButtonJustPressed() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

func (p *EbitenPointer) ButtonJustReleased() bool {
	return inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
}

// CursorPosition remembers the last position inside the window.
func (p *EbitenPointer) CursorPosition() (float64, float64, bool) {
	x, y := ebiten.CursorPosition()
	fx, fy := float64(x), float64(y)
	if fx >= 0 && fy >= 0 && fx <= p.Width && fy <= p.Height {
		p.lastX, p.lastY, p.hasLast = fx, fy, true
	}
	return p.lastX, p.lastY, p.hasLast
}

func (p *EbitenPointer) ViewportSize() (float64, float64) {
	return p.Width, p.Height
}
