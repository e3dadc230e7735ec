package component

import "image/color"

// Sprite is a solid rectangle drawn centered on the entity transform.
type Sprite struct {
	Width  float64
	Height float64
	Color  color.RGBA
	Layer  int
}

var SpriteComponent = NewComponent[Sprite]()
