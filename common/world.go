package common

// Defaults for the world scale and simulation. The prefabs world.yaml
// overrides them at startup.
const (
	WorldSize        = 32.0
	WorldHeightUnits = 32.0
	Gravity          = 9.801
	Substeps         = 10
	Iterations       = 10
	DefaultTPS       = 60
)

// Viewport is the logical screen size in pixels. The whole world height is
// always visible, so the pixel scale follows the screen height.
type Viewport struct {
	Width  float64
	Height float64
	// HeightUnits defaults to WorldHeightUnits.
	HeightUnits float64
}

func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}

// PixelsPerUnit is the number of screen pixels covered by one world unit.
func (v Viewport) PixelsPerUnit() float64 {
	if v.Height <= 0 {
		return WorldSize
	}
	if v.HeightUnits > 0 {
		return v.Height / v.HeightUnits
	}
	return v.Height / WorldHeightUnits
}

// WidthUnits is the viewport width measured in world units.
func (v Viewport) WidthUnits() float64 {
	return v.Width / v.PixelsPerUnit()
}

// WorldToScreen converts a y-up world point to y-down screen pixels for a
// camera centered horizontally on camX and vertically on the world origin.
func (v Viewport) WorldToScreen(x, y, camX float64) (float64, float64) {
	ppu := v.PixelsPerUnit()
	return (x-camX)*ppu + v.Width/2, v.Height/2 - y*ppu
}
