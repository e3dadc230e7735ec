package levels

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand"

	"github.com/d5/tengo/v2"
)

//go:embed pillars.tengo
var pillarsScript []byte

// PillarPlacement is the center and height of one pillar in world units.
type PillarPlacement struct {
	X      float64
	Y      float64
	Height float64
}

// Layout describes the static geometry of a level.
type Layout struct {
	Pillars []PillarPlacement
}

// Generator produces a level layout.
type Generator interface {
	Generate() (*Layout, error)
}

// ScriptGenerator runs a tengo layout script fed by a seeded random source.
type ScriptGenerator struct {
	Script      []byte
	Count       int
	WorldHeight float64
	Seed        int64
}

func NewScriptGenerator(count int, worldHeight float64, seed int64) *ScriptGenerator {
	return &ScriptGenerator{
		Script:      pillarsScript,
		Count:       count,
		WorldHeight: worldHeight,
		Seed:        seed,
	}
}

func (g *ScriptGenerator) Generate() (*Layout, error) {
	if g == nil || len(g.Script) == 0 {
		return nil, errors.New("levels: empty layout script")
	}
	rng := rand.New(rand.NewSource(g.Seed))

	script := tengo.NewScript(g.Script)
	_ = script.Add("count", g.Count)
	_ = script.Add("world_height", g.WorldHeight)
	_ = script.Add("rand_range", &tengo.UserFunction{Name: "rand_range", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		lo, ok := tengo.ToFloat64(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "lo", Expected: "float", Found: args[0].TypeName()}
		}
		hi, ok := tengo.ToFloat64(args[1])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "hi", Expected: "float", Found: args[1].TypeName()}
		}
		return &tengo.Float{Value: lo + rng.Float64()*(hi-lo)}, nil
	}})

	compiled, err := script.Run()
	if err != nil {
		return nil, fmt.Errorf("levels: run layout script: %w", err)
	}

	raw := compiled.Get("pillars").Array()
	layout := &Layout{Pillars: make([]PillarPlacement, 0, len(raw))}
	for i, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("levels: pillar %d: expected map, got %T", i, item)
		}
		p := PillarPlacement{}
		if p.X, err = number(m, "x"); err != nil {
			return nil, fmt.Errorf("levels: pillar %d: %w", i, err)
		}
		if p.Y, err = number(m, "y"); err != nil {
			return nil, fmt.Errorf("levels: pillar %d: %w", i, err)
		}
		if p.Height, err = number(m, "height"); err != nil {
			return nil, fmt.Errorf("levels: pillar %d: %w", i, err)
		}
		layout.Pillars = append(layout.Pillars, p)
	}
	return layout, nil
}

func number(m map[string]interface{}, key string) (float64, error) {
	switch v := m[key].(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("field %q: expected number, got %T", key, m[key])
	}
}
