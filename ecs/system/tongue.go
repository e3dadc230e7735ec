package system

import (
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/flickyfrog/ecs"
	"github.com/milk9111/flickyfrog/ecs/component"
)

type tongueKey struct {
	state  component.TongueState
	intent component.IntentKind
}

// tongueFrame carries the character's tongue data through one transition.
type tongueFrame struct {
	player    ecs.Entity
	input     component.Input
	character component.Character
	tongue    component.Tongue
}

type tongueTransition func(ts *TongueSystem, w *ecs.World, f *tongueFrame)

// Pairs missing from the table leave the tongue untouched.
var tongueTransitions = map[tongueKey]tongueTransition{
	{component.TongueIdle, component.IntentPressed}:      (*TongueSystem).attach,
	{component.TongueAttached, component.IntentReleased}: (*TongueSystem).release,
	{component.TongueAttached, component.IntentPressed}:  (*TongueSystem).reattach,
}

// TongueSystem turns the character's pointer intent into tongue chains. It
// is the only writer of segment and joint entities.
type TongueSystem struct {
	tuning ChainTuning
	color  color.RGBA
}

func NewTongueSystem(tuning ChainTuning, c color.RGBA) *TongueSystem {
	return &TongueSystem{tuning: tuning, color: c}
}

// SetTuning applies to chains spawned after the call.
func (ts *TongueSystem) SetTuning(tuning ChainTuning, c color.RGBA) {
	if ts == nil {
		return
	}
	ts.tuning = tuning
	ts.color = c
}

func (ts *TongueSystem) Tuning() ChainTuning {
	return ts.tuning
}

func (ts *TongueSystem) Update(w *ecs.World) {
	if ts == nil || w == nil {
		return
	}

	player, ok := w.First(component.CharacterComponent.Kind())
	if !ok {
		return
	}
	input, ok := ecs.Get(w, player, component.InputComponent)
	if !ok || input.Intent == component.IntentNone {
		return
	}
	character, _ := ecs.Get(w, player, component.CharacterComponent)
	tongue, _ := ecs.Get(w, player, component.TongueComponent)

	transition, ok := tongueTransitions[tongueKey{tongue.State, input.Intent}]
	if !ok {
		return
	}

	f := &tongueFrame{player: player, input: input, character: character, tongue: tongue}
	transition(ts, w, f)

	if err := ecs.Add(w, player, component.TongueComponent, f.tongue); err != nil {
		panic("tongue system: update tongue: " + err.Error())
	}
	if err := ecs.Add(w, player, component.CharacterComponent, f.character); err != nil {
		panic("tongue system: update character: " + err.Error())
	}
}

func (ts *TongueSystem) reattach(w *ecs.World, f *tongueFrame) {
	ts.release(w, f)
	ts.attach(w, f)
}

// attach selects a pillar and spawns a whole chain generation, or leaves the
// tongue idle when no pillar can be reached.
func (ts *TongueSystem) attach(w *ecs.World, f *tongueFrame) {
	f.character.TongueOut = false
	f.tongue.State = component.TongueIdle

	transform, ok := ecs.Get(w, f.player, component.TransformComponent)
	if !ok {
		return
	}
	origin := cp.Vector{X: transform.X, Y: transform.Y}

	target, ok := SelectTarget(origin, f.input.Side, pillarCandidates(w))
	if !ok {
		return
	}
	plan, err := PlanChain(origin, target, ts.tuning)
	if err != nil {
		return
	}

	f.tongue.Generation++
	ts.spawnChain(w, f, target, plan)

	f.tongue.State = component.TongueAttached
	f.tongue.Target = uint64(target.Pillar)
	f.character.TongueOut = true
}

func (ts *TongueSystem) spawnChain(w *ecs.World, f *tongueFrame, target AttachmentTarget, plan ChainPlan) {
	gen := f.tongue.Generation
	segments := make([]ecs.Entity, 0, len(plan.Segments))

	for i, seg := range plan.Segments {
		e := w.CreateEntity()
		ts.mustAdd(ecs.Add(w, e, component.TransformComponent, component.Transform{
			X: seg.Position.X, Y: seg.Position.Y, ScaleX: 1, ScaleY: 1, Rotation: seg.Angle,
		}))
		ts.mustAdd(ecs.Add(w, e, component.PhysicsBodyComponent, component.PhysicsBody{
			Width:  seg.Width,
			Height: seg.Length,
			Mass:   seg.Mass,
		}))
		ts.mustAdd(ecs.Add(w, e, component.CollisionLayerComponent, component.CollisionLayer{
			Category: component.LayerRope,
			Mask:     component.LayerGround | component.LayerPillar,
		}))
		ts.mustAdd(ecs.Add(w, e, component.SpriteComponent, component.Sprite{
			Width: seg.Width, Height: seg.Length, Color: ts.color, Layer: 1,
		}))
		ts.mustAdd(ecs.Add(w, e, component.TongueSegmentComponent, component.TongueSegment{
			Generation: gen, Index: i, Length: seg.Length,
		}))
		segments = append(segments, e)

		w.Events().Push(ecs.Event{Type: ecs.EventTongueSegmentSpawned, Data: ecs.TongueSegmentEvent{
			Entity:     e,
			Generation: gen,
			X:          seg.Position.X,
			Y:          seg.Position.Y,
			Rotation:   seg.Angle,
			Width:      seg.Width,
			Length:     seg.Length,
		}})
	}

	endpoint := func(idx int) ecs.Entity {
		switch idx {
		case ChainCharacter:
			return f.player
		case ChainPillar:
			return target.Pillar
		default:
			return segments[idx]
		}
	}

	joints := make([]ecs.Entity, 0, len(plan.Joints))
	for _, jp := range plan.Joints {
		a, b := endpoint(jp.A), endpoint(jp.B)
		e := w.CreateEntity()
		ts.mustAdd(ecs.Add(w, e, component.TongueJointComponent, component.TongueJoint{
			Generation: gen,
			BodyA:      uint64(a),
			BodyB:      uint64(b),
			AnchorA:    jp.AnchorA,
			AnchorB:    jp.AnchorB,
			Compliance: jp.Compliance,
		}))
		joints = append(joints, e)

		w.Events().Push(ecs.Event{Type: ecs.EventTongueJointSpawned, Data: ecs.TongueJointEvent{
			Entity:     e,
			Generation: gen,
			BodyA:      a,
			BodyB:      b,
			Compliance: jp.Compliance,
		}})
	}

	f.tongue.Segments = entityIDs(segments)
	f.tongue.Joints = entityIDs(joints)
}

// release destroys every entity of the current generation.
func (ts *TongueSystem) release(w *ecs.World, f *tongueFrame) {
	removed := make([]ecs.Entity, 0, len(f.tongue.Joints)+len(f.tongue.Segments))
	for _, id := range f.tongue.Joints {
		if e := ecs.Entity(id); w.DestroyEntity(e) {
			removed = append(removed, e)
		}
	}
	for _, id := range f.tongue.Segments {
		if e := ecs.Entity(id); w.DestroyEntity(e) {
			removed = append(removed, e)
		}
	}

	if len(removed) > 0 {
		w.Events().Push(ecs.Event{Type: ecs.EventTongueDespawned, Data: ecs.TongueDespawnEvent{
			Generation: f.tongue.Generation,
			Entities:   removed,
		}})
	}

	f.tongue.Segments = nil
	f.tongue.Joints = nil
	f.tongue.Target = 0
	f.tongue.State = component.TongueIdle
	f.character.TongueOut = false
}

func (ts *TongueSystem) mustAdd(err error) {
	if err != nil {
		panic("tongue system: spawn chain: " + err.Error())
	}
}

func entityIDs(entities []ecs.Entity) []uint64 {
	out := make([]uint64, len(entities))
	for i, e := range entities {
		out[i] = uint64(e)
	}
	return out
}
