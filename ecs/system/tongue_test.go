package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/flickyfrog/ecs"
	"github.com/milk9111/flickyfrog/ecs/component"
)

func mustAdd(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func newTongueWorld(t *testing.T) (*ecs.World, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	player := w.CreateEntity()
	mustAdd(t, ecs.Add(w, player, component.PlayerTagComponent, component.PlayerTag{}))
	mustAdd(t, ecs.Add(w, player, component.CharacterComponent, component.Character{}))
	mustAdd(t, ecs.Add(w, player, component.InputComponent, component.Input{}))
	mustAdd(t, ecs.Add(w, player, component.TongueComponent, component.Tongue{}))
	mustAdd(t, ecs.Add(w, player, component.TransformComponent, component.Transform{ScaleX: 1, ScaleY: 1}))
	return w, player
}

func addPillar(t *testing.T, w *ecs.World, x, y, height float64) ecs.Entity {
	t.Helper()
	body := cp.NewStaticBody()
	body.SetPosition(cp.Vector{X: x, Y: y})
	e := w.CreateEntity()
	mustAdd(t, ecs.Add(w, e, component.PillarTagComponent, component.PillarTag{}))
	mustAdd(t, ecs.Add(w, e, component.TransformComponent, component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}))
	mustAdd(t, ecs.Add(w, e, component.PhysicsBodyComponent, component.PhysicsBody{
		Body:   body,
		Shape:  cp.NewBox(body, 1, height, 0),
		Width:  1,
		Height: height,
		Static: true,
	}))
	return e
}

func setIntent(t *testing.T, w *ecs.World, player ecs.Entity, kind component.IntentKind, side component.Side) {
	t.Helper()
	mustAdd(t, ecs.Add(w, player, component.InputComponent, component.Input{Intent: kind, Side: side}))
}

func tongueOf(t *testing.T, w *ecs.World, player ecs.Entity) (component.Tongue, component.Character) {
	t.Helper()
	tongue, ok := ecs.Get(w, player, component.TongueComponent)
	if !ok {
		t.Fatalf("player lost tongue component")
	}
	character, ok := ecs.Get(w, player, component.CharacterComponent)
	if !ok {
		t.Fatalf("player lost character component")
	}
	return tongue, character
}

func TestTongueAttachAndRelease(t *testing.T) {
	w, player := newTongueWorld(t)
	pillar := addPillar(t, w, 6, 10, 4)
	addPillar(t, w, -6, 10, 4)
	ts := NewTongueSystem(DefaultChainTuning(), colorWhite)

	setIntent(t, w, player, component.IntentPressed, component.SideRight)
	ts.Update(w)

	tongue, character := tongueOf(t, w, player)
	if tongue.State != component.TongueAttached || !character.TongueOut {
		t.Fatalf("expected attached tongue, got %s out=%v", tongue.State, character.TongueOut)
	}
	if ecs.Entity(tongue.Target) != pillar {
		t.Fatalf("expected target %v, got %v", pillar, ecs.Entity(tongue.Target))
	}
	// anchor (6, 8) is 10 units away
	if len(tongue.Segments) != 8 || len(tongue.Joints) != 9 {
		t.Fatalf("expected 8 segments and 9 joints, got %d and %d", len(tongue.Segments), len(tongue.Joints))
	}

	first, ok := ecs.Get(w, ecs.Entity(tongue.Joints[0]), component.TongueJointComponent)
	if !ok || ecs.Entity(first.BodyA) != player || first.BodyB != tongue.Segments[0] {
		t.Fatalf("first joint should link character to first segment: %+v", first)
	}
	last, ok := ecs.Get(w, ecs.Entity(tongue.Joints[8]), component.TongueJointComponent)
	if !ok || last.BodyA != tongue.Segments[7] || ecs.Entity(last.BodyB) != pillar {
		t.Fatalf("last joint should link last segment to pillar: %+v", last)
	}
	if last.AnchorB != (cp.Vector{Y: -2}) {
		t.Fatalf("pillar anchor should be its bottom center, got %v", last.AnchorB)
	}
	for i, id := range tongue.Segments {
		seg, ok := ecs.Get(w, ecs.Entity(id), component.TongueSegmentComponent)
		if !ok || seg.Generation != tongue.Generation || seg.Index != i {
			t.Fatalf("segment %d: %+v", i, seg)
		}
	}

	events := w.Events().Drain()
	counts := map[string]int{}
	for _, evt := range events {
		counts[evt.Type]++
	}
	if counts[ecs.EventTongueSegmentSpawned] != 8 || counts[ecs.EventTongueJointSpawned] != 9 {
		t.Fatalf("unexpected spawn events %v", counts)
	}

	chain := append(append([]uint64{}, tongue.Segments...), tongue.Joints...)

	setIntent(t, w, player, component.IntentReleased, component.SideRight)
	ts.Update(w)

	tongue, character = tongueOf(t, w, player)
	if tongue.State != component.TongueIdle || character.TongueOut {
		t.Fatalf("expected idle tongue after release, got %s out=%v", tongue.State, character.TongueOut)
	}
	if len(tongue.Segments) != 0 || len(tongue.Joints) != 0 {
		t.Fatalf("release should clear the generation lists")
	}
	for _, id := range chain {
		if w.IsAlive(ecs.Entity(id)) {
			t.Fatalf("entity %v survived release", ecs.Entity(id))
		}
	}

	events = w.Events().Drain()
	if len(events) != 1 || events[0].Type != ecs.EventTongueDespawned {
		t.Fatalf("expected one despawn event, got %v", events)
	}
	if data := events[0].Data.(ecs.TongueDespawnEvent); len(data.Entities) != 17 {
		t.Fatalf("expected 17 despawned entities, got %d", len(data.Entities))
	}
}

func TestTongueNoOps(t *testing.T) {
	tests := []struct {
		name   string
		intent component.IntentKind
	}{
		{name: "released while idle", intent: component.IntentReleased},
		{name: "no intent", intent: component.IntentNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, player := newTongueWorld(t)
			addPillar(t, w, 6, 10, 4)
			ts := NewTongueSystem(DefaultChainTuning(), colorWhite)
			before := w.Len()

			setIntent(t, w, player, tt.intent, component.SideRight)
			ts.Update(w)

			if w.Len() != before {
				t.Fatalf("expected %d entities, got %d", before, w.Len())
			}
			if w.Events().Len() != 0 {
				t.Fatalf("expected no events")
			}
			tongue, character := tongueOf(t, w, player)
			if tongue.State != component.TongueIdle || character.TongueOut {
				t.Fatalf("tongue should stay idle")
			}
		})
	}
}

func TestTongueFailedGrab(t *testing.T) {
	tests := []struct {
		name    string
		pillarX float64
		pillarY float64
		side    component.Side
	}{
		{name: "no pillar on side", pillarX: 6, pillarY: 10, side: component.SideLeft},
		{name: "anchor closer than one unit", pillarX: 0.2, pillarY: 2.5, side: component.SideRight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, player := newTongueWorld(t)
			addPillar(t, w, tt.pillarX, tt.pillarY, 4)
			mustAdd(t, ecs.Add(w, player, component.CharacterComponent, component.Character{TongueOut: true}))
			ts := NewTongueSystem(DefaultChainTuning(), colorWhite)
			before := w.Len()

			setIntent(t, w, player, component.IntentPressed, tt.side)
			ts.Update(w)

			tongue, character := tongueOf(t, w, player)
			if tongue.State != component.TongueIdle || character.TongueOut {
				t.Fatalf("failed grab should reset the tongue, got %s out=%v", tongue.State, character.TongueOut)
			}
			if w.Len() != before {
				t.Fatalf("failed grab spawned entities")
			}
		})
	}
}

func TestTonguePressWhileAttached(t *testing.T) {
	w, player := newTongueWorld(t)
	addPillar(t, w, 6, 10, 4)
	left := addPillar(t, w, -6, 10, 4)
	ts := NewTongueSystem(DefaultChainTuning(), colorWhite)

	setIntent(t, w, player, component.IntentPressed, component.SideRight)
	ts.Update(w)
	first, _ := tongueOf(t, w, player)

	setIntent(t, w, player, component.IntentPressed, component.SideLeft)
	ts.Update(w)
	second, character := tongueOf(t, w, player)

	if second.State != component.TongueAttached || !character.TongueOut {
		t.Fatalf("expected attached tongue")
	}
	if second.Generation != first.Generation+1 {
		t.Fatalf("expected generation %d, got %d", first.Generation+1, second.Generation)
	}
	if ecs.Entity(second.Target) != left {
		t.Fatalf("expected new target %v, got %v", left, ecs.Entity(second.Target))
	}
	for _, id := range append(first.Segments, first.Joints...) {
		if w.IsAlive(ecs.Entity(id)) {
			t.Fatalf("old generation entity %v still alive", ecs.Entity(id))
		}
	}
	// player, two pillars, 8 segments, 9 joints
	if w.Len() != 3+8+9 {
		t.Fatalf("expected %d entities, got %d", 3+8+9, w.Len())
	}
}
