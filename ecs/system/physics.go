package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/flickyfrog/common"
	"github.com/milk9111/flickyfrog/ecs"
	"github.com/milk9111/flickyfrog/ecs/component"
)

type PhysicsConfig struct {
	Gravity        float64
	Substeps       int
	Iterations     int
	StiffnessScale float64
}

func DefaultPhysicsConfig() PhysicsConfig {
	return PhysicsConfig{
		Gravity:        common.Gravity,
		Substeps:       common.Substeps,
		Iterations:     common.Iterations,
		StiffnessScale: 1,
	}
}

// PhysicsSystem mirrors PhysicsBody and TongueJoint components into a
// Chipmunk space and writes simulated poses back into transforms.
type PhysicsSystem struct {
	space  *cp.Space
	config PhysicsConfig

	bodies map[ecs.Entity]*bodyInfo
	joints map[ecs.Entity]*cp.Constraint
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
}

func NewPhysicsSystem(config PhysicsConfig) *PhysicsSystem {
	if config.Substeps <= 0 {
		config.Substeps = common.Substeps
	}
	if config.Iterations <= 0 {
		config.Iterations = common.Iterations
	}
	if config.StiffnessScale <= 0 {
		config.StiffnessScale = 1
	}
	space := cp.NewSpace()
	space.Iterations = uint(config.Iterations)
	space.SetGravity(cp.Vector{X: 0, Y: -config.Gravity})
	return &PhysicsSystem{
		space:  space,
		config: config,
		bodies: make(map[ecs.Entity]*bodyInfo),
		joints: make(map[ecs.Entity]*cp.Constraint),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// SetStiffnessScale changes how joint compliance maps to constraint force.
// Only joints created afterwards are affected.
func (ps *PhysicsSystem) SetStiffnessScale(scale float64) {
	if ps == nil || scale <= 0 {
		return
	}
	ps.config.StiffnessScale = scale
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.cleanupJoints(w)
	ps.cleanupBodies(w)
	ps.syncBodies(w)
	ps.syncJoints(w)

	dt := w.Frame().DT
	if dt <= 0 {
		dt = 1.0 / common.DefaultTPS
	}
	step := dt / float64(ps.config.Substeps)
	for i := 0; i < ps.config.Substeps; i++ {
		ps.space.Step(step)
	}

	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) cleanupJoints(w *ecs.World) {
	for e, c := range ps.joints {
		if w.IsAlive(e) && ecs.Has(w, e, component.TongueJointComponent) {
			continue
		}
		if ps.space.ContainsConstraint(c) {
			ps.space.RemoveConstraint(c)
		}
		delete(ps.joints, e)
	}
}

// cleanupBodies drops bodies whose entity is gone. Chipmunk does not remove
// a body's constraints with it, so those go first.
func (ps *PhysicsSystem) cleanupBodies(w *ecs.World) {
	for e, info := range ps.bodies {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent) {
			continue
		}

		var attached []*cp.Constraint
		info.body.EachConstraint(func(c *cp.Constraint) {
			attached = append(attached, c)
		})
		for _, c := range attached {
			if ps.space.ContainsConstraint(c) {
				ps.space.RemoveConstraint(c)
			}
			for je, jc := range ps.joints {
				if jc == c {
					delete(ps.joints, je)
				}
			}
		}

		if info.shape != nil && ps.space.ContainsShape(info.shape) {
			ps.space.RemoveShape(info.shape)
		}
		if ps.space.ContainsBody(info.body) {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.bodies, e)
	}
}

func (ps *PhysicsSystem) syncBodies(w *ecs.World) {
	entities := w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range entities {
		if _, ok := ps.bodies[e]; ok {
			continue
		}
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}
		layer, hasLayer := ecs.Get(w, e, component.CollisionLayerComponent)

		info := ps.createBodyInfo(transform, bodyComp)
		if hasLayer {
			info.shape.SetFilter(shapeFilter(layer))
		}
		ps.space.AddBody(info.body)
		ps.space.AddShape(info.shape)
		ps.bodies[e] = info

		bodyComp.Body = info.body
		bodyComp.Shape = info.shape
		if err := ecs.Add(w, e, component.PhysicsBodyComponent, bodyComp); err != nil {
			panic("physics system: update body: " + err.Error())
		}
	}
}

func (ps *PhysicsSystem) createBodyInfo(transform component.Transform, bodyComp component.PhysicsBody) *bodyInfo {
	width := bodyComp.Width
	height := bodyComp.Height
	if width <= 0 || height <= 0 {
		width, height = 1, 1
	}

	var body *cp.Body
	if bodyComp.Static {
		body = cp.NewStaticBody()
	} else {
		mass := bodyComp.Mass
		if mass <= 0 {
			mass = 1
		}
		body = cp.NewBody(mass, cp.MomentForBox(mass, width, height))
		body.SetVelocity(bodyComp.VelocityX, bodyComp.VelocityY)
	}
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
	body.SetAngle(transform.Rotation)

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)

	return &bodyInfo{body: body, shape: shape, static: bodyComp.Static}
}

func shapeFilter(layer component.CollisionLayer) cp.ShapeFilter {
	category := uint(layer.Category)
	if category == 0 {
		category = 1
	}
	mask := uint(layer.Mask)
	if mask == 0 {
		mask = cp.ALL_CATEGORIES
	}
	return cp.NewShapeFilter(cp.NO_GROUP, category, mask)
}

// syncJoints creates constraints for new joints once both bodies exist.
func (ps *PhysicsSystem) syncJoints(w *ecs.World) {
	for _, e := range w.Query(component.TongueJointComponent.Kind()) {
		if _, ok := ps.joints[e]; ok {
			continue
		}
		joint, ok := ecs.Get(w, e, component.TongueJointComponent)
		if !ok {
			continue
		}
		a, okA := ps.bodies[ecs.Entity(joint.BodyA)]
		b, okB := ps.bodies[ecs.Entity(joint.BodyB)]
		if !okA || !okB {
			continue
		}

		c := cp.NewPivotJoint2(a.body, b.body, joint.AnchorA, joint.AnchorB)
		c.SetMaxForce(ps.maxForce(joint.Compliance))
		c.SetCollideBodies(false)
		ps.space.AddConstraint(c)
		ps.joints[e] = c
	}
}

func (ps *PhysicsSystem) maxForce(compliance float64) float64 {
	if compliance <= 0 {
		return math.Inf(1)
	}
	return ps.config.StiffnessScale / compliance
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.bodies {
		if info.static {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}
		pos := info.body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		transform.Rotation = info.body.Angle()
		if err := ecs.Add(w, e, component.TransformComponent, transform); err != nil {
			panic("physics system: update transform: " + err.Error())
		}
	}
}
