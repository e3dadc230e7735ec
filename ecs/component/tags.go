package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

type PillarTag struct{}

var PillarTagComponent = NewComponent[PillarTag]()

type GroundTag struct{}

var GroundTagComponent = NewComponent[GroundTag]()
