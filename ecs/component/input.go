package component

type IntentKind int

const (
	IntentNone IntentKind = iota
	IntentPressed
	IntentReleased
)

func (k IntentKind) String() string {
	switch k {
	case IntentPressed:
		return "pressed"
	case IntentReleased:
		return "released"
	default:
		return "none"
	}
}

type Side int

const (
	SideRight Side = iota
	SideLeft
)

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// Input stores the normalized pointer intent for the current frame.
type Input struct {
	Intent IntentKind
	Side   Side
}

var InputComponent = NewComponent[Input]()
