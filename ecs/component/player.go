package component

// Character is the frog. TongueOut mirrors the attach intent: it is true only
// while a complete tongue chain exists.
type Character struct {
	TongueOut bool
}

var CharacterComponent = NewComponent[Character]()
