package event

// Handler reacts to the kinds of event it knows and ignores the others
type Handler interface {
	Handle(event Event)
}
