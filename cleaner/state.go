package cleaner

type State int

const (
	Disconnected State = iota
	Connected
	FolderSelected
	Searched
	Previewed
	Mutated
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connected:
		return "connected"
	case FolderSelected:
		return "folder selected"
	case Searched:
		return "searched"
	case Previewed:
		return "previewed"
	case Mutated:
		return "mutated"
	default:
		return "unknown"
	}
}
