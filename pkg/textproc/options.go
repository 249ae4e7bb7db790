package textproc

// BasicOptions is the domain of simple on/off processors.
var BasicOptions = []bool{false, true}

// Direction selects the mode of a bidirectional processor.
type Direction int

const (
	Off Direction = iota
	Direct
	Inverse
)

// Directions is the domain of every bidirectional processor.
var Directions = []Direction{Off, Direct, Inverse}

func (d Direction) String() string {
	switch d {
	case Off:
		return "off"
	case Direct:
		return "direct"
	case Inverse:
		return "inverse"
	}
	return "direction(?)"
}

// EmphaticOption configures emphatic sequence collapsing. Full without
// Collapse is not part of the domain.
type EmphaticOption struct {
	Collapse bool
	Full     bool
}

// EmphaticOptions is the domain of the collapse processor.
var EmphaticOptions = []EmphaticOption{
	{Collapse: false, Full: false},
	{Collapse: true, Full: false},
	{Collapse: true, Full: true},
}

func (o EmphaticOption) String() string {
	switch {
	case !o.Collapse && !o.Full:
		return "off"
	case o.Collapse && !o.Full:
		return "collapse"
	case o.Collapse && o.Full:
		return "full"
	}
	return "full-without-collapse"
}

// toggle lifts fn into an on/off processor function.
func toggle(fn func(string) string) func(string, bool) string {
	return func(text string, on bool) string {
		if !on {
			return text
		}
		return fn(text)
	}
}

// bidirectional lifts a conversion and its inverse into a three-way
// processor function.
func bidirectional(direct, inverse func(string) string) func(string, Direction) string {
	return func(text string, d Direction) string {
		switch d {
		case Direct:
			return direct(text)
		case Inverse:
			return inverse(text)
		}
		return text
	}
}
