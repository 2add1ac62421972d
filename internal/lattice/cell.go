package lattice

// Cell enumerates the pigment state stored at one lattice site.
type Cell uint8

const (
	Empty Cell = iota
	Xanthophore
	Melanophore
)

// NumCellStates is the number of valid Cell values.
const NumCellStates = 3

// Valid reports whether c is one of the known pigment states.
func (c Cell) Valid() bool { return c < NumCellStates }

func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case Xanthophore:
		return "xanthophore"
	case Melanophore:
		return "melanophore"
	default:
		return "invalid"
	}
}
