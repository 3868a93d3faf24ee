package sim

// Side is the position direction: +1 long, -1 short, 0 flat.
type Side int8

const (
	Flat  Side = 0
	Long  Side = +1
	Short Side = -1
)

func (s Side) String() string {
	switch s {
	case Long:
		return "long"
	case Short:
		return "short"
	default:
		return "flat"
	}
}
