package entity

type Outcome int

const (
	InProgress Outcome = iota
	XWins
	OWins
	Draw
)

func (that Outcome) String() string {
	switch that {
	case XWins:
		return "x_wins"
	case OWins:
		return "o_wins"
	case Draw:
		return "draw"
	default:
		return "in_progress"
	}
}

func (that Outcome) IsFinished() bool {
	return that != InProgress
}
