package savestate

import "fmt"

// Stadium is the side of a team in a game.
type Stadium uint8

// Game sides.
const (
	Home Stadium = iota
	Away
)

func (s Stadium) String() string {
	switch s {
	case Home:
		return "Home"
	case Away:
		return "Away"
	default:
		return fmt.Sprintf("Stadium(%d)", s)
	}
}

// Injury is the 2-bit injury status of an offensive skill player.
type Injury uint8

// Injury statuses.
const (
	NotInjured Injury = iota
	ProbableReturn
	Doubtful
	Questionable
)

var injuryNames = [...]string{"NotInjured", "ProbableReturn", "Doubtful", "Questionable"}

func (i Injury) String() string {
	if int(i) >= len(injuryNames) {
		return fmt.Sprintf("Injury(%d)", i)
	}
	return injuryNames[i]
}

// Condition is the 2-bit game condition of a player.
type Condition uint8

// Player conditions.
const (
	Bad Condition = iota
	Average
	Good
	Excellent
)

var conditionNames = [...]string{"Bad", "Average", "Good", "Excellent"}

func (c Condition) String() string {
	if int(c) >= len(conditionNames) {
		return fmt.Sprintf("Condition(%d)", c)
	}
	return conditionNames[c]
}

// Delta returns the number of attribute code steps the condition moves the
// rated attribute values of a player.
func (c Condition) Delta() int {
	switch c {
	case Bad:
		return -1
	case Good:
		return 1
	case Excellent:
		return 2
	default:
		return 0
	}
}
