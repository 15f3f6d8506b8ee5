package domain

// GameState is a phase of the game loop
type GameState uint8

const (
	StateCalibrating GameState = iota
	StateIdle
	StateObservingKnown
	StateObservingNew
	StateReplaying
	StateWon
)

var stateNames = [...]string{
	StateCalibrating:    "calibrating",
	StateIdle:           "idle",
	StateObservingKnown: "observing_known",
	StateObservingNew:   "observing_new",
	StateReplaying:      "replaying",
	StateWon:            "won",
}

func (s GameState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// InRound reports whether the state belongs to a round of play
func (s GameState) InRound() bool {
	return s == StateObservingKnown || s == StateObservingNew || s == StateReplaying
}
