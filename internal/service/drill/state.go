package drill

// State is a step of the review loop.
//
//	AwaitingContinueDecision -> Terminated        (user declines)
//	AwaitingContinueDecision -> PresentingPrompt  (user continues)
//	PresentingPrompt         -> AwaitingGrade     (prompt acknowledged)
//	AwaitingGrade            -> Updating          (grade captured)
//	Updating                 -> AwaitingContinueDecision
type State int

const (
	StateAwaitingContinueDecision State = iota
	StatePresentingPrompt
	StateAwaitingGrade
	StateUpdating
	StateTerminated
)

var stateNames = map[State]string{
	StateAwaitingContinueDecision: "awaiting_continue_decision",
	StatePresentingPrompt:         "presenting_prompt",
	StateAwaitingGrade:            "awaiting_grade",
	StateUpdating:                 "updating",
	StateTerminated:               "terminated",
}

// String implements fmt.Stringer.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// next lists the states reachable from each state.
var next = map[State][]State{
	StateAwaitingContinueDecision: {StateTerminated, StatePresentingPrompt},
	StatePresentingPrompt:         {StateAwaitingGrade, StateTerminated},
	StateAwaitingGrade:            {StateUpdating, StateTerminated},
	StateUpdating:                 {StateAwaitingContinueDecision},
}

// canTransition reports whether the loop may move from s to to.
// Leaving PresentingPrompt or AwaitingGrade for Terminated only happens when
// input closes mid-drill.
func (s State) canTransition(to State) bool {
	for _, candidate := range next[s] {
		if candidate == to {
			return true
		}
	}
	return false
}
