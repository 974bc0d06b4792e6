package model

// SwapStatus is the lifecycle state of a swap request.
type SwapStatus string

const (
	SwapPending   SwapStatus = "pending"
	SwapAccepted  SwapStatus = "accepted"
	SwapScheduled SwapStatus = "scheduled"
	SwapRejected  SwapStatus = "rejected"
	SwapCompleted SwapStatus = "completed"
	SwapCancelled SwapStatus = "cancelled"
)

// swapTransitions lists the legal next states. Terminal states have no entry.
var swapTransitions = map[SwapStatus][]SwapStatus{
	SwapPending:   {SwapAccepted, SwapRejected, SwapCancelled},
	SwapAccepted:  {SwapScheduled, SwapCompleted, SwapCancelled},
	SwapScheduled: {SwapCompleted, SwapCancelled},
}

// CanTransition reports whether a request in state s may move to next.
func (s SwapStatus) CanTransition(next SwapStatus) bool {
	for _, allowed := range swapTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func (s SwapStatus) Terminal() bool {
	return len(swapTransitions[s]) == 0
}

// SwapRequest pairs the session user with a counterpart.
//
// Incoming and outgoing requests use SkillOffered/SkillWanted; accepted swaps
// carry a combined SkillExchange label and a ScheduledDate instead.
type SwapRequest struct {
	ID            string      `json:"id"                      yaml:"id"`
	Counterpart   Counterpart `json:"user"                    yaml:"user"`
	SkillOffered  string      `json:"skillOffered,omitempty"  yaml:"skillOffered"`
	SkillWanted   string      `json:"skillWanted,omitempty"   yaml:"skillWanted"`
	SkillExchange string      `json:"skillExchange,omitempty" yaml:"skillExchange"`
	Message       string      `json:"message,omitempty"       yaml:"message"`
	Timestamp     string      `json:"timestamp,omitempty"     yaml:"timestamp"`
	ScheduledDate string      `json:"scheduledDate,omitempty" yaml:"scheduledDate"`
	Status        SwapStatus  `json:"status"                  yaml:"status"`
}

// SwapDraft is what a member submits from the Browse page's "Request Swap".
type SwapDraft struct {
	MemberID     string `json:"memberId"`
	SkillOffered string `json:"skillOffered"`
	SkillWanted  string `json:"skillWanted"`
	Message      string `json:"message"`
}
