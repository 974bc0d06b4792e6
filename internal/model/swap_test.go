package model

import "testing"

func TestSwapStatusTransitions(t *testing.T) {
	tests := []struct {
		from SwapStatus
		to   SwapStatus
		want bool
	}{
		{SwapPending, SwapAccepted, true},
		{SwapPending, SwapRejected, true},
		{SwapPending, SwapCancelled, true},
		{SwapPending, SwapCompleted, false},
		{SwapAccepted, SwapScheduled, true},
		{SwapAccepted, SwapCompleted, true},
		{SwapAccepted, SwapRejected, false},
		{SwapScheduled, SwapCompleted, true},
		{SwapRejected, SwapAccepted, false},
		{SwapCompleted, SwapCancelled, false},
		{SwapCancelled, SwapPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.want {
				t.Errorf("CanTransition() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSwapStatusTerminal(t *testing.T) {
	for _, s := range []SwapStatus{SwapRejected, SwapCompleted, SwapCancelled} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []SwapStatus{SwapPending, SwapAccepted, SwapScheduled} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestUserCloneDoesNotAlias(t *testing.T) {
	u := &User{ID: "1", SkillsOffered: []string{"React"}, Badges: []string{"Newbie"}}
	c := u.Clone()
	c.SkillsOffered[0] = "Go"
	c.Badges = append(c.Badges, "Helper")

	if u.SkillsOffered[0] != "React" {
		t.Errorf("original SkillsOffered mutated: %v", u.SkillsOffered)
	}
	if len(u.Badges) != 1 {
		t.Errorf("original Badges mutated: %v", u.Badges)
	}
	if (*User)(nil).Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}
