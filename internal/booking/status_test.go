package booking

import "testing"

var lifecycle = []Status{
	StatusPending, StatusAssigned, StatusPlanning, StatusMaterialsPrepared,
	StatusOnTheWay, StatusInProgress, StatusCompleted, StatusCancelled,
}

func TestNextStep_ExactlyOneSuccessorPerNonTerminal(t *testing.T) {
	for _, s := range lifecycle {
		step, ok := NextStep(s)
		if IsTerminal(s) {
			if ok {
				t.Fatalf("%s is terminal but has successor %s", s, step.Next)
			}
			continue
		}
		if !ok {
			t.Fatalf("%s has no successor", s)
		}
		if step.Next == s {
			t.Fatalf("%s advances to itself", s)
		}
		if step.Label == "" {
			t.Fatalf("%s has no action label", s)
		}
	}
}

func TestNextStep_OrderedChainReachesCompleted(t *testing.T) {
	s := StatusPending
	seen := map[Status]bool{s: true}
	for i := 0; i < len(lifecycle); i++ {
		step, ok := NextStep(s)
		if !ok {
			break
		}
		if seen[step.Next] {
			t.Fatalf("cycle at %s -> %s", s, step.Next)
		}
		seen[step.Next] = true
		s = step.Next
	}
	if s != StatusCompleted {
		t.Fatalf("chain ended at %s, want %s", s, StatusCompleted)
	}
}

func TestNextStep_UnknownStatusHasNoAction(t *testing.T) {
	if _, ok := NextStep(Status("shipped")); ok {
		t.Fatalf("unknown status must not have an advance action")
	}
	if _, ok := NextStep(Status("")); ok {
		t.Fatalf("empty status must not have an advance action")
	}
}

func TestCanAdvance(t *testing.T) {
	if !CanAdvance(StatusAssigned, StatusPlanning) {
		t.Fatalf("assigned -> planning should be allowed")
	}
	if CanAdvance(StatusAssigned, StatusCompleted) {
		t.Fatalf("skipping stages must be rejected")
	}
	if CanAdvance(StatusCompleted, StatusPending) {
		t.Fatalf("terminal status must not advance")
	}
	if CanAdvance(StatusPlanning, StatusAssigned) {
		t.Fatalf("status must not move backwards")
	}
}

func TestBadge_UnknownGetsLowestTier(t *testing.T) {
	if got := Badge(Status("whatever")); got != "muted" {
		t.Fatalf("expected muted for unknown status, got %s", got)
	}
	if got := Badge(StatusCompleted); got != "success" {
		t.Fatalf("expected success, got %s", got)
	}
}

func TestCanCancel(t *testing.T) {
	if !CanCancel(StatusPending) || !CanCancel(StatusInProgress) {
		t.Fatalf("non-terminal statuses should be cancellable")
	}
	if CanCancel(StatusCompleted) || CanCancel(StatusCancelled) {
		t.Fatalf("terminal statuses must not be cancellable")
	}
	if CanCancel(Status("bogus")) {
		t.Fatalf("unknown status must not be cancellable")
	}
}
