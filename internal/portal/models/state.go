package models

// ComputeDeadlineState derives a deadline's effective state from the statuses
// of the document requests it depends on. Precedence is fixed: any missing
// request blocks the deadline, otherwise any waiting request puts it at risk,
// otherwise everything was received and the deadline is ok.
//
// A deadline with no dependencies, or whose dependency ids match none of the
// given requests, keeps its stored state as the authoritative value.
//
// The function is pure. The service recomputes eagerly after every status
// mutation and again on every read, so a stale stored state can never be
// observed.
func ComputeDeadlineState(d Deadline, requests []DocumentRequest) DeadlineState {
	if len(d.DependsOn) == 0 {
		return d.State
	}

	deps := make(map[string]struct{}, len(d.DependsOn))
	for _, id := range d.DependsOn {
		deps[id] = struct{}{}
	}

	matched := false
	anyMissing := false
	anyWaiting := false
	for _, r := range requests {
		if _, ok := deps[r.ID]; !ok {
			continue
		}
		matched = true
		switch r.Status {
		case StatusMissing:
			anyMissing = true
		case StatusWaiting:
			anyWaiting = true
		}
	}

	switch {
	case !matched:
		return d.State
	case anyMissing:
		return StateBlocked
	case anyWaiting:
		return StateRisk
	default:
		return StateOK
	}
}
