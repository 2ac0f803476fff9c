// Package complaint provides the core logic of the complaint lifecycle:
// the status transition graph, the role authorization policy, the transition
// engine writing the audit ledger, and the one-time feedback transaction.
package complaint

import "campuscare/backend/internal/models"

// transitions is the fixed lifecycle graph. RESOLVED and REJECTED have no
// outgoing edges and a complaint never regresses to NEW.
var transitions = map[models.Status][]models.Status{
	models.StatusNew:        {models.StatusInProgress, models.StatusRejected},
	models.StatusInProgress: {models.StatusResolved, models.StatusRejected},
}

// EdgeExists reports whether the lifecycle graph contains the edge
// current -> requested. Unknown statuses on either side are never valid.
func EdgeExists(current, requested models.Status) bool {
	for _, next := range transitions[current] {
		if next == requested {
			return true
		}
	}
	return false
}
