package services

import "modamart/internal/models"

// allowedTransitions is the fulfillment workflow adjacency list. Details
// advance exactly one stage at a time; cancellation is reachable only before
// the parcel leaves (payment complete or preparing). CONFIRMED and CANCELLED
// are terminal.
//
// TODO: confirm with ops whether CANCELLED should also be reachable from
// SHIPPING once the carrier return flow lands; the current list is the
// conservative reading of the workflow.
var allowedTransitions = map[int64][]int64{
	models.StatusPaymentComplete: {models.StatusPreparing, models.StatusCancelled},
	models.StatusPreparing:       {models.StatusShipping, models.StatusCancelled},
	models.StatusShipping:        {models.StatusDelivered},
	models.StatusDelivered:       {models.StatusConfirmed},
	models.StatusConfirmed:       {},
	models.StatusCancelled:       {},
}

// CanTransition reports whether moving from current to target is a legal
// workflow step. Unknown current statuses have no legal moves.
func CanTransition(current, target int64) bool {
	for _, next := range allowedTransitions[current] {
		if next == target {
			return true
		}
	}
	return false
}
