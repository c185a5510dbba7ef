package leitner

import "errors"

var (
	// ErrInvalidCapacity signals a broken capacity configuration or an active
	// set that escaped its bounds. It is a programming or config error.
	ErrInvalidCapacity = errors.New("invalid capacity")

	// ErrItemNotFound is returned when an outcome is recorded for a phrase
	// that is not in the learner's active set (usually a stale session).
	ErrItemNotFound = errors.New("phrase not in active set")

	// ErrRefillFailed is returned when the active set needed topping up and
	// content generation failed or produced nothing usable. The learner can
	// retry later; no state was corrupted.
	ErrRefillFailed = errors.New("refill failed")

	// ErrNoItemsAvailable means the learner has no phrases left to activate
	// and no way to generate more. It is a terminal state, not a fault.
	ErrNoItemsAvailable = errors.New("no phrases available")

	// ErrUnknownLearner is returned by the Pool for learners that are not
	// registered or not allowed.
	ErrUnknownLearner = errors.New("unknown learner")
)
