package approval

import "errors"

var (
	ErrInvalidStepOrder       = errors.New("invalid step order")
	ErrInstanceTerminated     = errors.New("workflow instance is terminated")
	ErrUnauthorizedAuthority  = errors.New("acting identity is not the authority for this step")
	ErrInvalidDecision        = errors.New("decision must be approved or rejected")
	ErrChainMismatch          = errors.New("instance does not match its approval chain")
	ErrInstanceNotFound       = errors.New("workflow instance not found")
	ErrConcurrentModification = errors.New("workflow instance was modified concurrently")
)
