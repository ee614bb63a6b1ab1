package structs

import (
	"strings"
)

// Status is the state of a queued job as far as callers are concerned.
type Status string

const (
	// transient states
	PENDING Status = "pending"
	STARTED Status = "started"

	// end states
	SUCCESS Status = "success"
	FAILURE Status = "failure"

	// the queue doesn't know (or no longer knows) about the job
	UNKNOWN Status = "unknown"
)

func IsFinalStatus(status Status) bool {
	switch status {
	case SUCCESS, FAILURE:
		return true
	default:
		return false
	}
}

func ToStatus(s string) Status {
	switch strings.ToLower(s) {
	case "pending":
		return PENDING
	case "started":
		return STARTED
	case "success":
		return SUCCESS
	case "failure":
		return FAILURE
	case "unknown":
		return UNKNOWN
	default:
		return ""
	}
}
