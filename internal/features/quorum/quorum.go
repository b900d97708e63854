// Package quorum decides whether a vote or meeting reached its required
// participation threshold.
package quorum

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidInput = errors.New("invalid quorum input")

// InputError names the field that violated its constraint
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidInput, e.Field, e.Reason)
}

func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Query is the transient input of Evaluate
type Query struct {
	EligibleCount      int     `json:"eligible_count"`
	PresentCount       int     `json:"present_count"`
	RequiredPercentage float64 `json:"required_percentage"`
}

type Result struct {
	TurnoutPercentage float64 `json:"turnout_percentage"`
	IsMet             bool    `json:"is_met"`
	ShortfallCount    int     `json:"shortfall_count"`
}

// DisplayTurnout rounds the turnout to one decimal place. It is never used
// for the IsMet comparison.
func (r Result) DisplayTurnout() float64 {
	return math.Round(r.TurnoutPercentage*10) / 10
}

// Evaluate computes turnout against requiredPercentage. The threshold is
// inclusive and the shortfall is rounded up to whole attendees.
func Evaluate(eligibleCount, presentCount int, requiredPercentage float64) (Result, error) {
	switch {
	case eligibleCount <= 0:
		return Result{}, &InputError{Field: "eligible_count", Reason: "must be greater than zero"}
	case presentCount < 0:
		return Result{}, &InputError{Field: "present_count", Reason: "must not be negative"}
	case presentCount > eligibleCount:
		return Result{}, &InputError{Field: "present_count", Reason: "must not exceed eligible_count"}
	case math.IsNaN(requiredPercentage) || requiredPercentage < 0 || requiredPercentage > 100:
		return Result{}, &InputError{Field: "required_percentage", Reason: "must be between 0 and 100"}
	}

	// Compare present*100 against required*eligible so an exact match is
	// never lost to a rounded division.
	turnout := float64(presentCount*100) / float64(eligibleCount)
	isMet := float64(presentCount)*100 >= requiredPercentage*float64(eligibleCount)

	shortfall := 0
	if !isMet {
		needed := int(math.Ceil(float64(eligibleCount) * requiredPercentage / 100))
		shortfall = max(needed-presentCount, 1)
	}

	return Result{
		TurnoutPercentage: turnout,
		IsMet:             isMet,
		ShortfallCount:    shortfall,
	}, nil
}

// EvaluateQuery is Evaluate over a Query value
func EvaluateQuery(q Query) (Result, error) {
	return Evaluate(q.EligibleCount, q.PresentCount, q.RequiredPercentage)
}
