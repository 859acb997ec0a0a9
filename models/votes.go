// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// VoteCounts is the per-battle vote tally. Counters only increase, and only
// while the battle is in the completed state.
type VoteCounts struct {
	A   int `json:"A"`
	B   int `json:"B"`
	Tie int `json:"tie"`
}

// Total returns the number of accepted votes.
func (v VoteCounts) Total() int {
	return v.A + v.B + v.Tie
}

// Winner classifies the current tally. ok is false when no votes have been
// cast. A side wins only when it strictly exceeds both other counters; every
// other configuration (all equal, any two-way equality, or tie strictly
// greatest) resolves to VoteTie.
func (v VoteCounts) Winner() (winner string, ok bool) {
	if v.Total() == 0 {
		return "", false
	}
	switch {
	case v.A > v.B && v.A > v.Tie:
		return VoteA, true
	case v.B > v.A && v.B > v.Tie:
		return VoteB, true
	default:
		return VoteTie, true
	}
}

// WinnerPtr adapts Winner for JSON responses where "no votes yet" is null.
func (v VoteCounts) WinnerPtr() *string {
	w, ok := v.Winner()
	if !ok {
		return nil
	}
	return &w
}
