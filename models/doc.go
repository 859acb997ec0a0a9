// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the request, response, and domain types shared across
the Prompt Battle API, plus the vote-tally computation.

# Domain Types

A Battle holds two prompts, the two generated responses, an optional topic,
and a VoteCounts tally. A VoteRecord links one voter identity to one choice
on one battle; the store enforces at most one record per (battle, voter).

# Winner Classification

VoteCounts.Winner implements the symmetric tally rule used everywhere a
winner is reported (vote responses and list items):

	w, ok := battle.Votes.Winner()

ok is false when no votes exist. A side wins only by strictly exceeding both
other counters; any equality collapses to "tie".
*/
package models
