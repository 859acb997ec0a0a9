// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store holds all battle and vote state in memory with a fixed
capacity bound.

One long-lived Store is shared by every handler. Inserting past capacity
evicts the oldest-inserted battles together with their vote logs; vote
application appends the record and bumps the matching counter under one
lock, so concurrent voters on the same battle never lose increments and
readers never see a half-applied vote.

Nothing is persisted; a process restart starts empty.
*/
package store
