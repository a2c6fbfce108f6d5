// Package boardsync reconciles the device-local and the remote board
// collections when a user signs in.
package boardsync

import (
	"sort"

	"github.com/dmitrijs2005/goalbingo/internal/bingo"
)

// Result is the outcome of Merge.
type Result struct {
	State   bingo.AppState
	Skipped []bingo.Board
}

// Merge combines local and remote into a collection of at most maxBoards
// boards.
//
// Boards present on both sides are the same board and the remote copy wins
// regardless of timestamps. Candidates are ordered by UpdatedAt, newest
// first; equal timestamps keep remote boards ahead of local ones and
// otherwise keep input order. Boards past maxBoards are returned in Skipped.
// A current board id that does not survive is cleared. Inputs are never
// modified; the result holds copies.
func Merge(local, remote *bingo.AppState, maxBoards int) Result {
	localEmpty := local == nil || len(local.Boards) == 0
	remoteEmpty := remote == nil || len(remote.Boards) == 0

	var candidates []bingo.Board
	var current string

	switch {
	case localEmpty && remoteEmpty:
		if remote != nil {
			current = remote.CurrentBoardID
		} else if local != nil {
			current = local.CurrentBoardID
		}
	case localEmpty:
		candidates = remote.Boards
		current = remote.CurrentBoardID
	case remoteEmpty:
		candidates = local.Boards
		current = local.CurrentBoardID
	default:
		seen := make(map[string]struct{}, len(remote.Boards))
		candidates = make([]bingo.Board, 0, len(remote.Boards)+len(local.Boards))
		for _, b := range remote.Boards {
			seen[b.ID] = struct{}{}
			candidates = append(candidates, b)
		}
		for _, b := range local.Boards {
			if _, ok := seen[b.ID]; !ok {
				candidates = append(candidates, b)
			}
		}
		current = remote.CurrentBoardID
		if current == "" {
			current = local.CurrentBoardID
		}
	}

	ordered := newestFirst(candidates)
	kept, skipped := split(ordered, maxBoards)

	res := Result{State: bingo.AppState{Boards: kept}, Skipped: skipped}
	if res.State.IndexOf(current) >= 0 {
		res.State.CurrentBoardID = current
	}
	return res
}

// newestFirst returns deep copies of boards sorted by UpdatedAt descending.
// The sort is stable so ties keep the order of the input slice.
func newestFirst(boards []bingo.Board) []bingo.Board {
	out := make([]bingo.Board, len(boards))
	for i, b := range boards {
		out[i] = b.Clone()
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

func split(boards []bingo.Board, limit int) (kept, rest []bingo.Board) {
	if limit < 0 {
		limit = 0
	}
	if len(boards) <= limit {
		return boards, nil
	}
	return boards[:limit], boards[limit:]
}
