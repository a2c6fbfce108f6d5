package boardsync

import "github.com/dmitrijs2005/goalbingo/internal/bingo"

// BoardsToUpload selects the local-only boards that fit into the free remote
// capacity, most recently updated first. Every selected board is also kept by
// Merge for the same inputs.
func BoardsToUpload(local, remote *bingo.AppState, maxBoards int) []bingo.Board {
	if local == nil || len(local.Boards) == 0 {
		return nil
	}

	remoteIDs := map[string]struct{}{}
	if remote != nil {
		for _, b := range remote.Boards {
			remoteIDs[b.ID] = struct{}{}
		}
	}

	slots := maxBoards
	if remote != nil {
		slots -= len(remote.Boards)
	}
	if slots <= 0 {
		return nil
	}

	var localOnly []bingo.Board
	for _, b := range local.Boards {
		if _, ok := remoteIDs[b.ID]; !ok {
			localOnly = append(localOnly, b)
		}
	}

	selected, _ := split(newestFirst(localOnly), slots)
	return selected
}
