package api

import "github.com/dmitrijs2005/goalbingo/internal/storage"

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterResponse struct{}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type LoadBoardsRequest struct{}

// LoadBoardsResponse lists the caller's boards, newest created first.
type LoadBoardsResponse struct {
	Boards         []storage.StoredBoard `json:"boards"`
	CurrentBoardID string                `json:"currentBoardId,omitempty"`
}

type SaveBoardRequest struct {
	Board storage.StoredBoard `json:"board"`
}

type SaveBoardResponse struct{}

// SaveBoardsRequest replaces the caller's whole collection.
type SaveBoardsRequest struct {
	Boards []storage.StoredBoard `json:"boards"`
}

type SaveBoardsResponse struct{}

type DeleteBoardRequest struct {
	ID string `json:"id"`
}

type DeleteBoardResponse struct{}

// ArchiveBoardsRequest hands boards dropped by a merge to the server for
// safekeeping.
type ArchiveBoardsRequest struct {
	Boards []storage.StoredBoard `json:"boards"`
}

type ArchiveBoardsResponse struct {
	Archived int `json:"archived"`
}

// PingStatusOK is the status a healthy server answers Ping with.
const PingStatusOK = "OK"
