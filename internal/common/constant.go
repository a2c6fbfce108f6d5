// Package common contains shared constants and sentinel errors used across
// the goal bingo client and server.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the access
// token on outbound requests.
const AccessTokenHeaderName = "access_token"
