// Package api defines the fintrack.v1 RPC messages.
//
// Messages are plain structs carried as JSON. Money is a decimal string
// ("12.50") and timestamps are Unix seconds.
package api
