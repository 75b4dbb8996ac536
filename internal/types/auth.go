package types

// TokenInfo represents validated token information
type TokenInfo struct {
	UserID string
	Email  string
	Name   string
	Valid  bool
}
