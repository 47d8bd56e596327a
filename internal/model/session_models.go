package model

// AuthState is the persisted record of who is logged in.
type AuthState struct {
	IsAuthenticated bool         `json:"isAuthenticated"`
	User            *UserProfile `json:"user"`
}
