package models

// Trainer is the authenticated owner of every other document.
type Trainer struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
