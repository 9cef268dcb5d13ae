package models

import "strings"

type SocialNetwork struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Client struct {
	ID             string          `json:"id"`
	TrainerID      string          `json:"trainer_id"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	Description    string          `json:"description,omitempty"`
	SocialNetworks []SocialNetwork `json:"social_networks,omitempty"`
}

// FullName is "First Last", or whichever half is set.
func (c Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// NewClient carries the fields a trainer fills in when adding a client.
type NewClient struct {
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	Description    string          `json:"description"`
	SocialNetworks []SocialNetwork `json:"social_networks"`
}
