package user

import (
	"encoding/json"
	"strings"
)

type ClerkWebhookEvent struct {
	Type   string          `json:"type"`
	Object string          `json:"object"`
	Data   json.RawMessage `json:"data"`
}

type ClerkEmailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

type ClerkUserData struct {
	ID                    string              `json:"id"`
	Username              string              `json:"username"`
	FirstName             string              `json:"first_name"`
	LastName              string              `json:"last_name"`
	EmailAddresses        []ClerkEmailAddress `json:"email_addresses"`
	PrimaryEmailAddressID string              `json:"primary_email_address_id"`
	PublicMetadata        struct {
		Timezone string `json:"timezone"`
		Locale   string `json:"locale"`
	} `json:"public_metadata"`
}

// PrimaryEmail falls back to the first address when no primary is flagged.
func (d *ClerkUserData) PrimaryEmail() string {
	for _, e := range d.EmailAddresses {
		if e.ID == d.PrimaryEmailAddressID {
			return e.EmailAddress
		}
	}
	if len(d.EmailAddresses) > 0 {
		return d.EmailAddresses[0].EmailAddress
	}
	return ""
}

func (d *ClerkUserData) DisplayName() string {
	name := strings.TrimSpace(d.FirstName + " " + d.LastName)
	if name == "" {
		name = d.Username
	}
	return name
}

func (d *ClerkUserData) CreateRequest() *CreateUserRequest {
	return &CreateUserRequest{
		ClerkID:  d.ID,
		Name:     d.DisplayName(),
		Email:    d.PrimaryEmail(),
		Timezone: d.PublicMetadata.Timezone,
		Locale:   d.PublicMetadata.Locale,
	}
}
