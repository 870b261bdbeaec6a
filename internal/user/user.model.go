package user

import "time"

const DefaultTimezone = "UTC"

type User struct {
	ID        string    `json:"id"`
	ClerkID   string    `json:"clerkId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Timezone  string    `json:"timezone"`
	Locale    string    `json:"locale"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FirstName is the greeting shown on the dashboard.
func (u *User) FirstName() string {
	for i, r := range u.Name {
		if r == ' ' {
			if i == 0 {
				return u.Name
			}
			return u.Name[:i]
		}
	}
	return u.Name
}
