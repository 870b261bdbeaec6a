package habit

type CreateHabitRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Frequency   Frequency `json:"frequency"`
	Reminder    *Reminder `json:"reminder"`
	Icon        string    `json:"icon"`
	Motivation  string    `json:"motivation"`
}

// UpdateHabitRequest carries only the whitelisted fields; nil means "not sent".
type UpdateHabitRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Frequency   *Frequency `json:"frequency,omitempty"`
	Reminder    *Reminder  `json:"reminder,omitempty"`
	Icon        *string    `json:"icon,omitempty"`
	Motivation  *string    `json:"motivation,omitempty"`
	Archived    *bool      `json:"archived,omitempty"`
}

// Apply copies every field present in the request onto h.
func (r *UpdateHabitRequest) Apply(h *Habit) {
	if r.Title != nil {
		h.Title = *r.Title
	}
	if r.Description != nil {
		h.Description = *r.Description
	}
	if r.Frequency != nil {
		h.Frequency = *r.Frequency
	}
	if r.Reminder != nil {
		h.Reminder = *r.Reminder
	}
	if r.Icon != nil {
		h.Icon = *r.Icon
	}
	if r.Motivation != nil {
		h.Motivation = *r.Motivation
	}
	if r.Archived != nil {
		h.Archived = *r.Archived
	}
}

type UpsertHistoryRequest struct {
	HabitID   string `json:"habitId" validate:"required"`
	Date      string `json:"date" validate:"required"`
	Completed bool   `json:"completed"`
	Notes     string `json:"notes"`
}
