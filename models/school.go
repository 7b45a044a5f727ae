package models

// School is a row of the schools table.
type School struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	City    string  `json:"city"`
	State   string  `json:"state"`
	Contact string  `json:"contact"`
	Image   *string `json:"image"` // data URL, remote URL or local filename; null when absent
	EmailID string  `json:"email_id"`
}

// SchoolInput holds the text fields of a create request.
type SchoolInput struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Contact string `json:"contact" validate:"required,number,len=10"`
	EmailID string `json:"email_id" validate:"required,email"`
}

// Error is the JSON body of every failed response.
type Error struct {
	Message string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Message is the JSON body of create and delete responses.
type Message struct {
	Message string `json:"message"`
	ID      int64  `json:"id,omitempty"`
}
