package model

// ContactMessage is a message from the public contact form. It is logged, not stored.
type ContactMessage struct {
	Name        string `json:"name" validate:"required,min=2"`
	Email       string `json:"email" validate:"required,email"`
	Subject     string `json:"subject" validate:"required,min=5"`
	Message     string `json:"message" validate:"required,min=10"`
	Budget      string `json:"budget,omitempty"`
	Timeline    string `json:"timeline,omitempty"`
	ProjectType string `json:"projectType,omitempty"`
}
