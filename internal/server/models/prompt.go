package models

// Prompt is a user prompt template. Prompts are stored in plaintext; they
// carry no sensitive content.
type Prompt struct {
	ID          string
	UserID      string
	Name        string
	Description *string
	Content     string

	CreatedAt int64
	UpdatedAt int64
}
