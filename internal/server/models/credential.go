package models

import "time"

// Credential stores an encrypted third-party API credential. Provider and
// name are plaintext operational metadata; the secret itself lives in
// EncryptedData.
type Credential struct {
	ID       string
	UserID   string
	Provider string
	Name     string

	EncryptedData string
	IV            string

	CreatedAt time.Time
	UpdatedAt time.Time
}
