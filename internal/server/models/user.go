// Package models defines server-side data models persisted in the database.
// All "encrypted_*" and "*_nonce" fields hold opaque client-produced
// ciphertext; the server stores and returns them verbatim.
package models

import "time"

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
