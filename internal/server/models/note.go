package models

// Note is an encrypted note. Timestamps are epoch milliseconds, matching
// what clients store locally.
type Note struct {
	ID     string
	UserID string

	EncryptedTitle   string
	TitleNonce       string
	EncryptedContent string
	ContentNonce     string

	// FolderID is a soft reference: deleting a folder leaves notes with a
	// dangling id rather than cascading.
	FolderID *string
	Pinned   bool
	Archived bool

	CreatedAt int64
	UpdatedAt int64
}
