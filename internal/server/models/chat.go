package models

// Chat is an encrypted chat transcript. The per-chat content key is itself
// wrapped by the user's master key (EncryptedChatKey).
type Chat struct {
	ID     string
	UserID string

	EncryptedChatKey string
	ChatKeyNonce     string
	EncryptedTitle   string
	TitleNonce       string
	EncryptedChat    string
	ChatNonce        string

	FolderID *string
	Pinned   bool
	Archived bool

	CreatedAt int64
	UpdatedAt int64
}
