package models

import "time"

// UserKeys is the key-custody record: one row per user holding the wrapped
// key material the client needs to unlock its account. The server cannot
// decrypt any of it.
//
// Two independent wrappings of the same master key exist: one under the
// password-derived KEK (EncryptedMasterKey) and one under the recovery key
// (MasterKeyRecovery). Either path unlocks the account on its own, and
// rotating the password wrapping leaves the recovery wrapping intact.
type UserKeys struct {
	UserID string

	// KEK derivation params (client-side Argon2-style cost settings).
	KekSalt     string
	KekOpsLimit int64
	KekMemLimit int64

	// Master key wrapped by the password-derived KEK.
	EncryptedMasterKey string
	MasterKeyNonce     string

	// Asymmetric keypair; private half wrapped by the master key.
	PublicKey           string
	EncryptedPrivateKey string
	PrivateKeyNonce     string

	// Recovery key wrapped by the master key.
	EncryptedRecoveryKey string
	RecoveryKeyNonce     string

	// Master key wrapped by the recovery key (account recovery path).
	MasterKeyRecovery      string
	MasterKeyRecoveryNonce string

	CreatedAt time.Time
	UpdatedAt time.Time
}
