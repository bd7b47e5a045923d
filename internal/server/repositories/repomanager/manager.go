package repomanager

import (
	"context"
	"database/sql"

	"github.com/cortex-chat/cortex-server/internal/dbx"
	"github.com/cortex-chat/cortex-server/internal/server/repositories/chats"
	"github.com/cortex-chat/cortex-server/internal/server/repositories/credentials"
	"github.com/cortex-chat/cortex-server/internal/server/repositories/folders"
	"github.com/cortex-chat/cortex-server/internal/server/repositories/notes"
	"github.com/cortex-chat/cortex-server/internal/server/repositories/prompts"
	"github.com/cortex-chat/cortex-server/internal/server/repositories/userkeys"
	"github.com/cortex-chat/cortex-server/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX, so
// services can run any repository against either the pool or an open
// transaction, and exposes the schema migration hook.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	UserKeys(db dbx.DBTX) userkeys.Repository
	Notes(db dbx.DBTX) notes.Repository
	Folders(db dbx.DBTX) folders.Repository
	Prompts(db dbx.DBTX) prompts.Repository
	Chats(db dbx.DBTX) chats.Repository
	Credentials(db dbx.DBTX) credentials.Repository
}
