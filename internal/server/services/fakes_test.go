package services

import (
	"context"
	"database/sql"

	"github.com/cortex-chat/cortex-server/internal/dbx"
	"github.com/cortex-chat/cortex-server/internal/server/models"
	chatsrepo "github.com/cortex-chat/cortex-server/internal/server/repositories/chats"
	credentialsrepo "github.com/cortex-chat/cortex-server/internal/server/repositories/credentials"
	foldersrepo "github.com/cortex-chat/cortex-server/internal/server/repositories/folders"
	notesrepo "github.com/cortex-chat/cortex-server/internal/server/repositories/notes"
	promptsrepo "github.com/cortex-chat/cortex-server/internal/server/repositories/prompts"
	userkeysrepo "github.com/cortex-chat/cortex-server/internal/server/repositories/userkeys"
	usersrepo "github.com/cortex-chat/cortex-server/internal/server/repositories/users"
)

// --- shared fakes ---

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	byEmailOut *models.User
	byEmailErr error

	byIDOut *models.User
	byIDErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return u, nil
}
func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmailOut, nil
}
func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}

type fakeUserKeysRepo struct {
	existsOut bool
	existsErr error

	getOut *models.UserKeys
	getErr error

	createIn  *models.UserKeys
	createErr error

	rotateIn  userkeysrepo.RotateParams
	rotateOut *models.UserKeys
	rotateErr error
}

func (f *fakeUserKeysRepo) Exists(ctx context.Context, userID string) (bool, error) {
	return f.existsOut, f.existsErr
}
func (f *fakeUserKeysRepo) Get(ctx context.Context, userID string) (*models.UserKeys, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeUserKeysRepo) Create(ctx context.Context, keys *models.UserKeys) (*models.UserKeys, error) {
	f.createIn = keys
	if f.createErr != nil {
		return nil, f.createErr
	}
	return keys, nil
}
func (f *fakeUserKeysRepo) RotateMasterKeyWrapping(ctx context.Context, userID string, params userkeysrepo.RotateParams) (*models.UserKeys, error) {
	f.rotateIn = params
	if f.rotateErr != nil {
		return nil, f.rotateErr
	}
	return f.rotateOut, nil
}

type fakeNotesRepo struct {
	listIn  notesrepo.ListFilter
	listOut []*models.Note
	listErr error

	getOut *models.Note
	getErr error

	createIn  *models.Note
	createErr error

	updateIn  notesrepo.UpdateParams
	updateOut *models.Note
	updateErr error

	deleteErr error
}

func (f *fakeNotesRepo) List(ctx context.Context, userID string, filter notesrepo.ListFilter) ([]*models.Note, error) {
	f.listIn = filter
	return f.listOut, f.listErr
}
func (f *fakeNotesRepo) Get(ctx context.Context, userID, id string) (*models.Note, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeNotesRepo) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	f.createIn = note
	if f.createErr != nil {
		return nil, f.createErr
	}
	return note, nil
}
func (f *fakeNotesRepo) Update(ctx context.Context, userID, id string, params notesrepo.UpdateParams) (*models.Note, error) {
	f.updateIn = params
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateOut, nil
}
func (f *fakeNotesRepo) Delete(ctx context.Context, userID, id string) error {
	return f.deleteErr
}

type fakeRepoManager struct {
	users *fakeUsersRepo
	keys  *fakeUserKeysRepo
	notes *fakeNotesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.users }
func (m *fakeRepoManager) UserKeys(db dbx.DBTX) userkeysrepo.Repository { return m.keys }
func (m *fakeRepoManager) Notes(db dbx.DBTX) notesrepo.Repository       { return m.notes }

func (m *fakeRepoManager) Folders(db dbx.DBTX) foldersrepo.Repository         { return nil }
func (m *fakeRepoManager) Prompts(db dbx.DBTX) promptsrepo.Repository         { return nil }
func (m *fakeRepoManager) Chats(db dbx.DBTX) chatsrepo.Repository             { return nil }
func (m *fakeRepoManager) Credentials(db dbx.DBTX) credentialsrepo.Repository { return nil }
