package models

type Folder struct {
	ID       string
	UserID   string
	Name     string
	ParentID *string

	CreatedAt int64
	UpdatedAt int64
}
