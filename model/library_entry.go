package model

import "gorm.io/plugin/soft_delete"

// LibraryEntry records a `use`, successful or not.
type LibraryEntry struct {
	ID     int64  `json:"id" gorm:"primaryKey"`
	RunID  string `json:"run_id" gorm:"index:idx_library_run"`
	Line   int    `json:"line"`
	Path   string `json:"path" gorm:"index:idx_library_path"`
	Digest string `json:"digest"`
	Loaded bool   `json:"loaded"`
	// Loader message when Loaded is false.
	Error     string                `json:"error"`
	CreatedAt int64                 `json:"created_at"`
	Deleted   soft_delete.DeletedAt `gorm:"softDelete:flag;default:0"`
}

func (LibraryEntry) TableName() string {
	return "library_entry"
}
