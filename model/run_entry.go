package model

import "gorm.io/plugin/soft_delete"

// RunEntry is one execution of a script or an interactive session.
type RunEntry struct {
	ID    int64  `json:"id" gorm:"primaryKey"`
	RunID string `json:"run_id" gorm:"index:idx_run_id,unique"`
	// Script path, empty for interactive sessions.
	Script      string `json:"script"`
	ScriptHash  string `json:"script_hash"`
	Interactive bool   `json:"interactive"`
	StartedAt   int64  `json:"started_at"`
	FinishedAt  int64  `json:"finished_at"`
	ExitCode    int    `json:"exit_code"`
	/* 0 false 1 true */
	Deleted soft_delete.DeletedAt `gorm:"softDelete:flag;default:0"`
}

func (RunEntry) TableName() string {
	return "run_entry"
}
