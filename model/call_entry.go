package model

import "gorm.io/plugin/soft_delete"

// CallEntry records a `call`. Found is false when no loaded library defined
// the symbol; Library is then empty.
type CallEntry struct {
	ID        int64                 `json:"id" gorm:"primaryKey"`
	RunID     string                `json:"run_id" gorm:"index:idx_call_run"`
	Line      int                   `json:"line"`
	Symbol    string                `json:"symbol" gorm:"index:idx_call_symbol"`
	Library   string                `json:"library"`
	Found     bool                  `json:"found"`
	Succeeded bool                  `json:"succeeded"`
	StartTime int64                 `json:"start_time"`
	EndTime   int64                 `json:"end_time"`
	Deleted   soft_delete.DeletedAt `gorm:"softDelete:flag;default:0"`
}

func (CallEntry) TableName() string {
	return "call_entry"
}
