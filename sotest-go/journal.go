package sotest_go

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sotest-driver-go/model"
)

// Journal records runs, loads and calls in a SQLite database. A nil
// *Journal records nothing.
type Journal struct {
	db_  *gorm.DB
	run_ *model.RunEntry
}

func OpenJournal(path string) (*Journal, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, &ResourceError{Op: "Error opening journal", Source: path, Err: err}
	}
	if err := db.AutoMigrate(&model.RunEntry{}, &model.LibraryEntry{}, &model.CallEntry{}); err != nil {
		return nil, &ResourceError{Op: "Error migrating journal", Source: path, Err: err}
	}
	return &Journal{db_: db}, nil
}

func (this *Journal) RunID() string {
	if this == nil || this.run_ == nil {
		return ""
	}
	return this.run_.RunID
}

func (this *Journal) BeginRun(script string, interactive bool) error {
	if this == nil {
		return nil
	}
	this.run_ = &model.RunEntry{
		RunID:       uuid.NewString(),
		Script:      script,
		Interactive: interactive,
		StartedAt:   time.Now().Unix(),
	}
	return this.db_.Create(this.run_).Error
}

func (this *Journal) RecordLoad(line int, path string, loadErr error) error {
	if this == nil {
		return nil
	}
	entry := model.LibraryEntry{
		RunID:     this.RunID(),
		Line:      line,
		Path:      path,
		Loaded:    loadErr == nil,
		CreatedAt: time.Now().Unix(),
	}
	if loadErr != nil {
		entry.Error = loadErr.Error()
	} else if digest, err := LibraryDigest(path); err == nil {
		entry.Digest = digest
	}
	return this.db_.Create(&entry).Error
}

// RecordCall stores a call; result is nil when the symbol was not found.
func (this *Journal) RecordCall(line int, symbol string, result *CallResult, start time.Time) error {
	if this == nil {
		return nil
	}
	entry := model.CallEntry{
		RunID:     this.RunID(),
		Line:      line,
		Symbol:    symbol,
		StartTime: start.UnixMilli(),
		EndTime:   time.Now().UnixMilli(),
	}
	if result != nil {
		entry.Found = true
		entry.Library = result.Library
		entry.Succeeded = result.Succeeded
	}
	return this.db_.Create(&entry).Error
}

func (this *Journal) FinishRun(scriptHash uint64, exit ExitStatus) error {
	if this == nil || this.run_ == nil {
		return nil
	}
	return this.db_.Model(this.run_).Updates(map[string]interface{}{
		"script_hash": fmt.Sprintf("%016x", scriptHash),
		"finished_at": time.Now().Unix(),
		"exit_code":   int(exit),
	}).Error
}

// Clean soft-deletes every recorded run, load and call and returns how many
// rows were affected.
func (this *Journal) Clean() (int64, error) {
	tx := this.db_.Session(&gorm.Session{AllowGlobalUpdate: true})
	var total int64
	for _, table := range []interface{}{&model.CallEntry{}, &model.LibraryEntry{}, &model.RunEntry{}} {
		res := tx.Delete(table)
		if res.Error != nil {
			return total, res.Error
		}
		total += res.RowsAffected
	}
	return total, nil
}

func (this *Journal) Close() error {
	if this == nil {
		return nil
	}
	sqlDB, err := this.db_.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
