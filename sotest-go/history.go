package sotest_go

import (
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// HistoryRow is one journaled call as read back by the history tool.
type HistoryRow struct {
	RunID     string
	Line      int
	Symbol    string
	Library   string
	Found     bool
	Succeeded bool
	StartTime int64
}

// ReadHistory returns the newest limit calls that have not been cleaned,
// newest first. The journal is opened read-only.
func ReadHistory(path string, limit int) ([]HistoryRow, error) {
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadOnly)
	if err != nil {
		return nil, &ResourceError{Op: "Error opening journal", Source: path, Err: err}
	}
	defer conn.Close()

	var rows []HistoryRow
	err = sqlitex.Execute(conn,
		"SELECT `run_id`, `line`, `symbol`, `library`, `found`, `succeeded`, `start_time` "+
			"FROM call_entry WHERE `deleted` = 0 ORDER BY `id` DESC LIMIT ?;",
		&sqlitex.ExecOptions{
			Args: []any{limit},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				rows = append(rows, HistoryRow{
					RunID:     stmt.ColumnText(0),
					Line:      stmt.ColumnInt(1),
					Symbol:    stmt.ColumnText(2),
					Library:   stmt.ColumnText(3),
					Found:     stmt.ColumnInt64(4) != 0,
					Succeeded: stmt.ColumnInt64(5) != 0,
					StartTime: stmt.ColumnInt64(6),
				})
				return nil
			},
		})
	if err != nil {
		return nil, &ResourceError{Op: "Error reading journal", Source: path, Err: err}
	}
	return rows, nil
}
