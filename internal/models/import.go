package models

import (
	"time"
)

// ImportStatus represents the lifecycle state of an import job
type ImportStatus string

const (
	ImportStatusPending    ImportStatus = "pending"
	ImportStatusProcessing ImportStatus = "processing"
	ImportStatusCompleted  ImportStatus = "completed"
	ImportStatusFailed     ImportStatus = "failed"
)

// LogLevel represents the severity of an import row log entry
type LogLevel string

const (
	LogLevelSuccess LogLevel = "success"
	LogLevelWarning LogLevel = "warning"
	LogLevelError   LogLevel = "error"
)

// ImportJob represents one execution of the member import pipeline
// against one uploaded spreadsheet.
type ImportJob struct {
	ID        int64        `json:"id" db:"id"`
	Filename  string       `json:"filename" db:"filename"`
	Status    ImportStatus `json:"status" db:"status"`
	FilePath  string       `json:"-" db:"original_file_path"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}

// ImportLog is one row disposition recorded during an import run.
// RowNumber matches the spreadsheet row (header is row 1, first data
// row is 2); row 0 is reserved for job-level failures.
type ImportLog struct {
	ID        int64     `json:"id" db:"id"`
	ImportID  int64     `json:"-" db:"import_id"`
	RowNumber int       `json:"row_number" db:"row_number"`
	Level     LogLevel  `json:"level" db:"level"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ImportDetail is the API read model for a single import: the job
// plus its logs in row processing order.
type ImportDetail struct {
	ImportJob
	Logs []ImportLog `json:"logs"`
}
