package domain

import "time"

type ImportStatus string

const (
	ImportUploaded   ImportStatus = "uploaded"
	ImportProcessing ImportStatus = "processing"
	ImportCompleted  ImportStatus = "completed"
	ImportFailed     ImportStatus = "failed"
)

type ImportJob struct {
	ID          string       `json:"id"`
	Filename    string       `json:"filename"`
	StoragePath string       `json:"storage_path"`
	OwnerID     string       `json:"owner_id,omitempty"`
	Status      ImportStatus `json:"status"`
	Rows        int          `json:"rows"`
	Error       string       `json:"error,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// EmployeeRow is one parsed spreadsheet row, before department resolution.
type EmployeeRow struct {
	Line           int
	Document       string
	FirstName      string
	LastName       string
	Address        string
	Phone          string
	Email          string
	Position       string
	Salary         float64
	HireDate       time.Time
	Status         EmployeeStatus
	EducationLevel EducationLevel
	Profile        string
	DepartmentName string
}
