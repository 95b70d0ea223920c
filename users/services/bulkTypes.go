package services

import "github.com/google/uuid"

// CandidateUser is a transient registration attempt parsed from an uploaded
// spreadsheet or a request body. Fields are free text until validated; blank
// cells are carried as empty strings, never omitted.
type CandidateUser struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Contact   string `json:"contact"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Password  string `json:"password"`
}

// RowTaggedCandidate pairs a candidate with its original spreadsheet row.
// The header occupies row 1, so the first data row is numbered 2. A row
// number is assigned once at ingestion and never changes afterwards.
type RowTaggedCandidate struct {
	Row  int           `json:"row"`
	Data CandidateUser `json:"data"`
}

// InvalidRow is a candidate that failed client-side validation, carrying
// every violated rule in the order the validator reports them.
type InvalidRow struct {
	Row    int           `json:"row"`
	Data   CandidateUser `json:"data"`
	Errors []string      `json:"errors"`
}

// BulkInsertOutcome is the persistence boundary's verdict for one submitted
// candidate. RowNumber echoes the 1-based position within the submitted
// batch, not the spreadsheet row; mapping back to spreadsheet rows belongs
// to the coordinator.
type BulkInsertOutcome struct {
	Success      bool      `json:"success"`
	RowNumber    int       `json:"row_number"`
	UserID       uuid.UUID `json:"user_id,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
}

// ReportEntry is one row of the final bulk report, always carrying the
// original candidate data and spreadsheet row number.
type ReportEntry struct {
	Row    int           `json:"row"`
	Data   CandidateUser `json:"data"`
	UserID *uuid.UUID    `json:"user_id,omitempty"`
	Errors []string      `json:"errors,omitempty"`
}

type BulkSummary struct {
	Total   int `json:"total"`
	Success int `json:"success"`
	Failed  int `json:"failed"`
}

// BulkReport is the terminal artifact of a bulk import attempt. Every
// ingested row lands in exactly one of the two buckets.
type BulkReport struct {
	Successful []ReportEntry `json:"successful"`
	Failed     []ReportEntry `json:"failed"`
	Summary    BulkSummary   `json:"summary"`
}
