package services

import (
	"errors"
	"fmt"
)

// PrivilegedRole is the only role allowed to confirm a bulk submission.
const PrivilegedRole = "admin"

// ErrUnauthorized is returned when a non-admin actor attempts a bulk
// submission. The check happens before any persistence interaction.
var ErrUnauthorized = errors.New("only admins can perform bulk uploads")

// BulkUserInserter is the persistence boundary for batch inserts. The
// request carries no row numbers: position in the slice is the correlation
// key, and the response must have the same length and order as the request.
// Each candidate is inserted independently; a duplicate email or constraint
// violation fails its own row without aborting the batch. The returned
// error is reserved for whole-batch failures (transport, database down).
type BulkUserInserter interface {
	BulkInsertUsers(candidates []CandidateUser, createdBy string) ([]BulkInsertOutcome, error)
}

// BulkSubmissionCoordinator sends the valid subset of a parsed upload to
// the persistence boundary and merges the per-row outcomes with the rows
// that already failed client-side validation into one report.
type BulkSubmissionCoordinator struct {
	inserter BulkUserInserter
}

func NewBulkSubmissionCoordinator(inserter BulkUserInserter) *BulkSubmissionCoordinator {
	return &BulkSubmissionCoordinator{inserter: inserter}
}

// Submit persists the valid rows in a single batch call and assembles the
// final report. Individual row rejections are report data, never errors;
// Submit itself fails only on authorization or a whole-batch persistence
// failure. With an empty valid set the persistence boundary is never
// contacted and the report is built from the invalid rows alone.
//
// The failed bucket lists persistence rejects first (in response order),
// then the pre-validation invalids (in original row order), each keeping
// its own messages.
func (c *BulkSubmissionCoordinator) Submit(valid []RowTaggedCandidate, invalid []InvalidRow, actorRole, createdBy string) (BulkReport, error) {
	if actorRole != PrivilegedRole {
		return BulkReport{}, ErrUnauthorized
	}

	report := BulkReport{
		Successful: []ReportEntry{},
		Failed:     []ReportEntry{},
	}

	if len(valid) > 0 {
		candidates := make([]CandidateUser, len(valid))
		for i, row := range valid {
			candidates[i] = row.Data
		}

		outcomes, err := c.inserter.BulkInsertUsers(candidates, createdBy)
		if err != nil {
			return BulkReport{}, fmt.Errorf("bulk insert failed: %w", err)
		}
		if len(outcomes) != len(valid) {
			return BulkReport{}, fmt.Errorf("bulk insert returned %d outcomes for %d submitted rows", len(outcomes), len(valid))
		}

		// Outcomes are positional: outcome i belongs to valid[i], whose
		// original spreadsheet row number we re-attach here.
		for i, outcome := range outcomes {
			row := valid[i]
			if outcome.Success {
				id := outcome.UserID
				report.Successful = append(report.Successful, ReportEntry{
					Row:    row.Row,
					Data:   row.Data,
					UserID: &id,
				})
				continue
			}
			report.Failed = append(report.Failed, ReportEntry{
				Row:    row.Row,
				Data:   row.Data,
				Errors: []string{outcome.ErrorMessage},
			})
		}
	}

	for _, row := range invalid {
		report.Failed = append(report.Failed, ReportEntry{
			Row:    row.Row,
			Data:   row.Data,
			Errors: row.Errors,
		})
	}

	report.Summary = BulkSummary{
		Total:   len(valid) + len(invalid),
		Success: len(report.Successful),
		Failed:  len(report.Failed),
	}

	return report, nil
}
