package services

// PartitionRows splits ingested rows into the valid and invalid sets,
// preserving ingestion order in both. Every row lands in exactly one set.
// Bulk imports always require a password per record, independent of who is
// performing the upload.
func PartitionRows(rows []RowTaggedCandidate) ([]RowTaggedCandidate, []InvalidRow) {
	valid := make([]RowTaggedCandidate, 0, len(rows))
	invalid := make([]InvalidRow, 0)

	for _, row := range rows {
		violations := ValidateCandidate(row.Data, true)
		if len(violations) > 0 {
			invalid = append(invalid, InvalidRow{
				Row:    row.Row,
				Data:   row.Data,
				Errors: violations,
			})
			continue
		}
		valid = append(valid, row)
	}

	return valid, invalid
}
