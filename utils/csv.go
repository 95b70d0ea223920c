package utils

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"user-admin-backend/db/models"
)

// GenerateUsersCSV writes the user listing as a CSV file under
// ./public/files and returns its public path.
func GenerateUsersCSV(users []models.User, taskName string) (string, error) {
	if err := os.MkdirAll(exportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to ensure export directory exists: %v", err)
	}

	fileName := fmt.Sprintf("%s_%s.csv", taskName, time.Now().Format("2006-01-02_15-04-05"))
	diskPath := filepath.Join(exportDir, fileName)

	f, err := os.Create(diskPath)
	if err != nil {
		return "", fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"First Name", "Last Name", "Contact", "Email", "Address", "Role", "Status", "Created At"}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, user := range users {
		status := "Inactive"
		if user.IsActive {
			status = "Active"
		}
		record := []string{
			user.FirstName,
			user.LastName,
			user.Contact,
			user.Email,
			user.Address,
			string(user.Role),
			status,
			user.CreatedAt.Format("2006-01-02"),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}

	return fmt.Sprintf("/public/files/%s", fileName), nil
}
