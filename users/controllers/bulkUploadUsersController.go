package controllers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"user-admin-backend/config"
	"user-admin-backend/db/models"
	"user-admin-backend/users/services"
	"user-admin-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DownloadBulkTemplate serves the bulk upload workbook: the exact required
// header row plus example rows the user overwrites.
func (uc *UserController) DownloadBulkTemplate(c *fiber.Ctx) error {
	content, err := utils.GenerateUserTemplate(services.TemplateColumns)
	if err != nil {
		config.Logger.Error("Failed to generate bulk upload template", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to generate template",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="users_bulk_upload_template.xlsx"`)
	return c.Send(content)
}

// ParseBulkUpload ingests the uploaded workbook, validates every row and
// returns the valid/invalid partition for the client to review before
// confirming. Nothing is persisted here.
func (uc *UserController) ParseBulkUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No file provided",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	if err := os.MkdirAll("./tmp", 0755); err != nil {
		config.Logger.Error("Failed to create tmp directory", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to process upload",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	tmpPath := filepath.Join("./tmp", fmt.Sprintf("bulk_users_%s_%s", uuid.New().String(), fileHeader.Filename))
	if err := c.SaveFile(fileHeader, tmpPath); err != nil {
		config.Logger.Error("Failed to save uploaded file", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to save uploaded file",
			"data":    nil,
			"error":   err.Error(),
		})
	}
	defer os.Remove(tmpPath)

	rows, err := services.IngestUserSheet(tmpPath)
	if err != nil {
		var schemaErr *services.SchemaError
		switch {
		case errors.As(err, &schemaErr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "The uploaded file is missing required columns",
				"data":    fiber.Map{"missing_columns": schemaErr.Missing},
				"error":   schemaErr.Error(),
			})
		case errors.Is(err, services.ErrEmptyFile):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "The uploaded file contains no data rows",
				"data":    nil,
				"error":   err.Error(),
			})
		case errors.Is(err, services.ErrParseFailed):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "The uploaded file could not be read as a spreadsheet",
				"data":    nil,
				"error":   err.Error(),
			})
		default:
			config.Logger.Error("Failed to ingest bulk upload", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to process upload",
				"data":    nil,
				"error":   err.Error(),
			})
		}
	}

	valid, invalid := services.PartitionRows(rows)

	return c.JSON(fiber.Map{
		"message": "File parsed successfully",
		"data": fiber.Map{
			"valid":         valid,
			"invalid":       invalid,
			"valid_count":   len(valid),
			"invalid_count": len(invalid),
		},
		"error": nil,
	})
}

type ConfirmBulkUploadPayload struct {
	Valid     []services.RowTaggedCandidate `json:"valid"`
	Invalid   []services.InvalidRow         `json:"invalid"`
	UserRole  string                        `json:"user_role"`
	CreatedBy string                        `json:"created_by"`
}

// ConfirmBulkUpload submits a reviewed partition for persistence and returns
// the merged report. Failed rows are also logged to the error table and an
// error report workbook is emailed to the actor; neither of those steps can
// fail the request once the batch itself has been processed.
func (uc *UserController) ConfirmBulkUpload(c *fiber.Ctx) error {
	var payload ConfirmBulkUploadPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	report, err := uc.Coordinator.Submit(payload.Valid, payload.Invalid, payload.UserRole, payload.CreatedBy)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Unauthorized",
				"data":    nil,
				"error":   err.Error(),
			})
		}
		config.Logger.Error("Bulk submission failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Bulk upload failed",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	if len(report.Failed) > 0 {
		uc.recordBulkFailures(c, report, payload.CreatedBy)
	}

	return c.JSON(fiber.Map{
		"message": "Bulk upload processed",
		"data":    report,
		"error":   nil,
	})
}

// bulkErrorReportRow flattens a failed report entry for the Excel error
// report. Field names double as workbook headers.
type bulkErrorReportRow struct {
	RowNumber int
	FirstName string
	LastName  string
	Email     string
	Errors    string
}

// recordBulkFailures logs failed rows to the error table and emails an error
// report workbook to the actor. Everything here is best-effort: failures are
// logged, never surfaced to the client.
func (uc *UserController) recordBulkFailures(c *fiber.Ctx, report services.BulkReport, createdBy string) {
	errorLogs := make([]models.BulkUserUploadError, 0, len(report.Failed))
	reportRows := make([]bulkErrorReportRow, 0, len(report.Failed))

	for _, entry := range report.Failed {
		message := strings.Join(entry.Errors, ", ")
		errorType := models.ValidationErrorType
		if strings.Contains(message, "already exists") {
			errorType = models.DuplicateErrorType
		}

		errorLogs = append(errorLogs, models.BulkUserUploadError{
			ID:           uuid.New(),
			FirstName:    entry.Data.FirstName,
			LastName:     entry.Data.LastName,
			Email:        entry.Data.Email,
			RowNumber:    entry.Row,
			ErrorMessage: message,
			ErrorType:    errorType,
			CreatedBy:    createdBy,
		})
		reportRows = append(reportRows, bulkErrorReportRow{
			RowNumber: entry.Row,
			FirstName: entry.Data.FirstName,
			LastName:  entry.Data.LastName,
			Email:     entry.Data.Email,
			Errors:    message,
		})
	}

	if err := uc.UserRepo.LogBulkUploadErrors(errorLogs); err != nil {
		config.Logger.Error("Failed to log bulk upload errors", zap.Error(err))
	}

	filePath, err := utils.GenerateExcel(reportRows, "bulk_upload_errors", []string{"RowNumber", "FirstName", "LastName", "Email", "Errors"})
	if err != nil {
		config.Logger.Error("Failed to generate bulk upload error report", zap.Error(err))
		return
	}

	downloadLink := utils.GetDownloadURL(c, filePath)
	subject := "Bulk User Upload Error Report"
	message := fmt.Sprintf("%d of %d rows failed during the bulk user upload. The attached report lists each failed row and its errors.",
		report.Summary.Failed, report.Summary.Total)

	if createdBy == "" {
		return
	}
	if err := utils.SendEmail(createdBy, message, subject, downloadLink); err != nil {
		config.Logger.Error("Failed to email bulk upload error report",
			zap.Error(err),
			zap.String("recipient", createdBy),
		)
		return
	}

	if err := uc.UserRepo.LogEmailSent(&models.EmailLog{
		ID:             uuid.New(),
		Recipient:      createdBy,
		Subject:        subject,
		Message:        message,
		SentAt:         time.Now(),
		Active:         utils.BoolPtr(true),
		AttachmentPath: filePath,
	}); err != nil {
		config.Logger.Error("Failed to log sent email", zap.Error(err))
	}
}
