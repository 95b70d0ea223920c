package repositories

import (
	"errors"
	"fmt"
	"strings"
	"user-admin-backend/db/models"
	"user-admin-backend/users/services"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetAllUsers() ([]models.User, error)
	GetFilteredUsers(pageSize int, offset int, filters map[string]string, sortBy string, sortDir string) ([]models.User, int64, error)
	UpdateUser(user *models.User) (*models.User, error)
	DeleteUser(id string) error
	ToggleUserStatus(id string) (*models.User, error)
	BulkInsertUsers(candidates []services.CandidateUser, createdBy string) ([]services.BulkInsertOutcome, error)
	LogBulkUploadErrors(rows []models.BulkUserUploadError) error
	LogEmailSent(entry *models.EmailLog) error
}

// Implementations
type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func (r *userRepository) CreateUser(user *models.User) (*models.User, error) {
	// Hash password
	hashedPassword, err := HashPassword(user.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Check if user exists (including soft-deleted)
	var existing models.User
	err = r.db.Unscoped().Where("email = ?", user.Email).First(&existing).Error
	if err == nil {
		// Email found
		if existing.DeletedAt.Valid {
			// Soft-deleted: restore
			existing.DeletedAt = gorm.DeletedAt{}
			existing.FirstName = user.FirstName
			existing.LastName = user.LastName
			existing.Contact = user.Contact
			existing.Address = user.Address
			existing.Password = hashedPassword
			existing.Role = user.Role
			existing.IsActive = user.IsActive
			existing.CreatedBy = user.CreatedBy

			if err := r.db.Unscoped().Save(&existing).Error; err != nil {
				return nil, fmt.Errorf("failed to restore soft-deleted user: %w", err)
			}
			return &existing, nil
		}
		// Active user with same email already exists
		return nil, fmt.Errorf("a user with that email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		// Unexpected DB error
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}

	// Create a new user
	user.ID = uuid.New()
	user.Password = hashedPassword

	if err := r.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user in database: %w", err)
	}

	return user, nil
}

// BulkInsertUsers attempts to insert every candidate independently and
// reports a strictly positional outcome per candidate: outcome i describes
// candidate i and echoes RowNumber = i+1 relative to the batch. Candidates
// are re-validated here so the database never has to trust client-side
// validation. A duplicate email, whether already stored or earlier in the
// same batch, rejects its own row without aborting the siblings. The
// returned error is reserved for database-wide failures.
func (r *userRepository) BulkInsertUsers(candidates []services.CandidateUser, createdBy string) ([]services.BulkInsertOutcome, error) {
	outcomes := make([]services.BulkInsertOutcome, 0, len(candidates))

	for i, candidate := range candidates {
		position := i + 1

		if violations := services.ValidateCandidate(candidate, true); len(violations) > 0 {
			outcomes = append(outcomes, services.BulkInsertOutcome{
				Success:      false,
				RowNumber:    position,
				ErrorMessage: strings.Join(violations, ", "),
			})
			continue
		}

		email := strings.TrimSpace(candidate.Email)

		// Uniqueness check includes tombstoned rows: the unique index on
		// email would block the insert either way.
		var existing models.User
		err := r.db.Unscoped().Where("email = ?", email).First(&existing).Error
		if err == nil {
			outcomes = append(outcomes, services.BulkInsertOutcome{
				Success:      false,
				RowNumber:    position,
				ErrorMessage: "Email already exists",
			})
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check for existing user: %w", err)
		}

		hashedPassword, err := HashPassword(strings.TrimSpace(candidate.Password))
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}

		user := models.User{
			ID:        uuid.New(),
			FirstName: strings.TrimSpace(candidate.FirstName),
			LastName:  strings.TrimSpace(candidate.LastName),
			Contact:   strings.TrimSpace(candidate.Contact),
			Email:     email,
			Address:   strings.TrimSpace(candidate.Address),
			Password:  hashedPassword,
			Role:      models.ViewerRole,
			IsActive:  true,
			CreatedBy: createdBy,
		}

		if err := r.db.Create(&user).Error; err != nil {
			// Most likely a unique-constraint race with a concurrent
			// insert; reject the row, keep the batch going.
			outcomes = append(outcomes, services.BulkInsertOutcome{
				Success:      false,
				RowNumber:    position,
				ErrorMessage: "Email already exists",
			})
			continue
		}

		outcomes = append(outcomes, services.BulkInsertOutcome{
			Success:   true,
			RowNumber: position,
			UserID:    user.ID,
		})
	}

	return outcomes, nil
}

func (r *userRepository) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetAllUsers() ([]models.User, error) {
	var users []models.User
	err := r.db.Order("created_at desc").Find(&users).Error
	return users, err
}

// sortColumns whitelists the sortable columns so a client-supplied sort key
// can never reach the ORDER BY clause raw.
var sortColumns = map[string]string{
	"name":       "first_name",
	"first_name": "first_name",
	"last_name":  "last_name",
	"email":      "email",
	"contact":    "contact",
	"address":    "address",
	"is_active":  "is_active",
	"created_at": "created_at",
}

func (r *userRepository) GetFilteredUsers(pageSize int, offset int, filters map[string]string, sortBy string, sortDir string) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	db := r.db.Model(&models.User{}) // start a new query chain

	// Apply filters
	for key, value := range filters {
		switch key {
		case "search":
			pattern := "%" + strings.TrimSpace(value) + "%"
			db = db.Where(
				"first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR contact ILIKE ? OR address ILIKE ?",
				pattern, pattern, pattern, pattern, pattern,
			)
		case "first_name":
			db = db.Where("first_name ILIKE ?", "%"+value+"%")
		case "last_name":
			db = db.Where("last_name ILIKE ?", "%"+value+"%")
		case "email":
			db = db.Where("email ILIKE ?", "%"+value+"%")
		case "contact":
			db = db.Where("contact LIKE ?", "%"+value+"%")
		case "address":
			db = db.Where("address ILIKE ?", "%"+value+"%")
		case "status":
			if strings.EqualFold(value, "active") {
				db = db.Where("is_active = ?", true)
			} else if strings.EqualFold(value, "inactive") {
				db = db.Where("is_active = ?", false)
			}
		case "start_date":
			db = db.Where("created_at >= ?", value)
		case "end_date":
			db = db.Where("created_at <= ?", value)
		}
	}

	// Count total records with filters applied
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at desc"
	if column, ok := sortColumns[sortBy]; ok {
		direction := "asc"
		if strings.EqualFold(sortDir, "desc") {
			direction = "desc"
		}
		order = column + " " + direction
	}

	// Apply pagination
	if err := db.Limit(pageSize).Offset(offset).Order(order).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepository) UpdateUser(user *models.User) (*models.User, error) {
	result := r.db.Save(user)
	if result.Error != nil {
		return nil, result.Error
	}
	return user, nil
}

func (r *userRepository) DeleteUser(id string) error {
	result := r.db.Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ToggleUserStatus flips the active flag and returns the user with its new
// value.
func (r *userRepository) ToggleUserStatus(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}

	user.IsActive = !user.IsActive
	if err := r.db.Model(&user).Update("is_active", user.IsActive).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) LogBulkUploadErrors(rows []models.BulkUserUploadError) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.Create(&rows).Error
}

func (r *userRepository) LogEmailSent(entry *models.EmailLog) error {
	return r.db.Create(entry).Error
}
