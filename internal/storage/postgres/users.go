package postgres

import (
	"context"
	"fmt"
	"strings"

	"jobportal/internal/models"
	"jobportal/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, password_hash, account_type, first_name, last_name, company_name,
	contact_number, profile_photo, company_logo, profile_id, created_at, updated_at`

// UserRepo implements the storage.UserRepository interface using PostgreSQL.
type UserRepo struct {
	db Querier
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db Querier) *UserRepo {
	return &UserRepo{db: db}
}

// Compile-time check to ensure UserRepo implements UserRepository
var _ storage.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) collectOne(rows pgx.Rows, operation string) (*models.User, error) {
	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.User])
	if err != nil {
		return nil, mapReadError(err, operation)
	}
	return user, nil
}

// Create inserts a user. Emails are stored lower-cased; duplicates yield storage.ErrConflict.
func (r *UserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	query := `
		INSERT INTO users (id, email, password_hash, account_type, first_name, last_name, company_name,
			contact_number, profile_photo, company_logo, profile_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING ` + userColumns

	rows, err := r.db.Query(ctx, query,
		user.ID,
		strings.ToLower(user.Email),
		user.PasswordHash,
		user.Role,
		user.FirstName,
		user.LastName,
		user.CompanyName,
		user.ContactNumber,
		user.ProfilePhoto,
		user.CompanyLogo,
		user.ProfileID,
	)
	if err != nil {
		return nil, mapWriteError(err, "create user")
	}
	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.User])
	if err != nil {
		return nil, mapWriteError(err, "create user")
	}
	return created, nil
}

// GetByID retrieves a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query user %s: %w", id, err)
	}
	return r.collectOne(rows, "get user by id")
}

// GetByEmail retrieves a user by case-insensitive email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email))
	if err != nil {
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}
	return r.collectOne(rows, "get user by email")
}

// ExistsByEmail reports whether email is registered.
func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, strings.ToLower(email)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user email: %w", err)
	}
	return exists, nil
}

// Update applies the non-nil fields of update.
func (r *UserRepo) Update(ctx context.Context, id uuid.UUID, update storage.UserUpdate) (*models.User, error) {
	var set setClause
	if update.FirstName != nil {
		set.add("first_name", *update.FirstName)
	}
	if update.LastName != nil {
		set.add("last_name", *update.LastName)
	}
	if update.CompanyName != nil {
		set.add("company_name", *update.CompanyName)
	}
	if update.ContactNumber != nil {
		set.add("contact_number", *update.ContactNumber)
	}
	if update.ProfilePhoto != nil {
		set.add("profile_photo", *update.ProfilePhoto)
	}
	if update.CompanyLogo != nil {
		set.add("company_logo", *update.CompanyLogo)
	}
	if set.empty() {
		return r.GetByID(ctx, id)
	}

	query, args := set.build("users", id, userColumns)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapWriteError(err, "update user")
	}
	return r.collectOne(rows, "update user")
}
