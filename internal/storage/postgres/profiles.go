package postgres

import (
	"context"
	"fmt"

	"jobportal/internal/models"
	"jobportal/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const profileColumns = `id, bio, location, address, gender, date_of_birth, skills, experience, education,
	company_description, industry, company_size, founded_year, website, social_profiles, created_at, updated_at`

// ProfileRepo implements the storage.ProfileRepository interface using PostgreSQL.
type ProfileRepo struct {
	db Querier
}

// NewProfileRepo creates a new ProfileRepo.
func NewProfileRepo(db Querier) *ProfileRepo {
	return &ProfileRepo{db: db}
}

var _ storage.ProfileRepository = (*ProfileRepo)(nil)

func (r *ProfileRepo) Create(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	query := `
		INSERT INTO profiles (id, bio, location, address, gender, date_of_birth, skills, experience, education,
			company_description, industry, company_size, founded_year, website, social_profiles, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
		RETURNING ` + profileColumns
	rows, err := r.db.Query(ctx, query, profileArgs(p)...)
	if err != nil {
		return nil, mapWriteError(err, "create profile")
	}
	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.Profile])
	if err != nil {
		return nil, mapWriteError(err, "create profile")
	}
	return created, nil
}

func (r *ProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	rows, err := r.db.Query(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query profile %s: %w", id, err)
	}
	p, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.Profile])
	if err != nil {
		return nil, mapReadError(err, "get profile")
	}
	return p, nil
}

func (r *ProfileRepo) Update(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	query := `
		UPDATE profiles SET bio = $2, location = $3, address = $4, gender = $5, date_of_birth = $6,
			skills = $7, experience = $8, education = $9, company_description = $10, industry = $11,
			company_size = $12, founded_year = $13, website = $14, social_profiles = $15, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + profileColumns
	rows, err := r.db.Query(ctx, query, profileArgs(p)...)
	if err != nil {
		return nil, mapWriteError(err, "update profile")
	}
	updated, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.Profile])
	if err != nil {
		return nil, mapReadError(err, "update profile")
	}
	return updated, nil
}

func profileArgs(p *models.Profile) []any {
	return []any{
		p.ID,
		p.Bio,
		p.Location,
		p.Address,
		string(p.Gender),
		p.DateOfBirth,
		nonNil(p.Skills),
		nonNil(p.Experience),
		nonNil(p.Education),
		p.CompanyDescription,
		p.Industry,
		p.CompanySize,
		p.FoundedYear,
		p.Website,
		p.SocialProfiles,
	}
}
