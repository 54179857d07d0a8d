package store

import (
	"context"
	"fmt"
	"time"

	"pawhaven/internal/utils"
	"pawhaven/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const applicationTableName = "pawhaven.adoption_applications"

// pendingApplicationIdx is the partial unique index enforcing at most one
// pending application per (email, pet). See docs/schema.sql.
const pendingApplicationIdx = "adoption_applications_pending_email_pet_idx"

var applicationColumns = utils.StructTagValues(types.AdoptionApplication{})

type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

func (r *ApplicationRepository) Application(ctx context.Context, applicationID string) (*types.AdoptionApplication, error) {
	query, args, err := psql().
		Select(applicationColumns...).
		From(applicationTableName).
		Where(sq.Eq{"id": applicationID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate application query: %w", err)
	}

	var application types.AdoptionApplication
	err = pgxscan.Get(ctx, r.pool, &application, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to fetch application: %w", err)
	}

	return &application, nil
}

func (r *ApplicationRepository) CreateApplication(ctx context.Context, application *types.AdoptionApplication) error {
	if application.ID == "" {
		application.ID = utils.NanoID()
	}

	query, args, err := psql().
		Insert(applicationTableName).
		SetMap(utils.StructToMap(application)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert application query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, pendingApplicationIdx) {
			return types.ErrDuplicateApplication
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

func (r *ApplicationRepository) HasPending(ctx context.Context, email, petID string) (bool, error) {
	query, args, err := psql().
		Select("1").
		From(applicationTableName).
		Where(sq.Eq{"email": email, "pet_id": petID, "status": types.ApplicationStatusPending}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to generate pending check query: %w", err)
	}

	var exists int
	err = pgxscan.Get(ctx, r.pool, &exists, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check pending application: %w", err)
	}

	return true, nil
}

func (r *ApplicationRepository) SetNotes(ctx context.Context, applicationID, notes string, reviewedAt time.Time) error {
	query, args, err := psql().
		Update(applicationTableName).
		Set("notes", notes).
		Set("reviewed_at", reviewedAt).
		Where(sq.Eq{"id": applicationID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate notes query for application %s: %w", applicationID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update application notes: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrApplicationNotFound
	}

	return nil
}

// Transition applies an application status change and, when petStatus is
// non-nil, the referenced pet's status change in a single transaction, so a
// crash between the two writes cannot leave the pet inconsistent with the
// application outcome. This is the only write path that touches pet status as
// a side effect of an application.
func (r *ApplicationRepository) Transition(ctx context.Context, applicationID string, status types.ApplicationStatus, reviewedAt time.Time, petID string, petStatus *types.PetStatus) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transition transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query, args, err := psql().
		Update(applicationTableName).
		Set("status", status).
		Set("reviewed_at", reviewedAt).
		Where(sq.Eq{"id": applicationID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate status query for application %s: %w", applicationID, err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrApplicationNotFound
	}

	if petStatus != nil {
		query, args, err = psql().
			Update(petTableName).
			Set("status", *petStatus).
			Set("updated_at", reviewedAt).
			Where(sq.Eq{"id": petID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to generate pet status query for pet %s: %w", petID, err)
		}

		tag, err = tx.Exec(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to update pet status: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return types.ErrPetNotFound
		}
	}

	return tx.Commit(ctx)
}

// ApplicationsForUser matches by owning user OR by email so applications
// submitted while logged out are reunited with an account created later
// using the same email.
func (r *ApplicationRepository) ApplicationsForUser(ctx context.Context, userID, email string) ([]*types.AdoptionApplication, error) {
	query, args, err := psql().
		Select(applicationColumns...).
		From(applicationTableName).
		Where(sq.Or{sq.Eq{"user_id": userID}, sq.Eq{"email": email}}).
		OrderBy("submitted_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user applications query: %w", err)
	}

	applications := make([]*types.AdoptionApplication, 0)
	err = pgxscan.Select(ctx, r.pool, &applications, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user applications: %w", err)
	}

	return applications, nil
}

func (r *ApplicationRepository) PendingApplications(ctx context.Context) ([]*types.AdoptionApplication, error) {
	query, args, err := psql().
		Select(applicationColumns...).
		From(applicationTableName).
		Where(sq.Eq{"status": types.ApplicationStatusPending}).
		OrderBy("submitted_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate pending applications query: %w", err)
	}

	applications := make([]*types.AdoptionApplication, 0)
	err = pgxscan.Select(ctx, r.pool, &applications, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending applications: %w", err)
	}

	return applications, nil
}

func (r *ApplicationRepository) RecentApplications(ctx context.Context, limit uint64) ([]*types.AdoptionApplication, error) {
	query, args, err := psql().
		Select(applicationColumns...).
		From(applicationTableName).
		OrderBy("submitted_at DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate recent applications query: %w", err)
	}

	applications := make([]*types.AdoptionApplication, 0)
	err = pgxscan.Select(ctx, r.pool, &applications, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent applications: %w", err)
	}

	return applications, nil
}

func applicationFilterQuery(b sq.SelectBuilder, filters types.ApplicationFilters) sq.SelectBuilder {
	b = b.LeftJoin("pawhaven.pets p ON p.id = a.pet_id")

	if filters.Status != "" {
		b = b.Where(sq.Eq{"a.status": filters.Status})
	}

	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		b = b.Where(sq.Or{
			sq.ILike{"a.first_name": pattern},
			sq.ILike{"a.last_name": pattern},
			sq.ILike{"a.email": pattern},
			sq.ILike{"p.name": pattern},
			sq.ILike{"p.breed": pattern},
		})
	}

	return b
}

func (r *ApplicationRepository) FilterApplications(ctx context.Context, filters types.ApplicationFilters, limit, offset uint64) ([]*types.AdoptionApplication, error) {
	b := psql().
		Select(utils.PrefixColumns("a", applicationColumns)...).
		From(applicationTableName + " a")

	b = applicationFilterQuery(b, filters).OrderBy("a.submitted_at DESC")

	if limit > 0 {
		b = b.Limit(limit).Offset(offset)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate filter applications query: %w", err)
	}

	applications := make([]*types.AdoptionApplication, 0)
	err = pgxscan.Select(ctx, r.pool, &applications, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch filtered applications: %w", err)
	}

	return applications, nil
}

func (r *ApplicationRepository) CountApplications(ctx context.Context, filters types.ApplicationFilters) (int, error) {
	b := psql().
		Select("count(*)").
		From(applicationTableName + " a")

	query, args, err := applicationFilterQuery(b, filters).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate applications count query: %w", err)
	}

	var count int
	err = pgxscan.Get(ctx, r.pool, &count, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}

	return count, nil
}

func (r *ApplicationRepository) CountByStatus(ctx context.Context, status types.ApplicationStatus) (int, error) {
	query, args, err := psql().
		Select("count(*)").
		From(applicationTableName).
		Where(sq.Eq{"status": status}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate application status count query: %w", err)
	}

	var count int
	err = pgxscan.Get(ctx, r.pool, &count, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to count applications by status: %w", err)
	}

	return count, nil
}
