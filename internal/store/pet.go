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

const petTableName = "pawhaven.pets"

var petColumns = utils.StructTagValues(types.Pet{})

type PetRepository struct {
	pool *pgxpool.Pool
}

func NewPetRepository(pool *pgxpool.Pool) *PetRepository {
	return &PetRepository{pool: pool}
}

func (r *PetRepository) Pet(ctx context.Context, petID string) (*types.Pet, error) {
	query, args, err := psql().
		Select(petColumns...).
		From(petTableName).
		Where(sq.Eq{"id": petID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate pet query: %w", err)
	}

	var pet types.Pet
	err = pgxscan.Get(ctx, r.pool, &pet, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrPetNotFound
		}
		return nil, fmt.Errorf("failed to fetch pet: %w", err)
	}

	return &pet, nil
}

func (r *PetRepository) PetBySlug(ctx context.Context, slug string) (*types.Pet, error) {
	query, args, err := psql().
		Select(petColumns...).
		From(petTableName).
		Where(sq.Eq{"slug": slug}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate pet-by-slug query: %w", err)
	}

	var pet types.Pet
	err = pgxscan.Get(ctx, r.pool, &pet, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrPetNotFound
		}
		return nil, fmt.Errorf("failed to fetch pet by slug: %w", err)
	}

	return &pet, nil
}

func (r *PetRepository) PetsByIDs(ctx context.Context, petIDs []string) ([]*types.Pet, error) {
	if len(petIDs) == 0 {
		return []*types.Pet{}, nil
	}

	query, args, err := psql().
		Select(petColumns...).
		From(petTableName).
		Where(sq.Eq{"id": petIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate pets-by-ids query: %w", err)
	}

	var pets []*types.Pet
	err = pgxscan.Select(ctx, r.pool, &pets, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pets by ids: %w", err)
	}

	return pets, nil
}

func (r *PetRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	query, args, err := psql().
		Select("1").
		From(petTableName).
		Where(sq.Eq{"slug": slug}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to generate slug query: %w", err)
	}

	var exists int
	err = pgxscan.Get(ctx, r.pool, &exists, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check slug: %w", err)
	}

	return true, nil
}

func (r *PetRepository) CreatePet(ctx context.Context, pet *types.Pet) error {
	now := time.Now()
	if pet.ID == "" {
		pet.ID = utils.NanoID()
	}
	pet.CreatedAt = now
	pet.UpdatedAt = now

	query, args, err := psql().
		Insert(petTableName).
		SetMap(utils.StructToMap(pet)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert pet query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create pet")
}

func (r *PetRepository) UpdatePet(ctx context.Context, petID string, update types.UpdatePet) error {
	query, args, err := psql().
		Update(petTableName).
		SetMap(map[string]any{
			"name":                      update.Name,
			"type":                      update.Type,
			"breed":                     update.Breed,
			"age":                       update.Age,
			"gender":                    update.Gender,
			"size":                      update.Size,
			"color":                     update.Color,
			"description":               update.Description,
			"personality":               update.Personality,
			"vaccinated":                update.Vaccinated,
			"spayed_neutered":           update.SpayedNeutered,
			"microchipped":              update.Microchipped,
			"special_needs":             update.SpecialNeeds,
			"special_needs_description": update.SpecialNeedsDescription,
			"main_image":                update.MainImage,
			"image_2":                   update.Image2,
			"image_3":                   update.Image3,
			"arrival_date":              update.ArrivalDate,
			"adoption_fee_cents":        update.AdoptionFeeCents,
			"featured":                  update.Featured,
			"updated_at":                time.Now(),
		}).
		Where(sq.Eq{"id": petID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update pet query for pet %s: %w", petID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update pet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrPetNotFound
	}

	return nil
}

func (r *PetRepository) SetStatus(ctx context.Context, petID string, status types.PetStatus) error {
	query, args, err := psql().
		Update(petTableName).
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": petID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate pet status query for pet %s: %w", petID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update pet status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrPetNotFound
	}

	return nil
}

// DeletePet removes the pet; adoption applications cascade at the schema
// level.
func (r *PetRepository) DeletePet(ctx context.Context, petID string) error {
	query, args, err := psql().
		Delete(petTableName).
		Where(sq.Eq{"id": petID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete pet query for pet %s: %w", petID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)

	return utils.ErrorWrapOrNil(err, "failed to delete pet")
}

func applyPetFilters(b sq.SelectBuilder, filters types.PetFilters) sq.SelectBuilder {
	if filters.Type != "" && filters.Type != "all" {
		b = b.Where(sq.Eq{"type": filters.Type})
	}

	if len(filters.Sizes) > 0 {
		b = b.Where(sq.Eq{"size": filters.Sizes})
	}

	if filters.SpecialNeeds {
		b = b.Where(sq.Eq{"special_needs": true})
	}

	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		b = b.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"breed": pattern},
			sq.ILike{"description": pattern},
		})
	}

	return b
}

func petOrder(sort types.PetSort) []string {
	switch sort {
	case types.PetSortOldest:
		return []string{"arrival_date ASC", "name ASC"}
	case types.PetSortName:
		return []string{"name ASC"}
	default:
		return []string{"arrival_date DESC", "name ASC"}
	}
}

func (r *PetRepository) AvailablePets(ctx context.Context, filters types.PetFilters, sort types.PetSort, limit, offset uint64) ([]*types.Pet, error) {
	b := psql().
		Select(petColumns...).
		From(petTableName).
		Where(sq.Eq{"status": types.PetStatusAvailable})

	b = applyPetFilters(b, filters).OrderBy(petOrder(sort)...)

	if limit > 0 {
		b = b.Limit(limit).Offset(offset)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate available pets query: %w", err)
	}

	pets := make([]*types.Pet, 0)
	err = pgxscan.Select(ctx, r.pool, &pets, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch available pets: %w", err)
	}

	return pets, nil
}

func (r *PetRepository) CountAvailable(ctx context.Context, filters types.PetFilters) (int, error) {
	b := psql().
		Select("count(*)").
		From(petTableName).
		Where(sq.Eq{"status": types.PetStatusAvailable})

	query, args, err := applyPetFilters(b, filters).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate available pets count query: %w", err)
	}

	var count int
	err = pgxscan.Get(ctx, r.pool, &count, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to count available pets: %w", err)
	}

	return count, nil
}

func (r *PetRepository) FeaturedPets(ctx context.Context, limit uint64) ([]*types.Pet, error) {
	query, args, err := psql().
		Select(petColumns...).
		From(petTableName).
		Where(sq.Eq{"featured": true, "status": types.PetStatusAvailable}).
		OrderBy("arrival_date DESC", "name ASC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate featured pets query: %w", err)
	}

	pets := make([]*types.Pet, 0)
	err = pgxscan.Select(ctx, r.pool, &pets, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch featured pets: %w", err)
	}

	return pets, nil
}

// RelatedPets returns available pets of the same type, excluding the pet
// being viewed.
func (r *PetRepository) RelatedPets(ctx context.Context, petType types.PetType, excludeID string, limit uint64) ([]*types.Pet, error) {
	query, args, err := psql().
		Select(petColumns...).
		From(petTableName).
		Where(sq.Eq{"type": petType, "status": types.PetStatusAvailable}).
		Where(sq.NotEq{"id": excludeID}).
		OrderBy("arrival_date DESC", "name ASC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate related pets query: %w", err)
	}

	pets := make([]*types.Pet, 0)
	err = pgxscan.Select(ctx, r.pool, &pets, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch related pets: %w", err)
	}

	return pets, nil
}

// AllPets lists pets for the dashboard, any status.
func (r *PetRepository) AllPets(ctx context.Context, filters types.PetFilters, limit, offset uint64) ([]*types.Pet, error) {
	b := psql().
		Select(petColumns...).
		From(petTableName)

	if filters.Status != "" {
		b = b.Where(sq.Eq{"status": filters.Status})
	}

	b = applyPetFilters(b, filters).OrderBy("arrival_date DESC", "name ASC")

	if limit > 0 {
		b = b.Limit(limit).Offset(offset)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate pets query: %w", err)
	}

	pets := make([]*types.Pet, 0)
	err = pgxscan.Select(ctx, r.pool, &pets, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pets: %w", err)
	}

	return pets, nil
}

func (r *PetRepository) CountPets(ctx context.Context, filters types.PetFilters) (int, error) {
	b := psql().
		Select("count(*)").
		From(petTableName)

	if filters.Status != "" {
		b = b.Where(sq.Eq{"status": filters.Status})
	}

	query, args, err := applyPetFilters(b, filters).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate pets count query: %w", err)
	}

	var count int
	err = pgxscan.Get(ctx, r.pool, &count, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to count pets: %w", err)
	}

	return count, nil
}

func (r *PetRepository) CountByStatus(ctx context.Context, status types.PetStatus) (int, error) {
	query, args, err := psql().
		Select("count(*)").
		From(petTableName).
		Where(sq.Eq{"status": status}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate pet status count query: %w", err)
	}

	var count int
	err = pgxscan.Get(ctx, r.pool, &count, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to count pets by status: %w", err)
	}

	return count, nil
}
