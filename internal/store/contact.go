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

const contactTableName = "pawhaven.contact_messages"

var contactColumns = utils.StructTagValues(types.ContactMessage{})

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func (r *ContactRepository) Message(ctx context.Context, messageID string) (*types.ContactMessage, error) {
	query, args, err := psql().
		Select(contactColumns...).
		From(contactTableName).
		Where(sq.Eq{"id": messageID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate contact message query: %w", err)
	}

	var message types.ContactMessage
	err = pgxscan.Get(ctx, r.pool, &message, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrContactMessageNotFound
		}
		return nil, fmt.Errorf("failed to fetch contact message: %w", err)
	}

	return &message, nil
}

func (r *ContactRepository) CreateMessage(ctx context.Context, name, email, phone, subject, body string) (*types.ContactMessage, error) {
	now := time.Now()

	message := &types.ContactMessage{
		ID:        utils.NanoID(),
		Name:      name,
		Email:     email,
		Subject:   subject,
		Message:   body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if phone != "" {
		message.Phone = utils.StringPtr(phone)
	}

	query, args, err := psql().
		Insert(contactTableName).
		SetMap(utils.StructToMap(message)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate insert contact message query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to create contact message: %w", err)
	}

	return message, nil
}

func (r *ContactRepository) MarkRead(ctx context.Context, messageID string) error {
	return r.setFlag(ctx, messageID, "is_read", true)
}

func (r *ContactRepository) SetResponded(ctx context.Context, messageID string, responded bool) error {
	return r.setFlag(ctx, messageID, "is_responded", responded)
}

func (r *ContactRepository) setFlag(ctx context.Context, messageID, column string, value bool) error {
	query, args, err := psql().
		Update(contactTableName).
		Set(column, value).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": messageID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate contact flag query for message %s: %w", messageID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update contact message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrContactMessageNotFound
	}

	return nil
}

func applyContactFilters(b sq.SelectBuilder, filters types.ContactFilters) sq.SelectBuilder {
	switch filters.Read {
	case "read":
		b = b.Where(sq.Eq{"is_read": true})
	case "unread":
		b = b.Where(sq.Eq{"is_read": false})
	}

	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		b = b.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"email": pattern},
			sq.ILike{"subject": pattern},
		})
	}

	return b
}

func (r *ContactRepository) FilterMessages(ctx context.Context, filters types.ContactFilters, limit, offset uint64) ([]*types.ContactMessage, error) {
	b := psql().
		Select(contactColumns...).
		From(contactTableName)

	b = applyContactFilters(b, filters).OrderBy("created_at DESC")

	if limit > 0 {
		b = b.Limit(limit).Offset(offset)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate contact messages query: %w", err)
	}

	messages := make([]*types.ContactMessage, 0)
	err = pgxscan.Select(ctx, r.pool, &messages, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contact messages: %w", err)
	}

	return messages, nil
}

func (r *ContactRepository) CountMessages(ctx context.Context, filters types.ContactFilters) (int, error) {
	b := psql().
		Select("count(*)").
		From(contactTableName)

	query, args, err := applyContactFilters(b, filters).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate contact count query: %w", err)
	}

	var count int
	err = pgxscan.Get(ctx, r.pool, &count, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to count contact messages: %w", err)
	}

	return count, nil
}

func (r *ContactRepository) RecentMessages(ctx context.Context, limit uint64) ([]*types.ContactMessage, error) {
	return r.FilterMessages(ctx, types.ContactFilters{}, limit, 0)
}

func (r *ContactRepository) CountUnread(ctx context.Context) (int, error) {
	return r.CountMessages(ctx, types.ContactFilters{Read: "unread"})
}
