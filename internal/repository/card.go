package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/visiting-cards/internal/common"
	"github.com/joseph-ayodele/visiting-cards/internal/entity"
)

var cardColumns = []string{
	"id", "name", "email", "phone", "company", "designation", "address",
	"source_path", "source_hash", "created_at",
}

type CardRepository interface {
	Create(ctx context.Context, card *entity.Card) (*entity.Card, error)
	List(ctx context.Context) ([]*entity.Card, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Card, error)
	FindByHash(ctx context.Context, hash string) (*entity.Card, error)
	DeleteByName(ctx context.Context, name string) (int64, error)
}

type cardRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewCardRepository(db *DB, logger *slog.Logger) CardRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &cardRepository{
		db:     db,
		logger: logger,
	}
}

func (r *cardRepository) builder() *entsql.DialectBuilder {
	return entsql.Dialect(r.db.Dialect())
}

// Create stores card, assigning an ID and creation time when unset.
func (r *cardRepository) Create(ctx context.Context, card *entity.Card) (*entity.Card, error) {
	if card == nil {
		return nil, common.ErrInvalidInput
	}
	c := *card
	c.ContactRecord = c.ContactRecord.Trimmed()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	query, args := r.builder().Insert(cardsTableName).
		Columns(cardColumns...).
		Values(c.ID, c.Name, c.Email, c.Phone, c.Company, c.Designation, c.Address,
			nullString(c.SourcePath), nullString(c.SourceHash), c.CreatedAt).
		Query()
	if _, err := r.db.Driver().DB().ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("failed to create card", "name", c.Name, "source_path", c.SourcePath, "error", err)
		return nil, common.NewAppError("DATABASE", "create card", errors.Join(common.ErrDatabase, err))
	}
	return &c, nil
}

// List returns all cards, oldest first.
func (r *cardRepository) List(ctx context.Context) ([]*entity.Card, error) {
	query, args := r.builder().Select(cardColumns...).
		From(entsql.Table(cardsTableName)).
		OrderBy(entsql.Asc("created_at"), entsql.Asc("id")).
		Query()
	cards, err := r.query(ctx, query, args)
	if err != nil {
		r.logger.Error("failed to list cards", "error", err)
		return nil, err
	}
	return cards, nil
}

func (r *cardRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Card, error) {
	return r.one(ctx, entsql.EQ("id", id))
}

// FindByHash returns the first card stored from a source with the given hash.
func (r *cardRepository) FindByHash(ctx context.Context, hash string) (*entity.Card, error) {
	if strings.TrimSpace(hash) == "" {
		return nil, common.ErrInvalidInput
	}
	return r.one(ctx, entsql.EQ("source_hash", hash))
}

// DeleteByName removes every card whose name equals name exactly and
// returns the number of rows removed.
func (r *cardRepository) DeleteByName(ctx context.Context, name string) (int64, error) {
	query, args := r.builder().Delete(cardsTableName).
		Where(entsql.EQ("name", name)).
		Query()
	res, err := r.db.Driver().DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to delete cards by name", "name", name, "error", err)
		return 0, common.NewAppError("DATABASE", "delete cards", errors.Join(common.ErrDatabase, err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, common.WrapError(err, "delete cards: rows affected")
	}
	r.logger.Info("deleted cards", "name", name, "count", n)
	return n, nil
}

func (r *cardRepository) one(ctx context.Context, p *entsql.Predicate) (*entity.Card, error) {
	query, args := r.builder().Select(cardColumns...).
		From(entsql.Table(cardsTableName)).
		Where(p).
		OrderBy(entsql.Asc("created_at")).
		Limit(1).
		Query()
	cards, err := r.query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, common.ErrNotFound
	}
	return cards[0], nil
}

func (r *cardRepository) query(ctx context.Context, query string, args []any) ([]*entity.Card, error) {
	rows, err := r.db.Driver().DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewAppError("DATABASE", "query cards", errors.Join(common.ErrDatabase, err))
	}
	defer func() { _ = rows.Close() }()

	var out []*entity.Card
	for rows.Next() {
		var (
			c          entity.Card
			path, hash sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Designation, &c.Address,
			&path, &hash, &c.CreatedAt); err != nil {
			return nil, common.WrapError(err, "scan card")
		}
		c.SourcePath = path.String
		c.SourceHash = hash.String
		out = append(out, &c)
	}
	return out, common.WrapError(rows.Err(), "iterate cards")
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
