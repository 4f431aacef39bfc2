package repository

import (
	"context"
	"fmt"
	"log/slog"

	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const cardsTableName = "visiting_cards"

var (
	// CardsColumns holds the columns for the "visiting_cards" table.
	CardsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "name", Type: field.TypeString, Size: 255, Default: ""},
		{Name: "email", Type: field.TypeString, Size: 255, Default: ""},
		{Name: "phone", Type: field.TypeString, Size: 64, Default: ""},
		{Name: "company", Type: field.TypeString, Size: 255, Default: ""},
		{Name: "designation", Type: field.TypeString, Size: 255, Default: ""},
		{Name: "address", Type: field.TypeString, Size: 1024, Default: ""},
		{Name: "source_path", Type: field.TypeString, Nullable: true},
		{Name: "source_hash", Type: field.TypeString, Size: 64, Nullable: true},
		{Name: "created_at", Type: field.TypeTime},
	}
	// CardsTable holds the schema information for the "visiting_cards" table.
	CardsTable = &schema.Table{
		Name:       cardsTableName,
		Columns:    CardsColumns,
		PrimaryKey: []*schema.Column{CardsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "visiting_card_name", Columns: []*schema.Column{CardsColumns[1]}},
			{Name: "visiting_card_source_hash", Columns: []*schema.Column{CardsColumns[8]}},
			{Name: "visiting_card_created_at", Columns: []*schema.Column{CardsColumns[9]}},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{CardsTable}
)

// Migrate creates or updates the card tables.
func Migrate(ctx context.Context, db *DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	m, err := schema.NewMigrate(db.Driver())
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, Tables...); err != nil {
		logger.Error("schema migration failed", "error", err)
		return fmt.Errorf("migrate: %w", err)
	}
	logger.Info("schema migration complete", "tables", len(Tables))
	return nil
}
