package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"honeytags/internal/model"
)

// Store provides Postgres persistence for generated tags.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// UpsertTags inserts or updates tags keyed on contract address.
func (s *Store) UpsertTags(ctx context.Context, tags []model.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, tag := range tags {
		batch.Queue(`
			INSERT INTO pool_tags (
				contract_address, public_name_tag, project_name, ui_link, public_note, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, now(), now())
			ON CONFLICT (contract_address)
			DO UPDATE SET
				public_name_tag = EXCLUDED.public_name_tag,
				project_name = EXCLUDED.project_name,
				ui_link = EXCLUDED.ui_link,
				public_note = EXCLUDED.public_note,
				updated_at = now()
		`,
			tag.ContractAddress,
			tag.PublicNameTag,
			tag.ProjectName,
			tag.UILink,
			tag.PublicNote,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range tags {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
