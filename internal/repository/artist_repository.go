package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/fanclub-membership/internal/model"
)

// ArtistRepo encapsulates all database queries related to artists.  Artists
// are reference data: they are listed and looked up but never written by
// the service.
type ArtistRepo struct {
	db *sql.DB
}

// NewArtistRepo constructs an ArtistRepo with the provided DB handle.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

// ListAll returns every artist ordered by id.
func (r *ArtistRepo) ListAll(ctx context.Context) ([]model.Artist, error) {
	const q = `SELECT id, name, debut_year FROM Artist ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Artist
	for rows.Next() {
		var a model.Artist
		if err := rows.Scan(&a.ID, &a.Name, &a.DebutYear); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches an artist by its ID.  It returns ErrArtistNotFound if no
// row is found.
func (r *ArtistRepo) GetByID(ctx context.Context, id model.ID) (model.Artist, error) {
	const q = `SELECT id, name, debut_year FROM Artist WHERE id = ?`
	var a model.Artist
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&a.ID, &a.Name, &a.DebutYear); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Artist{}, ErrArtistNotFound
		}
		return model.Artist{}, err
	}
	return a, nil
}

// GetByNameTx resolves an artist by exact name inside tx.  Artist names are
// not declared unique; the lowest id wins.
func (r *ArtistRepo) GetByNameTx(ctx context.Context, tx *sql.Tx, name string) (model.Artist, error) {
	const q = `SELECT id, name, debut_year FROM Artist WHERE name = ? ORDER BY id LIMIT 1`
	var a model.Artist
	if err := tx.QueryRowContext(ctx, q, name).Scan(&a.ID, &a.Name, &a.DebutYear); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Artist{}, ErrArtistNotFound
		}
		return model.Artist{}, err
	}
	return a, nil
}
