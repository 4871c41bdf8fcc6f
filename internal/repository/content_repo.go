package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"supportchat-backend/internal/models"
)

// ContentRepo reads taxonomy terms and the nodes tagged with them.
type ContentRepo struct {
	pool *pgxpool.Pool
}

func NewContentRepo(pool *pgxpool.Pool) *ContentRepo {
	return &ContentRepo{pool: pool}
}

// FirstTermByName returns the lowest-id term with the given name, or nil.
func (r *ContentRepo) FirstTermByName(ctx context.Context, name string) (*models.Term, error) {
	t := &models.Term{}
	query := `SELECT id, vocabulary, name, created_at
		FROM taxonomy_terms WHERE name = $1 ORDER BY id LIMIT 1`

	err := r.pool.QueryRow(ctx, query, name).Scan(&t.ID, &t.Vocabulary, &t.Name, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// FirstNodeByTerm returns the lowest-id node tagged with termID, or nil.
func (r *ContentRepo) FirstNodeByTerm(ctx context.Context, termID int64) (*models.Node, error) {
	n := &models.Node{}
	query := `SELECT n.id, n.title, n.path_alias, n.created_at
		FROM nodes n
		JOIN node_keywords k ON k.node_id = n.id
		WHERE k.term_id = $1
		ORDER BY n.id LIMIT 1`

	err := r.pool.QueryRow(ctx, query, termID).Scan(&n.ID, &n.Title, &n.PathAlias, &n.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Ping checks the underlying connection pool.
func (r *ContentRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
