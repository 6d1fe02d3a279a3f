package planstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitcoach/internal/plan"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=remote.go -destination=remote_mock_test.go -package=planstore

// Remote is the optional shared table tier. A nil Remote disables it.
type Remote interface {
	Insert(ctx context.Context, userID string, p *plan.GeneratedPlan) (int64, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]RemoteRecord, error)
	Delete(ctx context.Context, id int64, userID string) error
}

type RemoteRecord struct {
	ID        int64
	Plan      plan.GeneratedPlan
	CreatedAt time.Time
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS fitness_plans
(
    id         BIGSERIAL PRIMARY KEY,
    user_id    TEXT        NOT NULL,
    plan_data  JSONB       NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS ix_fitness_plans_user_created ON fitness_plans (user_id, created_at DESC);
`

type PostgresRemote struct {
	db  *pgxpool.Pool
	now func() time.Time
}

func NewPostgresRemote(db *pgxpool.Pool) *PostgresRemote {
	return &PostgresRemote{
		db:  db,
		now: time.Now,
	}
}

// EnsureSchema creates the fitness_plans table when it does not exist yet.
func (r *PostgresRemote) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, schemaSQL)
	return err
}

func (r *PostgresRemote) Insert(ctx context.Context, userID string, p *plan.GeneratedPlan) (int64, error) {
	if userID == "" || p == nil {
		return 0, errors.New("user id or plan empty")
	}

	planData, err := json.Marshal(p)
	if err != nil {
		return 0, fmt.Errorf("marshal plan: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(
		ctx,
		`INSERT INTO fitness_plans (user_id, plan_data, created_at) VALUES ($1, $2, $3) RETURNING id;`,
		userID, planData, r.now().UTC(),
	).Scan(&id); err != nil {
		return 0, err
	}

	return id, nil
}

func (r *PostgresRemote) ListRecent(ctx context.Context, userID string, limit int) ([]RemoteRecord, error) {
	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, plan_data, created_at
			FROM fitness_plans
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT $2;`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []RemoteRecord
	for rows.Next() {
		var id int64
		var planData []byte
		var createdAt time.Time
		if err := rows.Scan(&id, &planData, &createdAt); err != nil {
			return nil, err
		}

		p, err := plan.Decode(planData)
		if err != nil {
			log.Warnf("skipping remote plan [%d]: %s", id, err)
			continue
		}

		records = append(records, RemoteRecord{
			ID:        id,
			Plan:      *p,
			CreatedAt: createdAt,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *PostgresRemote) Delete(ctx context.Context, id int64, userID string) error {
	_, err := r.db.Exec(
		ctx,
		`DELETE FROM fitness_plans WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	return err
}
