package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/valuation-cli/internal/model"
)

// PgxPool is the subset of pgxpool.Pool the store needs; pgxmock
// satisfies it in tests.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool PgxPool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}

	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool; used by tests.
func NewPostgresWithPool(pool PgxPool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS leads (
	id         UUID PRIMARY KEY,
	intake     JSONB NOT NULL,
	valuation  JSONB,
	scenarios  JSONB,
	status     TEXT NOT NULL DEFAULT 'new',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status);
CREATE INDEX IF NOT EXISTS idx_leads_sector ON leads((intake->>'sector'));
CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveLead(ctx context.Context, intake model.CompanyIntake, valuation *model.ValuationResult, scenarios []model.ScenarioResult) (*model.Lead, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	intakeJSON, err := json.Marshal(intake)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal intake")
	}
	var valuationJSON, scenariosJSON []byte
	if valuation != nil {
		if valuationJSON, err = json.Marshal(valuation); err != nil {
			return nil, eris.Wrap(err, "postgres: marshal valuation")
		}
	}
	if len(scenarios) > 0 {
		if scenariosJSON, err = json.Marshal(scenarios); err != nil {
			return nil, eris.Wrap(err, "postgres: marshal scenarios")
		}
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO leads (id, intake, valuation, scenarios, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, intakeJSON, valuationJSON, scenariosJSON, string(model.LeadStatusNew), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert lead")
	}

	return &model.Lead{
		ID:        id,
		Intake:    intake,
		Valuation: valuation,
		Scenarios: scenarios,
		Status:    model.LeadStatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *PostgresStore) GetLead(ctx context.Context, id string) (*model.Lead, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, intake, valuation, scenarios, status, created_at, updated_at FROM leads WHERE id = $1`,
		id,
	)
	return scanPgLead(row)
}

func (s *PostgresStore) ListLeads(ctx context.Context, filter LeadFilter) ([]model.Lead, error) {
	query := `SELECT id, intake, valuation, scenarios, status, created_at, updated_at FROM leads WHERE 1=1`
	var args []any

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if filter.Sector != "" {
		args = append(args, filter.Sector)
		query += fmt.Sprintf(` AND intake->>'sector' = $%d`, len(args))
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += fmt.Sprintf(` LIMIT $%d`, len(args))

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list leads")
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		l, err := scanPgLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *l)
	}
	return leads, eris.Wrap(rows.Err(), "postgres: list leads iterate")
}

func (s *PostgresStore) UpdateLeadStatus(ctx context.Context, id string, status model.LeadStatus) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE leads SET status = $1, updated_at = $2 WHERE id = $3`,
		string(status), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update lead status %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("lead not found: %s", id)
	}
	return nil
}

func scanPgLead(row pgx.Row) (*model.Lead, error) {
	var l model.Lead
	var intakeJSON []byte
	var valuationJSON, scenariosJSON []byte

	err := row.Scan(&l.ID, &intakeJSON, &valuationJSON, &scenariosJSON, &l.Status, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.New("lead not found")
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: scan lead")
	}

	if err := json.Unmarshal(intakeJSON, &l.Intake); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal intake")
	}
	if len(valuationJSON) > 0 {
		l.Valuation = &model.ValuationResult{}
		if err := json.Unmarshal(valuationJSON, l.Valuation); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal valuation")
		}
	}
	if len(scenariosJSON) > 0 {
		if err := json.Unmarshal(scenariosJSON, &l.Scenarios); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal scenarios")
		}
	}
	return &l, nil
}
