package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/valuation-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS leads (
	id         TEXT PRIMARY KEY,
	intake     TEXT NOT NULL,
	valuation  TEXT,
	scenarios  TEXT,
	status     TEXT NOT NULL DEFAULT 'new',
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status);
CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveLead(ctx context.Context, intake model.CompanyIntake, valuation *model.ValuationResult, scenarios []model.ScenarioResult) (*model.Lead, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	intakeJSON, valuationJSON, scenariosJSON, err := marshalLeadFields(intake, valuation, scenarios)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO leads (id, intake, valuation, scenarios, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, intakeJSON, valuationJSON, scenariosJSON, string(model.LeadStatusNew), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert lead")
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

func (s *SQLiteStore) GetLead(ctx context.Context, id string) (*model.Lead, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, intake, valuation, scenarios, status, created_at, updated_at FROM leads WHERE id = ?`,
		id,
	)
	return scanLead(row)
}

func (s *SQLiteStore) ListLeads(ctx context.Context, filter LeadFilter) ([]model.Lead, error) {
	query := `SELECT id, intake, valuation, scenarios, status, created_at, updated_at FROM leads WHERE 1=1`
	var args []any

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	if filter.Sector != "" {
		query += ` AND json_extract(intake, '$.sector') = ?`
		args = append(args, filter.Sector)
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list leads")
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *l)
	}
	return leads, eris.Wrap(rows.Err(), "sqlite: list leads iterate")
}

func (s *SQLiteStore) UpdateLeadStatus(ctx context.Context, id string, status model.LeadStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE leads SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update lead status %s", id)
	}
	return checkRowsAffected(res, "lead", id)
}

// helpers

func marshalLeadFields(intake model.CompanyIntake, valuation *model.ValuationResult, scenarios []model.ScenarioResult) (string, sql.NullString, sql.NullString, error) {
	intakeJSON, err := json.Marshal(intake)
	if err != nil {
		return "", sql.NullString{}, sql.NullString{}, eris.Wrap(err, "store: marshal intake")
	}

	var valuationJSON, scenariosJSON sql.NullString
	if valuation != nil {
		b, err := json.Marshal(valuation)
		if err != nil {
			return "", sql.NullString{}, sql.NullString{}, eris.Wrap(err, "store: marshal valuation")
		}
		valuationJSON = sql.NullString{String: string(b), Valid: true}
	}
	if len(scenarios) > 0 {
		b, err := json.Marshal(scenarios)
		if err != nil {
			return "", sql.NullString{}, sql.NullString{}, eris.Wrap(err, "store: marshal scenarios")
		}
		scenariosJSON = sql.NullString{String: string(b), Valid: true}
	}

	return string(intakeJSON), valuationJSON, scenariosJSON, nil
}

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Errorf("%s not found: %s", entity, id)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanLead(row scannable) (*model.Lead, error) {
	var l model.Lead
	var intakeJSON string
	var valuationJSON, scenariosJSON sql.NullString

	err := row.Scan(&l.ID, &intakeJSON, &valuationJSON, &scenariosJSON, &l.Status, &l.CreatedAt, &l.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.New("lead not found")
	}
	if err != nil {
		return nil, eris.Wrap(err, "store: scan lead")
	}

	if err := json.Unmarshal([]byte(intakeJSON), &l.Intake); err != nil {
		return nil, eris.Wrap(err, "store: unmarshal intake")
	}
	if valuationJSON.Valid {
		l.Valuation = &model.ValuationResult{}
		if err := json.Unmarshal([]byte(valuationJSON.String), l.Valuation); err != nil {
			return nil, eris.Wrap(err, "store: unmarshal valuation")
		}
	}
	if scenariosJSON.Valid {
		if err := json.Unmarshal([]byte(scenariosJSON.String), &l.Scenarios); err != nil {
			return nil, eris.Wrap(err, "store: unmarshal scenarios")
		}
	}
	return &l, nil
}
