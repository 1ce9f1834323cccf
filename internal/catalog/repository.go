// internal/catalog/repository.go
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"project-tracker/internal/common/errors"
	"project-tracker/internal/models"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS projects (
    id               TEXT PRIMARY KEY,
    position         INTEGER NOT NULL,
    name             TEXT NOT NULL,
    category         TEXT NOT NULL,
    status           TEXT NOT NULL,
    progress         INTEGER NOT NULL,
    contract_value   BIGINT NOT NULL,
    payment_received BIGINT NOT NULL,
    document         JSONB NOT NULL
);
CREATE TABLE IF NOT EXISTS change_requests (
    id         TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    status     TEXT NOT NULL,
    document   JSONB NOT NULL
);`

const (
	insertProjectSQL = `INSERT INTO projects (id, position, name, category, status, progress, contract_value, payment_received, document) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	updateProjectSQL = `UPDATE projects SET status = $2, progress = $3, payment_received = $4, document = $5 WHERE id = $1`
	selectCatalogSQL = `SELECT document FROM projects ORDER BY position`
	upsertRequestSQL = `INSERT INTO change_requests (id, project_id, status, document) VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status, document = EXCLUDED.document`
)

// Repository persists the catalog and change requests in PostgreSQL.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schemaDDL); err != nil {
		return errors.NewCatalogPersistFailedError(fmt.Errorf("ensure schema: %w", err))
	}
	return nil
}

// SaveCatalog replaces the stored catalog in one transaction.
func (r *Repository) SaveCatalog(ctx context.Context, projects []models.Project) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewCatalogPersistFailedError(err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM projects`); err != nil {
		return errors.NewCatalogPersistFailedError(err)
	}

	stmt, err := tx.PrepareContext(ctx, insertProjectSQL)
	if err != nil {
		return errors.NewCatalogPersistFailedError(err)
	}
	defer stmt.Close()

	for i, p := range projects {
		doc, err := json.Marshal(p)
		if err != nil {
			return errors.NewCatalogPersistFailedError(err)
		}
		if _, err := stmt.ExecContext(ctx, p.ID, i, p.Name, string(p.Type), string(p.Status),
			p.Progress, p.ContractValue, p.PaymentReceived, doc); err != nil {
			return errors.NewCatalogPersistFailedError(fmt.Errorf("insert %s: %w", p.ID, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewCatalogPersistFailedError(err)
	}
	return nil
}

func (r *Repository) LoadCatalog(ctx context.Context) ([]models.Project, error) {
	rows, err := r.db.QueryContext(ctx, selectCatalogSQL)
	if err != nil {
		return nil, errors.NewCatalogPersistFailedError(err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, errors.NewCatalogPersistFailedError(err)
		}
		var p models.Project
		if err := json.Unmarshal(doc, &p); err != nil {
			return nil, errors.NewCatalogPersistFailedError(fmt.Errorf("decode project: %w", err))
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewCatalogPersistFailedError(err)
	}
	return projects, nil
}

// UpdateProject writes back the mutable fields of one record.
func (r *Repository) UpdateProject(ctx context.Context, p models.Project) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return errors.NewCatalogPersistFailedError(err)
	}
	res, err := r.db.ExecContext(ctx, updateProjectSQL, p.ID, string(p.Status), p.Progress, p.PaymentReceived, doc)
	if err != nil {
		return errors.NewCatalogPersistFailedError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.NewProjectNotFoundError(p.ID)
	}
	return nil
}

func (r *Repository) SaveChangeRequest(ctx context.Context, req models.ChangeRequest) error {
	doc, err := json.Marshal(req)
	if err != nil {
		return errors.NewCatalogPersistFailedError(err)
	}
	if _, err := r.db.ExecContext(ctx, upsertRequestSQL, req.ID, req.ProjectID, string(req.Status), doc); err != nil {
		return errors.NewCatalogPersistFailedError(fmt.Errorf("save change request %s: %w", req.ID, err))
	}
	return nil
}
