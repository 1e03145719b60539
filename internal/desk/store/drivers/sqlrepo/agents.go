package sqlrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/agentdesk/internal/desk/domain"
	"github.com/aussiebroadwan/agentdesk/internal/desk/store"
)

const agentColumns = `id, name, email, phone, address, role, approval_status, is_active,
	created_by, password_hash, mfa_enabled, mfa_secret, created_at, updated_at`

type agentsRepo struct {
	q Querier
	d Dialect
}

// NewAgents returns the agents repository bound to q.
func NewAgents(q Querier, d Dialect) store.Agents {
	return &agentsRepo{q: q, d: d}
}

func (r *agentsRepo) CreateAgent(ctx context.Context, a domain.Agent) error {
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}

	_, err := r.q.ExecContext(ctx, r.d.Rebind(`
		INSERT INTO agents (id, name, email, phone, address, role, approval_status, is_active,
			created_by, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		a.ID, a.Name, a.Email, a.Phone, a.Address, string(a.Role), string(a.ApprovalStatus), a.IsActive,
		mapOptionalString(a.CreatedBy), a.PasswordHash, a.CreatedAt.UTC(), now,
	)
	return r.d.mapWriteErr(err)
}

func (r *agentsRepo) GetAgentByID(ctx context.Context, id string) (domain.Agent, error) {
	row := r.q.QueryRowContext(ctx, r.d.Rebind(`SELECT `+agentColumns+` FROM agents WHERE id = ?`), id)
	a, err := scanAgent(row)
	return a, mapNotFound(err)
}

func (r *agentsRepo) GetAgentByEmail(ctx context.Context, email string) (domain.Agent, error) {
	row := r.q.QueryRowContext(ctx,
		r.d.Rebind(`SELECT `+agentColumns+` FROM agents WHERE LOWER(email) = LOWER(?)`), email)
	a, err := scanAgent(row)
	return a, mapNotFound(err)
}

func (r *agentsRepo) ListAgents(ctx context.Context, f store.AgentFilter) ([]domain.Agent, error) {
	w := agentWhere(f)
	limit, pageArgs := page(f.Limit, f.Offset)

	rows, err := r.q.QueryContext(ctx,
		r.d.Rebind(`SELECT `+agentColumns+` FROM agents`+w.String()+` ORDER BY created_at DESC, id DESC`+limit),
		append(w.args, pageArgs...)...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Agent
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *agentsRepo) CountAgents(ctx context.Context, f store.AgentFilter) (int, error) {
	w := agentWhere(f)
	var n int
	err := r.q.QueryRowContext(ctx, r.d.Rebind(`SELECT COUNT(*) FROM agents`+w.String()), w.args...).Scan(&n)
	return n, err
}

func (r *agentsRepo) UpdateAgentProfile(ctx context.Context, id string, p store.AgentProfile) error {
	res, err := r.q.ExecContext(ctx, r.d.Rebind(`
		UPDATE agents SET name = ?, email = ?, phone = ?, address = ?, is_active = ?, updated_at = ?
		WHERE id = ?`),
		p.Name, p.Email, p.Phone, p.Address, p.IsActive, time.Now().UTC(), id,
	)
	return requireAffected(res, r.d.mapWriteErr(err))
}

func (r *agentsRepo) UpdatePasswordHash(ctx context.Context, id string, hash string) error {
	res, err := r.q.ExecContext(ctx,
		r.d.Rebind(`UPDATE agents SET password_hash = ?, updated_at = ? WHERE id = ?`),
		hash, time.Now().UTC(), id,
	)
	return requireAffected(res, err)
}

func (r *agentsRepo) SetApprovalStatus(ctx context.Context, id string, status domain.ApprovalStatus) error {
	res, err := r.q.ExecContext(ctx,
		r.d.Rebind(`UPDATE agents SET approval_status = ?, updated_at = ? WHERE id = ?`),
		string(status), time.Now().UTC(), id,
	)
	return requireAffected(res, err)
}

func (r *agentsRepo) BackfillApprovalStatus(ctx context.Context, status domain.ApprovalStatus) (int, error) {
	return rowsAffected(r.q.ExecContext(ctx,
		r.d.Rebind(`UPDATE agents SET approval_status = ?, updated_at = ? WHERE approval_status IS NULL`),
		string(status), time.Now().UTC(),
	))
}

func (r *agentsRepo) UpdateMFASecret(ctx context.Context, id string, secret string) error {
	res, err := r.q.ExecContext(ctx,
		r.d.Rebind(`UPDATE agents SET mfa_secret = ?, updated_at = ? WHERE id = ?`),
		secret, time.Now().UTC(), id,
	)
	return requireAffected(res, err)
}

func (r *agentsRepo) EnableMFA(ctx context.Context, id string) error {
	now := time.Now().UTC()
	res, err := r.q.ExecContext(ctx,
		r.d.Rebind(`UPDATE agents SET mfa_enabled = ?, updated_at = ? WHERE id = ?`),
		now, now, id,
	)
	return requireAffected(res, err)
}

func (r *agentsRepo) DisableMFA(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx,
		r.d.Rebind(`UPDATE agents SET mfa_enabled = NULL, mfa_secret = NULL, updated_at = ? WHERE id = ?`),
		time.Now().UTC(), id,
	)
	return requireAffected(res, err)
}

func (r *agentsRepo) DeleteAgent(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, r.d.Rebind(`DELETE FROM agents WHERE id = ?`), id)
	return requireAffected(res, err)
}

func agentWhere(f store.AgentFilter) *where {
	w := &where{}
	if f.Role != "" {
		w.add("role = ?", string(f.Role))
	}
	if f.ApprovalStatus != "" {
		if f.ApprovalStatus == store.MissingApprovalStatus {
			w.add("(approval_status = ? OR approval_status IS NULL)", string(f.ApprovalStatus))
		} else {
			w.add("approval_status = ?", string(f.ApprovalStatus))
		}
	}
	if f.Search != "" {
		p := likePattern(f.Search)
		w.add(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\')`, p, p)
	}
	return w
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAgent(row rowScanner) (domain.Agent, error) {
	var (
		a                    domain.Agent
		role                 string
		approval             sql.NullString
		createdBy, mfaSecret sql.NullString
		mfaEnabled           dbTime
		createdAt, updatedAt dbTime
		phone, address       sql.NullString
	)

	err := row.Scan(
		&a.ID, &a.Name, &a.Email, &phone, &address, &role, &approval, &a.IsActive,
		&createdBy, &a.PasswordHash, &mfaEnabled, &mfaSecret, &createdAt, &updatedAt,
	)
	if err != nil {
		return domain.Agent{}, err
	}

	a.Phone = phone.String
	a.Address = address.String
	a.Role = domain.Role(role)
	a.ApprovalStatus = mapApprovalStatus(approval)
	a.CreatedBy = mapNullStringPtr(createdBy)
	a.MFAEnabled = mfaEnabled.ptr()
	a.MFASecret = mapNullStringPtr(mfaSecret)
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time
	return a, nil
}

// mapApprovalStatus applies the store's explicit default for NULL or
// unrecognised approval values.
func mapApprovalStatus(ns sql.NullString) domain.ApprovalStatus {
	if !ns.Valid {
		return store.MissingApprovalStatus
	}
	s, err := domain.ParseApprovalStatus(ns.String)
	if err != nil {
		return store.MissingApprovalStatus
	}
	return s
}
