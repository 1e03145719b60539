package sqlrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/agentdesk/internal/desk/domain"
	"github.com/aussiebroadwan/agentdesk/internal/desk/store"
)

const clientColumns = `id, client_name, organization_name, activity_type, phone, address,
	activation_code, device_count, software_version, subscription_type, subscription_start,
	subscription_end, notes, agent_id, created_by, created_at, updated_at`

type clientsRepo struct {
	q Querier
	d Dialect
}

// NewClients returns the clients repository bound to q.
func NewClients(q Querier, d Dialect) store.Clients {
	return &clientsRepo{q: q, d: d}
}

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) error {
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}

	_, err := r.q.ExecContext(ctx, r.d.Rebind(`
		INSERT INTO clients (id, client_name, organization_name, activity_type, phone, address,
			activation_code, device_count, software_version, subscription_type, subscription_start,
			subscription_end, notes, agent_id, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		c.ID, c.ClientName, c.OrganizationName, c.ActivityType, c.Phone, c.Address,
		c.ActivationCode, c.DeviceCount, string(c.SoftwareVersion), string(c.Subscription.Plan),
		dateParam(c.Subscription.Start), dateParam(c.Subscription.End), c.Notes, c.AgentID,
		c.CreatedBy, c.CreatedAt.UTC(), now,
	)
	return r.d.mapWriteErr(err)
}

func (r *clientsRepo) GetClientByID(ctx context.Context, id string) (domain.Client, error) {
	row := r.q.QueryRowContext(ctx, r.d.Rebind(`SELECT `+clientColumns+` FROM clients WHERE id = ?`), id)
	c, err := scanClient(row)
	return c, mapNotFound(err)
}

func (r *clientsRepo) ListClients(ctx context.Context, f store.ClientFilter) ([]domain.Client, error) {
	w := clientWhere(f)
	limit, pageArgs := page(f.Limit, f.Offset)

	rows, err := r.q.QueryContext(ctx,
		r.d.Rebind(`SELECT `+clientColumns+` FROM clients`+w.String()+` ORDER BY created_at DESC, id DESC`+limit),
		append(w.args, pageArgs...)...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *clientsRepo) CountClients(ctx context.Context, f store.ClientFilter) (int, error) {
	w := clientWhere(f)
	var n int
	err := r.q.QueryRowContext(ctx, r.d.Rebind(`SELECT COUNT(*) FROM clients`+w.String()), w.args...).Scan(&n)
	return n, err
}

func (r *clientsRepo) UpdateClient(ctx context.Context, id string, d store.ClientDetails) error {
	res, err := r.q.ExecContext(ctx, r.d.Rebind(`
		UPDATE clients SET client_name = ?, organization_name = ?, activity_type = ?, phone = ?,
			address = ?, activation_code = ?, device_count = ?, software_version = ?, notes = ?,
			updated_at = ?
		WHERE id = ?`),
		d.ClientName, d.OrganizationName, d.ActivityType, d.Phone, d.Address, d.ActivationCode,
		d.DeviceCount, string(d.SoftwareVersion), d.Notes, time.Now().UTC(), id,
	)
	return requireAffected(res, r.d.mapWriteErr(err))
}

func (r *clientsRepo) UpdateSubscription(ctx context.Context, id string, s domain.Subscription) error {
	res, err := r.q.ExecContext(ctx, r.d.Rebind(`
		UPDATE clients SET subscription_type = ?, subscription_start = ?, subscription_end = ?, updated_at = ?
		WHERE id = ?`),
		string(s.Plan), dateParam(s.Start), dateParam(s.End), time.Now().UTC(), id,
	)
	return requireAffected(res, err)
}

func (r *clientsRepo) ReassignClient(ctx context.Context, id string, agentID string) error {
	res, err := r.q.ExecContext(ctx,
		r.d.Rebind(`UPDATE clients SET agent_id = ?, updated_at = ? WHERE id = ?`),
		agentID, time.Now().UTC(), id,
	)
	return requireAffected(res, err)
}

func (r *clientsRepo) ReassignClients(ctx context.Context, fromAgentID, toAgentID string) (int, error) {
	return rowsAffected(r.q.ExecContext(ctx,
		r.d.Rebind(`UPDATE clients SET agent_id = ?, updated_at = ? WHERE agent_id = ?`),
		toAgentID, time.Now().UTC(), fromAgentID,
	))
}

func (r *clientsRepo) DeleteClientsByAgent(ctx context.Context, agentID string) (int, error) {
	return rowsAffected(r.q.ExecContext(ctx, r.d.Rebind(`DELETE FROM clients WHERE agent_id = ?`), agentID))
}

func (r *clientsRepo) DeleteClient(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, r.d.Rebind(`DELETE FROM clients WHERE id = ?`), id)
	return requireAffected(res, err)
}

func clientWhere(f store.ClientFilter) *where {
	w := &where{}
	if f.AgentID != "" {
		w.add("agent_id = ?", f.AgentID)
	}
	if f.Plan != "" {
		w.add("subscription_type = ?", string(f.Plan))
	}
	if f.Search != "" {
		p := likePattern(f.Search)
		w.add(`(LOWER(client_name) LIKE ? ESCAPE '\' OR LOWER(organization_name) LIKE ? ESCAPE '\')`, p, p)
	}
	if f.ActiveOn != nil {
		w.add("subscription_end >= ?", dateParam(*f.ActiveOn))
	}
	if f.ExpiredOn != nil {
		w.add("subscription_end < ?", dateParam(*f.ExpiredOn))
	}
	if f.EndsBefore != nil {
		w.add("subscription_end <= ?", dateParam(*f.EndsBefore))
	}
	return w
}

func scanClient(row rowScanner) (domain.Client, error) {
	var (
		c                    domain.Client
		software, plan       string
		start, end           dbTime
		createdAt, updatedAt dbTime
		phone, address       sql.NullString
		activity, notes      sql.NullString
		organization         sql.NullString
	)

	err := row.Scan(
		&c.ID, &c.ClientName, &organization, &activity, &phone, &address,
		&c.ActivationCode, &c.DeviceCount, &software, &plan, &start,
		&end, &notes, &c.AgentID, &c.CreatedBy, &createdAt, &updatedAt,
	)
	if err != nil {
		return domain.Client{}, err
	}

	c.OrganizationName = organization.String
	c.ActivityType = activity.String
	c.Phone = phone.String
	c.Address = address.String
	c.Notes = notes.String
	c.SoftwareVersion = domain.SoftwareVersion(software)
	c.Subscription = domain.Subscription{
		Plan:  domain.PlanType(plan),
		Start: start.date(),
		End:   end.date(),
	}
	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time
	return c, nil
}
