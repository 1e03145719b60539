// Package service implements the desk operations on top of the store. Every
// operation that acts on behalf of someone takes the actor as an explicit
// domain.AuthSession.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/agentdesk/internal/desk/domain"
	"github.com/aussiebroadwan/agentdesk/pkg/keylock"
)

// Clock supplies "now" and the business time zone that "today" is taken in.
// The zero Clock uses time.Now and UTC.
type Clock struct {
	Location *time.Location
	NowFunc  func() time.Time
}

func (c Clock) Now() time.Time {
	now := time.Now
	if c.NowFunc != nil {
		now = c.NowFunc
	}
	if c.Location != nil {
		return now().In(c.Location)
	}
	return now().UTC()
}

// Today is the calendar date of Now in the business time zone.
func (c Clock) Today() time.Time {
	return domain.DateOf(c.Now())
}

// requireSession rejects the zero session. Every operation acting for
// someone calls it first.
func requireSession(s domain.AuthSession) error {
	if s.AgentID == "" {
		return domain.ErrUnauthenticated
	}
	return nil
}

func requireAdmin(s domain.AuthSession) error {
	if err := requireSession(s); err != nil {
		return err
	}
	if !s.IsAdmin() {
		return domain.ErrUnauthorized
	}
	return nil
}

func agentLockKey(agentID string) string { return "agent:" + agentID }

// lockAgents serialises work on the given agents. A nil locker does not lock.
func lockAgents(ctx context.Context, l keylock.Locker, agentIDs ...string) (func(), error) {
	if l == nil {
		return func() {}, nil
	}
	keys := make([]string, 0, len(agentIDs))
	for _, id := range agentIDs {
		if id != "" {
			keys = append(keys, agentLockKey(id))
		}
	}
	unlock, err := l.Lock(ctx, keys...)
	if err != nil {
		return nil, fmt.Errorf("lock agents: %w", err)
	}
	return unlock, nil
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validEmail is a shape check only; ownership is never verified.
func validEmail(email string) bool {
	at := strings.IndexByte(email, '@')
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t\r\n") &&
		strings.Count(email, "@") == 1
}

// Page bounds list queries.
type Page struct {
	Limit  int
	Offset int
}

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

func (p Page) normalise() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}
	p.Limit = min(p.Limit, MaxPageSize)
	p.Offset = max(p.Offset, 0)
	return p
}
