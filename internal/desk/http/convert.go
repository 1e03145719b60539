package http

import (
	"time"

	"github.com/aussiebroadwan/agentdesk/internal/desk/domain"
	"github.com/aussiebroadwan/agentdesk/pkg/desksdk"
)

func toAgentResponse(a domain.Agent) desksdk.AgentResponse {
	out := desksdk.AgentResponse{
		ID:             a.ID,
		Name:           a.Name,
		Email:          a.Email,
		Phone:          a.Phone,
		Address:        a.Address,
		Role:           string(a.Role),
		ApprovalStatus: string(a.ApprovalStatus),
		IsActive:       a.IsActive,
		MFAEnabled:     a.MFAEnabled != nil,
		CreatedAt:      a.CreatedAt,
	}
	if a.CreatedBy != nil {
		out.CreatedBy = *a.CreatedBy
	}
	return out
}

func toAgentResponses(as []domain.Agent) []desksdk.AgentResponse {
	out := make([]desksdk.AgentResponse, 0, len(as))
	for _, a := range as {
		out = append(out, toAgentResponse(a))
	}
	return out
}

// toClientResponse renders c with its subscription classified at now.
func toClientResponse(c domain.Client, now time.Time) desksdk.ClientResponse {
	return desksdk.ClientResponse{
		ID:               c.ID,
		ClientName:       c.ClientName,
		OrganizationName: c.OrganizationName,
		ActivityType:     c.ActivityType,
		Phone:            c.Phone,
		Address:          c.Address,
		ActivationCode:   c.ActivationCode,
		DeviceCount:      c.DeviceCount,
		SoftwareVersion:  string(c.SoftwareVersion),
		Subscription: desksdk.SubscriptionResponse{
			Plan:   string(c.Subscription.Plan),
			Start:  formatDate(c.Subscription.Start),
			End:    formatDate(c.Subscription.End),
			Status: string(c.Status(now)),
		},
		Notes:     c.Notes,
		AgentID:   c.AgentID,
		CreatedBy: c.CreatedBy,
		CreatedAt: c.CreatedAt,
	}
}

func toClientResponses(cs []domain.Client, now time.Time) []desksdk.ClientResponse {
	out := make([]desksdk.ClientResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, toClientResponse(c, now))
	}
	return out
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(desksdk.DateLayout)
}
