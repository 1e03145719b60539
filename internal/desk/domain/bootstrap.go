package domain

// BootstrapData is the payload used to create the first admin account.
type BootstrapData struct {
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// MFAEnrollResponse is returned when an account starts TOTP enrollment.
type MFAEnrollResponse struct {
	Secret  string
	URL     string
	Issuer  string
	Account string
}

// DashboardSummary aggregates counts shown on the landing page.
type DashboardSummary struct {
	TotalClients   int
	ActiveClients  int
	ExpiredClients int
	TotalAgents    int
	PendingAgents  int
	RecentClients  []Client
}
