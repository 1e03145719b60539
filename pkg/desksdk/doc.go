/*
Package desksdk is the Go client of the AgentDesk API.

# Client and Session

Client calls the endpoints that need no session: bootstrap, registration,
login and health. Login returns a Session that carries the bearer token
for every other call:

	c := desksdk.NewClient("https://desk.example.com")
	c.Lang = "en" // localize error descriptions

	s, err := c.Login(ctx, "sara@example.com", "password", "")
	if err != nil {
		var apiErr *desksdk.APIError
		if errors.As(err, &apiErr) && apiErr.Code == desksdk.ErrorCodeApprovalPending {
			// waiting for an admin
		}
		return err
	}

	clients, err := s.ListClients(ctx, desksdk.ClientFilter{Status: "expired"})

Sessions do not refresh. Once the token expires every call returns
ErrSessionExpired and the caller logs in again.

# Errors

Non-2xx responses become *APIError, holding the HTTP status, the stable
error code and the localized description. Partial agent deletions carry
the number of clients already disposed of in Details.
*/
package desksdk
