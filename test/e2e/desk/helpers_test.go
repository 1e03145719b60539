package desk_test

import (
	"context"
	"fmt"
	"maps"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/agentdesk/pkg/desksdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for desk end-to-end tests.
 * This includes container setup, account operations, and assertions.
 */

const (
	testImageName = "agentdesk-test:latest"

	bootstrapToken = "test-bootstrap-token-12345"
	adminName      = "Administrator"
	adminEmail     = "admin@example.com"
	adminPassword  = "Admin123!"
	agentPassword  = "Agent123!"
)

// TestMain builds the Docker image once before all tests and removes it
// after they complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building AgentDesk Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up AgentDesk Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/agentdesk/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// relaxedLimits raises the rate limits so tests making many rapid requests
// are not throttled.
var relaxedLimits = map[string]string{
	"RATELIMIT_STRICT_REQUESTS":   "1000",
	"RATELIMIT_STRICT_WINDOW_SEC": "60",
	"RATELIMIT_STRICT_BURST":      "1000",
	"RATELIMIT_MODERATE_REQUESTS": "1000",
	"RATELIMIT_MODERATE_BURST":    "1000",
}

// containerOption adjusts the desk container request.
type containerOption func(*testcontainers.ContainerRequest)

// withEnv adds environment variables, overriding the defaults.
func withEnv(env map[string]string) containerOption {
	return func(req *testcontainers.ContainerRequest) {
		maps.Copy(req.Env, env)
	}
}

// withDefaultRateLimits drops the relaxed limits. Only the rate limit tests
// use it.
func withDefaultRateLimits() containerOption {
	return func(req *testcontainers.ContainerRequest) {
		for k := range relaxedLimits {
			delete(req.Env, k)
		}
	}
}

// withNetwork attaches the container to a test network.
func withNetwork(name string) containerOption {
	return func(req *testcontainers.ContainerRequest) {
		req.Networks = append(req.Networks, name)
	}
}

// setupDeskContainer starts the service in a container and returns a
// client for it.
func setupDeskContainer(t *testing.T, opts ...containerOption) *desksdk.Client {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"BOOTSTRAP_TOKEN": bootstrapToken,
			"AUTH_ISSUER":     "agentdesk-e2e",
			"ENV":             "test",
			"LOG_LEVEL":       "info",
			"LOG_FORMAT":      "json",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}
	maps.Copy(req.Env, relaxedLimits)
	for _, opt := range opts {
		opt(&req)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return desksdk.NewClient(fmt.Sprintf("http://%s:%s", host, mappedPort.Port()))
}

// bootstrapAdmin creates the first admin and returns its session.
func bootstrapAdmin(t *testing.T, client *desksdk.Client) *desksdk.Session {
	t.Helper()

	resp, err := client.Bootstrap(t.Context(), bootstrapToken, desksdk.BootstrapRequest{
		AdminName:     adminName,
		AdminEmail:    adminEmail,
		AdminPassword: adminPassword,
	})
	require.NoError(t, err, "Bootstrap should succeed")
	require.NotEmpty(t, resp.AdminID)

	session, err := client.Login(t.Context(), adminEmail, adminPassword, "")
	require.NoError(t, err, "Admin login should succeed")
	return session
}

// approvedAgent registers an agent, approves it with admin and logs it in.
func approvedAgent(t *testing.T, client *desksdk.Client, admin *desksdk.Session, name, email string) *desksdk.Session {
	t.Helper()

	a, err := client.Register(t.Context(), desksdk.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: agentPassword,
	})
	require.NoError(t, err)
	require.Equal(t, "pending", a.ApprovalStatus)

	_, err = admin.ApproveAgent(t.Context(), a.ID)
	require.NoError(t, err)

	session, err := client.Login(t.Context(), email, agentPassword, "")
	require.NoError(t, err)
	return session
}

// newClient creates a client record owned by the session's agent.
func newClient(t *testing.T, session *desksdk.Session, name, start, plan string) *desksdk.ClientResponse {
	t.Helper()

	c, err := session.CreateClient(t.Context(), desksdk.CreateClientRequest{
		ClientName:      name,
		DeviceCount:     1,
		SoftwareVersion: "computer",
		Plan:            plan,
		Start:           start,
	})
	require.NoError(t, err)
	return c
}

// requireCode asserts err is an API error with status and code.
func requireCode(t *testing.T, err error, status int, code string) *desksdk.APIError {
	t.Helper()

	var apiErr *desksdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode, apiErr.Error())
	require.Equal(t, code, apiErr.Code)
	return apiErr
}
