package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/schoolvote/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/schoolvote/internal/core/services"
)

const testSecret = "test-secret"

type testApp struct {
	Server *httptest.Server
	Client *http.Client
}

func setupTestApp(t *testing.T) *testApp {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()
	clock := services.SystemClock{}

	registry := services.NewElectionRegistry(store, clock)
	roster := services.NewCandidateRoster(store, clock)
	tally := services.NewTallyEngine(registry, roster, store, memory.NewTallyCache(), clock, logger)
	service := services.NewElectionService(registry, roster, store, tally, clock, services.ElectionServiceOptions{Logger: logger})

	handler := NewHandler(Handlers{
		Elections: NewElectionHandler(service),
		Votes:     NewVoteHandler(service),
		Results:   NewResultsHandler(service),
		Auth:      NewAuthenticator(testSecret),
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return &testApp{Server: server, Client: server.Client()}
}

func signToken(t *testing.T, subject, role string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(15 * time.Minute).Unix(),
		"iat": time.Now().Unix(),
	}
	if role != "" {
		claims["role"] = role
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func (app *testApp) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, app.Server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}
