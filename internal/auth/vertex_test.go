package auth

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mixaill76/vertex_proxy/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// mockTokenSource mocks oauth2.TokenSource
type mockTokenSource struct {
	token      *oauth2.Token
	callCount  int
	shouldFail bool
	err        error
}

func (m *mockTokenSource) Token() (*oauth2.Token, error) {
	m.callCount++
	if m.shouldFail {
		return nil, m.err
	}
	return m.token, nil
}

// Helper to create valid service account JSON
func createValidServiceAccountJSON() string {
	sa := map[string]interface{}{
		"type":         "service_account",
		"project_id":   "test-project",
		"private_key":  "",
		"client_email": "test@test-project.iam.gserviceaccount.com",
		"token_uri":    "https://oauth2.googleapis.com/token",
	}
	b, _ := json.Marshal(sa)
	return string(b)
}

func TestRefreshingTokenSource_CachedTokenReuse(t *testing.T) {
	now := time.Now()
	mock := &mockTokenSource{token: &oauth2.Token{AccessToken: "tok-1", Expiry: now.Add(time.Hour)}}
	ts := newRefreshingTokenSource(mock, testhelpers.NewTestLogger())
	ts.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		tok, err := ts.Token()
		require.NoError(t, err)
		assert.Equal(t, "tok-1", tok.AccessToken)
	}
	assert.Equal(t, 1, mock.callCount)
}

func TestRefreshingTokenSource_NearExpiry(t *testing.T) {
	now := time.Now()
	mock := &mockTokenSource{token: &oauth2.Token{AccessToken: "tok-1", Expiry: now.Add(time.Hour)}}
	ts := newRefreshingTokenSource(mock, testhelpers.NewTestLogger())
	ts.now = func() time.Time { return now }

	_, err := ts.Token()
	require.NoError(t, err)

	// Inside the refresh window
	ts.now = func() time.Time { return now.Add(56 * time.Minute) }
	mock.token = &oauth2.Token{AccessToken: "tok-2", Expiry: now.Add(2 * time.Hour)}

	tok, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok-2", tok.AccessToken)
	assert.Equal(t, 2, mock.callCount)
}

func TestRefreshingTokenSource_NoExpiry(t *testing.T) {
	mock := &mockTokenSource{token: &oauth2.Token{AccessToken: "static"}}
	ts := newRefreshingTokenSource(mock, testhelpers.NewTestLogger())

	_, err := ts.Token()
	require.NoError(t, err)
	_, err = ts.Token()
	require.NoError(t, err)
	assert.Equal(t, 1, mock.callCount)
}

func TestRefreshingTokenSource_Error(t *testing.T) {
	mock := &mockTokenSource{shouldFail: true, err: errors.New("metadata server unavailable")}
	ts := newRefreshingTokenSource(mock, testhelpers.NewTestLogger())

	_, err := ts.Token()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to refresh token")
	assert.Contains(t, err.Error(), "metadata server unavailable")

	// Next call retries instead of serving a stale token
	mock.shouldFail = false
	mock.token = &oauth2.Token{AccessToken: "tok", Expiry: time.Now().Add(time.Hour)}
	tok, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok", tok.AccessToken)
}

func TestLoadServiceAccount(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr string
	}{
		{"valid", createValidServiceAccountJSON(), ""},
		{"invalid json", "{not json", "invalid service account JSON"},
		{"wrong type", `{"type":"authorized_user"}`, "must be for a service account"},
		{"missing type", `{}`, "must be for a service account"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := loadServiceAccount("", tt.json)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.json, string(data))
		})
	}
}

func TestLoadServiceAccount_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sa.json")
	require.NoError(t, os.WriteFile(path, []byte(createValidServiceAccountJSON()), 0600))

	data, err := loadServiceAccount(path, "")
	require.NoError(t, err)
	assert.JSONEq(t, createValidServiceAccountJSON(), string(data))
}

func TestLoadServiceAccount_FileNotFound(t *testing.T) {
	_, err := loadServiceAccount("/nonexistent/sa.json", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read credentials file")
}

func TestNewVertexHTTPClient_NoCredentials(t *testing.T) {
	client, err := NewVertexHTTPClient(context.Background(), "", "", testhelpers.NewTestLogger())
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestNewVertexHTTPClient_InvalidCredentials(t *testing.T) {
	client, err := NewVertexHTTPClient(context.Background(), "", `{"type":"user"}`, testhelpers.NewTestLogger())
	require.Error(t, err)
	assert.Nil(t, client)
}

func TestNewVertexHTTPClient_ServiceAccount(t *testing.T) {
	client, err := NewVertexHTTPClient(context.Background(), "", createValidServiceAccountJSON(), testhelpers.NewTestLogger())
	require.NoError(t, err)
	assert.NotNil(t, client)
}
