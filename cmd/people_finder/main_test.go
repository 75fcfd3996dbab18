package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/people-finder/internal/fetch"
	"github.com/jonathan/people-finder/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/search":
			w.Header().Set("Content-Type", "application/x-ndjson")
			_, _ = io.WriteString(w, `{"ggId":"1","name":"Ada","professionalHeadline":"Engineer / Poet"}`+"\n")
		case r.URL.Path == "/bios/ada":
			_, _ = io.WriteString(w, `{"person":{"ggId":"1","name":"Ada Lovelace","publicId":"ada"}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	t.Setenv("SEARCH_URL", srv.URL+"/search")
	t.Setenv("BIO_URL", srv.URL+"/bios/")
	t.Setenv("LOG_LEVEL", "error")
	return srv
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSearchCommand(t *testing.T) {
	fakeAPI(t)

	out, err := execute(t, "search", "ada", "lovelace")
	require.NoError(t, err)
	assert.Contains(t, out, "#1  Ada")
	assert.Contains(t, out, "Skills: Engineer, Poet")
}

func TestSearchCommand_JSON(t *testing.T) {
	fakeAPI(t)

	out, err := execute(t, "search", "acme", "--type", "organization", "--limit", "3", "--json")
	require.NoError(t, err)

	var resp search.Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, search.IdentityOrganization, resp.Results[0].Type)
	assert.Equal(t, 3, resp.Meta.Limit)
}

func TestSearchCommand_FlagsValidation(t *testing.T) {
	fakeAPI(t)

	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{
			name:        "Missing query",
			args:        []string{"search"},
			errorString: "requires at least 1 arg",
		},
		{
			name:        "Short query",
			args:        []string{"search", "a"},
			errorString: "at least 2 characters",
		},
		{
			name:        "Unknown identity type",
			args:        []string{"search", "ada", "--type", "robot"},
			errorString: "identityType",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestProfileCommand(t *testing.T) {
	fakeAPI(t)

	out, err := execute(t, "profile", "ada")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace")

	out, err = execute(t, "profile", "ada", "--json")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "{"))

	_, err = execute(t, "profile", "nobody")
	var fetchErr *fetch.Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, fetch.CodeUserNotFound, fetchErr.Code)
}

func TestConfigFlag(t *testing.T) {
	fakeAPI(t)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"log_format":"xml"}`), 0o600))

	_, err := execute(t, "--config", path, "search", "ada")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_format")
}
