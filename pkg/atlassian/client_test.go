package atlassian

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseURL(t *testing.T) {
	assert.Equal(t, "https://acme.atlassian.net/rest/api/3", BaseURL("acme.atlassian.net"))
	assert.Equal(t, "https://acme.atlassian.net/rest/api/3", BaseURL(" https://acme.atlassian.net/ "))
}

func TestNewClient(t *testing.T) {
	_, err := NewClient(Options{Email: "a", APIToken: "b"})
	assert.Error(t, err)

	_, err = NewClient(Options{BaseURL: "http://localhost", APIToken: "b"})
	assert.Error(t, err)

	c, err := NewClient(Options{BaseURL: "http://localhost/", Email: "a", APIToken: "b", RateLimit: 5})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost", c.baseURL)
	assert.Equal(t, defaultTimeout, c.client.Timeout)
}

func TestRemoveFromGroup(t *testing.T) {
	var got *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c, err := NewClient(Options{BaseURL: server.URL + "/rest/api/3", Email: "admin@example.com", APIToken: "secret"})
	require.NoError(t, err)

	resp, err := c.RemoveFromGroup(context.Background(), "group-1", "acc-1")
	require.NoError(t, err)
	assert.True(t, resp.OK())

	require.NotNil(t, got)
	assert.Equal(t, http.MethodDelete, got.Method)
	assert.Equal(t, "/rest/api/3/group/user", got.URL.Path)
	assert.Equal(t, "group-1", got.URL.Query().Get("groupId"))
	assert.Equal(t, "acc-1", got.URL.Query().Get("accountId"))

	user, pass, ok := got.BasicAuth()
	require.True(t, ok)
	assert.Equal(t, "admin@example.com", user)
	assert.Equal(t, "secret", pass)
}

func TestRemoveFromGroupFailures(t *testing.T) {
	t.Run("non success status is not an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"errorMessages":["Group not found"]}` + "\n"))
		}))
		defer server.Close()

		c, err := NewClient(Options{BaseURL: server.URL, Email: "a", APIToken: "b"})
		require.NoError(t, err)

		resp, err := c.RemoveFromGroup(context.Background(), "g", "a")
		require.NoError(t, err)
		assert.False(t, resp.OK())
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, `{"errorMessages":["Group not found"]}`, resp.Body)
	})

	t.Run("no content is not a success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		c, err := NewClient(Options{BaseURL: server.URL, Email: "a", APIToken: "b"})
		require.NoError(t, err)

		resp, err := c.RemoveFromGroup(context.Background(), "g", "a")
		require.NoError(t, err)
		assert.False(t, resp.OK())
	})

	t.Run("transport error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		c, err := NewClient(Options{BaseURL: server.URL, Email: "a", APIToken: "b", HTTPClient: &http.Client{Timeout: time.Second}})
		require.NoError(t, err)

		resp, err := c.RemoveFromGroup(context.Background(), "g", "a")
		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestResponseOK(t *testing.T) {
	var nilResp *Response
	assert.False(t, nilResp.OK())
	assert.True(t, (&Response{StatusCode: http.StatusOK}).OK())
}
