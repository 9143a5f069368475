package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sharmasagarr/taskmanager/config"
	"github.com/sharmasagarr/taskmanager/repositories"
	"github.com/sharmasagarr/taskmanager/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.Config{
		JWTSecret:     "test-secret",
		TokenDuration: time.Hour,
		DefaultStatus: "Pending",
	}
	users := repositories.NewUserInMem()
	tasks := repositories.NewTaskInMem()
	tracer := noop.NewTracerProvider().Tracer("test")

	authService := services.NewAuthService(users, cfg, tracer)
	taskService := services.NewTaskService(tasks, users, cfg, tracer)

	router := NewRouter(
		NewAuthHandler(authService),
		NewTaskHandler(taskService),
		NewAuthMiddleware(authService),
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	decoded := map[string]any{}
	// List endpoints respond with a JSON array.
	var raw json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	if len(raw) > 0 && raw[0] == '[' {
		decoded["list"] = raw
	} else {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func signup(t *testing.T, server *httptest.Server, name, email string) (token, userId string) {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, server.URL+"/users/signup", "", map[string]string{
		"name": name, "email": email, "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token = body["token"].(string)
	user := body["user"].(map[string]any)
	return token, user["_id"].(string)
}

func TestSignupAndLogin(t *testing.T) {
	server := newTestServer(t)

	token, _ := signup(t, server, "Alice", "a@x.com")
	require.NotEmpty(t, token)

	resp, _ := doJSON(t, http.MethodPost, server.URL+"/users/signup", "", map[string]string{
		"name": "Other", "email": "a@x.com", "password": "secret2",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPost, server.URL+"/users/login", "", map[string]string{
		"email": "a@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])

	resp, body = doJSON(t, http.MethodPost, server.URL+"/users/login", "", map[string]string{
		"email": "a@x.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.NotEmpty(t, body["message"])

	resp, _ = doJSON(t, http.MethodPost, server.URL+"/users/login", "", map[string]string{
		"email": "nobody@x.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, server.URL+"/users/signup", "", map[string]string{
		"name": "", "email": "c@x.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTaskEndpoints(t *testing.T) {
	server := newTestServer(t)

	aliceToken, _ := signup(t, server, "Alice", "a@x.com")
	bobToken, bobId := signup(t, server, "Bob", "b@x.com")

	// Mutations require a bearer token.
	resp, _ := doJSON(t, http.MethodPost, server.URL+"/tasks", "", map[string]string{
		"title": "Write report", "description": "Quarterly report", "assignedTo": "b@x.com",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPost, server.URL+"/tasks", aliceToken, map[string]string{
		"title": "Write report", "description": "Quarterly report", "assignedTo": "b@x.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	task := body["task"].(map[string]any)
	taskId := task["_id"].(string)
	assert.Equal(t, "Pending", task["status"])
	assert.Equal(t, "b@x.com", task["assignedTo"].(map[string]any)["email"])
	assert.Equal(t, "a@x.com", task["assignee"].(map[string]any)["email"])

	resp, _ = doJSON(t, http.MethodPost, server.URL+"/tasks", aliceToken, map[string]string{
		"title": "Write report", "description": "Quarterly report", "assignedTo": "nobody@x.com",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, server.URL+"/tasks", aliceToken, map[string]string{
		"title": "x", "description": "Quarterly report", "assignedTo": "b@x.com",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Reads are open.
	resp, body = doJSON(t, http.MethodGet, server.URL+"/tasks", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(body["list"].(json.RawMessage), &list))
	require.Len(t, list, 1)

	// Only the assignedTo user drives status.
	statusURL := fmt.Sprintf("%s/tasks/%s/status", server.URL, taskId)
	resp, _ = doJSON(t, http.MethodPatch, statusURL, aliceToken, map[string]string{"status": "Done"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPatch, statusURL, bobToken, map[string]string{"status": "Nonsense"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = doJSON(t, http.MethodPatch, statusURL, bobToken, map[string]string{"status": "Done"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Done", body["task"].(map[string]any)["status"])

	resp, _ = doJSON(t, http.MethodPatch, server.URL+"/tasks/aaaaaaaaaaaaaaaaaaaaaaaa/status", bobToken, map[string]string{"status": "Done"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Filtering.
	resp, body = doJSON(t, http.MethodGet, server.URL+"/tasks/filter?status=Done&assignedTo="+bobId, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body["list"].(json.RawMessage), &list))
	require.Len(t, list, 1)

	resp, body = doJSON(t, http.MethodGet, server.URL+"/tasks/filter?status=Todo", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body["list"].(json.RawMessage), &list))
	assert.Empty(t, list)

	// A status outside the enum matches nothing, it is not an error.
	resp, body = doJSON(t, http.MethodGet, server.URL+"/tasks/filter?status=Nonsense", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body["list"].(json.RawMessage), &list))
	assert.Empty(t, list)

	resp, _ = doJSON(t, http.MethodGet, server.URL+"/tasks/filter?fromDate=garbage", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Only the creator deletes.
	taskURL := server.URL + "/tasks/" + taskId
	resp, _ = doJSON(t, http.MethodDelete, taskURL, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodDelete, taskURL, aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodDelete, taskURL, aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = doJSON(t, http.MethodGet, server.URL+"/tasks", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body["list"].(json.RawMessage), &list))
	assert.Empty(t, list)
}

func TestInvalidBearerToken(t *testing.T) {
	server := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, server.URL+"/tasks", "not-a-token", map[string]string{
		"title": "Write report", "description": "Quarterly report", "assignedTo": "b@x.com",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.NotEmpty(t, body["message"])
}
