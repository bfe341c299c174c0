//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type groupResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type taskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsCompleted bool   `json:"is_completed"`
	GroupID     string `json:"group_id"`
	GroupName   string `json:"group_name"`
	Username    string `json:"username"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func TestE2ESmoke(t *testing.T) {
	baseURL := envOrDefault("TASKDECK_BASE_URL", "http://localhost:8080")

	username := fmt.Sprintf("e2e-%d", time.Now().UnixNano())
	password := "Sup3r$ecret"

	// Register and log in.
	var registered userResponse
	status := doJSON(t, http.MethodPost, baseURL+"/api/v1/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": password,
	}, &registered)
	if status != http.StatusCreated {
		t.Fatalf("register: status %d", status)
	}

	var token tokenResponse
	status = doJSON(t, http.MethodPost, baseURL+"/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	}, &token)
	if status != http.StatusOK {
		t.Fatalf("login: status %d", status)
	}
	if token.AccessToken == "" || token.TokenType != "bearer" {
		t.Fatalf("unexpected token response: %+v", token)
	}

	var me userResponse
	status = doJSON(t, http.MethodGet, baseURL+"/api/v1/auth/me", token.AccessToken, nil, &me)
	if status != http.StatusOK {
		t.Fatalf("me: status %d", status)
	}
	if me.Username != username {
		t.Fatalf("me: username %q, want %q", me.Username, username)
	}

	// Create two groups and a task in each.
	var work, home groupResponse
	status = doJSON(t, http.MethodPost, baseURL+"/api/v1/groups", token.AccessToken, map[string]string{"name": "Work"}, &work)
	if status != http.StatusCreated {
		t.Fatalf("create group: status %d", status)
	}
	status = doJSON(t, http.MethodPost, baseURL+"/api/v1/groups", token.AccessToken, map[string]string{"name": "Home"}, &home)
	if status != http.StatusCreated {
		t.Fatalf("create group: status %d", status)
	}

	var workTask, homeTask taskResponse
	status = doJSON(t, http.MethodPost, baseURL+"/api/v1/tasks", token.AccessToken, map[string]string{
		"title":    "Write report",
		"group_id": work.ID,
	}, &workTask)
	if status != http.StatusCreated {
		t.Fatalf("create task: status %d", status)
	}
	status = doJSON(t, http.MethodPost, baseURL+"/api/v1/tasks", token.AccessToken, map[string]string{
		"title":    "Water plants",
		"group_id": home.ID,
	}, &homeTask)
	if status != http.StatusCreated {
		t.Fatalf("create task: status %d", status)
	}

	// Enriched read.
	var detail taskResponse
	status = doJSON(t, http.MethodGet, baseURL+"/api/v1/tasks/"+workTask.ID, token.AccessToken, nil, &detail)
	if status != http.StatusOK {
		t.Fatalf("get task: status %d", status)
	}
	if detail.GroupName != "Work" || detail.Username != username {
		t.Fatalf("enrichment missing: %+v", detail)
	}

	// Complete the work task, then filter.
	status = doJSON(t, http.MethodPut, baseURL+"/api/v1/tasks/"+workTask.ID, token.AccessToken, map[string]any{
		"is_completed": true,
	}, &detail)
	if status != http.StatusOK {
		t.Fatalf("update task: status %d", status)
	}
	if !detail.IsCompleted {
		t.Fatal("task should be completed")
	}
	if detail.Title != "Write report" {
		t.Fatalf("partial update clobbered title: %q", detail.Title)
	}

	var completed []taskResponse
	status = doJSON(t, http.MethodGet, baseURL+"/api/v1/tasks?completed=true", token.AccessToken, nil, &completed)
	if status != http.StatusOK {
		t.Fatalf("list tasks: status %d", status)
	}
	if len(completed) != 1 || completed[0].ID != workTask.ID {
		t.Fatalf("completed filter: got %d tasks", len(completed))
	}

	var inHome []taskResponse
	status = doJSON(t, http.MethodGet, baseURL+"/api/v1/tasks?group="+home.ID, token.AccessToken, nil, &inHome)
	if status != http.StatusOK {
		t.Fatalf("list tasks: status %d", status)
	}
	if len(inHome) != 1 || inHome[0].ID != homeTask.ID {
		t.Fatalf("group filter: got %d tasks", len(inHome))
	}

	// Deleting a group takes its tasks with it.
	status = doJSON(t, http.MethodDelete, baseURL+"/api/v1/groups/"+home.ID, token.AccessToken, nil, nil)
	if status != http.StatusNoContent {
		t.Fatalf("delete group: status %d", status)
	}
	status = doJSON(t, http.MethodGet, baseURL+"/api/v1/tasks/"+homeTask.ID, token.AccessToken, nil, nil)
	if status != http.StatusNotFound {
		t.Fatalf("task should be gone with its group, status %d", status)
	}
}

func TestE2EOwnershipIsolation(t *testing.T) {
	baseURL := envOrDefault("TASKDECK_BASE_URL", "http://localhost:8080")

	alice := registerAndLogin(t, baseURL, fmt.Sprintf("alice-%d", time.Now().UnixNano()))
	bob := registerAndLogin(t, baseURL, fmt.Sprintf("bob-%d", time.Now().UnixNano()))

	var group groupResponse
	status := doJSON(t, http.MethodPost, baseURL+"/api/v1/groups", alice, map[string]string{"name": "Secret"}, &group)
	if status != http.StatusCreated {
		t.Fatalf("create group: status %d", status)
	}

	// Bob sees Alice's group as missing, in every operation.
	var errResp errorResponse
	status = doJSON(t, http.MethodGet, baseURL+"/api/v1/groups/"+group.ID, bob, nil, &errResp)
	if status != http.StatusNotFound {
		t.Fatalf("cross-user get: status %d, want 404", status)
	}
	status = doJSON(t, http.MethodPost, baseURL+"/api/v1/tasks", bob, map[string]string{
		"title":    "Sneaky",
		"group_id": group.ID,
	}, &errResp)
	if status != http.StatusNotFound {
		t.Fatalf("cross-user task create: status %d, want 404", status)
	}
	status = doJSON(t, http.MethodDelete, baseURL+"/api/v1/groups/"+group.ID, bob, nil, nil)
	if status != http.StatusNotFound {
		t.Fatalf("cross-user delete: status %d, want 404", status)
	}
}

func TestE2EAuthRequired(t *testing.T) {
	baseURL := envOrDefault("TASKDECK_BASE_URL", "http://localhost:8080")

	for _, token := range []string{"", "garbage"} {
		status := doJSON(t, http.MethodGet, baseURL+"/api/v1/groups", token, nil, nil)
		if status != http.StatusUnauthorized {
			t.Errorf("token %q: status %d, want 401", token, status)
		}
	}
}

func registerAndLogin(t *testing.T, baseURL, username string) string {
	t.Helper()

	password := "Sup3r$ecret"
	status := doJSON(t, http.MethodPost, baseURL+"/api/v1/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": password,
	}, nil)
	if status != http.StatusCreated {
		t.Fatalf("register %s: status %d", username, status)
	}

	var token tokenResponse
	status = doJSON(t, http.MethodPost, baseURL+"/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	}, &token)
	if status != http.StatusOK {
		t.Fatalf("login %s: status %d", username, status)
	}
	return token.AccessToken
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func doJSON(t *testing.T, method, url, token string, body any, out any) int {
	t.Helper()

	var buf io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		buf = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, url, buf)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if strings.TrimSpace(token) != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	if out != nil {
		decoder := json.NewDecoder(resp.Body)
		if err := decoder.Decode(out); err != nil && resp.ContentLength != 0 {
			t.Fatalf("decode response: %v", err)
		}
	}

	return resp.StatusCode
}
