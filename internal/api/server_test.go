// ABOUTME: End-to-end HTTP tests exercising the full route table
// ABOUTME: Runs against an in-memory database and a stub chat gateway
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/harper/todo-assistant/internal/auth"
	"github.com/harper/todo-assistant/internal/chat"
	"github.com/harper/todo-assistant/internal/models"
	"github.com/harper/todo-assistant/internal/storage"
)

type stubGateway struct{ reply string }

func (g stubGateway) Generate(ctx context.Context, prompt string) string { return g.reply }

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := storage.OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	users := storage.NewUserStore(db)
	tasks := storage.NewTaskStore(db)
	orchestrator := chat.NewOrchestrator(chat.NewRegistry(), chat.NewInterpreter(tasks), stubGateway{reply: "from the assistant"})
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	srv := httptest.NewServer(NewServer(users, tasks, orchestrator, issuer).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body interface{}) (*http.Response, map[string]json.RawMessage) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })

	fields := map[string]json.RawMessage{}
	_ = json.NewDecoder(resp.Body).Decode(&fields)
	return resp, fields
}

func signup(t *testing.T, srv *httptest.Server, email string) string {
	t.Helper()
	resp, fields := doJSON(t, http.MethodPost, srv.URL+"/api/auth/signup", "", map[string]string{
		"email":    email,
		"password": "hunter2hunter2",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup status = %d, want 201", resp.StatusCode)
	}
	var token string
	if err := json.Unmarshal(fields["access_token"], &token); err != nil || token == "" {
		t.Fatalf("signup returned no access token")
	}
	return token
}

func TestSignupAndSignin(t *testing.T) {
	srv := newTestServer(t)
	signup(t, srv, "harper@example.com")

	// Duplicate email is rejected
	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/auth/signup", "", map[string]string{
		"email":    "harper@example.com",
		"password": "hunter2hunter2",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate signup status = %d, want 409", resp.StatusCode)
	}

	// Signin with the right password
	resp, fields := doJSON(t, http.MethodPost, srv.URL+"/api/auth/signin", "", map[string]string{
		"email":    "harper@example.com",
		"password": "hunter2hunter2",
	})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("signin status = %d, want 200", resp.StatusCode)
	}
	if _, ok := fields["access_token"]; !ok {
		t.Error("signin response missing access_token")
	}

	// Wrong password and unknown email are indistinguishable
	for _, creds := range []map[string]string{
		{"email": "harper@example.com", "password": "wrong"},
		{"email": "nobody@example.com", "password": "hunter2hunter2"},
	} {
		resp, fields := doJSON(t, http.MethodPost, srv.URL+"/api/auth/signin", "", creds)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("bad signin status = %d, want 401", resp.StatusCode)
		}
		var msg string
		_ = json.Unmarshal(fields["error"], &msg)
		if msg != "invalid email or password" {
			t.Errorf("bad signin error = %q, want the generic message", msg)
		}
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/tasks"},
		{http.MethodPost, "/api/tasks"},
		{http.MethodPost, "/api/chat"},
	} {
		resp, _ := doJSON(t, tc.method, srv.URL+tc.path, "", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s %s without token: status = %d, want 401", tc.method, tc.path, resp.StatusCode)
		}
	}

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/tasks", "not-a-real-token", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("garbage token status = %d, want 401", resp.StatusCode)
	}
}

func TestTaskLifecycle(t *testing.T) {
	srv := newTestServer(t)
	token := signup(t, srv, "harper@example.com")

	// Create
	resp, fields := doJSON(t, http.MethodPost, srv.URL+"/api/tasks", token, map[string]string{
		"title":       "buy milk",
		"description": "2 percent",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	var taskID string
	if err := json.Unmarshal(fields["id"], &taskID); err != nil || taskID == "" {
		t.Fatal("create response missing task id")
	}

	// Get
	resp, fields = doJSON(t, http.MethodGet, srv.URL+"/api/tasks/"+taskID, token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d, want 200", resp.StatusCode)
	}
	var title string
	_ = json.Unmarshal(fields["title"], &title)
	if title != "buy milk" {
		t.Errorf("title = %q, want buy milk", title)
	}

	// Update
	resp, fields = doJSON(t, http.MethodPut, srv.URL+"/api/tasks/"+taskID, token, map[string]interface{}{
		"complete": true,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d, want 200", resp.StatusCode)
	}
	var complete bool
	_ = json.Unmarshal(fields["complete"], &complete)
	if !complete {
		t.Error("task should be complete after the update")
	}

	// PATCH shares the partial-update semantics
	resp, fields = doJSON(t, http.MethodPatch, srv.URL+"/api/tasks/"+taskID, token, map[string]interface{}{
		"complete": false,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch status = %d, want 200", resp.StatusCode)
	}
	_ = json.Unmarshal(fields["complete"], &complete)
	if complete {
		t.Error("task should be open again after the patch")
	}

	// Empty update is rejected
	resp, _ = doJSON(t, http.MethodPut, srv.URL+"/api/tasks/"+taskID, token, map[string]interface{}{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty update status = %d, want 400", resp.StatusCode)
	}

	// Delete, then the task is gone
	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/tasks/"+taskID, token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", resp.StatusCode)
	}
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/tasks/"+taskID, token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", resp.StatusCode)
	}
}

func TestTaskOwnershipEnforced(t *testing.T) {
	srv := newTestServer(t)
	alice := signup(t, srv, "alice@example.com")
	bob := signup(t, srv, "bob@example.com")

	_, fields := doJSON(t, http.MethodPost, srv.URL+"/api/tasks", alice, map[string]string{
		"title": "alice's task",
	})
	var taskID string
	_ = json.Unmarshal(fields["id"], &taskID)

	// Another user's task reads as not-found, indistinguishable from a
	// task that does not exist
	resp, fields := doJSON(t, http.MethodGet, srv.URL+"/api/tasks/"+taskID, bob, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("cross-user get status = %d, want 404", resp.StatusCode)
	}
	var msg string
	_ = json.Unmarshal(fields["error"], &msg)
	if msg != "task not found" {
		t.Errorf("cross-user get error = %q, want the not-found message", msg)
	}
	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/tasks/"+taskID, bob, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("cross-user delete status = %d, want 404", resp.StatusCode)
	}
	resp, _ = doJSON(t, http.MethodPut, srv.URL+"/api/tasks/"+taskID, bob, map[string]interface{}{
		"complete": true,
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("cross-user update status = %d, want 404", resp.StatusCode)
	}

	// Alice still owns it
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/tasks/"+taskID, alice, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("owner get status = %d, want 200", resp.StatusCode)
	}
}

func TestListTasksFilters(t *testing.T) {
	srv := newTestServer(t)
	token := signup(t, srv, "harper@example.com")

	for i := 0; i < 5; i++ {
		doJSON(t, http.MethodPost, srv.URL+"/api/tasks", token, map[string]interface{}{
			"title":    fmt.Sprintf("task %d", i),
			"complete": i%2 == 0,
		})
	}

	listLen := func(query string) int {
		req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/tasks"+query, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("list%s status = %d, want 200", query, resp.StatusCode)
		}
		var tasks []models.Task
		if err := json.NewDecoder(resp.Body).Decode(&tasks); err != nil {
			t.Fatalf("decode list: %v", err)
		}
		return len(tasks)
	}

	if n := listLen(""); n != 5 {
		t.Errorf("unfiltered list = %d tasks, want 5", n)
	}
	if n := listLen("?completed=true"); n != 3 {
		t.Errorf("completed list = %d tasks, want 3", n)
	}
	if n := listLen("?completed=false"); n != 2 {
		t.Errorf("open list = %d tasks, want 2", n)
	}
	if n := listLen("?skip=2&limit=2"); n != 2 {
		t.Errorf("paged list = %d tasks, want 2", n)
	}

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/tasks?completed=maybe", token, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad filter status = %d, want 400", resp.StatusCode)
	}
}

func TestChatEndpoint(t *testing.T) {
	srv := newTestServer(t)
	token := signup(t, srv, "harper@example.com")

	resp, fields := doJSON(t, http.MethodPost, srv.URL+"/api/chat", token, map[string]string{
		"message": "what should I do today",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("chat status = %d, want 200", resp.StatusCode)
	}
	var reply, convID string
	_ = json.Unmarshal(fields["response"], &reply)
	_ = json.Unmarshal(fields["conversation_id"], &convID)
	if reply != "from the assistant" {
		t.Errorf("response = %q, want the gateway reply", reply)
	}
	if convID == "" {
		t.Fatal("chat response missing conversation_id")
	}

	// Follow-up on the same conversation keeps the id
	_, fields = doJSON(t, http.MethodPost, srv.URL+"/api/chat", token, map[string]string{
		"message":         "and tomorrow?",
		"conversation_id": convID,
	})
	var second string
	_ = json.Unmarshal(fields["conversation_id"], &second)
	if second != convID {
		t.Errorf("conversation id changed: %q -> %q", convID, second)
	}

	// A recognized command bypasses the gateway
	_, fields = doJSON(t, http.MethodPost, srv.URL+"/api/chat", token, map[string]string{
		"message": "add a task buy milk",
	})
	_ = json.Unmarshal(fields["response"], &reply)
	if reply == "from the assistant" {
		t.Error("command should not reach the gateway")
	}

	// Blank messages are rejected
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/chat", token, map[string]string{
		"message": "   ",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("blank message status = %d, want 400", resp.StatusCode)
	}

	// Ending the conversation always acks
	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/chat/"+convID, token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("end conversation status = %d, want 200", resp.StatusCode)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp, fields := doJSON(t, http.MethodGet, srv.URL+"/health", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health status = %d, want 200", resp.StatusCode)
	}
	var status string
	_ = json.Unmarshal(fields["status"], &status)
	if status != "ok" {
		t.Errorf("status = %q, want ok", status)
	}
}
