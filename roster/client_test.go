package roster

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/login" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token": "t1", "username": "alice", "role": "teacher"}`))
	}))
	defer server.Close()

	result, apiErr := NewClient(server.URL).Login("alice", "pw")
	if apiErr != nil {
		t.Fatalf("login failed: %v", apiErr)
	}
	if result.Token != "t1" || result.Username != "alice" {
		t.Fatalf("unexpected login result: %+v", result)
	}
}

func TestClientLoginRejectedCarriesDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(401)
		w.Write([]byte(`{"detail": "Invalid credentials"}`))
	}))
	defer server.Close()

	_, apiErr := NewClient(server.URL).Login("alice", "wrong")
	if apiErr == nil {
		t.Fatal("expected an error")
	}
	if apiErr.Kind != ErrRejected {
		t.Fatalf("expected ErrRejected, got %v", apiErr.Kind)
	}
	if apiErr.Status != 401 || apiErr.Detail != "Invalid credentials" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestClientEnrollEncodesTarget(t *testing.T) {
	var gotPath, gotEmail, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotEmail = r.URL.Query().Get("email")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "Signed up a+b@x.com for Chess Club"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	message, apiErr := client.Enroll("Chess Club", "a+b@x.com", Session{})
	if apiErr != nil {
		t.Fatalf("enroll failed: %v", apiErr)
	}
	if message != "Signed up a+b@x.com for Chess Club" {
		t.Fatalf("unexpected message: %q", message)
	}
	if gotPath != "/activities/Chess%20Club/signup" {
		t.Fatalf("activity name not path-escaped: %q", gotPath)
	}
	if gotEmail != "a+b@x.com" {
		t.Fatalf("email mangled in query: %q", gotEmail)
	}
	if gotAuth != "" {
		t.Fatalf("anonymous enroll must not send Authorization, got %q", gotAuth)
	}

	// Same call with a session attaches the bearer token.
	_, apiErr = client.Enroll("Chess Club", "a+b@x.com", Session{Token: "t1", Username: "alice"})
	if apiErr != nil {
		t.Fatalf("authenticated enroll failed: %v", apiErr)
	}
	if gotAuth != "Bearer t1" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestClientUnenrollUsesDelete(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.EscapedPath()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "Unregistered a@x.com from Chess Club"}`))
	}))
	defer server.Close()

	_, apiErr := NewClient(server.URL).Unenroll("Chess Club", "a@x.com", Session{Token: "t1"})
	if apiErr != nil {
		t.Fatalf("unenroll failed: %v", apiErr)
	}
	if gotMethod != http.MethodDelete {
		t.Fatalf("expected DELETE, got %s", gotMethod)
	}
	if gotPath != "/activities/Chess%20Club/unregister" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
}

func TestClientNetworkFaultIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse all connections

	client := NewClient(server.URL)

	if _, apiErr := client.FetchRoster(); apiErr == nil || apiErr.Kind != ErrNetwork {
		t.Fatalf("expected ErrNetwork from fetch, got %+v", apiErr)
	}
	if _, apiErr := client.Login("a", "b"); apiErr == nil || apiErr.Kind != ErrNetwork {
		t.Fatalf("expected ErrNetwork from login, got %+v", apiErr)
	}
	if _, apiErr := client.Enroll("Chess Club", "a@x.com", Session{}); apiErr == nil || apiErr.Kind != ErrNetwork {
		t.Fatalf("expected ErrNetwork from enroll, got %+v", apiErr)
	}
}

func TestClientMalformedRosterIsParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`["not", "an", "object"]`))
	}))
	defer server.Close()

	_, apiErr := NewClient(server.URL).FetchRoster()
	if apiErr == nil || apiErr.Kind != ErrParse {
		t.Fatalf("expected ErrParse, got %+v", apiErr)
	}
}

func TestClientFetchRosterPreservesOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"Zebra Society": {"description": "", "schedule": "", "max_participants": 5, "participants": []},
			"Art Club": {"description": "", "schedule": "", "max_participants": 5, "participants": []}
		}`))
	}))
	defer server.Close()

	roster, apiErr := NewClient(server.URL).FetchRoster()
	if apiErr != nil {
		t.Fatalf("fetch failed: %v", apiErr)
	}

	names := roster.Names()
	if names[0] != "Zebra Society" || names[1] != "Art Club" {
		t.Fatalf("server order not preserved: %v", names)
	}
}
