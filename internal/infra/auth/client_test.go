package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTokenPasswordGrant(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		want := map[string]string{
			"grant_type": "password",
			"username":   "robot@example.com",
			"password":   "secret",
			"client_id":  "admin-client",
		}
		for k, v := range want {
			if got := r.PostForm.Get(k); got != v {
				t.Errorf("Expected %s=%q, got %q", k, v, got)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-123","token_type":"Bearer","expires_in":300}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "admin-client", "robot@example.com", "secret", 5*time.Second)
	tok, err := c.Token(context.Background())
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if tok != "tok-123" {
		t.Errorf("Expected tok-123, got %q", tok)
	}
}

func TestTokenFailures(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		body   string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":"invalid_grant"}`},
		{"server error", http.StatusInternalServerError, `boom`},
		{"no token in body", http.StatusOK, `{"token_type":"Bearer"}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := New(srv.URL, "id", "u", "p", 5*time.Second)
			if _, err := c.Token(context.Background()); err == nil {
				t.Fatal("Expected error")
			}
		})
	}
}
