package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTelegramNotify(t *testing.T) {
	var sent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"restock","username":"restock_bot"}}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			_ = r.ParseForm()
			if r.FormValue("chat_id") != "42" {
				t.Errorf("Expected chat 42, got %q", r.FormValue("chat_id"))
			}
			sent = r.FormValue("text")
			_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":42,"type":"private"}}}`))
		default:
			t.Errorf("unexpected call %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	tg, err := NewTelegram("token", 42, srv.URL+"/bot%s/%s")
	if err != nil {
		t.Fatalf("NewTelegram: %v", err)
	}
	if err := tg.Notify(context.Background(), "3 cards created"); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if sent != "3 cards created" {
		t.Errorf("Expected text to be sent, got %q", sent)
	}
}

func TestTelegramBadToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
	}))
	defer srv.Close()

	if _, err := NewTelegram("bad", 1, srv.URL+"/bot%s/%s"); err == nil {
		t.Fatal("Expected error for rejected token")
	}
}
