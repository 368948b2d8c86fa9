package mattermost

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalizeServerURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name:    "plain https URL",
			url:     "https://chat.example.com",
			want:    "https://chat.example.com",
			wantErr: false,
		},
		{
			name:    "trailing slash stripped",
			url:     "https://chat.example.com/",
			want:    "https://chat.example.com",
			wantErr: false,
		},
		{
			name:    "multiple trailing slashes stripped",
			url:     "https://chat.example.com///",
			want:    "https://chat.example.com",
			wantErr: false,
		},
		{
			name:    "http URL accepted",
			url:     "http://localhost:8065",
			want:    "http://localhost:8065",
			wantErr: false,
		},
		{
			name:    "surrounding whitespace trimmed",
			url:     "  https://chat.example.com  ",
			want:    "https://chat.example.com",
			wantErr: false,
		},
		{
			name:    "subpath preserved",
			url:     "https://example.com/mattermost/",
			want:    "https://example.com/mattermost",
			wantErr: false,
		},
		{
			name:    "missing scheme",
			url:     "chat.example.com",
			want:    "",
			wantErr: true,
		},
		{
			name:    "unsupported scheme",
			url:     "ftp://chat.example.com",
			want:    "",
			wantErr: true,
		},
		{
			name:    "scheme without host",
			url:     "https://",
			want:    "",
			wantErr: true,
		},
		{
			name:    "empty URL",
			url:     "",
			want:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeServerURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("NormalizeServerURL() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("NormalizeServerURL() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v4/users/me" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret-token" {
			t.Errorf("Authorization header = %q, want %q", got, "Bearer secret-token")
		}
		json.NewEncoder(w).Encode(User{ID: "u1", Username: "botson", Email: "bot@example.com"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-token")

	user, err := client.Me()
	if err != nil {
		t.Fatalf("Me() error = %v", err)
	}
	if user.Username != "botson" {
		t.Errorf("Me() username = %q, want %q", user.Username, "botson")
	}
}

func TestMeUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid or expired session"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "bad-token")

	if _, err := client.Me(); err == nil {
		t.Fatal("Me() expected error for 401 response, got nil")
	}
}

func TestMeTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClient(srv.URL, "token")

	if _, err := client.Me(); err == nil {
		t.Fatal("Me() expected transport error, got nil")
	}
}

func TestGetEmojiPage(t *testing.T) {
	var gotQuery map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v4/emoji" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		gotQuery = map[string]string{
			"page":     q.Get("page"),
			"per_page": q.Get("per_page"),
			"sort":     q.Get("sort"),
		}
		json.NewEncoder(w).Encode([]Emoji{
			{ID: "e1", Name: "bar"},
			{ID: "e2", Name: "foo"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "token")

	emojis, err := client.GetEmojiPage(3, 50)
	if err != nil {
		t.Fatalf("GetEmojiPage() error = %v", err)
	}
	if len(emojis) != 2 {
		t.Fatalf("GetEmojiPage() returned %d emojis, want 2", len(emojis))
	}
	if emojis[0].Name != "bar" || emojis[1].Name != "foo" {
		t.Errorf("GetEmojiPage() order = [%s %s], want [bar foo]", emojis[0].Name, emojis[1].Name)
	}

	want := map[string]string{"page": "3", "per_page": "50", "sort": "name"}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}
}

func TestGetEmojiPageClampsPerPage(t *testing.T) {
	tests := []struct {
		name    string
		perPage int
		want    string
	}{
		{name: "above server maximum", perPage: 1000, want: "200"},
		{name: "zero defaults to maximum", perPage: 0, want: "200"},
		{name: "negative defaults to maximum", perPage: -5, want: "200"},
		{name: "within bounds passes through", perPage: 25, want: "25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.URL.Query().Get("per_page")
				fmt.Fprint(w, "[]")
			}))
			defer srv.Close()

			client := NewClient(srv.URL, "token")
			if _, err := client.GetEmojiPage(0, tt.perPage); err != nil {
				t.Fatalf("GetEmojiPage() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("per_page = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetEmojiPageServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "token")

	if _, err := client.GetEmojiPage(0, 200); err == nil {
		t.Fatal("GetEmojiPage() expected error for 500 response, got nil")
	}
}

func TestGetEmojiImage(t *testing.T) {
	imageBytes := []byte{0x47, 0x49, 0x46, 0x38, 0x39, 0x61} // GIF89a

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v4/emoji/abc/image" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "image/gif")
		w.Write(imageBytes)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "token")

	body, contentType, err := client.GetEmojiImage("abc")
	if err != nil {
		t.Fatalf("GetEmojiImage() error = %v", err)
	}
	defer body.Close()

	if contentType != "image/gif" {
		t.Errorf("content type = %q, want %q", contentType, "image/gif")
	}

	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("reading image body: %v", err)
	}
	if string(data) != string(imageBytes) {
		t.Errorf("image body = %v, want %v", data, imageBytes)
	}
}

func TestGetEmojiImageNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"emoji not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "token")

	if _, _, err := client.GetEmojiImage("missing"); err == nil {
		t.Fatal("GetEmojiImage() expected error for 404 response, got nil")
	}
}
