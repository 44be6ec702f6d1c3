package preview

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

const ogPage = `<html><head>
<title>Fallback Title</title>
<meta property="og:title" content="OG Title" />
<meta property="og:description" content="OG Description" />
<meta property="og:image" content="https://cdn.example.com/image.jpg" />
<meta property="og:url" content="https://example.com/canonical" />
<meta property="og:type" content="article" />
</head><body></body></html>`

const fallbackPage = `<html><head>
<title>Document Title</title>
<meta name="description" content="Meta Description" />
</head><body></body></html>`

func serve(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchOpenGraphFields(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, ogPage)
	})

	p, err := NewFetcher(DefaultTimeout).Fetch(srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if p.Title != "OG Title" {
		t.Errorf("Expected OG title, got %q", p.Title)
	}
	if p.Description != "OG Description" {
		t.Errorf("Expected OG description, got %q", p.Description)
	}
	if p.Image != "https://cdn.example.com/image.jpg" {
		t.Errorf("Expected OG image, got %q", p.Image)
	}
	if p.URL != "https://example.com/canonical" {
		t.Errorf("Expected og:url, got %q", p.URL)
	}
	if p.Type != "article" {
		t.Errorf("Expected og:type, got %q", p.Type)
	}
}

func TestFetchFallbackFields(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, fallbackPage)
	})

	p, err := NewFetcher(DefaultTimeout).Fetch(srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if p.Title != "Document Title" {
		t.Errorf("Expected document title fallback, got %q", p.Title)
	}
	if p.Description != "Meta Description" {
		t.Errorf("Expected meta description fallback, got %q", p.Description)
	}
	if p.Image != "" {
		t.Errorf("Expected no image, got %q", p.Image)
	}
	if p.URL != srv.URL {
		t.Errorf("Expected input URL fallback, got %q", p.URL)
	}
	if p.Type != "website" {
		t.Errorf("Expected default type website, got %q", p.Type)
	}
}

func TestFetchResolvesRelativeImage(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><meta property="og:image" content="/static/pic.png" /></head></html>`)
	})

	p, err := NewFetcher(DefaultTimeout).Fetch(srv.URL + "/some/page")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	want := srv.URL + "/static/pic.png"
	if p.Image != want {
		t.Errorf("Expected image resolved to %q, got %q", want, p.Image)
	}
}

func TestFetchInvalidURL(t *testing.T) {
	f := NewFetcher(DefaultTimeout)
	for _, raw := range []string{"not a url", "ftp://example.com/file", "/relative/path", "example.com"} {
		if _, err := f.Fetch(raw); !errors.Is(err, ErrInvalidURL) {
			t.Errorf("%q: expected ErrInvalidURL, got %v", raw, err)
		}
	}
}

func TestFetchNon2xxStatus(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := NewFetcher(DefaultTimeout).Fetch(srv.URL)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusForbidden {
		t.Errorf("Expected status 403 carried in the error, got %d", statusErr.StatusCode)
	}
}

func TestFetchUnreachable(t *testing.T) {
	// Nothing listens on port 1; connection is refused without a response
	_, err := NewFetcher(DefaultTimeout).Fetch("http://127.0.0.1:1/")
	if !errors.Is(err, ErrUnreachable) {
		t.Errorf("Expected ErrUnreachable, got %v", err)
	}
}

func TestFetchTimeout(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		fmt.Fprint(w, ogPage)
	})

	_, err := NewFetcher(50 * time.Millisecond).Fetch(srv.URL)
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("Expected ErrTimeout, got %v", err)
	}
}

func setupTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	h.RegisterRoutes(api)
	return r
}

func TestPreviewEndpoint(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, ogPage)
	})
	router := setupTestRouter(NewHandler())

	req, _ := http.NewRequest("GET", "/api/v1/preview-link?url="+srv.URL, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var p Preview
	json.Unmarshal(resp.Body.Bytes(), &p)
	if p.Title != "OG Title" {
		t.Errorf("Expected OG title, got %q", p.Title)
	}
}

func TestPreviewEndpointMissingURL(t *testing.T) {
	router := setupTestRouter(NewHandler())

	req, _ := http.NewRequest("GET", "/api/v1/preview-link", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for missing url, got %d", resp.Code)
	}
}

func TestPreviewEndpointInvalidURL(t *testing.T) {
	router := setupTestRouter(NewHandler())

	req, _ := http.NewRequest("GET", "/api/v1/preview-link?url=notaurl", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for invalid url, got %d", resp.Code)
	}
}

func TestPreviewEndpointDistinctFailureMessages(t *testing.T) {
	router := setupTestRouter(NewHandlerWithTimeout(50 * time.Millisecond))

	slow := serve(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	})

	cases := []struct {
		name string
		url  string
		want string
	}{
		{"timeout", slow.URL, "Request to the URL timed out"},
		{"unreachable", "http://127.0.0.1:1/", "No response received from the URL"},
	}

	for _, tc := range cases {
		req, _ := http.NewRequest("GET", "/api/v1/preview-link?url="+tc.url, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusInternalServerError {
			t.Errorf("%s: expected status 500, got %d", tc.name, resp.Code)
			continue
		}
		var body map[string]string
		json.Unmarshal(resp.Body.Bytes(), &body)
		if body["error"] != tc.want {
			t.Errorf("%s: expected message %q, got %q", tc.name, tc.want, body["error"])
		}
	}
}
