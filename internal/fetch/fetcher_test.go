package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"craigsbot/internal/config"
)

func TestSearchURL(t *testing.T) {
	f := NewFetcher(config.SourceConfig{
		Host:        "sfbay.craigslist.org",
		SearchPath:  "/search/sfc/apa",
		MaxPrice:    4000,
		PostedToday: true,
		HasPic:      true,
		DogFriendly: true,
		Bedrooms:    1,
	}, time.Second)

	u, err := url.Parse(f.SearchURL())
	if err != nil {
		t.Fatalf("SearchURL is not a valid URL: %v", err)
	}
	if u.Host != "sfbay.craigslist.org" || u.Path != "/search/sfc/apa" {
		t.Errorf("unexpected origin or path: %s", u)
	}

	q := u.Query()
	for key, want := range map[string]string{
		"max_price":   "4000",
		"postedToday": "1",
		"hasPic":      "1",
		"pets_dog":    "1",
		"bedrooms":    "1",
		"sale_date":   "-",
	} {
		if got := q.Get(key); got != want {
			t.Errorf("query %s = %q, want %q", key, got, want)
		}
	}
}

func TestFetchReturnsBody(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<html>listings</html>"))
	}))
	defer srv.Close()

	f := NewFetcher(config.SourceConfig{
		Host:       strings.TrimPrefix(srv.URL, "http://"),
		SearchPath: "/search/sfc/apa",
		UserAgent:  "craigsbot-test",
		MaxPrice:   4000,
	}, time.Second)

	body, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if body != "<html>listings</html>" {
		t.Errorf("body = %q", body)
	}
	if gotUA != "craigsbot-test" {
		t.Errorf("user agent = %q, want craigsbot-test", gotUA)
	}
}

func TestFetchNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	f := NewFetcher(config.SourceConfig{
		Host:       strings.TrimPrefix(srv.URL, "http://"),
		SearchPath: "/search/sfc/apa",
	}, time.Second)

	if _, err := f.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
