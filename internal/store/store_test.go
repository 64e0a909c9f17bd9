package store

import (
	"testing"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
)

func TestResponseCacheRoundTripsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	c, err := NewResponseCache(dir, "https://api.themoviedb.org/3", "ko-KR")
	if err != nil {
		t.Fatalf("NewResponseCache() error: %v", err)
	}
	title := domain.Title{ID: 550, Name: "Fight Club", Overview: "..."}
	if err := c.SaveDetails(title); err != nil {
		t.Fatalf("SaveDetails() error: %v", err)
	}
	videos := []domain.Video{{Key: "abc", Site: "YouTube", Type: "Trailer"}}
	if err := c.SaveVideos(550, videos); err != nil {
		t.Fatalf("SaveVideos() error: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	c, err = NewResponseCache(dir, "https://api.themoviedb.org/3/", "ko-KR")
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer c.Close()

	got, ok := c.GetDetails(550, time.Hour)
	if !ok || got.Name != "Fight Club" {
		t.Errorf("GetDetails() = %+v, %v; want Fight Club", got, ok)
	}
	gotVideos, ok := c.GetVideos(550, time.Hour)
	if !ok || len(gotVideos) != 1 || gotVideos[0].Key != "abc" {
		t.Errorf("GetVideos() = %+v, %v", gotVideos, ok)
	}
}

func TestResponseCachePartitionsByLanguage(t *testing.T) {
	dir := t.TempDir()

	ko, err := NewResponseCache(dir, "https://api.example.com", "ko-KR")
	if err != nil {
		t.Fatal(err)
	}
	defer ko.Close()
	if err := ko.SaveDetails(domain.Title{ID: 1, Name: "기생충"}); err != nil {
		t.Fatal(err)
	}

	en, err := NewResponseCache(dir, "https://api.example.com", "en-US")
	if err != nil {
		t.Fatal(err)
	}
	defer en.Close()
	if _, ok := en.GetDetails(1, 0); ok {
		t.Error("en-US cache should not see ko-KR entries")
	}
}

func TestResponseCacheExpiry(t *testing.T) {
	c, err := NewResponseCache("", "", "")
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if err := c.SaveDetails(domain.Title{ID: 7, Name: "Seven"}); err != nil {
		t.Fatal(err)
	}

	now = now.Add(30 * time.Minute)
	if _, ok := c.GetDetails(7, time.Hour); !ok {
		t.Error("entry younger than maxAge should be served")
	}

	now = now.Add(time.Hour)
	if _, ok := c.GetDetails(7, time.Hour); ok {
		t.Error("entry older than maxAge should be treated as a miss")
	}
	if _, ok := c.GetDetails(7, 0); !ok {
		t.Error("maxAge of zero should disable expiry")
	}
}

func TestResponseCacheInvalidateAll(t *testing.T) {
	c, err := NewResponseCache(t.TempDir(), "https://api.example.com", "ko-KR")
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	for id := 1; id <= 3; id++ {
		if err := c.SaveDetails(domain.Title{ID: id}); err != nil {
			t.Fatal(err)
		}
		if err := c.SaveVideos(id, nil); err != nil {
			t.Fatal(err)
		}
	}

	c.InvalidateAll()

	for id := 1; id <= 3; id++ {
		if _, ok := c.GetDetails(id, 0); ok {
			t.Errorf("details %d survived InvalidateAll", id)
		}
		if _, ok := c.GetVideos(id, 0); ok {
			t.Errorf("videos %d survived InvalidateAll", id)
		}
	}

	// Buckets are usable after invalidation
	if err := c.SaveDetails(domain.Title{ID: 9}); err != nil {
		t.Errorf("SaveDetails after InvalidateAll: %v", err)
	}
}
