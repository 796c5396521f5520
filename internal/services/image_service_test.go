package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tripplanner/pkg/memcache"
)

type fakePexels struct {
	mu      sync.Mutex
	queries []string
	perPage []string
	status  int
	photos  int
}

func (f *fakePexels) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "landscape", r.URL.Query().Get("orientation"))

		f.mu.Lock()
		f.queries = append(f.queries, r.URL.Query().Get("query"))
		f.perPage = append(f.perPage, r.URL.Query().Get("per_page"))
		status, n := f.status, f.photos
		f.mu.Unlock()

		if status != 0 {
			w.WriteHeader(status)
			return
		}

		photos := make([]map[string]any, 0, n)
		for i := 0; i < n; i++ {
			photos = append(photos, map[string]any{
				"id":               i + 1,
				"alt":              "",
				"photographer":     "P" + strconv.Itoa(i+1),
				"photographer_url": "https://pexels.test/p" + strconv.Itoa(i+1),
				"avg_color":        "#123456",
				"src": map[string]string{
					"large2x": fmt.Sprintf("https://img.test/%d/large2x.jpg", i+1),
					"large":   fmt.Sprintf("https://img.test/%d/large.jpg", i+1),
					"medium":  fmt.Sprintf("https://img.test/%d/medium.jpg", i+1),
				},
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"photos": photos})
	}
}

func (f *fakePexels) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func newTestImageService(t *testing.T, fake *fakePexels, apiKey string) *PexelsImageService {
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)
	return NewPexelsImageService(PexelsConfig{APIKey: apiKey, BaseURL: srv.URL}, memcache.NewMemoryImageCache(), zap.NewNop())
}

func TestFindDayImage_FallbackRotation(t *testing.T) {
	fake := &fakePexels{photos: 3}
	svc := newTestImageService(t, fake, "test-key")
	ctx := context.Background()

	img := svc.FindDayImage(ctx, "Jaipur", 2, "")
	require.NotNil(t, img)
	// day 2 uses the second fallback query and the second photo
	assert.Equal(t, "Jaipur skyline cityscape sunset panorama", fake.queries[0])
	assert.Equal(t, "10", fake.perPage[0])
	assert.Equal(t, int64(2), img.ID)
	assert.Equal(t, "https://img.test/2/large2x.jpg", img.Src)
	assert.Equal(t, "https://img.test/2/medium.jpg", img.SrcSmall)
	assert.Equal(t, "Jaipur - cityscape", img.Alt)

	// day 7 wraps to the second query and (7-1)%3 = photo index 0
	img7 := svc.FindDayImage(ctx, "Jaipur", 7, "")
	require.NotNil(t, img7)
	assert.Equal(t, "Jaipur skyline cityscape sunset panorama", fake.queries[1])
	assert.Equal(t, int64(1), img7.ID)
}

func TestFindDayImage_HintUsesTopResultAndCaches(t *testing.T) {
	fake := &fakePexels{photos: 5}
	svc := newTestImageService(t, fake, "test-key")
	ctx := context.Background()

	img := svc.FindDayImage(ctx, "Jaipur", 3, "Hawa Mahal at dawn")
	require.NotNil(t, img)
	assert.Equal(t, "Hawa Mahal at dawn", fake.queries[0])
	assert.Equal(t, int64(1), img.ID)
	assert.Equal(t, "Jaipur - Hawa Mahal at dawn", img.Alt)

	// same destination and hint with different case hits the cache, whatever the day
	again := svc.FindDayImage(ctx, "JAIPUR", 5, "hawa mahal at dawn")
	require.NotNil(t, again)
	assert.Equal(t, img.ID, again.ID)
	assert.Equal(t, 1, fake.requestCount())

	require.NoError(t, svc.ClearCache(ctx))
	svc.FindDayImage(ctx, "Jaipur", 3, "Hawa Mahal at dawn")
	assert.Equal(t, 2, fake.requestCount())
}

func TestFindDayImage_FailuresReturnNil(t *testing.T) {
	ctx := context.Background()

	noPhotos := newTestImageService(t, &fakePexels{photos: 0}, "test-key")
	assert.Nil(t, noPhotos.FindDayImage(ctx, "Atlantis", 1, ""))

	broken := newTestImageService(t, &fakePexels{status: http.StatusInternalServerError}, "test-key")
	assert.Nil(t, broken.FindDayImage(ctx, "Goa", 1, ""))

	fake := &fakePexels{photos: 3}
	noKey := newTestImageService(t, fake, "")
	assert.Nil(t, noKey.FindDayImage(ctx, "Goa", 1, ""))
	assert.Empty(t, noKey.SearchDestinationImages(ctx, "Goa", 4))
	assert.Zero(t, fake.requestCount())
}

func TestSearchDestinationImages(t *testing.T) {
	fake := &fakePexels{photos: 4}
	svc := newTestImageService(t, fake, "test-key")
	ctx := context.Background()

	images := svc.SearchDestinationImages(ctx, "Leh", 4)
	require.Len(t, images, 4)
	assert.Equal(t, "Leh travel landmark cityscape", fake.queries[0])
	assert.Equal(t, "4", fake.perPage[0])
	assert.Equal(t, "Leh travel destination", images[0].Alt)
	assert.Equal(t, "P1", images[0].Photographer)

	cached := svc.SearchDestinationImages(ctx, "leh", 4)
	assert.Equal(t, images, cached)
	assert.Equal(t, 1, fake.requestCount())

	svc.SearchDestinationImages(ctx, "Leh", 2)
	assert.Equal(t, 2, fake.requestCount(), "count is part of the cache key")
}

func TestSearchDestinationImages_ErrorGivesEmptySlice(t *testing.T) {
	svc := newTestImageService(t, &fakePexels{status: http.StatusTooManyRequests}, "test-key")
	images := svc.SearchDestinationImages(context.Background(), "Leh", 4)
	assert.NotNil(t, images)
	assert.Empty(t, images)
}
