package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"tripplanner/internal/models/response_models"
	"tripplanner/pkg/memcache"
)

const (
	DefaultPexelsBaseURL   = "https://api.pexels.com/v1"
	DefaultGalleryCount    = 4
	dayImageCandidates     = 10
	pexelsRequestTimeout   = 15 * time.Second
	landscapeOrientation   = "landscape"
	destinationQuerySuffix = "travel landmark cityscape"
)

type ImageServiceInterface interface {
	FindDayImage(ctx context.Context, destination string, dayIndex int, hint string) *response_models.ImageRef
	SearchDestinationImages(ctx context.Context, destination string, count int) []response_models.ImageRef
	ClearCache(ctx context.Context) error
}

type PexelsConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type PexelsImageService struct {
	client *resty.Client
	apiKey string
	cache  memcache.ImageCache
	logger *zap.Logger
}

func NewPexelsImageService(cfg PexelsConfig, cache memcache.ImageCache, logger *zap.Logger) *PexelsImageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cache == nil {
		cache = memcache.NewMemoryImageCache()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultPexelsBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = pexelsRequestTimeout
	}

	c := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Authorization", cfg.APIKey).
		SetTimeout(cfg.Timeout)

	return &PexelsImageService{
		client: c,
		apiKey: cfg.APIKey,
		cache:  cache,
		logger: logger.Named("images"),
	}
}

type pexelsPhoto struct {
	ID              int64  `json:"id"`
	Alt             string `json:"alt"`
	Photographer    string `json:"photographer"`
	PhotographerURL string `json:"photographer_url"`
	AvgColor        string `json:"avg_color"`
	Src             struct {
		Large2x string `json:"large2x"`
		Large   string `json:"large"`
		Medium  string `json:"medium"`
	} `json:"src"`
}

type pexelsSearchResponse struct {
	Photos []pexelsPhoto `json:"photos"`
}

func (p pexelsPhoto) toImageRef(fallbackAlt string) response_models.ImageRef {
	alt := p.Alt
	if alt == "" {
		alt = fallbackAlt
	}
	return response_models.ImageRef{
		ID:              p.ID,
		Src:             p.Src.Large2x,
		SrcMedium:       p.Src.Large,
		SrcSmall:        p.Src.Medium,
		Alt:             alt,
		Photographer:    p.Photographer,
		PhotographerURL: p.PhotographerURL,
		AvgColor:        p.AvgColor,
	}
}

func dayFallbackQueries(destination string) []string {
	return []string{
		destination + " famous landmark iconic building architecture",
		destination + " skyline cityscape sunset panorama",
		destination + " tourist attraction popular destination travel",
		destination + " street view urban city center downtown",
		destination + " aerial view bird eye city landscape",
	}
}

// rotation maps a 1-based day onto [0, n).
func rotation(dayIndex, n int) int {
	idx := (dayIndex - 1) % n
	if idx < 0 {
		idx += n
	}
	return idx
}

// FindDayImage returns one photo for a day card. A hint from the model is searched verbatim and
// its top result used; otherwise a fallback query and photo are chosen by day. Any failure yields nil.
func (s *PexelsImageService) FindDayImage(ctx context.Context, destination string, dayIndex int, hint string) *response_models.ImageRef {
	hint = strings.TrimSpace(hint)

	var key string
	if hint != "" {
		key = memcache.CacheKey("day", destination, hint)
	} else {
		key = memcache.CacheKey("day", destination, "day", strconv.Itoa(dayIndex))
	}

	var cached response_models.ImageRef
	if ok, err := s.cache.Get(ctx, key, &cached); err != nil {
		s.logger.Warn("image cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		return &cached
	}

	query := hint
	altSuffix := hint
	if query == "" {
		queries := dayFallbackQueries(destination)
		query = queries[rotation(dayIndex, len(queries))]
		altSuffix = "cityscape"
	}

	photos, err := s.search(ctx, query, dayImageCandidates)
	if err != nil {
		s.logger.Error("day image search failed",
			zap.String("destination", destination),
			zap.Int("day", dayIndex),
			zap.Error(err))
		return nil
	}
	if len(photos) == 0 {
		return nil
	}

	idx := 0
	if hint == "" {
		idx = rotation(dayIndex, len(photos))
	}
	image := photos[idx].toImageRef(fmt.Sprintf("%s - %s", destination, altSuffix))

	if err := s.cache.Set(ctx, key, image); err != nil {
		s.logger.Warn("image cache write failed", zap.String("key", key), zap.Error(err))
	}
	return &image
}

// SearchDestinationImages returns up to count landscape photos for a destination gallery.
func (s *PexelsImageService) SearchDestinationImages(ctx context.Context, destination string, count int) []response_models.ImageRef {
	if count <= 0 {
		count = DefaultGalleryCount
	}
	key := memcache.CacheKey("gallery", destination, strconv.Itoa(count))

	var cached []response_models.ImageRef
	if ok, err := s.cache.Get(ctx, key, &cached); err != nil {
		s.logger.Warn("image cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		return cached
	}

	photos, err := s.search(ctx, destination+" "+destinationQuerySuffix, count)
	if err != nil {
		s.logger.Error("destination image search failed", zap.String("destination", destination), zap.Error(err))
		return []response_models.ImageRef{}
	}
	if len(photos) == 0 {
		return []response_models.ImageRef{}
	}

	images := make([]response_models.ImageRef, 0, len(photos))
	for _, p := range photos {
		images = append(images, p.toImageRef(destination+" travel destination"))
	}
	if err := s.cache.Set(ctx, key, images); err != nil {
		s.logger.Warn("image cache write failed", zap.String("key", key), zap.Error(err))
	}
	return images
}

func (s *PexelsImageService) ClearCache(ctx context.Context) error {
	return s.cache.Clear(ctx)
}

func (s *PexelsImageService) search(ctx context.Context, query string, perPage int) ([]pexelsPhoto, error) {
	if s.apiKey == "" {
		s.logger.Warn("pexels api key is missing")
		return nil, nil
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"query":       query,
			"per_page":    strconv.Itoa(perPage),
			"orientation": landscapeOrientation,
		}).
		Get("/search")
	if err != nil {
		return nil, fmt.Errorf("pexels request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("pexels status %d: %s", resp.StatusCode(), resp.Status())
	}

	var payload pexelsSearchResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("decode pexels response: %w", err)
	}
	return payload.Photos, nil
}
