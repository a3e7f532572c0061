package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ignatzorin/videocrew-backend/internal/logger"
	"github.com/ignatzorin/videocrew-backend/internal/models"
)

// SeedService наполняет портфолио демонстрационными работами.
type SeedService struct {
	portfolioRepo PortfolioRepository
	assetsBaseURL string
	cache         *CacheService
}

// SeedResult итог наполнения.
type SeedResult struct {
	Created int                    `json:"created"`
	Skipped bool                   `json:"skipped"`
	Items   []models.PortfolioItem `json:"items,omitempty"`
}

// NewSeedService создаёт сервис. assetsBaseURL указывает на фронтенд, где лежат превью.
func NewSeedService(portfolioRepo PortfolioRepository, assetsBaseURL string) *SeedService {
	return &SeedService{
		portfolioRepo: portfolioRepo,
		assetsBaseURL: strings.TrimRight(assetsBaseURL, "/"),
	}
}

// WithCache сбрасывает кэш портфолио после наполнения.
func (s *SeedService) WithCache(cache *CacheService) *SeedService {
	s.cache = cache
	return s
}

// SeedSamplePortfolio добавляет демонстрационные работы, если портфолио пустое.
func (s *SeedService) SeedSamplePortfolio(ctx context.Context) (*SeedResult, error) {
	count, err := s.portfolioRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed service: failed to count portfolio items: %w", err)
	}
	if count > 0 {
		logger.Log.WithField("existing", count).Info("seed service: портфолио уже заполнено, пропускаем")
		return &SeedResult{Skipped: true}, nil
	}

	result := &SeedResult{}
	defer func() {
		if s.cache != nil && result.Created > 0 {
			s.cache.InvalidateByPrefix(PortfolioCachePrefix)
		}
	}()

	for _, sample := range s.samplePortfolio() {
		item := sample
		if err := s.portfolioRepo.Create(ctx, &item); err != nil {
			return result, fmt.Errorf("seed service: failed to create %q: %w", item.Title, err)
		}
		result.Created++
		result.Items = append(result.Items, item)
	}

	logger.Log.WithField("created", result.Created).Info("seed service: демонстрационные работы добавлены")
	return result, nil
}

func (s *SeedService) samplePortfolio() []models.PortfolioItem {
	const sampleVideos = "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/"

	type sample struct {
		title, category, client, description, thumb, video string
		featured                                           bool
		duration                                           string
		tags                                               []string
	}
	samples := []sample{
		{"Logistics Promo", "video", "Logistics Corp", "Promotional film showing a large logistics hub in motion.", "2.webp", "BigBuckBunny.mp4", true, "2:30", []string{"logistics", "promo", "corporate"}},
		{"Chanel Promotion", "video", "Chanel", "Identity film expressing the brand's vision and values.", "3.webp", "ElephantsDream.mp4", true, "1:45", []string{"fashion", "promotion", "luxury"}},
		{"Pizza Company", "video", "Pizza Co", "Campaign spot with a warm, appetising look.", "4.webp", "ForBiggerBlazes.mp4", false, "3:15", []string{"food", "commercial", "restaurant"}},
		{"Nutella Recipe", "other", "Nutella", "Recipe film capturing the mood of a premium kitchen.", "5.webp", "ForBiggerEscapes.mp4", false, "2:00", []string{"recipe", "food", "tutorial"}},
		{"Hublot Watch", "other", "Hublot", "Short documentary introducing the craft behind a watch.", "1.webp", "ForBiggerFun.mp4", true, "4:30", []string{"luxury", "watch", "documentary"}},
	}

	items := make([]models.PortfolioItem, 0, len(samples))
	for i, smp := range samples {
		items = append(items, models.PortfolioItem{
			Title:        smp.title,
			Category:     smp.category,
			Client:       smp.client,
			Description:  smp.description,
			ThumbnailURL: s.assetsBaseURL + "/portfolio/" + smp.thumb,
			VideoURL:     sampleVideos + smp.video,
			Featured:     smp.featured,
			DisplayOrder: i + 1,
			Metadata: &models.PortfolioMetadata{
				Duration:   smp.duration,
				Resolution: "4K",
				Tags:       smp.tags,
			},
		})
	}
	return items
}
