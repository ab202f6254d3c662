// Package footprint orchestrates carbon submissions, their persistence and the
// survey selector catalogs.
package footprint

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/geotree/internal/carbon"
	"github.com/mamadbah2/geotree/internal/domain/models"
	"github.com/mamadbah2/geotree/internal/metrics"
	"github.com/mamadbah2/geotree/internal/repository/mongodb"
)

const (
	errMissingNameValue = "name and value are required"
	errAlreadyExists    = "Already exists"
)

// SpeciesOverview exposes the configured catalog and mix to clients.
type SpeciesOverview struct {
	Species carbon.Catalog `json:"species"`
	Mix     carbon.Mix     `json:"mix"`
}

// Service handles footprint submissions.
type Service struct {
	repo        mongodb.CarbonRepository
	recommender *carbon.Recommender
	metrics     *metrics.Metrics
	logger      *zap.Logger
	now         func() time.Time
}

// NewService wires a new footprint service. A nil recommender uses the built-in catalog and mix.
func NewService(repo mongodb.CarbonRepository, recommender *carbon.Recommender, m *metrics.Metrics, logger *zap.Logger) (*Service, error) {
	if repo == nil {
		return nil, errors.New("carbon repository is required")
	}
	if recommender == nil {
		var err error
		recommender, err = carbon.NewRecommender(carbon.DefaultCatalog(), carbon.DefaultMix())
		if err != nil {
			return nil, fmt.Errorf("default recommender: %w", err)
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		repo:        repo,
		recommender: recommender,
		metrics:     m,
		logger:      logger,
		now:         time.Now,
	}, nil
}

// Submit classifies the payload, computes its result and stores it.
func (s *Service) Submit(ctx context.Context, payload map[string]any) (models.CarbonResult, error) {
	sub, err := carbon.ParseSubmission(payload)
	if err != nil {
		return models.CarbonResult{}, err
	}

	now := s.now().UTC()
	var result models.CarbonResult

	switch v := sub.(type) {
	case carbon.ActivitySubmission:
		fp := v.Estimate()
		recs := s.recommender.Recommend(fp.TotalTonnes)
		result = models.NewActivityResult(v, fp, recs, now)
		s.metrics.ObserveFootprint(fp.Total, carbon.TotalTrees(recs))
	case carbon.LegacySubmission:
		result = models.NewLegacyResult(v, now)
	default:
		return models.CarbonResult{}, fmt.Errorf("unsupported submission kind %q", sub.Kind())
	}

	if err := s.repo.SaveCarbonResult(ctx, &result); err != nil {
		return models.CarbonResult{}, fmt.Errorf("save carbon result: %w", err)
	}

	s.metrics.ObserveSubmission(string(sub.Kind()))
	s.logger.Info("carbon submission stored",
		zap.String("user_id", result.UserID),
		zap.String("kind", string(result.Kind)),
		zap.String("id", result.ID.Hex()),
	)

	return result, nil
}

// LatestResult returns the newest submission of a user.
func (s *Service) LatestResult(ctx context.Context, userID string) (models.CarbonResult, bool, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return models.CarbonResult{}, false, carbon.ErrMissingUserID
	}

	result, found, err := s.repo.LatestCarbonResult(ctx, userID)
	if err != nil {
		return models.CarbonResult{}, false, fmt.Errorf("load latest carbon result: %w", err)
	}
	return result, found, nil
}

// ListTypes returns one selector catalog sorted by name.
func (s *Service) ListTypes(ctx context.Context, kind models.CarbonTypeKind) ([]models.CarbonType, error) {
	items, err := s.repo.ListCarbonTypes(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	if items == nil {
		items = []models.CarbonType{}
	}
	return items, nil
}

// ListAllTypes loads the four selector catalogs concurrently.
func (s *Service) ListAllTypes(ctx context.Context) (models.CarbonTypeLists, error) {
	results := make([][]models.CarbonType, len(models.CarbonTypeKinds))

	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range models.CarbonTypeKinds {
		i, kind := i, kind
		g.Go(func() error {
			items, err := s.ListTypes(gctx, kind)
			if err != nil {
				return err
			}
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.CarbonTypeLists{}, err
	}

	var lists models.CarbonTypeLists
	for i, kind := range models.CarbonTypeKinds {
		lists.Set(kind, results[i])
	}
	return lists, nil
}

// AddAllTypes inserts every item of the request. Invalid or duplicate items are
// reported in the result and do not stop the remaining inserts.
func (s *Service) AddAllTypes(ctx context.Context, req models.BulkCarbonTypesRequest) (models.BulkCarbonTypesResult, error) {
	result := models.BulkCarbonTypesResult{Errors: []models.BulkCarbonTypeError{}}

	for _, kind := range models.CarbonTypeKinds {
		created := []models.CarbonType{}
		for _, in := range req.Items(kind) {
			name := strings.TrimSpace(in.Name)
			value := in.ValueString()
			if name == "" || value == "" {
				result.Errors = append(result.Errors, models.BulkCarbonTypeError{Type: kind, Error: errMissingNameValue, Item: in.Name})
				continue
			}

			if err := ctx.Err(); err != nil {
				return models.BulkCarbonTypesResult{}, err
			}

			now := s.now().UTC()
			item := models.CarbonType{Name: name, Value: value, CreatedAt: now, UpdatedAt: now}
			if err := s.repo.InsertCarbonType(ctx, kind, &item); err != nil {
				msg := err.Error()
				if errors.Is(err, mongodb.ErrDuplicate) {
					msg = errAlreadyExists
				} else {
					s.logger.Warn("insert carbon type failed", zap.String("kind", string(kind)), zap.String("name", name), zap.Error(err))
				}
				result.Errors = append(result.Errors, models.BulkCarbonTypeError{Type: kind, Error: msg, Item: name})
				continue
			}
			created = append(created, item)
		}
		result.Set(kind, created)
	}

	return result, nil
}

// Species returns the catalog and mix used for recommendations.
func (s *Service) Species() SpeciesOverview {
	return SpeciesOverview{
		Species: s.recommender.Catalog(),
		Mix:     s.recommender.Mix(),
	}
}
