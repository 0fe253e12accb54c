package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"tonyspizza/config"
	"tonyspizza/infras/otel"
	"tonyspizza/internal/domains/table/model"
	"tonyspizza/internal/domains/table/model/dto"
	"tonyspizza/internal/domains/table/repository"
	"tonyspizza/shared"
	"tonyspizza/shared/cache"
	"tonyspizza/shared/constant"
	gDto "tonyspizza/shared/dto"
)

const (
	cacheTables    = "tables"
	cacheListTable = "list"
)

type Table interface {
	ListTables(ctx context.Context) ([]dto.TableResponse, error)
}

type serviceImpl struct {
	repo  repository.Table
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Table, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Table {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// ListTables returns every table ordered by number. The list is served from
// Redis when present; a cache miss or cache failure falls through to the database.
func (s *serviceImpl) ListTables(ctx context.Context) (res []dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListTables")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheTables, cacheListTable)

	if s.cacheEnabled() {
		if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
			log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for tables")

			return res, nil
		}
	}

	params := gDto.QueryParams{SortBy: model.FieldNumber, SortDir: gDto.SortDirAsc}

	tables, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get tables")

		return nil, fmt.Errorf("failed to get tables: %w", err)
	}

	res = dto.FromModels(tables)

	if s.cacheEnabled() {
		if saveErr := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); saveErr != nil {
			log.Warn().Err(saveErr).Str("cacheKey", cacheKey).Msg("failed to cache tables")
		}
	}

	return res, nil
}

func (s *serviceImpl) cacheEnabled() bool {
	return s.cache != nil && s.cfg.Cache.TTL > 0
}
