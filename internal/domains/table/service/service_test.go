package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"tonyspizza/config"
	"tonyspizza/infras/otel/mocks"
	tableMocks "tonyspizza/internal/domains/table/mocks"
	"tonyspizza/internal/domains/table/model"
	"tonyspizza/internal/domains/table/model/dto"
	"tonyspizza/internal/domains/table/service"
	cacheMocks "tonyspizza/shared/cache/mocks"
	gDto "tonyspizza/shared/dto"
)

func TestTableService_ListTables(t *testing.T) {
	tables := []model.Table{
		{ID: "t-1", Number: 1, Capacity: 2},
		{ID: "t-2", Number: 2, Capacity: 4},
	}
	expected := []dto.TableResponse{
		{ID: "t-1", Number: 1, Capacity: 2},
		{ID: "t-2", Number: 2, Capacity: 4},
	}
	ordered := gDto.QueryParams{SortBy: model.FieldNumber, SortDir: gDto.SortDirAsc}

	tests := []struct {
		name      string
		ttl       int
		setupMock func(repo *tableMocks.MockTable, cache *cacheMocks.MockRedisCache)
		want      []dto.TableResponse
		wantErr   bool
	}{
		{
			name: "cache hit skips the database",
			ttl:  60,
			setupMock: func(_ *tableMocks.MockTable, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), "tables:list", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*value.(*[]dto.TableResponse) = expected

						return nil
					})
			},
			want: expected,
		},
		{
			name: "cache miss loads ordered tables and caches them",
			ttl:  60,
			setupMock: func(repo *tableMocks.MockTable, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), "tables:list", gomock.Any()).Return(errors.New("redis: nil"))
				repo.EXPECT().GetAll(gomock.Any(), ordered, gDto.FilterGroup{}).Return(tables, nil)
				cache.EXPECT().Save(gomock.Any(), "tables:list", expected, 60).Return(nil)
			},
			want: expected,
		},
		{
			name: "cache save failure is not fatal",
			ttl:  60,
			setupMock: func(repo *tableMocks.MockTable, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
				repo.EXPECT().GetAll(gomock.Any(), ordered, gDto.FilterGroup{}).Return(tables, nil)
				cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
			},
			want: expected,
		},
		{
			name: "caching disabled without ttl",
			ttl:  0,
			setupMock: func(repo *tableMocks.MockTable, _ *cacheMocks.MockRedisCache) {
				repo.EXPECT().GetAll(gomock.Any(), ordered, gDto.FilterGroup{}).Return([]model.Table{}, nil)
			},
			want: []dto.TableResponse{},
		},
		{
			name: "store failure",
			ttl:  0,
			setupMock: func(repo *tableMocks.MockTable, _ *cacheMocks.MockRedisCache) {
				repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			mockRepo := tableMocks.NewMockTable(ctrl)
			mockCache := cacheMocks.NewMockRedisCache(ctrl)

			cfg := &config.Config{}
			cfg.Cache.TTL = tt.ttl

			tt.setupMock(mockRepo, mockCache)

			svc := service.New(mockRepo, cfg, mockCache, mocks.NewOtel())
			got, err := svc.ListTables(context.Background())

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
