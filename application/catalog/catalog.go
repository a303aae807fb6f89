package catalog

import (
	"context"

	"github.com/asetku/marketplace/constant"
	"github.com/asetku/marketplace/model"
	productRepo "github.com/asetku/marketplace/repository/product"
	"github.com/asetku/marketplace/utils/errors"
	"github.com/asetku/marketplace/utils/logger"
	"go.uber.org/zap"
)

type CatalogApp interface {
	ListAssets(ctx context.Context, page, perPage int) (*model.AssetListResponse, error)
	GetAsset(ctx context.Context, id uint64) (*model.AssetDetail, error)
}

type catalogAppImpl struct {
	productRepo productRepo.ProductRepository
}

func NewCatalogApp(productRepo productRepo.ProductRepository) CatalogApp {
	return &catalogAppImpl{productRepo: productRepo}
}

func (s *catalogAppImpl) ListAssets(ctx context.Context, page, perPage int) (*model.AssetListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 10
	}

	items, total, err := s.productRepo.List(ctx, page, perPage)
	if err != nil {
		logger.Error("[ListAssets] error productRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.AssetListResponse{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PerPage:    perPage,
	}, nil
}

func (s *catalogAppImpl) GetAsset(ctx context.Context, id uint64) (*model.AssetDetail, error) {
	result, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[GetAsset] error productRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if result == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	return result, nil
}
