package service

import (
	"context"
	"errors"
	"mime/multipart"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/invapp/inventory-api/internal/platform/logger"
	"github.com/invapp/inventory-api/internal/product/domain"
	"github.com/invapp/inventory-api/internal/product/repository"
)

var ErrMissingRequiredFields = errors.New("required fields: name, quantity, price")

// ImageStore abstracts where uploaded product images live. Implemented by
// upload.LocalImageStore.
type ImageStore interface {
	Save(fh *multipart.FileHeader) (string, error)
	Remove(publicPath string) error
}

type ProductService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, in domain.CreateProductInput, image *multipart.FileHeader) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, in domain.UpdateProductInput, image *multipart.FileHeader) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) (*domain.Product, error)
}

type productService struct {
	repo   repository.ProductRepository
	images ImageStore
}

func NewProductService(repo repository.ProductRepository, images ImageStore) ProductService {
	return &productService{repo: repo, images: images}
}

func (s *productService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *productService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, oid)
}

func (s *productService) CreateProduct(ctx context.Context, in domain.CreateProductInput, image *multipart.FileHeader) (*domain.Product, error) {
	if in.Name == "" || in.Quantity == nil || in.Price == nil {
		return nil, ErrMissingRequiredFields
	}

	p := &domain.Product{
		Name:     in.Name,
		Quantity: *in.Quantity,
		Price:    *in.Price,
		Category: domain.DefaultCategory,
		Unit:     domain.DefaultUnit,
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Category != "" {
		p.Category = in.Category
	}
	if in.Unit != "" {
		p.Unit = in.Unit
	}

	if image != nil {
		imagePath, err := s.images.Save(image)
		if err != nil {
			return nil, err
		}
		p.Image = &imagePath
	}

	if err := s.repo.Insert(ctx, p); err != nil {
		if p.Image != nil {
			// insert failed, don't orphan the file we just wrote
			if rmErr := s.images.Remove(*p.Image); rmErr != nil {
				logger.Warn("CreateProduct: cleanup of %s failed: %v", *p.Image, rmErr)
			}
		}
		return nil, err
	}
	return p, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, in domain.UpdateProductInput, image *multipart.FileHeader) (*domain.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && *in.Name != "" {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Category != nil && *in.Category != "" {
		p.Category = *in.Category
	}
	if in.Unit != nil && *in.Unit != "" {
		p.Unit = *in.Unit
	}

	var oldImage *string
	if image != nil {
		imagePath, err := s.images.Save(image)
		if err != nil {
			return nil, err
		}
		oldImage = p.Image
		p.Image = &imagePath
	}

	if err := s.repo.Update(ctx, p); err != nil {
		if image != nil {
			if rmErr := s.images.Remove(*p.Image); rmErr != nil {
				logger.Warn("UpdateProduct: cleanup of %s failed: %v", *p.Image, rmErr)
			}
		}
		return nil, err
	}

	// the new file is associated now, drop the replaced one (best effort)
	if oldImage != nil {
		if rmErr := s.images.Remove(*oldImage); rmErr != nil {
			logger.Warn("UpdateProduct: failed to delete replaced image %s: %v", *oldImage, rmErr)
		}
	}
	return p, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.Delete(ctx, oid)
	if err != nil {
		return nil, err
	}

	if p.Image != nil {
		if rmErr := s.images.Remove(*p.Image); rmErr != nil {
			logger.Warn("DeleteProduct: failed to delete image %s: %v", *p.Image, rmErr)
		}
	}
	return p, nil
}

// parseID maps a malformed hex id to not-found rather than leaking a
// decoding error to the caller.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, repository.ErrProductNotFound
	}
	return oid, nil
}
