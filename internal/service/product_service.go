package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/stockroomhq/stockroom-api/internal/dto"
	"github.com/stockroomhq/stockroom-api/internal/models"
	"github.com/stockroomhq/stockroom-api/internal/repository"
)

var (
	// ErrImageTooLarge indicates the upload exceeded the configured limit.
	ErrImageTooLarge = errors.New("image exceeds maximum allowed size")
	// ErrImageTypeNotAllowed indicates the MIME type is not an image.
	ErrImageTypeNotAllowed = errors.New("file type not allowed for product images")
)

// FileStorage abstracts image upload destinations.
type FileStorage interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// DescriptionSuggester produces product copy from a name and keywords.
type DescriptionSuggester interface {
	SuggestDescription(ctx context.Context, name, context string) (string, error)
}

// ProductService manages the catalog.
type ProductService interface {
	Create(ctx context.Context, actorID, orgID uint, payload dto.ProductCreateRequest) (dto.ProductResponse, error)
	Update(ctx context.Context, actorID, orgID, id uint, payload dto.ProductUpdateRequest) (dto.ProductResponse, error)
	Delete(ctx context.Context, actorID, orgID, id uint) error
	Get(ctx context.Context, orgID, id uint) (dto.ProductResponse, error)
	List(ctx context.Context, orgID uint, page, pageSize int) (dto.ProductListResponse, error)
	AttachImage(ctx context.Context, orgID, id uint, file *multipart.FileHeader) (dto.ProductResponse, error)
	SuggestDescription(ctx context.Context, orgID, id uint) (dto.ProductDescriptionResponse, error)
}

type productService struct {
	repo      repository.ProductRepository
	recorder  ActivityRecorder
	notifier  NotificationService
	storage   FileStorage
	suggester DescriptionSuggester
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	maxSize   int64
}

// NewProductService constructs the catalog service. Storage and suggester
// may be nil; the image and description endpoints then report unavailable.
func NewProductService(repo repository.ProductRepository, recorder ActivityRecorder, notifier NotificationService, storage FileStorage, suggester DescriptionSuggester, validate *validator.Validate, maxSizeMB int, logger zerolog.Logger) ProductService {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	return &productService{
		repo:      repo,
		recorder:  recorder,
		notifier:  notifier,
		storage:   storage,
		suggester: suggester,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "product_service").Logger(),
		maxSize:   int64(maxSizeMB) * 1024 * 1024,
	}
}

func (s *productService) Create(ctx context.Context, actorID, orgID uint, payload dto.ProductCreateRequest) (dto.ProductResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProductResponse{}, err
	}

	sku := strings.TrimSpace(payload.SKU)
	if sku == "" {
		sku = generateSKU(payload.Name)
	}

	product := models.Product{
		OrganizationID: orgID,
		SKU:            sku,
		Name:           strings.TrimSpace(payload.Name),
		Description:    strings.TrimSpace(s.sanitizer.Sanitize(payload.Description)),
		PriceCents:     payload.PriceCents,
		Quantity:       payload.Quantity,
		WarehouseID:    payload.WarehouseID,
		VendorID:       payload.VendorID,
	}

	if err := s.repo.Create(ctx, &product); err != nil {
		return dto.ProductResponse{}, err
	}

	if err := s.audit(ctx, actorID, orgID, ActionProductCreated, product); err != nil {
		return dto.ProductResponse{}, err
	}

	return dto.NewProductResponse(product), nil
}

func (s *productService) Update(ctx context.Context, actorID, orgID, id uint, payload dto.ProductUpdateRequest) (dto.ProductResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProductResponse{}, err
	}

	product, err := s.repo.FindByID(ctx, id, orgID)
	if err != nil {
		return dto.ProductResponse{}, err
	}

	if payload.Name != nil {
		product.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Description != nil {
		product.Description = strings.TrimSpace(s.sanitizer.Sanitize(*payload.Description))
	}
	if payload.PriceCents != nil {
		product.PriceCents = *payload.PriceCents
	}
	if payload.Quantity != nil {
		product.Quantity = *payload.Quantity
	}
	if payload.WarehouseID != nil {
		product.WarehouseID = payload.WarehouseID
	}
	if payload.VendorID != nil {
		product.VendorID = payload.VendorID
	}

	if err := s.repo.Update(ctx, &product); err != nil {
		return dto.ProductResponse{}, err
	}

	if err := s.audit(ctx, actorID, orgID, ActionProductUpdated, product); err != nil {
		return dto.ProductResponse{}, err
	}

	return dto.NewProductResponse(product), nil
}

func (s *productService) Delete(ctx context.Context, actorID, orgID, id uint) error {
	product, err := s.repo.FindByID(ctx, id, orgID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id, orgID); err != nil {
		return err
	}

	return s.audit(ctx, actorID, orgID, ActionProductDeleted, product)
}

func (s *productService) Get(ctx context.Context, orgID, id uint) (dto.ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id, orgID)
	if err != nil {
		return dto.ProductResponse{}, err
	}
	return dto.NewProductResponse(product), nil
}

func (s *productService) List(ctx context.Context, orgID uint, page, pageSize int) (dto.ProductListResponse, error) {
	if page <= 0 {
		page = 1
	}
	pageSize = clampPageSize(pageSize)

	products, total, err := s.repo.ListByOrganization(ctx, orgID, page, pageSize)
	if err != nil {
		return dto.ProductListResponse{}, err
	}

	pagination := dto.PaginationMeta{Page: page, PageSize: pageSize, TotalItems: total}
	if pageSize > 0 {
		pagination.TotalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	} else {
		pagination.TotalPages = 1
	}

	return dto.ProductListResponse{
		Items:      dto.NewProductResponseSlice(products),
		Pagination: pagination,
	}, nil
}

// AttachImage validates the upload by sniffing its actual content type, not
// the client-supplied header, then stores it and saves the URL.
func (s *productService) AttachImage(ctx context.Context, orgID, id uint, file *multipart.FileHeader) (dto.ProductResponse, error) {
	if s.storage == nil {
		return dto.ProductResponse{}, errors.New("image storage is not configured")
	}
	if file == nil {
		return dto.ProductResponse{}, errors.New("file is required")
	}
	if file.Size > s.maxSize {
		return dto.ProductResponse{}, ErrImageTooLarge
	}

	product, err := s.repo.FindByID(ctx, id, orgID)
	if err != nil {
		return dto.ProductResponse{}, err
	}

	handle, err := file.Open()
	if err != nil {
		return dto.ProductResponse{}, err
	}
	defer handle.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(handle, s.maxSize+1)); err != nil {
		return dto.ProductResponse{}, err
	}
	if int64(buf.Len()) > s.maxSize {
		return dto.ProductResponse{}, ErrImageTooLarge
	}

	detected := mimetype.Detect(buf.Bytes())
	if !strings.HasPrefix(detected.String(), "image/") {
		return dto.ProductResponse{}, ErrImageTypeNotAllowed
	}

	url, err := s.storage.Upload(ctx, fmt.Sprintf("product-%d%s", product.ID, detected.Extension()), bytes.NewReader(buf.Bytes()))
	if err != nil {
		s.logger.Error().Err(err).Uint("product_id", product.ID).Msg("image upload failed")
		return dto.ProductResponse{}, err
	}

	product.ImageURL = url
	if err := s.repo.Update(ctx, &product); err != nil {
		return dto.ProductResponse{}, err
	}

	return dto.NewProductResponse(product), nil
}

func (s *productService) SuggestDescription(ctx context.Context, orgID, id uint) (dto.ProductDescriptionResponse, error) {
	if s.suggester == nil {
		return dto.ProductDescriptionResponse{}, errors.New("description suggestions are not configured")
	}

	product, err := s.repo.FindByID(ctx, id, orgID)
	if err != nil {
		return dto.ProductDescriptionResponse{}, err
	}

	suggestion, err := s.suggester.SuggestDescription(ctx, product.Name, product.Description)
	if err != nil {
		return dto.ProductDescriptionResponse{}, err
	}

	return dto.ProductDescriptionResponse{
		ProductID:   product.ID,
		Description: strings.TrimSpace(s.sanitizer.Sanitize(suggestion)),
	}, nil
}

func (s *productService) audit(ctx context.Context, actorID, orgID uint, action string, product models.Product) error {
	activity, err := s.recorder.Record(ctx, ActivityEntry{
		UserID:  actorID,
		Action:  action,
		Details: product.Name,
		Metadata: map[string]interface{}{
			"product_id": product.ID,
			"sku":        product.SKU,
		},
	})
	if err != nil {
		return err
	}

	if s.notifier != nil {
		if err := s.notifier.Dispatch(ctx, activity, orgID); err != nil {
			s.logger.Warn().Err(err).Uint("activity_id", activity.ID).Msg("notification fan-out failed")
		}
	}

	return nil
}

func generateSKU(name string) string {
	prefix := strings.ToUpper(strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, name))
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	if prefix == "" {
		prefix = "SKU"
	}
	return prefix + "-" + strings.ToUpper(uuid.NewString()[:8])
}
