package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/stockroomhq/stockroom-api/internal/dto"
	"github.com/stockroomhq/stockroom-api/internal/models"
	"github.com/stockroomhq/stockroom-api/internal/repository"
)

// DirectoryService manages warehouses, vendors and customers for a tenant.
type DirectoryService interface {
	CreateWarehouse(ctx context.Context, orgID uint, payload dto.WarehouseCreateRequest) (dto.WarehouseResponse, error)
	ListWarehouses(ctx context.Context, orgID uint) ([]dto.WarehouseResponse, error)
	DeleteWarehouse(ctx context.Context, orgID, id uint) error
	CreateVendor(ctx context.Context, actorID, orgID uint, payload dto.VendorCreateRequest) (dto.VendorResponse, error)
	ListVendors(ctx context.Context, orgID uint) ([]dto.VendorResponse, error)
	DeleteVendor(ctx context.Context, orgID, id uint) error
	CreateCustomer(ctx context.Context, orgID uint, payload dto.CustomerCreateRequest) (dto.CustomerResponse, error)
	ListCustomers(ctx context.Context, orgID uint) ([]dto.CustomerResponse, error)
	DeleteCustomer(ctx context.Context, orgID, id uint) error
}

type directoryService struct {
	warehouses repository.WarehouseRepository
	vendors    repository.VendorRepository
	customers  repository.CustomerRepository
	recorder   ActivityRecorder
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewDirectoryService constructs the directory service.
func NewDirectoryService(warehouses repository.WarehouseRepository, vendors repository.VendorRepository, customers repository.CustomerRepository, recorder ActivityRecorder, validate *validator.Validate, logger zerolog.Logger) DirectoryService {
	return &directoryService{
		warehouses: warehouses,
		vendors:    vendors,
		customers:  customers,
		recorder:   recorder,
		validator:  validate,
		logger:     logger.With().Str("component", "directory_service").Logger(),
	}
}

func (s *directoryService) CreateWarehouse(ctx context.Context, orgID uint, payload dto.WarehouseCreateRequest) (dto.WarehouseResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.WarehouseResponse{}, err
	}

	warehouse := models.Warehouse{
		OrganizationID: orgID,
		Name:           strings.TrimSpace(payload.Name),
		Location:       strings.TrimSpace(payload.Location),
	}
	if err := s.warehouses.Create(ctx, &warehouse); err != nil {
		return dto.WarehouseResponse{}, err
	}

	return dto.NewWarehouseResponse(warehouse), nil
}

func (s *directoryService) ListWarehouses(ctx context.Context, orgID uint) ([]dto.WarehouseResponse, error) {
	warehouses, err := s.warehouses.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return dto.NewWarehouseResponseSlice(warehouses), nil
}

func (s *directoryService) DeleteWarehouse(ctx context.Context, orgID, id uint) error {
	return s.warehouses.Delete(ctx, id, orgID)
}

func (s *directoryService) CreateVendor(ctx context.Context, actorID, orgID uint, payload dto.VendorCreateRequest) (dto.VendorResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.VendorResponse{}, err
	}

	vendor := models.Vendor{
		OrganizationID: orgID,
		Name:           strings.TrimSpace(payload.Name),
		Email:          strings.TrimSpace(payload.Email),
		Phone:          strings.TrimSpace(payload.Phone),
	}
	if err := s.vendors.Create(ctx, &vendor); err != nil {
		return dto.VendorResponse{}, err
	}

	if _, err := s.recorder.Record(ctx, ActivityEntry{
		UserID:  actorID,
		Action:  ActionVendorCreated,
		Details: vendor.Name,
		Metadata: map[string]interface{}{
			"vendor_id": vendor.ID,
		},
	}); err != nil {
		return dto.VendorResponse{}, err
	}

	return dto.NewVendorResponse(vendor), nil
}

func (s *directoryService) ListVendors(ctx context.Context, orgID uint) ([]dto.VendorResponse, error) {
	vendors, err := s.vendors.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return dto.NewVendorResponseSlice(vendors), nil
}

func (s *directoryService) DeleteVendor(ctx context.Context, orgID, id uint) error {
	return s.vendors.Delete(ctx, id, orgID)
}

func (s *directoryService) CreateCustomer(ctx context.Context, orgID uint, payload dto.CustomerCreateRequest) (dto.CustomerResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CustomerResponse{}, err
	}

	customer := models.Customer{
		OrganizationID: orgID,
		Name:           strings.TrimSpace(payload.Name),
		Email:          strings.TrimSpace(payload.Email),
		Phone:          strings.TrimSpace(payload.Phone),
	}
	if err := s.customers.Create(ctx, &customer); err != nil {
		return dto.CustomerResponse{}, err
	}

	return dto.NewCustomerResponse(customer), nil
}

func (s *directoryService) ListCustomers(ctx context.Context, orgID uint) ([]dto.CustomerResponse, error) {
	customers, err := s.customers.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return dto.NewCustomerResponseSlice(customers), nil
}

func (s *directoryService) DeleteCustomer(ctx context.Context, orgID, id uint) error {
	return s.customers.Delete(ctx, id, orgID)
}
