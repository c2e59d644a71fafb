package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pantryplanner/domain"
	"pantryplanner/entities"
	"pantryplanner/internal/utils/storage"
	"pantryplanner/pkg/engine"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	InventoryService interface {
		AddItem(ctx context.Context, req domain.AddInventoryItemRequest, userID string) (domain.InventoryItemResponse, error)
		UpdateItem(ctx context.Context, id string, req domain.UpdateInventoryItemRequest, userID string) error
		DeleteItem(ctx context.Context, id string, userID string) error
		GetItems(ctx context.Context, userID string, status string, page, limit int) ([]domain.InventoryItemResponse, int64, error)
		GetItemByID(ctx context.Context, id string, userID string) (domain.InventoryItemResponse, error)
		UploadItemImage(ctx context.Context, req domain.UploadItemImageRequest, userID string) error
	}

	inventoryService struct {
		inventoryRepository InventoryRepository
		s3                  storage.AwsS3
	}
)

func NewInventoryService(inventoryRepository InventoryRepository, s3 storage.AwsS3) InventoryService {
	return &inventoryService{
		inventoryRepository: inventoryRepository,
		s3:                  s3,
	}
}

func (s *inventoryService) AddItem(ctx context.Context, req domain.AddInventoryItemRequest, userID string) (domain.InventoryItemResponse, error) {
	if req.Quantity != nil && *req.Quantity < 0 {
		return domain.InventoryItemResponse{}, domain.ErrInvalidQuantity
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.InventoryItemResponse{}, domain.ErrParseUUID
	}

	var expiryDate *time.Time
	if req.ExpiryDate != "" {
		parsed, err := time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			return domain.InventoryItemResponse{}, domain.ErrInvalidExpiryDate
		}
		expiryDate = &parsed
	}

	item := &entities.InventoryItem{
		ID:            uuid.New(),
		UserID:        userUUID,
		Name:          engine.CleanItemName(req.Name),
		Quantity:      req.Quantity,
		UnitMeasure:   req.UnitMeasure,
		ExpiryDate:    expiryDate,
		Status:        DetermineStatus(expiryDate),
		AddedManually: true,
		UsedByMeals:   entities.StringSet{},
	}

	if err := s.inventoryRepository.AddItem(ctx, item); err != nil {
		return domain.InventoryItemResponse{}, err
	}

	return toResponse(item), nil
}

func (s *inventoryService) UpdateItem(ctx context.Context, id string, req domain.UpdateInventoryItemRequest, userID string) error {
	item, err := s.inventoryRepository.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrInventoryItemNotFound
		}
		return err
	}

	if item.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}

	if req.Name != "" {
		item.Name = engine.CleanItemName(req.Name)
	}

	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return domain.ErrInvalidQuantity
		}
		item.Quantity = req.Quantity
	}

	if req.UnitMeasure != "" {
		item.UnitMeasure = req.UnitMeasure
	}

	if req.ExpiryDate != "" {
		expiryDate, err := time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			return domain.ErrInvalidExpiryDate
		}
		item.ExpiryDate = &expiryDate
		item.Status = DetermineStatus(&expiryDate)
	}

	return s.inventoryRepository.UpdateItem(ctx, item)
}

func (s *inventoryService) DeleteItem(ctx context.Context, id string, userID string) error {
	item, err := s.inventoryRepository.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrInventoryItemNotFound
		}
		return err
	}

	if item.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}

	if item.ImageURL != "" {
		objectKey := s.s3.GetObjectKeyFromLink(item.ImageURL)
		if objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	return s.inventoryRepository.DeleteItem(ctx, id)
}

func (s *inventoryService) GetItems(ctx context.Context, userID string, status string, page, limit int) ([]domain.InventoryItemResponse, int64, error) {
	items, count, err := s.inventoryRepository.GetItems(ctx, userID, status, page, limit)
	if err != nil {
		return nil, 0, err
	}

	response := make([]domain.InventoryItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toResponse(item))
	}

	return response, count, nil
}

func (s *inventoryService) GetItemByID(ctx context.Context, id string, userID string) (domain.InventoryItemResponse, error) {
	item, err := s.inventoryRepository.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.InventoryItemResponse{}, domain.ErrInventoryItemNotFound
		}
		return domain.InventoryItemResponse{}, err
	}

	if item.UserID.String() != userID {
		return domain.InventoryItemResponse{}, domain.ErrUnauthorizedAccess
	}

	return toResponse(item), nil
}

func (s *inventoryService) UploadItemImage(ctx context.Context, req domain.UploadItemImageRequest, userID string) error {
	item, err := s.inventoryRepository.GetItemByID(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrInventoryItemNotFound
		}
		return err
	}

	if item.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}

	fileName := fmt.Sprintf("inventory-item-%s", item.ID.String())
	var objectKey string
	var uploadErr error

	if item.ImageURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(item.ImageURL)
		if existingKey != "" {
			objectKey, uploadErr = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
		} else {
			objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "inventory-items", storage.AllowImage...)
		}
	} else {
		objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "inventory-items", storage.AllowImage...)
	}

	if uploadErr != nil {
		return uploadErr
	}

	item.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	return s.inventoryRepository.UpdateItem(ctx, item)
}

// DetermineStatus derives the expiry status for a pantry item. Items
// with no expiry date are always Safe; the warning window is three
// days.
func DetermineStatus(expiryDate *time.Time) string {
	if expiryDate == nil {
		return "Safe"
	}

	now := time.Now()
	if expiryDate.Before(now) {
		return "Expired"
	}

	warningThreshold := now.AddDate(0, 0, 3)
	if expiryDate.Before(warningThreshold) {
		return "Warning"
	}

	return "Safe"
}

func toResponse(item *entities.InventoryItem) domain.InventoryItemResponse {
	return domain.InventoryItemResponse{
		ID:          item.ID.String(),
		Name:        item.Name,
		Quantity:    item.Quantity,
		UnitMeasure: item.UnitMeasure,
		ExpiryDate:  item.ExpiryDate,
		Status:      item.Status,
		ImageURL:    item.ImageURL,
		UsedByMeals: item.UsedByMeals,
		CreatedAt:   item.CreatedAt,
	}
}
