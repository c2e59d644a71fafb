package shopping

import (
	"context"
	"errors"

	"pantryplanner/domain"
	"pantryplanner/entities"
	"pantryplanner/pkg/engine"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ShoppingService interface {
		CreateList(ctx context.Context, req domain.CreateShoppingListRequest, userID string) (domain.ShoppingListResponse, error)
		GetLists(ctx context.Context, userID string) ([]domain.ShoppingListResponse, error)
		DeleteList(ctx context.Context, listID string, userID string) error
		AddItem(ctx context.Context, listID string, req domain.AddShoppingListItemRequest, userID string) (domain.ShoppingListItemResponse, error)
		UpdateItem(ctx context.Context, itemID string, req domain.UpdateShoppingListItemRequest, userID string) error
		DeleteItem(ctx context.Context, itemID string, userID string) error
	}

	shoppingService struct {
		shoppingRepository ShoppingRepository
	}
)

func NewShoppingService(shoppingRepository ShoppingRepository) ShoppingService {
	return &shoppingService{shoppingRepository: shoppingRepository}
}

func (s *shoppingService) CreateList(ctx context.Context, req domain.CreateShoppingListRequest, userID string) (domain.ShoppingListResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ShoppingListResponse{}, domain.ErrParseUUID
	}

	list := &entities.ShoppingList{
		ID:     uuid.New(),
		UserID: userUUID,
		Name:   req.Name,
	}

	if err := s.shoppingRepository.CreateList(ctx, list); err != nil {
		return domain.ShoppingListResponse{}, err
	}

	return domain.ShoppingListResponse{
		ID:        list.ID.String(),
		Name:      list.Name,
		Items:     []domain.ShoppingListItemResponse{},
		CreatedAt: list.CreatedAt,
	}, nil
}

func (s *shoppingService) GetLists(ctx context.Context, userID string) ([]domain.ShoppingListResponse, error) {
	lists, err := s.shoppingRepository.GetLists(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := make([]domain.ShoppingListResponse, 0, len(lists))
	for _, list := range lists {
		items, err := s.shoppingRepository.GetItemsByList(ctx, list.ID.String())
		if err != nil {
			return nil, err
		}

		itemResponses := make([]domain.ShoppingListItemResponse, 0, len(items))
		for _, item := range items {
			itemResponses = append(itemResponses, toItemResponse(item))
		}

		response = append(response, domain.ShoppingListResponse{
			ID:        list.ID.String(),
			Name:      list.Name,
			Items:     itemResponses,
			CreatedAt: list.CreatedAt,
		})
	}

	return response, nil
}

func (s *shoppingService) DeleteList(ctx context.Context, listID string, userID string) error {
	list, err := s.shoppingRepository.GetListByID(ctx, listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrShoppingListNotFound
		}
		return err
	}

	if list.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}

	return s.shoppingRepository.DeleteList(ctx, listID)
}

func (s *shoppingService) AddItem(ctx context.Context, listID string, req domain.AddShoppingListItemRequest, userID string) (domain.ShoppingListItemResponse, error) {
	list, err := s.shoppingRepository.GetListByID(ctx, listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ShoppingListItemResponse{}, domain.ErrShoppingListNotFound
		}
		return domain.ShoppingListItemResponse{}, err
	}

	if list.UserID.String() != userID {
		return domain.ShoppingListItemResponse{}, domain.ErrUnauthorizedAccess
	}

	item := &entities.ShoppingListItem{
		ID:          uuid.New(),
		ListID:      list.ID,
		UserID:      list.UserID,
		Name:        engine.CleanItemName(req.Name),
		Quantity:    req.Quantity,
		UnitMeasure: req.UnitMeasure,
	}

	if err := s.shoppingRepository.AddItem(ctx, item); err != nil {
		return domain.ShoppingListItemResponse{}, err
	}

	return toItemResponse(item), nil
}

func (s *shoppingService) UpdateItem(ctx context.Context, itemID string, req domain.UpdateShoppingListItemRequest, userID string) error {
	item, err := s.shoppingRepository.GetItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrShoppingListItemNotFound
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
		item.Quantity = req.Quantity
	}
	if req.CrossedOff != nil {
		item.CrossedOff = *req.CrossedOff
	}

	return s.shoppingRepository.UpdateItem(ctx, item)
}

func (s *shoppingService) DeleteItem(ctx context.Context, itemID string, userID string) error {
	item, err := s.shoppingRepository.GetItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrShoppingListItemNotFound
		}
		return err
	}

	if item.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}

	return s.shoppingRepository.DeleteItem(ctx, itemID)
}

func toItemResponse(item *entities.ShoppingListItem) domain.ShoppingListItemResponse {
	res := domain.ShoppingListItemResponse{
		ID:          item.ID.String(),
		ListID:      item.ListID.String(),
		Name:        item.Name,
		Quantity:    item.Quantity,
		UnitMeasure: item.UnitMeasure,
		CrossedOff:  item.CrossedOff,
		CreatedAt:   item.CreatedAt,
	}
	if item.SourceMealID != nil {
		res.SourceMealID = item.SourceMealID.String()
	}
	return res
}
