package services

import (
	"context"
	"errors"
	"math"
	"strings"

	"techtrek/models"

	"gorm.io/gorm"
)

// TaxRate is applied to the cart subtotal.
const TaxRate = 0.10

// CartToken scopes cart rows to one browser session. It is unrelated to the
// authenticated user id.
type CartToken string

type AddToCartRequest struct {
	PlanType string  `form:"plan_type"`
	Price    float64 `form:"plan_price"`
}

type RemoveFromCartRequest struct {
	ItemID uint `form:"item_id"`
}

type CartSummary struct {
	Items    []models.CartItem `json:"cart_items"`
	Subtotal float64           `json:"subtotal"`
	Tax      float64           `json:"tax"`
	Total    float64           `json:"total"`
}

// Totals derives subtotal, tax and total from items without rounding.
func Totals(items []models.CartItem) (subtotal, tax, total float64) {
	for _, item := range items {
		subtotal += item.Price
	}
	tax = subtotal * TaxRate
	return subtotal, tax, subtotal + tax
}

type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// AddItem inserts planType for token. It reports false, without changes,
// when the plan is already in the cart.
func (s *CartService) AddItem(ctx context.Context, token CartToken, req AddToCartRequest) (bool, error) {
	planType := strings.TrimSpace(req.PlanType)
	if planType == "" {
		return false, invalid(ErrInvalidInput, map[string]string{"plan_type": "Plan type is required."})
	}
	if req.Price < 0 || math.IsInf(req.Price, 0) || math.IsNaN(req.Price) {
		return false, invalid(ErrInvalidInput, map[string]string{"plan_price": "Price must be a finite, non-negative number."})
	}

	db := s.db.WithContext(ctx)

	var existing models.CartItem
	err := db.Where("user_session = ? AND plan_type = ?", string(token), planType).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, persistence("lookup cart item", err)
	}

	item := models.CartItem{PlanType: planType, Price: req.Price, UserSession: string(token)}
	if err := db.Create(&item).Error; err != nil {
		return false, persistence("create cart item", err)
	}
	return true, nil
}

// RemoveItem deletes the item when it belongs to token. An item owned by
// another token is left untouched and no error is returned.
func (s *CartService) RemoveItem(ctx context.Context, token CartToken, itemID uint) error {
	db := s.db.WithContext(ctx)

	var item models.CartItem
	if err := db.First(&item, itemID).Error; err != nil {
		return persistence("load cart item", err)
	}
	if token == "" || item.UserSession != string(token) {
		return nil
	}
	if err := db.Delete(&item).Error; err != nil {
		return persistence("delete cart item", err)
	}
	return nil
}

// Items lists the cart rows of token in insertion order.
func (s *CartService) Items(ctx context.Context, token CartToken) ([]models.CartItem, error) {
	items := []models.CartItem{}
	err := s.db.WithContext(ctx).Where("user_session = ?", string(token)).Order("id").Find(&items).Error
	if err != nil {
		return nil, persistence("list cart items", err)
	}
	return items, nil
}

func (s *CartService) Summary(ctx context.Context, token CartToken) (*CartSummary, error) {
	items, err := s.Items(ctx, token)
	if err != nil {
		return nil, err
	}
	subtotal, tax, total := Totals(items)
	return &CartSummary{Items: items, Subtotal: subtotal, Tax: tax, Total: total}, nil
}

// Checkout is not implemented: it neither clears the cart nor charges anything.
func (s *CartService) Checkout(ctx context.Context, token CartToken) error {
	return nil
}
