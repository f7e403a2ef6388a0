package cartstore

import (
	"context"
	"sort"
	"time"

	"github.com/junaidrashid-git/kataplum-api/cart"
	"github.com/junaidrashid-git/kataplum-api/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormCartStore keeps cart snapshots in the guest_carts tables.
type GormCartStore struct {
	db *gorm.DB
}

func NewGormCartStore(db *gorm.DB) *GormCartStore {
	return &GormCartStore{db: db}
}

func (g *GormCartStore) Load(ctx context.Context, sessionID string) ([]cart.LineItem, error) {
	var gc models.GuestCart
	err := g.db.WithContext(ctx).Preload("Items").Where("guest_id = ?", sessionID).First(&gc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load guest cart %s", sessionID)
	}

	sort.SliceStable(gc.Items, func(i, j int) bool { return gc.Items[i].Position < gc.Items[j].Position })

	items := make([]cart.LineItem, 0, len(gc.Items))
	for _, it := range gc.Items {
		items = append(items, cart.LineItem{
			ID:          it.ProductID,
			Name:        it.Name,
			Description: it.Description,
			ImageURL:    it.Image,
			Category:    it.Category,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return items, nil
}

// Save replaces the stored lines with items in one transaction.
func (g *GormCartStore) Save(ctx context.Context, sessionID string, items []cart.LineItem) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var gc models.GuestCart
		err := tx.Where("guest_id = ?", sessionID).First(&gc).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			gc = models.GuestCart{GuestID: sessionID}
			if err := tx.Create(&gc).Error; err != nil {
				return errors.Wrap(err, "create guest cart")
			}
		} else if err != nil {
			return errors.Wrap(err, "fetch guest cart")
		}

		if err := tx.Where("cart_id = ?", gc.CartID).Delete(&models.GuestCartItem{}).Error; err != nil {
			return errors.Wrap(err, "clear guest cart items")
		}
		if len(items) == 0 {
			return tx.Model(&gc).Update("updated_at", time.Now()).Error
		}

		now := time.Now()
		rows := make([]models.GuestCartItem, 0, len(items))
		for i, it := range items {
			rows = append(rows, models.GuestCartItem{
				CartID:      gc.CartID,
				Position:    i,
				ProductID:   it.ID,
				Name:        it.Name,
				Description: it.Description,
				Image:       it.ImageURL,
				Category:    it.Category,
				UnitPrice:   it.UnitPrice,
				Quantity:    it.Quantity,
				AddedAt:     now,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return errors.Wrap(err, "insert guest cart items")
		}
		return tx.Model(&gc).Update("updated_at", now).Error
	})
}

func (g *GormCartStore) Delete(ctx context.Context, sessionID string) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var gc models.GuestCart
		err := tx.Where("guest_id = ?", sessionID).First(&gc).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "fetch guest cart")
		}
		if err := tx.Where("cart_id = ?", gc.CartID).Delete(&models.GuestCartItem{}).Error; err != nil {
			return errors.Wrap(err, "delete guest cart items")
		}
		return errors.Wrap(tx.Delete(&gc).Error, "delete guest cart")
	})
}
