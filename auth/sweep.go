package auth

import (
	"context"
	"time"

	"github.com/junaidrashid-git/kataplum-api/cart"
	"github.com/junaidrashid-git/kataplum-api/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// SweepExpiredGuests removes guest sessions that expired before now, along
// with their carts. It returns how many sessions were removed.
func SweepExpiredGuests(ctx context.Context, db *gorm.DB, carts *cart.Registry, now time.Time) (int, error) {
	var expired []models.GuestUser
	if err := db.WithContext(ctx).Where("expires_at < ?", now).Find(&expired).Error; err != nil {
		return 0, errors.Wrap(err, "list expired guests")
	}
	if len(expired) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(expired))
	for _, g := range expired {
		carts.Drop(ctx, g.ID)
		ids = append(ids, g.ID)
	}

	if err := db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.GuestUser{}).Error; err != nil {
		return 0, errors.Wrap(err, "delete expired guests")
	}
	return len(ids), nil
}
