// Package inventory classifies medicine stock into display statuses.
package inventory

import (
	"time"

	"github.com/medicore/hms-api/internal/domain/enum"
)

// DefaultExpiryWindow is the lead time within which a medicine is flagged
// as expiring soon, unless overridden by hospital settings.
const DefaultExpiryWindow = 30 * 24 * time.Hour

// Classify derives a medicine's stock status from quantity, threshold and
// expiry. Precedence, first match wins:
//
//	expired > out_of_stock > expiring_soon > low_stock > available
//
// Expiry is compared at day granularity: a medicine expiring today is not
// yet expired.
func Classify(quantity, minThreshold int, expiry time.Time, window time.Duration, now time.Time) enum.StockStatus {
	today := dayStart(now)
	expiryDay := dayStart(expiry)

	switch {
	case expiryDay.Before(today):
		return enum.StockStatusExpired
	case quantity == 0:
		return enum.StockStatusOutOfStock
	case !expiryDay.After(today.Add(window)):
		return enum.StockStatusExpiringSoon
	case quantity <= minThreshold:
		return enum.StockStatusLowStock
	default:
		return enum.StockStatusAvailable
	}
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
