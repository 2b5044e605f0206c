package inventory

import (
	"testing"
	"time"

	"github.com/medicore/hms-api/internal/domain/enum"
)

func TestClassify(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 30, 0, 0, time.UTC)
	window := DefaultExpiryWindow

	tests := []struct {
		name         string
		quantity     int
		minThreshold int
		expiry       time.Time
		want         enum.StockStatus
	}{
		{"healthy stock", 100, 50, now.AddDate(1, 0, 0), enum.StockStatusAvailable},
		{"at threshold is low", 50, 50, now.AddDate(1, 0, 0), enum.StockStatusLowStock},
		{"below threshold", 10, 50, now.AddDate(1, 0, 0), enum.StockStatusLowStock},
		{"zero quantity", 0, 50, now.AddDate(1, 0, 0), enum.StockStatusOutOfStock},
		{"expired yesterday", 100, 50, now.AddDate(0, 0, -1), enum.StockStatusExpired},
		{"expiring in ten days beats low stock", 100, 50, now.AddDate(0, 0, 10), enum.StockStatusExpiringSoon},
		{"expiring in ten days with healthy stock", 1000, 50, now.AddDate(0, 0, 10), enum.StockStatusExpiringSoon},
		{"expired beats out of stock", 0, 50, now.AddDate(0, 0, -1), enum.StockStatusExpired},
		{"out of stock beats expiring soon", 0, 50, now.AddDate(0, 0, 10), enum.StockStatusOutOfStock},
		{"expiring today is not expired", 100, 5, now, enum.StockStatusExpiringSoon},
		{"just outside the window", 100, 5, now.AddDate(0, 0, 31), enum.StockStatusAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.quantity, tt.minThreshold, tt.expiry, window, now)
			if got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyPrecedenceHolds(t *testing.T) {
	// Exhaustive-ish sweep: expired must win regardless of quantity,
	// out_of_stock must win over expiring_soon and low_stock.
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	expired := now.AddDate(0, 0, -5)

	for _, qty := range []int{0, 1, 50, 10000} {
		for _, threshold := range []int{0, 1, 100} {
			if got := Classify(qty, threshold, expired, DefaultExpiryWindow, now); got != enum.StockStatusExpired {
				t.Errorf("Classify(qty=%d, thr=%d, expired) = %v, want expired", qty, threshold, got)
			}
		}
	}

	soon := now.AddDate(0, 0, 3)
	if got := Classify(0, 10, soon, DefaultExpiryWindow, now); got != enum.StockStatusOutOfStock {
		t.Errorf("Classify(0, soon expiry) = %v, want out_of_stock", got)
	}
}
