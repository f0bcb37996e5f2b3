package health

import (
	"context"
	"runtime"

	"github.com/go-faster/errors"
)

// GoroutineCountCheck fails when more than threshold goroutines are running.
func GoroutineCountCheck(threshold int) CheckFunc {
	return func(context.Context) error {
		if n := runtime.NumGoroutine(); n > threshold {
			return errors.Errorf("goroutine count %d exceeds threshold %d", n, threshold)
		}
		return nil
	}
}

// CatalogCounter reports how many entries a catalog holds.
type CatalogCounter interface {
	Len() (products, articles int)
}

// CatalogCheck fails until the catalog holds at least minEntries entries.
func CatalogCheck(c CatalogCounter, minEntries int) CheckFunc {
	return func(context.Context) error {
		products, articles := c.Len()
		if total := products + articles; total < minEntries {
			return errors.Errorf("catalog has %d entries, want at least %d", total, minEntries)
		}
		return nil
	}
}
