package booking

import (
	"github.com/lumenstudio/lumen-api/internal/domain/catalog"
	"github.com/lumenstudio/lumen-api/internal/domain/location"
)

// Quote totals a booking: package price plus selected add-ons plus the
// location fee. A missing location or a non-positive fee contributes
// nothing.
func Quote(pkg *catalog.Package, addons []catalog.Addon, loc *location.Location) float64 {
	total := 0.0
	if pkg != nil {
		total += pkg.Price
	}
	for _, a := range addons {
		total += a.Price
	}
	if loc != nil && loc.ExtraFee > 0 {
		total += loc.ExtraFee
	}
	return total
}
