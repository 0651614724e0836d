package services

import (
	"math"

	"catering_app_go/models"
)

// priceEpsilon is the tolerance under which two currency amounts count as equal.
// Recomputing a total within this tolerance must not rewrite it, otherwise every
// recalculation would trigger another autosave cycle.
const priceEpsilon = 0.01

// RoundCurrency rounds to 2-decimal currency units, half away from zero
func RoundCurrency(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// MenuReferenceTotal computes the reference price of a menu-mode option:
// the sum over selected courses of the per-course override price, falling back
// to the catalog dish price, multiplied by the guest count, plus the wine
// pairing per-head price when enabled.
//
// The result is never written back to TotalAmount. Menu-mode totals stay
// manually editable and may diverge from this figure (e.g. a group discount);
// the console surfaces the discrepancy via PriceDiverges.
func MenuReferenceTotal(option *models.ProposalOption, dishPriceByID map[string]float64) (float64, error) {
	sel, err := option.Selection()
	if err != nil {
		return 0, err
	}

	var perHead float64
	for _, course := range sel.Courses {
		switch {
		case course.PriceOverride != nil:
			perHead += *course.PriceOverride
		case course.DishID != nil:
			perHead += dishPriceByID[*course.DishID]
		}
		// free-text courses without an override contribute 0
	}

	total := perHead * float64(option.GuestCount)
	if sel.WinePairing {
		total += sel.WinePairingPricePerHead * float64(option.GuestCount)
	}
	return RoundCurrency(total), nil
}

// PackageTotal computes the price of a package for the given guest count.
// Flat packages cost the base price regardless of guests; tiered packages cover
// IncludedGuests with the base price and add PricePerExtraGuest per guest beyond.
func PackageTotal(pkg *models.MenuPackage, guestCount int) float64 {
	if pkg == nil {
		return 0
	}

	total := pkg.BasePrice
	if pkg.IsTiered() && guestCount > pkg.IncludedGuests {
		total += float64(guestCount-pkg.IncludedGuests) * pkg.PricePerExtraGuest
	}
	return RoundCurrency(total)
}

// RecalculatePackageTotal derives and writes the package-mode total onto the
// option, overwriting any manual edit. Returns true when TotalAmount actually
// changed. Recomputing with unchanged inputs is a no-op.
func RecalculatePackageTotal(option *models.ProposalOption, pkg *models.MenuPackage) bool {
	if option.Mode != models.OptionModePackage {
		return false
	}

	total := PackageTotal(pkg, option.GuestCount)
	if math.Abs(total-option.TotalAmount) <= priceEpsilon {
		return false
	}
	option.TotalAmount = total
	return true
}

// PriceDiverges reports whether a manually edited total differs from the
// computed reference total by more than the currency tolerance
func PriceDiverges(manual, reference float64) bool {
	return math.Abs(manual-reference) > priceEpsilon
}
