package sales

import (
	"time"

	"github.com/mynet/sales/internal/domain/identity"
	"github.com/mynet/sales/internal/domain/shared"
)

// ErrEditWindowClosed is returned when a subsidiary writes outside the current month
var ErrEditWindowClosed = shared.NewDomainError("EDIT_WINDOW_CLOSED", "Sales can only be edited within the current month")

// EditWindow decides whether a sales date may still be edited. Only the
// subsidiary tier is restricted, and only to the current calendar month of
// the business location.
type EditWindow struct {
	clock    shared.Clock
	location *time.Location
}

// NewEditWindow creates an edit window evaluated in loc
func NewEditWindow(clock shared.Clock, loc *time.Location) *EditWindow {
	return &EditWindow{clock: clock, location: loc}
}

// IsCurrentMonth reports whether date falls in the current month
func (w *EditWindow) IsCurrentMonth(date time.Time) bool {
	today := shared.Today(w.clock, w.location)
	return shared.YearMonthOf(today).Contains(date)
}

// Check returns ErrEditWindowClosed when tier may not edit date
func (w *EditWindow) Check(tier identity.PermissionTier, date time.Time) error {
	if tier != identity.TierSubsidiary {
		return nil
	}
	if !w.IsCurrentMonth(date) {
		return ErrEditWindowClosed
	}
	return nil
}
