package booking

// Duration units accepted on booking requests.
const (
	UnitHours  = "hours"
	UnitDays   = "days"
	UnitWeeks  = "weeks"
	UnitMonths = "months"
)

const (
	daysPerWeek  = 7
	daysPerMonth = 30

	// offline dates are sold in 3-hour blocks; partial blocks round up
	offlineDateBlockHours = 3
)

type rateDenomination int

const (
	perHour rateDenomination = iota
	perDay
	perBlock3h
)

type serviceRate struct {
	basePrice    int64
	denomination rateDenomination
	restricted   bool
}

// serviceCatalog is the pricing table for every bookable companion service.
// Prices are in IDR.
var serviceCatalog = map[string]serviceRate{
	"rent-a-lover": {basePrice: 350000, denomination: perDay},
	"chat-buddy":   {basePrice: 150000, denomination: perDay},
	"virtual-date": {basePrice: 85000, denomination: perHour},
	"sleep-call":   {basePrice: 60000, denomination: perHour},
	"gamemate":     {basePrice: 50000, denomination: perHour},
	"offline-date": {basePrice: 500000, denomination: perBlock3h, restricted: true},
}

// BasePrice returns the catalog base price for one billing block of the
// service, or zero for an unknown id.
func BasePrice(serviceID string) int64 {
	return serviceCatalog[serviceID].basePrice
}

// IsRestricted reports whether a service may only be booked by customers who
// completed identity verification.
func IsRestricted(serviceID string) bool {
	return serviceCatalog[serviceID].restricted
}

// Price computes the total price for a service over a duration. Unknown
// service ids and unit/denomination mismatches price to zero; callers must
// treat zero as a data error, never as a free booking.
func Price(serviceID string, duration int64, unit string) int64 {
	rate, ok := serviceCatalog[serviceID]
	if !ok || duration <= 0 {
		return 0
	}

	switch rate.denomination {
	case perHour:
		if unit != UnitHours {
			return 0
		}
		return rate.basePrice * duration
	case perDay:
		days := toDays(duration, unit)
		if days == 0 {
			return 0
		}
		return rate.basePrice * days
	case perBlock3h:
		if unit != UnitHours {
			return 0
		}
		blocks := (duration + offlineDateBlockHours - 1) / offlineDateBlockHours
		return rate.basePrice * blocks
	}
	return 0
}

func toDays(duration int64, unit string) int64 {
	switch unit {
	case UnitDays:
		return duration
	case UnitWeeks:
		return duration * daysPerWeek
	case UnitMonths:
		return duration * daysPerMonth
	default:
		return 0
	}
}
