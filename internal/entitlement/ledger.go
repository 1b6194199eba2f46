package entitlement

import (
	"fmt"
	"sync"
	"time"

	"github.com/osse101/CineLoot_Go/internal/domain"
)

// Ledger applies the daily spin budget rules to a SpinEntitlement.
// It never touches storage; callers persist whatever it mutates.
type Ledger struct {
	clock           func() time.Time
	defaultLocation *time.Location
	zones           sync.Map // tz name -> zone
}

// zone is a resolved tz name; unknown names resolve to the default location
type zone struct {
	loc   *time.Location
	known bool
}

// NewLedger uses the wall clock. defaultLocation applies to users with no
// timezone, or an unknown one; nil means UTC.
func NewLedger(defaultLocation *time.Location) *Ledger {
	return NewLedgerWithClock(time.Now, defaultLocation)
}

// NewLedgerWithClock is used by tests to control "today"
func NewLedgerWithClock(clock func() time.Time, defaultLocation *time.Location) *Ledger {
	if defaultLocation == nil {
		defaultLocation = time.UTC
	}
	return &Ledger{clock: clock, defaultLocation: defaultLocation}
}

// ValidateTimezone accepts an IANA zone name or "" (use the default)
func ValidateTimezone(name string) error {
	if name == "" {
		return nil
	}
	if _, err := time.LoadLocation(name); err != nil {
		return fmt.Errorf("%w: %q", domain.ErrInvalidTimezone, name)
	}
	return nil
}

// DefaultLocation is the zone used when a user has none
func (l *Ledger) DefaultLocation() *time.Location {
	return l.defaultLocation
}

// Location resolves the user's zone, falling back to the default
func (l *Ledger) Location(ent domain.SpinEntitlement) *time.Location {
	if ent.Timezone == "" {
		return l.defaultLocation
	}
	return l.zone(ent.Timezone).loc
}

// KnownTimezone reports whether ent's zone resolves without the fallback
func (l *Ledger) KnownTimezone(ent domain.SpinEntitlement) bool {
	return ent.Timezone == "" || l.zone(ent.Timezone).known
}

// zone loads name once; unknown names are cached as the default location
func (l *Ledger) zone(name string) zone {
	if z, ok := l.zones.Load(name); ok {
		return z.(zone)
	}
	z := zone{loc: l.defaultLocation}
	if loc, err := time.LoadLocation(name); err == nil {
		z = zone{loc: loc, known: true}
	}
	l.zones.Store(name, z)
	return z
}

// Today is the civil date in the user's zone
func (l *Ledger) Today(ent domain.SpinEntitlement) string {
	return l.clock().In(l.Location(ent)).Format(domain.CivilDateLayout)
}

// Refresh starts a new day once today has moved past the stored reset date.
// Calling it again on the same day is a no-op, and a date that moved
// backwards never resets. CivilDateLayout strings order like the dates.
func (l *Ledger) Refresh(ent *domain.SpinEntitlement) bool {
	today := l.Today(*ent)
	if today <= ent.DailyResetDate {
		return false
	}
	ent.DailySpinsUsed = 0
	ent.DailyResetDate = today
	return true
}

// ChangeTimezone moves ent to the named zone. The current day is settled in
// the old zone first, then its usage carries over to today in the new zone,
// so switching zones never opens a fresh budget by itself.
func (l *Ledger) ChangeTimezone(ent *domain.SpinEntitlement, name string) {
	l.Refresh(ent)
	ent.Timezone = name
	ent.DailyResetDate = l.Today(*ent)
}

// CheckAndReserve refreshes the day and fails with DailyLimitError when the
// daily budget is spent and no override spins are banked. Nothing is consumed.
func (l *Ledger) CheckAndReserve(ent *domain.SpinEntitlement, dailyLimit int) error {
	l.Refresh(ent)
	if ent.DailySpinsUsed >= dailyLimit && ent.AdminOverrideSpins <= 0 {
		return domain.DailyLimitError{UserID: ent.UserID, ResetAt: l.NextResetAt(*ent)}
	}
	return nil
}

// Commit consumes one spin. Override spins are spent before the daily budget.
func (l *Ledger) Commit(ent *domain.SpinEntitlement) {
	if ent.AdminOverrideSpins > 0 {
		ent.AdminOverrideSpins--
		return
	}
	ent.DailySpinsUsed++
}

// Remaining is what the user can still spin today, override spins included
func (l *Ledger) Remaining(ent domain.SpinEntitlement, dailyLimit int) int {
	return max(0, dailyLimit-ent.DailySpinsUsed) + ent.AdminOverrideSpins
}

// NextResetAt is the next local midnight in the user's zone
func (l *Ledger) NextResetAt(ent domain.SpinEntitlement) time.Time {
	loc := l.Location(ent)
	y, m, d := l.clock().In(loc).Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, loc)
}

// Grant banks amount override spins. There is no upper bound.
func (l *Ledger) Grant(ent *domain.SpinEntitlement, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: got %d", domain.ErrInvalidAmount, amount)
	}
	ent.AdminOverrideSpins += amount
	return nil
}

// Status projects ent as of now, applying the day rollover to a copy only
func (l *Ledger) Status(ent domain.SpinEntitlement, dailyLimit int) domain.SpinStatus {
	l.Refresh(&ent)
	return domain.SpinStatus{
		Used:          ent.DailySpinsUsed,
		Remaining:     l.Remaining(ent, dailyLimit),
		DailyLimit:    dailyLimit,
		AdminOverride: ent.AdminOverrideSpins,
		ResetDate:     ent.DailyResetDate,
		NextResetAt:   l.NextResetAt(ent),
		Timezone:      l.Location(ent).String(),
	}
}
