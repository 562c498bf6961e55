package utils

import (
	"fmt"
	"time"
)

// Late-fee policy: $0.50/day for the first week overdue, $1.00/day after
// that, capped at $15.00 per book. Amounts are integer cents.
const (
	FeeCapCents        int32 = 1500
	firstTierRateCents int32 = 50
	extraTierRateCents int32 = 100
	firstTierDays            = 7
)

// DaysOverdue returns the number of whole days now is past dueDate, or 0
// when the due date has not passed. Partial days do not count.
func DaysOverdue(dueDate, now time.Time) int {
	if !dueDate.Before(now) {
		return 0
	}
	return int(now.Sub(dueDate) / (24 * time.Hour))
}

// LateFeeCents computes the tiered late fee for the given number of whole
// days overdue. Exactly 7 days stays in the first tier ($3.50); day 8
// onward adds $1.00/day on top of the flat first-week portion.
func LateFeeCents(daysOverdue int) int32 {
	if daysOverdue <= 0 {
		return 0
	}
	if daysOverdue <= firstTierDays {
		return int32(daysOverdue) * firstTierRateCents
	}
	fee := int32(firstTierDays)*firstTierRateCents + int32(daysOverdue-firstTierDays)*extraTierRateCents
	if fee > FeeCapCents {
		fee = FeeCapCents
	}
	return fee
}

// FormatCents renders an amount of cents as a two-decimal dollar figure
// without the currency sign, e.g. 650 -> "6.50".
func FormatCents(cents int32) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
