package domain

// FeeResult reports the late fee owed on a single active loan. FeeCents is
// capped per book; Status is a human-readable summary and is never parsed
// by callers.
type FeeResult struct {
	FeeCents    int32  `json:"fee_cents"`
	DaysOverdue int    `json:"days_overdue"`
	Status      string `json:"status"`
}
