package domain

// Outcome is the result of a catalog or lending operation. Message texts
// are part of the service contract and are returned verbatim to callers.
type Outcome struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// PaymentOutcome is the result of a late-fee payment attempt.
// TransactionID is empty unless the gateway approved the charge.
type PaymentOutcome struct {
	OK            bool   `json:"ok"`
	Message       string `json:"message"`
	TransactionID string `json:"transaction_id,omitempty"`
}

// PaymentConfirmation is the gateway's answer to a charge or refund
// request. A declined request still yields a confirmation (Approved false);
// transport failures surface as errors instead.
type PaymentConfirmation struct {
	Approved      bool   `json:"approved"`
	TransactionID string `json:"transaction_id"`
	Message       string `json:"message"`
}
