package payment

// PaymentStatus is the internal lifecycle of a transaction. Terminal statuses
// are never revisited by a correctly-functioning provider, which is what makes
// the last-write-wins notification handling safe.
type PaymentStatus string

const (
	StatusPending   PaymentStatus = "pending"
	StatusPaid      PaymentStatus = "paid"
	StatusChallenge PaymentStatus = "challenge"
	StatusFailed    PaymentStatus = "failed"
	StatusRefunded  PaymentStatus = "refunded"
	StatusUnknown   PaymentStatus = "unknown"
)

func (s PaymentStatus) IsTerminal() bool {
	switch s {
	case StatusPaid, StatusFailed, StatusRefunded:
		return true
	}
	return false
}

type FraudStatus string

const (
	FraudAccept    FraudStatus = "accept"
	FraudChallenge FraudStatus = "challenge"
	FraudDeny      FraudStatus = "deny"
)

type ProviderStatusKind string

const (
	ProviderCapture      ProviderStatusKind = "capture"
	ProviderSettlement   ProviderStatusKind = "settlement"
	ProviderPending      ProviderStatusKind = "pending"
	ProviderDeny         ProviderStatusKind = "deny"
	ProviderCancel       ProviderStatusKind = "cancel"
	ProviderExpire       ProviderStatusKind = "expire"
	ProviderRefund       ProviderStatusKind = "refund"
	ProviderUnrecognized ProviderStatusKind = "unrecognized"
)

// ProviderStatus models the provider's notification status as a tagged value:
// only a capture carries a meaningful fraud sub-status, everything else stands
// on its own.
type ProviderStatus struct {
	Kind  ProviderStatusKind
	Fraud FraudStatus
}

func ParseProviderStatus(transactionStatus, fraudStatus string) ProviderStatus {
	switch ProviderStatusKind(transactionStatus) {
	case ProviderCapture:
		return ProviderStatus{Kind: ProviderCapture, Fraud: FraudStatus(fraudStatus)}
	case ProviderSettlement:
		return ProviderStatus{Kind: ProviderSettlement}
	case ProviderPending:
		return ProviderStatus{Kind: ProviderPending}
	case ProviderDeny:
		return ProviderStatus{Kind: ProviderDeny}
	case ProviderCancel:
		return ProviderStatus{Kind: ProviderCancel}
	case ProviderExpire:
		return ProviderStatus{Kind: ProviderExpire}
	case ProviderRefund:
		return ProviderStatus{Kind: ProviderRefund}
	default:
		return ProviderStatus{Kind: ProviderUnrecognized}
	}
}

// PaymentStatus maps the provider status onto the internal state machine.
// A capture is only a success once fraud review accepted it; settlement
// already implies fraud clearance upstream and is unconditionally paid.
func (ps ProviderStatus) PaymentStatus() PaymentStatus {
	switch ps.Kind {
	case ProviderCapture:
		switch ps.Fraud {
		case FraudAccept:
			return StatusPaid
		case FraudChallenge:
			return StatusChallenge
		case FraudDeny:
			return StatusFailed
		default:
			return StatusUnknown
		}
	case ProviderSettlement:
		return StatusPaid
	case ProviderPending:
		return StatusPending
	case ProviderDeny, ProviderCancel, ProviderExpire:
		return StatusFailed
	case ProviderRefund:
		return StatusRefunded
	default:
		return StatusUnknown
	}
}
