package models

// RequestState is the provider's view of a submitted request. Any value the
// provider sends other than Pending or Approved maps to Rejected, so an
// unexpected string is indistinguishable from an explicit denial.
type RequestState int

const (
	RequestStateRejected RequestState = iota
	RequestStatePending
	RequestStateApproved
)

// ParseRequestState never fails; unknown values are rejections.
func ParseRequestState(raw string) RequestState {
	switch raw {
	case "Pending":
		return RequestStatePending
	case "Approved":
		return RequestStateApproved
	default:
		return RequestStateRejected
	}
}

func (s RequestState) String() string {
	switch s {
	case RequestStatePending:
		return "Pending"
	case RequestStateApproved:
		return "Approved"
	default:
		return "Rejected"
	}
}

// IsTerminal is true for every state except Pending.
func (s RequestState) IsTerminal() bool {
	return s != RequestStatePending
}
