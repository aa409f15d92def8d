package models

// OutcomeKind tags the result of one resolution.
type OutcomeKind string

const (
	OutcomeSuccess          OutcomeKind = "success"
	OutcomePending          OutcomeKind = "pending"
	OutcomeRejected         OutcomeKind = "rejected"
	OutcomeInvalidInput     OutcomeKind = "invalid_input"
	OutcomeUpstreamFailure  OutcomeKind = "upstream_failure"
	OutcomeIntegrityFailure OutcomeKind = "integrity_failure"
)

// User-facing messages.
const (
	MessagePending        = "Please wait for user to approve request"
	MessageRejected       = "User has denied request. Please make a new request"
	MessageInvalidInput   = "Invalid mobile number. Expected format +91XXXXXXXXXX"
	MessageTokenFailure   = "Failed to get token from status provider. Please try again"
	MessageRequestFailure = "Failed to get request id from status provider. Please try again"
	MessageStatusFailure  = "Failed to get status from status provider. Please try again"
	MessageIntegrity      = "Failed to verify status from status provider"
)

// Outcome is what Resolve returns. SubjectID echoes the caller's input, so
// it is the raw string even when the input failed validation.
type Outcome struct {
	Kind      OutcomeKind
	SubjectID string
	Message   string
	ColorCode string
}

func Success(subject, message, color string) Outcome {
	return Outcome{Kind: OutcomeSuccess, SubjectID: subject, Message: message, ColorCode: color}
}

func Pending(subject string) Outcome {
	return Outcome{Kind: OutcomePending, SubjectID: subject, Message: MessagePending}
}

func Rejected(subject string) Outcome {
	return Outcome{Kind: OutcomeRejected, SubjectID: subject, Message: MessageRejected, ColorCode: NeutralColor}
}

func InvalidInput(subject string) Outcome {
	return Outcome{Kind: OutcomeInvalidInput, SubjectID: subject, Message: MessageInvalidInput}
}

func UpstreamFailure(subject, message string) Outcome {
	return Outcome{Kind: OutcomeUpstreamFailure, SubjectID: subject, Message: message}
}

func IntegrityFailure(subject string) Outcome {
	return Outcome{Kind: OutcomeIntegrityFailure, SubjectID: subject, Message: MessageIntegrity}
}
