package handler

import (
	"net/http"
	"strings"

	"statusgate/internal/status/models"
)

// Envelope is the transport-agnostic shape of a resolution result.
type Envelope struct {
	StatusCode int
	Body       Body
}

type Body struct {
	SubjectID string `json:"mobile_number"`
	Message   string `json:"message"`
	ColorCode string `json:"colour,omitempty"`
}

// FromOutcome maps every outcome kind to its envelope. Input and terminal
// results are all 200; the HTTP code only signals infrastructure trouble.
func FromOutcome(o models.Outcome) Envelope {
	body := Body{SubjectID: o.SubjectID, Message: o.Message, ColorCode: o.ColorCode}

	switch o.Kind {
	case models.OutcomeSuccess, models.OutcomePending, models.OutcomeRejected, models.OutcomeInvalidInput:
		return Envelope{StatusCode: http.StatusOK, Body: body}
	case models.OutcomeUpstreamFailure:
		return Envelope{StatusCode: http.StatusBadGateway, Body: body}
	case models.OutcomeIntegrityFailure:
		return Envelope{StatusCode: http.StatusInternalServerError, Body: body}
	default:
		return Envelope{StatusCode: http.StatusInternalServerError, Body: Body{SubjectID: o.SubjectID, Message: "internal error"}}
	}
}

const (
	bulkAllUploaded  = "Succesfully uploaded all numbers"
	bulkFailedPrefix = "Failed to add upload numbers: "
)

// BulkStatusResponse reports which numbers could not be queued.
type BulkStatusResponse struct {
	Message string   `json:"message"`
	Queued  int      `json:"queued"`
	Failed  []string `json:"failed,omitempty"`
}

func bulkResponse(queued int, failed []string) BulkStatusResponse {
	if len(failed) == 0 {
		return BulkStatusResponse{Message: bulkAllUploaded, Queued: queued}
	}
	return BulkStatusResponse{
		Message: bulkFailedPrefix + strings.Join(failed, ","),
		Queued:  queued,
		Failed:  failed,
	}
}
