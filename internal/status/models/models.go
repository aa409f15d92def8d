// Package models holds the records and result types of status resolution.
package models

import (
	"time"

	"statusgate/pkg/domain"
)

// Classification of a terminal provider decision.
type Classification string

const (
	ClassificationApproved Classification = "Approved"
	ClassificationRejected Classification = "Rejected"
)

// NeutralColor is stored for rejections, which carry no provider payload.
const NeutralColor = "#FFFFFF"

// ResolvedStatus is the cached terminal result for a subject.
type ResolvedStatus struct {
	SubjectID      domain.SubjectID `json:"subject_id"`
	Message        string           `json:"message"`
	Classification Classification   `json:"classification"`
	ColorCode      string           `json:"color_code"`
	ExpiresAt      time.Time        `json:"expires_at"`
}

// IsExpired reports whether the record must be treated as absent at now.
func (r *ResolvedStatus) IsExpired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// IsApproved reports whether the record can short-circuit a resolution.
func (r *ResolvedStatus) IsApproved() bool {
	return r.Classification == ClassificationApproved
}

// PendingRequest is an in-flight provider workflow for one subject.
type PendingRequest struct {
	SubjectID domain.SubjectID `json:"subject_id"`
	Token     string           `json:"token"`
	RequestID string           `json:"request_id"`
	ExpiresAt time.Time        `json:"expires_at"`
}

func (p *PendingRequest) IsExpired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}

// StatusView is the listing projection of a resolved record.
type StatusView struct {
	SubjectID string `json:"mobile_number"`
	Message   string `json:"message"`
	ColorCode string `json:"colour"`
}

// ViewOf projects a record for the listing endpoint, filling the colour
// when the stored record has none.
func ViewOf(r *ResolvedStatus) StatusView {
	color := r.ColorCode
	if color == "" {
		color = NeutralColor
	}
	return StatusView{
		SubjectID: r.SubjectID.String(),
		Message:   r.Message,
		ColorCode: color,
	}
}
