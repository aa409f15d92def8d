package handler

import "strings"

// StatusRequest is the body of POST /status. The number is passed to the
// resolver unmodified so malformed input gets the invalid-number reply.
type StatusRequest struct {
	MobileNumber string `json:"mobile_number"`
}

// BulkStatusRequest is the body of POST /bulk_status: "+91...,+91...".
type BulkStatusRequest struct {
	Numbers string `json:"numbers" validate:"required"`
}

func (r *BulkStatusRequest) Normalize() {
	r.Numbers = strings.TrimSpace(r.Numbers)
}
