package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTargetID is returned when a recipient ID is not an integer
var ErrInvalidTargetID = errors.New("target id must be an integer")

// AdminState represents the step of an admin conversation
type AdminState string

const (
	AdminAwaitingAnnouncement AdminState = "awaiting_announcement"
	AdminAwaitingTarget       AdminState = "awaiting_target"
	AdminAwaitingBody         AdminState = "awaiting_body"
)

// AdminSession holds scratch data of one admin conversation
type AdminSession struct {
	UserID    int64
	State     AdminState
	TargetID  int64
	UpdatedAt time.Time
}

// ParseTargetID parses a base-10 Telegram user ID, ignoring surrounding spaces
func ParseTargetID(text string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidTargetID, err)
	}
	return id, nil
}

// DeliveryResult is the outcome of sending a message to one recipient
type DeliveryResult struct {
	UserID int64
	Err    error
}

// BroadcastReport collects per-recipient results of a broadcast
type BroadcastReport struct {
	ID      string
	Text    string
	Results []DeliveryResult
}

// Delivered returns the number of successful deliveries
func (r BroadcastReport) Delivered() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns results with a delivery error
func (r BroadcastReport) Failed() []DeliveryResult {
	var failed []DeliveryResult
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}
