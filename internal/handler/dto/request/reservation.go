package request

import (
	"strings"
	"time"

	"venue-reservations/internal/usecase/commands"
)

type SubmitReservationRequest struct {
	EventName    string    `json:"event_name" binding:"required"`
	Organization string    `json:"organization"`
	ContactName  string    `json:"contact_name"`
	ContactEmail string    `json:"contact_email" binding:"required,email"`
	ContactPhone string    `json:"contact_phone"`
	StartsAt     time.Time `json:"starts_at" binding:"required"`
	EndsAt       time.Time `json:"ends_at" binding:"required"`
	Attendees    int       `json:"attendees" binding:"required,min=1"`
	IsPublic     bool      `json:"is_public"`
	PolicyAck    bool      `json:"policy_acknowledged"`
}

func (r SubmitReservationRequest) ToInput() commands.SubmitReservationInput {
	return commands.SubmitReservationInput{
		EventName:    strings.TrimSpace(r.EventName),
		Organization: strings.TrimSpace(r.Organization),
		ContactName:  strings.TrimSpace(r.ContactName),
		ContactEmail: strings.TrimSpace(r.ContactEmail),
		ContactPhone: strings.TrimSpace(r.ContactPhone),
		StartsAt:     r.StartsAt,
		EndsAt:       r.EndsAt,
		Attendees:    r.Attendees,
		IsPublic:     r.IsPublic,
		PolicyAck:    r.PolicyAck,
	}
}

// ReviewActionRequest carries the reason for deny and cancel transitions.
type ReviewActionRequest struct {
	Reason string `json:"reason"`
}
