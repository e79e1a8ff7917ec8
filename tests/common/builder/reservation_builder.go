//go:build unit || e2e

package builder

import (
	"time"

	domres "venue-reservations/internal/domain/reservation"
	reqdto "venue-reservations/internal/handler/dto/request"
	"venue-reservations/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID           uuid.UUID
	RequesterID  uuid.UUID
	EventName    string
	Organization string
	ContactName  string
	ContactEmail string
	ContactPhone string
	StartsAt     time.Time
	EndsAt       time.Time
	Attendees    int
	IsPublic     bool
	PolicyAck    bool
	Status       domres.Status
	Capacity     int
	NoticeDays   int
	Now          time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewReservationBuilder defaults to a valid submission: a public event two
// weeks out against a 200-seat venue with a 3-day notice policy.
func NewReservationBuilder() *ReservationBuilder {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return &ReservationBuilder{
		ID:           uuid.New(),
		RequesterID:  uuid.New(),
		EventName:    "Community Workshop",
		Organization: "Civic Arts Council",
		ContactName:  "Pat Rivera",
		ContactEmail: "pat@example.com",
		ContactPhone: "555-0142",
		StartsAt:     now.AddDate(0, 0, 14),
		EndsAt:       now.AddDate(0, 0, 14).Add(4 * time.Hour),
		Attendees:    40,
		IsPublic:     true,
		PolicyAck:    true,
		Status:       domres.StatusPending,
		Capacity:     200,
		NoticeDays:   3,
		Now:          now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *ReservationBuilder) BuildDomain() (*domres.Reservation, error) {
	slot, err := domres.NewTimeSlot(b.StartsAt, b.EndsAt)
	if err != nil {
		return nil, err
	}
	return domres.NewReservation(
		b.RequesterID, b.contact(), slot,
		b.Attendees, b.IsPublic, b.PolicyAck,
		b.Capacity, b.NoticeDays, b.Now,
	)
}

// BuildReconstructed bypasses submission validation so tests can start from
// any status.
func (b *ReservationBuilder) BuildReconstructed() *domres.Reservation {
	slot, _ := domres.NewTimeSlot(b.StartsAt, b.EndsAt)
	return domres.ReconstructReservation(
		b.ID, b.RequesterID, b.contact(), slot,
		b.Attendees, b.IsPublic, b.PolicyAck,
		b.Status,
		nil, nil, nil, nil, nil, nil, nil,
		b.CreatedAt, b.UpdatedAt,
	)
}

func (b *ReservationBuilder) BuildSubmitRequestDTO() reqdto.SubmitReservationRequest {
	return reqdto.SubmitReservationRequest{
		EventName:    b.EventName,
		Organization: b.Organization,
		ContactName:  b.ContactName,
		ContactEmail: b.ContactEmail,
		ContactPhone: b.ContactPhone,
		StartsAt:     b.StartsAt,
		EndsAt:       b.EndsAt,
		Attendees:    b.Attendees,
		IsPublic:     b.IsPublic,
		PolicyAck:    b.PolicyAck,
	}
}

func (b *ReservationBuilder) BuildViewQuery() *queries.ReservationView {
	return &queries.ReservationView{
		ID:             b.ID,
		RequesterID:    b.RequesterID,
		RequesterEmail: "requester@example.com",
		EventName:      b.EventName,
		ContactEmail:   b.ContactEmail,
		StartsAt:       b.StartsAt,
		EndsAt:         b.EndsAt,
		Attendees:      int32(b.Attendees),
		IsPublic:       b.IsPublic,
		Status:         b.Status.String(),
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func (b *ReservationBuilder) BuildListItem() *queries.ReservationListItem {
	return &queries.ReservationListItem{
		ID:        b.ID,
		EventName: b.EventName,
		StartsAt:  b.StartsAt,
		EndsAt:    b.EndsAt,
		Attendees: int32(b.Attendees),
		Status:    b.Status.String(),
		CreatedAt: b.CreatedAt,
	}
}

func (b *ReservationBuilder) contact() domres.Contact {
	return domres.Contact{
		EventName:    b.EventName,
		Organization: b.Organization,
		Name:         b.ContactName,
		Email:        b.ContactEmail,
		Phone:        b.ContactPhone,
	}
}

// Fluent builder methods
func (b *ReservationBuilder) WithRequesterID(id uuid.UUID) *ReservationBuilder {
	b.RequesterID = id
	return b
}

func (b *ReservationBuilder) WithEventName(name string) *ReservationBuilder {
	b.EventName = name
	return b
}

func (b *ReservationBuilder) WithSlot(start, end time.Time) *ReservationBuilder {
	b.StartsAt = start
	b.EndsAt = end
	return b
}

func (b *ReservationBuilder) WithAttendees(n int) *ReservationBuilder {
	b.Attendees = n
	return b
}

func (b *ReservationBuilder) WithStatus(s domres.Status) *ReservationBuilder {
	b.Status = s
	return b
}

func (b *ReservationBuilder) AsPrivate() *ReservationBuilder {
	b.IsPublic = false
	return b
}

func (b *ReservationBuilder) WithoutPolicyAck() *ReservationBuilder {
	b.PolicyAck = false
	return b
}
