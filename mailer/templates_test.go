package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWelcomeBody(t *testing.T) {
	body := WelcomeBody("Mario", "support@chefotw.com")

	assert.Contains(t, body, "Dear Mario")
	assert.Contains(t, body, "support@chefotw.com")
	assert.Contains(t, body, "Chef On The Way")
}

func TestReservationBody(t *testing.T) {
	d := ReservationDetails{
		OrderedBy:      "Guest Person",
		UserEmail:      "guest@gmail.com",
		OwnerName:      "Mario",
		OwnerEmail:     "mario@gmail.com",
		Address:        "1 Main St",
		TotalPerson:    4,
		PricePerPerson: 20,
		TotalPrice:     80,
		Date:           time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Hour:           "19:00",
	}

	body := ReservationBody(d)

	assert.Contains(t, body, "Guest Person")
	assert.Contains(t, body, "guest@gmail.com")
	assert.Contains(t, body, "Total Persons:</strong> 4")
	assert.Contains(t, body, "2026-10-01")
	assert.Contains(t, body, "19:00")
	assert.Contains(t, body, "20.00 &euro;")
	assert.Contains(t, body, "80.00 &euro;")
	assert.Contains(t, body, "Service by:</strong> Mario")
	assert.Contains(t, body, "mario@gmail.com")
}

func TestReservationUpdateBody(t *testing.T) {
	d := ReservationDetails{
		OrderedBy:      "Guest Person",
		UserEmail:      "guest@gmail.com",
		OwnerEmail:     "mario@gmail.com",
		TotalPerson:    2,
		PricePerPerson: 15,
		TotalPrice:     30,
		Date:           time.Date(2026, 11, 5, 0, 0, 0, 0, time.UTC),
		Hour:           "12:30",
	}

	body := ReservationUpdateBody(d)

	assert.Contains(t, body, "has been updated")
	assert.Contains(t, body, "2026-11-05")
	assert.Contains(t, body, "30.00 &euro;")
	assert.Contains(t, body, "mario@gmail.com")
}
