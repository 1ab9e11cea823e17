package mailer

import (
	"fmt"
	"time"
)

const signature = `
	<p>Best regards,</p>
	<h4>Chef On The Way</h4>
`

// WelcomeBody is the signup greeting mail.
func WelcomeBody(name, supportEmail string) string {
	return fmt.Sprintf(`
		<h2>Welcome on board</h2>
		<p>Dear %s,

		Welcome to our platform! We're thrilled to have you on board. Thank you for joining our community. <br /> <br />

		With our platform, you can find a lot of amazing food services you like. <br /> <br />

		If you have any questions or need assistance, our support team is here to help. <br /> <br />
		Feel free to reach out to us at <strong>%s</strong>. <br /> <br />

		Once again, welcome! We hope you have a fantastic experience using our platform. <br /> <br />
		%s
		</p>
	`, name, supportEmail, signature)
}

// ReservationDetails carries everything a confirmation mail shows.
type ReservationDetails struct {
	OrderedBy      string
	UserEmail      string
	OwnerName      string
	OwnerEmail     string
	Address        string
	TotalPerson    int
	PricePerPerson float64
	TotalPrice     float64
	Date           time.Time
	Hour           string
}

// ReservationBody summarizes a new reservation for both counter-parties.
func ReservationBody(d ReservationDetails) string {
	return fmt.Sprintf(`
		<h2>Below are the details of your new reservation:</h2>
		<p><strong>Order by:</strong> %s</p>
		<p><strong>User Email:</strong> <strong>%s</strong></p>
		<p><strong>Total Persons:</strong> %d</p>
		<p><strong>Address:</strong> %s</p>
		<p><strong>Date:</strong> %s</p>
		<p><strong>Hour:</strong> %s</p>
		<p><strong>Price Per Person:</strong> %.2f &euro;</p>
		<p><strong>Total Price:</strong> %.2f &euro;</p>
		<p><strong>Service by:</strong> %s</p>
		<br />
		<p><strong>Note:</strong> If you have some detailed requirements, please email the owner at %s!</p>
		<br />
		%s
	`, d.OrderedBy, d.UserEmail, d.TotalPerson, d.Address,
		d.Date.Format("2006-01-02"), d.Hour, d.PricePerPerson, d.TotalPrice,
		d.OwnerName, d.OwnerEmail, signature)
}

// ReservationUpdateBody summarizes an updated reservation.
func ReservationUpdateBody(d ReservationDetails) string {
	return fmt.Sprintf(`
		<h2>Your reservation has been updated:</h2>
		<p><strong>Order by:</strong> %s</p>
		<p><strong>User Email:</strong> <strong>%s</strong></p>
		<p><strong>Total Persons:</strong> %d</p>
		<p><strong>Address:</strong> %s</p>
		<p><strong>Date:</strong> %s</p>
		<p><strong>Hour:</strong> %s</p>
		<p><strong>Price Per Person:</strong> %.2f &euro;</p>
		<p><strong>Total Price:</strong> %.2f &euro;</p>
		<br />
		<p><strong>Note:</strong> If you have some detailed requirements, please email the owner at %s!</p>
		<br />
		%s
	`, d.OrderedBy, d.UserEmail, d.TotalPerson, d.Address,
		d.Date.Format("2006-01-02"), d.Hour, d.PricePerPerson, d.TotalPrice,
		d.OwnerEmail, signature)
}
