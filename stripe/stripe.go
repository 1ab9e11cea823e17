package stripe

import (
	stripeapi "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// CheckoutSession is the subset of a gateway checkout record the handlers
// care about: the redirect URL the caller is sent to.
type CheckoutSession struct {
	ID  string
	URL string
}

// CheckoutCreator creates a payment checkout session for a computed total.
type CheckoutCreator interface {
	CreateCheckoutSession(description string, totalPrice float64, successURL, cancelURL string) (CheckoutSession, error)
}

type Client struct{}

// NewClient configures the gateway key process-wide and returns the client.
func NewClient(secretKey string) *Client {
	stripeapi.Key = secretKey
	return &Client{}
}

func (c *Client) CreateCheckoutSession(description string, totalPrice float64, successURL, cancelURL string) (CheckoutSession, error) {
	productData := &stripeapi.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripeapi.String("Chef Service"),
	}
	if description != "" {
		productData.Description = stripeapi.String(description)
	}

	params := &stripeapi.CheckoutSessionParams{
		PaymentMethodTypes: stripeapi.StringSlice([]string{"card"}),
		LineItems: []*stripeapi.CheckoutSessionLineItemParams{{
			PriceData: &stripeapi.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripeapi.String(string(stripeapi.CurrencyEUR)),
				ProductData: productData,
				// Convert to cents
				UnitAmount: stripeapi.Int64(int64(totalPrice * 100)),
			},
			Quantity: stripeapi.Int64(1),
		}},
		Mode:       stripeapi.String(string(stripeapi.CheckoutSessionModePayment)),
		SuccessURL: stripeapi.String(successURL),
		CancelURL:  stripeapi.String(cancelURL),
	}

	s, err := session.New(params)
	if err != nil {
		return CheckoutSession{}, err
	}
	return CheckoutSession{ID: s.ID, URL: s.URL}, nil
}
