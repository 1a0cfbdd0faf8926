package provider

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"

	"github.com/impulse-lab/lab-booking-service/internal/config"
)

// RazorpayOrder is the order summary returned to the client for checkout.
type RazorpayOrder struct {
	OrderID  string
	Amount   int64
	Currency string
}

// RazorpayOrders creates payment orders with Razorpay.
type RazorpayOrders interface {
	CreateOrder(ctx context.Context, amount int64, currency string) (*RazorpayOrder, error)
}

type razorpayOrders struct {
	client *razorpay.Client
}

// NewRazorpayOrders builds the Razorpay-backed implementation.
func NewRazorpayOrders(cfg config.PaymentConfig) RazorpayOrders {
	return &razorpayOrders{client: razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)}
}

func (r *razorpayOrders) CreateOrder(_ context.Context, amount int64, currency string) (*RazorpayOrder, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
	}
	order, err := r.client.Order.Create(data, nil)
	if err != nil {
		return nil, err
	}

	id, ok := order["id"].(string)
	if !ok {
		return nil, fmt.Errorf("order response missing id")
	}
	return &RazorpayOrder{OrderID: id, Amount: amount, Currency: currency}, nil
}
