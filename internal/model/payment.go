package model

// PaymentOrder is the server-computed order for an application. The amount
// here is authoritative; the client never re-derives it.
type PaymentOrder struct {
	OrderID   string `json:"orderId"`
	Amount    int64  `json:"amount"`
	OrderName string `json:"orderName,omitempty"`
}

// PaymentConfirm carries the three values the gateway hands back on its
// success redirect. All three must be present for a confirm call.
type PaymentConfirm struct {
	PaymentKey string `json:"paymentKey"`
	OrderID    string `json:"orderId"`
	Amount     int64  `json:"amount"`
}

// PaymentSession tracks one payment attempt from prepare to confirmation
type PaymentSession struct {
	ApplicationID int64  `json:"applicationId"`
	OrderID       string `json:"orderId"`
	Amount        int64  `json:"amount"`
	PaymentKey    string `json:"paymentKey,omitempty"`
}
