package payment

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yourorg/matchup-bff/internal/model"
)

// API is the slice of the backend the coordinator needs
type API interface {
	PreparePayment(ctx context.Context, token string, applicationID int64) (model.PaymentOrder, error)
	PaymentClientKey(ctx context.Context, token string) (string, error)
	ConfirmPayment(ctx context.Context, token string, confirm model.PaymentConfirm) error
}

var (
	// ErrMissingApplication means the payment screen was entered without a
	// valid application id; no network call is made.
	ErrMissingApplication = errors.New("payment: a valid application id is required")

	// ErrReturnParamsMissing means the gateway redirect lacked paymentKey,
	// orderId, or a positive amount.
	ErrReturnParamsMissing = errors.New("payment: missing return parameters")

	// ErrConfirmTimeout means the confirm call did not resolve within the
	// coordinator's deadline.
	ErrConfirmTimeout = errors.New("payment: confirm timed out")
)

// State is the coordinator's position in the payment flow
type State int

const (
	// StateAwaitingPrepare is the initial state before the prepare call
	StateAwaitingPrepare State = iota
	// StateHandoff means the order is prepared and control moves to the
	// external payment widget
	StateHandoff
	// StateProcessing means the return-path confirm call is in flight
	StateProcessing
	// StateSucceeded is terminal: the payment is confirmed
	StateSucceeded
	// StateFailed is terminal: the member must restart the flow from
	// matching completion
	StateFailed
)

// Config tunes the coordinator. Zero values fall back to the platform
// defaults.
type Config struct {
	Currency         string
	DefaultOrderName string
	SuccessURL       string
	FailURL          string
	ConfirmTimeout   time.Duration
	SuccessDelay     time.Duration
}

// HandoffParams is everything the external payment widget is invoked with.
// Control leaves the application at this point and only returns via a
// full-page redirect to SuccessURL or FailURL.
type HandoffParams struct {
	ClientKey  string `json:"clientKey"`
	Currency   string `json:"currency"`
	Amount     int64  `json:"amount"`
	OrderID    string `json:"orderId"`
	OrderName  string `json:"orderName"`
	SuccessURL string `json:"successUrl"`
	FailURL    string `json:"failUrl"`
}

// Coordinator drives one payment attempt: prepare, widget handoff, and the
// at-most-once confirm on return, with a timeout that forces failure if the
// confirm call hangs. Terminal states latch; a late confirm outcome never
// overrides one.
type Coordinator struct {
	api          API
	logger       *zap.Logger
	cfg          Config
	navigateHome func()

	mu             sync.Mutex
	state          State
	session        model.PaymentSession
	confirmStarted bool
	successTimer   *time.Timer
	closed         bool
}

// New creates a payment coordinator. navigateHome is invoked after the
// success delay once a confirmation goes through; it may be nil.
func New(backendAPI API, cfg Config, navigateHome func(), logger *zap.Logger) *Coordinator {
	if cfg.Currency == "" {
		cfg.Currency = "KRW"
	}
	if cfg.DefaultOrderName == "" {
		cfg.DefaultOrderName = "프로젝트 파트너 결제"
	}
	if cfg.ConfirmTimeout <= 0 {
		cfg.ConfirmTimeout = 15 * time.Second
	}
	if cfg.SuccessDelay <= 0 {
		cfg.SuccessDelay = 2 * time.Second
	}

	return &Coordinator{
		api:          backendAPI,
		logger:       logger,
		cfg:          cfg,
		navigateHome: navigateHome,
		state:        StateAwaitingPrepare,
	}
}

// State returns the coordinator's current state
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Session returns a copy of the payment session so far
func (c *Coordinator) Session() model.PaymentSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Start runs the prepare and client-key steps and produces the widget
// handoff parameters. A missing application id fails hard before any network
// call; the amount comes from the server and is never re-derived here.
func (c *Coordinator) Start(ctx context.Context, token string, applicationID int64) (HandoffParams, error) {
	if applicationID <= 0 {
		c.setState(StateFailed)
		return HandoffParams{}, ErrMissingApplication
	}

	order, err := c.api.PreparePayment(ctx, token, applicationID)
	if err != nil {
		c.logger.Warn("Payment prepare failed", zap.Int64("applicationId", applicationID), zap.Error(err))
		c.setState(StateFailed)
		return HandoffParams{}, err
	}

	clientKey, err := c.api.PaymentClientKey(ctx, token)
	if err != nil {
		c.logger.Warn("Payment client key fetch failed", zap.Error(err))
		c.setState(StateFailed)
		return HandoffParams{}, err
	}

	orderName := order.OrderName
	if orderName == "" {
		orderName = c.cfg.DefaultOrderName
	}

	c.mu.Lock()
	c.session = model.PaymentSession{
		ApplicationID: applicationID,
		OrderID:       order.OrderID,
		Amount:        order.Amount,
	}
	c.state = StateHandoff
	c.mu.Unlock()

	return HandoffParams{
		ClientKey:  clientKey,
		Currency:   c.cfg.Currency,
		Amount:     order.Amount,
		OrderID:    order.OrderID,
		OrderName:  orderName,
		SuccessURL: c.cfg.SuccessURL,
		FailURL:    c.cfg.FailURL,
	}, nil
}

// ParseReturnParams extracts paymentKey, orderId, and amount from the
// gateway's redirect query. ok is false when any of them is missing or the
// amount is not positive.
func ParseReturnParams(query url.Values) (model.PaymentConfirm, bool) {
	amount, _ := strconv.ParseInt(query.Get("amount"), 10, 64)
	confirm := model.PaymentConfirm{
		PaymentKey: query.Get("paymentKey"),
		OrderID:    query.Get("orderId"),
		Amount:     amount,
	}
	ok := confirm.PaymentKey != "" && confirm.OrderID != "" && confirm.Amount > 0
	return confirm, ok
}

// ConfirmReturn runs the return-path confirmation at most once. Incomplete
// parameters fail immediately. The confirm call races the configured
// timeout: whichever resolves first wins, and the loser cannot flip the
// state afterwards. On success the home navigation fires after the success
// delay unless the coordinator is closed first.
func (c *Coordinator) ConfirmReturn(ctx context.Context, token string, confirm model.PaymentConfirm, ok bool) (State, error) {
	c.mu.Lock()
	if c.confirmStarted {
		state := c.state
		c.mu.Unlock()
		return state, nil
	}
	c.confirmStarted = true

	if !ok {
		c.state = StateFailed
		c.mu.Unlock()
		return StateFailed, ErrReturnParamsMissing
	}

	c.session.PaymentKey = confirm.PaymentKey
	c.state = StateProcessing
	c.mu.Unlock()

	// The timer forces failure even if the confirm call ignores its context.
	failTimer := time.AfterFunc(c.cfg.ConfirmTimeout, func() {
		if c.transition(StateProcessing, StateFailed) {
			c.logger.Warn("Payment confirm timed out",
				zap.String("orderId", confirm.OrderID),
				zap.Duration("timeout", c.cfg.ConfirmTimeout))
		}
	})

	confirmCtx, cancel := context.WithTimeout(ctx, c.cfg.ConfirmTimeout)
	defer cancel()

	err := c.api.ConfirmPayment(confirmCtx, token, confirm)
	failTimer.Stop()

	if err != nil {
		if c.transition(StateProcessing, StateFailed) {
			c.logger.Warn("Payment confirm failed", zap.String("orderId", confirm.OrderID), zap.Error(err))
		}
		if errors.Is(err, context.DeadlineExceeded) {
			err = ErrConfirmTimeout
		}
		return c.State(), err
	}

	if c.transition(StateProcessing, StateSucceeded) {
		c.scheduleNavigateHome()
		return StateSucceeded, nil
	}

	// The timeout fired first; the late success does not override it.
	return c.State(), ErrConfirmTimeout
}

// Close cancels any pending timers. After Close no navigation callback will
// fire, so teardown cannot cause a stale transition.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.successTimer != nil {
		c.successTimer.Stop()
		c.successTimer = nil
	}
}

// SuccessDelay reports how long after a successful confirmation the home
// navigation fires
func (c *Coordinator) SuccessDelay() time.Duration {
	return c.cfg.SuccessDelay
}

func (c *Coordinator) scheduleNavigateHome() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.navigateHome == nil {
		return
	}
	c.successTimer = time.AfterFunc(c.cfg.SuccessDelay, c.navigateHome)
}

func (c *Coordinator) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// transition moves from one state to another only if the current state still
// matches; terminal states therefore latch.
func (c *Coordinator) transition(from, to State) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != from {
		return false
	}
	c.state = to
	return true
}
