// Package booking drives the consultation-booking flow from provider choice
// through payment to a confirmed appointment. It is a state machine: every
// call is legal only from specific states, and terminal states accept
// nothing further.
package booking

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/eros-saude/eros-go/apierr"
	"github.com/eros-saude/eros-go/appointment"
	"github.com/eros-saude/eros-go/model"
	"github.com/eros-saude/eros-go/payment"
)

// State is a position in the booking flow.
type State int

const (
	SelectingProvider State = iota
	SelectingSlot
	SelectingPaymentMethod
	AwaitingPaymentConfirmation
	Confirmed
	Failed
)

func (s State) String() string {
	switch s {
	case SelectingProvider:
		return "selecting_provider"
	case SelectingSlot:
		return "selecting_slot"
	case SelectingPaymentMethod:
		return "selecting_payment_method"
	case AwaitingPaymentConfirmation:
		return "awaiting_payment_confirmation"
	case Confirmed:
		return "confirmed"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ErrInvalidTransition is returned when a call is not legal from the
// workflow's current state.
var ErrInvalidTransition = errors.New("booking: invalid transition")

const (
	defaultAmount       = 150.00
	defaultCardDelay    = 2 * time.Second
	defaultPixDelay     = 1500 * time.Millisecond
	defaultConsultation = "Consulta de Pré-Natal"
)

// CardDetails is the card form. The processor integration is out of scope;
// authorization is simulated with a fixed delay, so the fields are only
// checked for presence.
type CardDetails struct {
	Number string
	Holder string
	Expiry string
	CVV    string
}

// PixCharge is the copy-and-paste code and QR payload shown while waiting
// for a pix transfer.
type PixCharge struct {
	Code    string
	QR      string
	Expires time.Time
}

// Receipt summarizes a confirmed booking. TransactionID is synthesized
// client-side; the backend payment record keeps its own id.
type Receipt struct {
	TransactionID string
	Appointment   *model.Appointment
	Payment       *model.Payment
	Amount        float64
	Method        model.PaymentMethod
	PaidAt        time.Time
}

// Workflow is a single booking attempt. It is not safe for concurrent use;
// one flow belongs to one screen.
type Workflow struct {
	appts *appointment.Service
	pays  *payment.Service
	log   zerolog.Logger

	amount    float64
	cardDelay time.Duration
	pixDelay  time.Duration

	state   State
	doctor  *model.Doctor
	date    string
	slot    string
	method  model.PaymentMethod
	pix     *PixCharge
	appt    *model.Appointment
	receipt *Receipt
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithAmount overrides the consultation fee shown and charged.
func WithAmount(amount float64) Option {
	return func(w *Workflow) { w.amount = amount }
}

// WithCardDelay overrides the simulated card-authorization delay.
func WithCardDelay(d time.Duration) Option {
	return func(w *Workflow) { w.cardDelay = d }
}

// WithPixDelay overrides the simulated pix-confirmation delay.
func WithPixDelay(d time.Duration) Option {
	return func(w *Workflow) { w.pixDelay = d }
}

// WithLogger attaches a logger.
func WithLogger(log zerolog.Logger) Option {
	return func(w *Workflow) { w.log = log }
}

func New(appts *appointment.Service, pays *payment.Service, opts ...Option) *Workflow {
	w := &Workflow{
		appts:     appts,
		pays:      pays,
		log:       zerolog.Nop(),
		amount:    defaultAmount,
		cardDelay: defaultCardDelay,
		pixDelay:  defaultPixDelay,
		state:     SelectingProvider,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workflow) State() State { return w.state }

// Amount is the fee the flow will charge.
func (w *Workflow) Amount() float64 { return w.amount }

// Receipt is non-nil only in the Confirmed state.
func (w *Workflow) Receipt() *Receipt { return w.receipt }

// Appointment returns the appointment created by a confirmed booking.
func (w *Workflow) Appointment() *model.Appointment { return w.appt }

// SelectProvider fixes the provider and moves on to slot selection.
func (w *Workflow) SelectProvider(d *model.Doctor) error {
	if w.state != SelectingProvider {
		return ErrInvalidTransition
	}
	if d == nil || d.ID == "" {
		return apierr.NewValidation("doctor", "is required")
	}
	w.doctor = d
	w.state = SelectingSlot
	return nil
}

// SelectDate and SelectTime may be called in any order and re-called to
// change the choice while still on the slot step.
func (w *Workflow) SelectDate(date string) error {
	if w.state != SelectingSlot {
		return ErrInvalidTransition
	}
	w.date = date
	return nil
}

func (w *Workflow) SelectTime(slot string) error {
	if w.state != SelectingSlot {
		return ErrInvalidTransition
	}
	w.slot = slot
	return nil
}

// CanProceed reports whether both a date and a time have been chosen.
func (w *Workflow) CanProceed() bool {
	return w.state == SelectingSlot && w.date != "" && w.slot != ""
}

// ProceedToPayment advances to payment-method selection. It refuses until
// both a date and a time are chosen.
func (w *Workflow) ProceedToPayment() error {
	if w.state != SelectingSlot {
		return ErrInvalidTransition
	}
	if w.date == "" || w.slot == "" {
		return apierr.NewValidation("slot", "select a date and a time first")
	}
	w.state = SelectingPaymentMethod
	return nil
}

// SelectMethod records the chosen payment method while on the method step.
func (w *Workflow) SelectMethod(m model.PaymentMethod) error {
	if w.state != SelectingPaymentMethod {
		return ErrInvalidTransition
	}
	switch m {
	case model.PaymentPix, model.PaymentCreditCard, model.PaymentDebitCard:
	default:
		return apierr.NewValidation("method", "is not a supported payment method")
	}
	w.method = m
	return nil
}

// ConfirmCard runs the card path: simulated authorization delay, then the
// appointment and its payment are created together. Any failure moves the
// flow to Failed and leaves no half-booked appointment behind.
func (w *Workflow) ConfirmCard(ctx context.Context, card CardDetails) (*Receipt, error) {
	if w.state != SelectingPaymentMethod {
		return nil, ErrInvalidTransition
	}
	if w.method != model.PaymentCreditCard && w.method != model.PaymentDebitCard {
		return nil, apierr.NewValidation("method", "select a card method first")
	}
	if card.Number == "" {
		return nil, apierr.NewValidation("cardNumber", "is required")
	}
	if card.Holder == "" {
		return nil, apierr.NewValidation("cardHolder", "is required")
	}

	if err := wait(ctx, w.cardDelay); err != nil {
		return nil, err
	}

	rcpt, err := w.settle(ctx)
	if err != nil {
		w.state = Failed
		return nil, err
	}
	w.state = Confirmed
	return rcpt, nil
}

// StartPix opens a pix charge and moves to the waiting state. The charge is
// a fixed-amount BR Code; the payload doubles as the QR content.
func (w *Workflow) StartPix() (*PixCharge, error) {
	if w.state != SelectingPaymentMethod {
		return nil, ErrInvalidTransition
	}
	if w.method != model.PaymentPix {
		return nil, apierr.NewValidation("method", "select pix first")
	}
	code := pixCode(w.amount)
	w.pix = &PixCharge{
		Code:    code,
		QR:      code,
		Expires: time.Now().Add(30 * time.Minute),
	}
	w.state = AwaitingPaymentConfirmation
	return w.pix, nil
}

// ConfirmPix is called after the user reports the transfer. On failure the
// flow stays in the waiting state so the user can try confirming again.
func (w *Workflow) ConfirmPix(ctx context.Context) (*Receipt, error) {
	if w.state != AwaitingPaymentConfirmation {
		return nil, ErrInvalidTransition
	}
	if err := wait(ctx, w.pixDelay); err != nil {
		return nil, err
	}

	rcpt, err := w.settle(ctx)
	if err != nil {
		return nil, err
	}
	w.state = Confirmed
	return rcpt, nil
}

// RetryPayment returns a failed flow to method selection, keeping the
// provider and slot already chosen.
func (w *Workflow) RetryPayment() error {
	if w.state != Failed {
		return ErrInvalidTransition
	}
	w.method = ""
	w.pix = nil
	w.state = SelectingPaymentMethod
	return nil
}

// settle creates the appointment and its payment as one logical step. If
// the payment fails after the appointment was created, the appointment is
// cancelled so no orphan remains.
func (w *Workflow) settle(ctx context.Context) (*Receipt, error) {
	appt, err := w.appts.Create(ctx, &model.AppointmentBooking{
		DoctorID: w.doctor.ID,
		Date:     w.date,
		Time:     w.slot,
		Type:     defaultConsultation,
	})
	if err != nil {
		return nil, err
	}

	pay, err := w.pays.Create(ctx, &payment.CreateRequest{
		AppointmentID: appt.ID,
		Amount:        w.amount,
		Method:        w.method,
	})
	if err != nil {
		if _, cancelErr := w.appts.Cancel(ctx, appt.ID); cancelErr != nil {
			w.log.Error().Err(cancelErr).Str("appointment_id", appt.ID).Msg("rollback cancel failed")
		}
		return nil, err
	}

	w.appt = appt
	w.appt.Status = model.AppointmentConfirmed
	w.receipt = &Receipt{
		TransactionID: newTransactionID(),
		Appointment:   w.appt,
		Payment:       pay,
		Amount:        pay.Amount,
		Method:        w.method,
		PaidAt:        time.Now(),
	}
	w.log.Info().
		Str("appointment_id", appt.ID).
		Str("transaction_id", w.receipt.TransactionID).
		Str("method", string(w.method)).
		Msg("booking settled")
	return w.receipt, nil
}

// newTransactionID builds the receipt-local transaction id: a millisecond
// timestamp plus a three-digit noise suffix.
func newTransactionID() string {
	return fmt.Sprintf("TXN%d%03d", time.Now().UnixMilli(), rand.Intn(1000))
}

// pixCode renders a static BR Code payload for the given amount.
func pixCode(amount float64) string {
	return fmt.Sprintf("00020126330014BR.GOV.BCB.PIX0111eros-saude5204000053039865406%.2f5802BR5910Eros Saude6009Sao Paulo62070503***6304", amount)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
