// Package checkout реализует трёхшаговое оформление заказа
// Details -> Payment -> Confirmation поверх клиентской корзины.
package checkout

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"lotusaroma/pkg/cart"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidTransition = errors.New("invalid checkout transition")
)

type Step int

const (
	StepDetails Step = iota + 1
	StepPayment
	StepConfirmation
)

func (s Step) String() string {
	switch s {
	case StepDetails:
		return "details"
	case StepPayment:
		return "payment"
	case StepConfirmation:
		return "confirmation"
	default:
		return "unknown"
	}
}

// Cart - то, что мастеру нужно от корзины
type Cart interface {
	Items() []cart.Item
	Totals() cart.Totals
	IsEmpty() bool
	Clear() error
}

// ShippingDetails - форма первого шага
type ShippingDetails struct {
	FirstName  string `json:"firstName" validate:"required"`
	LastName   string `json:"lastName" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,min=10"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

// PaymentDetails - форма второго шага. Оплата не проводится, данные только проверяются.
type PaymentDetails struct {
	CardNumber string `json:"cardNumber" validate:"required,min=12,max=19"`
	Expiry     string `json:"expiry" validate:"required"`
	CVV        string `json:"cvv" validate:"required,numeric,min=3,max=4"`
	NameOnCard string `json:"nameOnCard" validate:"required"`
}

// FieldError - ошибка одного поля формы
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError возвращается, когда форма шага не прошла проверку.
// Мастер остаётся на том же шаге, введённые данные не теряются.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Confirmation - снимок заказа, показываемый на последнем шаге
type Confirmation struct {
	Items   []cart.Item     `json:"items"`
	Totals  Totals          `json:"totals"`
	Details ShippingDetails `json:"details"`
}

// Wizard - состояние оформления одного заказа
type Wizard struct {
	mu           sync.Mutex
	cart         Cart
	policy       Policy
	validate     *validator.Validate
	step         Step
	details      ShippingDetails
	confirmation *Confirmation
}

// NewWizard начинает оформление. Пустая корзина - ErrEmptyCart,
// вызывающий показывает пустое состояние вместо мастера.
func NewWizard(c Cart, policy Policy) (*Wizard, error) {
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	return &Wizard{
		cart:     c,
		policy:   policy,
		validate: newValidator(),
		step:     StepDetails,
	}, nil
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Totals - итоги по текущему содержимому корзины. После подтверждения
// корзина пуста, поэтому берутся итоги из снимка.
func (w *Wizard) Totals() Totals {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.confirmation != nil {
		return w.confirmation.Totals
	}
	return ComputeTotals(w.cart.Totals().Subtotal, w.policy)
}

// SubmitDetails проверяет адрес доставки и переводит на шаг оплаты
func (w *Wizard) SubmitDetails(details ShippingDetails) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepDetails {
		return fmt.Errorf("%w: details from %s", ErrInvalidTransition, w.step)
	}
	if err := w.check(details); err != nil {
		return err
	}

	w.details = details
	w.step = StepPayment
	return nil
}

// SubmitPayment проверяет форму оплаты и завершает оформление.
// Вход в Confirmation - единственное место, где очищается корзина.
func (w *Wizard) SubmitPayment(payment PaymentDetails) (*Confirmation, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepPayment {
		return nil, fmt.Errorf("%w: payment from %s", ErrInvalidTransition, w.step)
	}
	if err := w.check(payment); err != nil {
		return nil, err
	}
	if w.cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	confirmation := &Confirmation{
		Items:   w.cart.Items(),
		Totals:  ComputeTotals(w.cart.Totals().Subtotal, w.policy),
		Details: w.details,
	}

	if err := w.cart.Clear(); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	w.confirmation = confirmation
	w.step = StepConfirmation
	return confirmation, nil
}

// Back разрешён только с Payment на Details
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepPayment {
		return fmt.Errorf("%w: back from %s", ErrInvalidTransition, w.step)
	}
	w.step = StepDetails
	return nil
}

// Details возвращает уже введённый адрес, чтобы форма при возврате была заполнена
func (w *Wizard) Details() ShippingDetails {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.details
}

func (w *Wizard) check(form interface{}) error {
	err := w.validate.Struct(form)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	fields := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, FieldError{
			Field:   fe.Field(),
			Message: describe(fe),
		})
	}
	return &ValidationError{Fields: fields}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "numeric":
		return "must contain only digits"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "is " + fe.Tag()
	}
}

// newValidator называет поля в ошибках по json тегам (firstName, cvv)
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}
