package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"lotusaroma/pkg/checkout"
)

// backCommand на шаге оплаты возвращает к форме доставки
const backCommand = "back"

var errInputClosed = errors.New("checkout aborted: input closed")

type promptField struct {
	label string
	value *string
}

func newCheckoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Place an order from the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wizard, err := checkout.NewWizard(app.Cart, checkout.DefaultPolicy)
			if errors.Is(err, checkout.ErrEmptyCart) {
				fmt.Fprintln(cmd.OutOrStdout(), "Your cart is empty. Add something with `lotus cart add` first.")
				return nil
			}
			if err != nil {
				return err
			}

			s := &session{
				wizard: wizard,
				in:     bufio.NewReader(cmd.InOrStdin()),
				out:    cmd.OutOrStdout(),
			}
			return s.run()
		},
	}
}

// session ведёт пользователя по шагам мастера. Неверная форма остаётся
// на экране с прежними значениями, пустой ввод сохраняет значение поля.
type session struct {
	wizard  *checkout.Wizard
	in      *bufio.Reader
	out     io.Writer
	details checkout.ShippingDetails
	payment checkout.PaymentDetails
}

func (s *session) run() error {
	for {
		switch s.wizard.Step() {
		case checkout.StepDetails:
			if err := s.detailsStep(); err != nil {
				return err
			}
		case checkout.StepPayment:
			confirmation, err := s.paymentStep()
			if err != nil {
				return err
			}
			if confirmation != nil {
				s.printConfirmation(confirmation)
				return nil
			}
		default:
			return nil
		}
	}
}

func (s *session) detailsStep() error {
	fmt.Fprintln(s.out, "Step 1 of 3: shipping details")
	printTotals(s.out, s.wizard.Totals())

	d := &s.details
	err := s.fill([]promptField{
		{"First name", &d.FirstName},
		{"Last name", &d.LastName},
		{"Email", &d.Email},
		{"Phone", &d.Phone},
		{"Address", &d.Address},
		{"City", &d.City},
		{"State", &d.State},
		{"Postal code", &d.PostalCode},
		{"Country", &d.Country},
	})
	if err != nil {
		return err
	}

	return s.report(s.wizard.SubmitDetails(s.details))
}

// paymentStep возвращает nil без ошибки, когда пользователь ушёл назад
// или форма не прошла проверку
func (s *session) paymentStep() (*checkout.Confirmation, error) {
	fmt.Fprintf(s.out, "Step 2 of 3: payment (type %q to edit shipping details)\n", backCommand)

	line, err := s.ask("Card number", s.payment.CardNumber)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(line, backCommand) {
		return nil, s.wizard.Back()
	}
	s.payment.CardNumber = line

	p := &s.payment
	err = s.fill([]promptField{
		{"Expiry (MM/YY)", &p.Expiry},
		{"CVV", &p.CVV},
		{"Name on card", &p.NameOnCard},
	})
	if err != nil {
		return nil, err
	}

	confirmation, err := s.wizard.SubmitPayment(s.payment)
	if err != nil {
		return nil, s.report(err)
	}
	return confirmation, nil
}

func (s *session) printConfirmation(c *checkout.Confirmation) {
	fmt.Fprintln(s.out, "Step 3 of 3: order confirmed")
	fmt.Fprintf(s.out, "Thank you, %s %s! Your order ships to %s, %s.\n",
		c.Details.FirstName, c.Details.LastName, c.Details.City, c.Details.Country)
	for _, it := range c.Items {
		fmt.Fprintf(s.out, "  %d x %s (%s)  %s\n", it.Quantity, it.Name, it.Size, formatPrice(it.Price*int64(it.Quantity)))
	}
	printTotals(s.out, c.Totals)
}

// report печатает ошибки формы и гасит их: мастер остаётся на шаге
func (s *session) report(err error) error {
	var verr *checkout.ValidationError
	if !errors.As(err, &verr) {
		return err
	}

	fmt.Fprintln(s.out, "Please fix the following:")
	for _, f := range verr.Fields {
		fmt.Fprintf(s.out, "  %s: %s\n", f.Field, f.Message)
	}
	return nil
}

func (s *session) fill(fields []promptField) error {
	for _, f := range fields {
		line, err := s.ask(f.label, *f.value)
		if err != nil {
			return err
		}
		*f.value = line
	}
	return nil
}

func (s *session) ask(label, current string) (string, error) {
	if current != "" {
		fmt.Fprintf(s.out, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(s.out, "%s: ", label)
	}

	line, err := s.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", errInputClosed
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return current, nil
	}
	return line, nil
}
