package carrier

import (
	"errors"
	"net/mail"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

// ErrCarrierIsNotConstructed is returned when a Carrier was not created via
// one of the constructors.
var ErrCarrierIsNotConstructed = errors.New("carrier must be created via NewCarrier, NewAdHocCarrier or RestoreCarrier")

// Carrier is a transport company that can be invited to quote on requests.
// Registered carriers are active and selectable from the carrier list;
// ad-hoc carriers entered on a single request are persisted inactive so they
// stay out of the list until staff promote them.
type Carrier struct {
	id          kernel.UUID
	companyName string
	email       string
	phone       string
	active      bool

	guard guard.ConstructorGuard
}

// NewCarrier creates an active registered carrier.
func NewCarrier(id kernel.UUID, companyName, email, phone string) (*Carrier, error) {
	return newCarrier(id, companyName, email, phone, true)
}

// NewAdHocCarrier creates an inactive carrier from the (name, email) pair a
// request form collects for one-off invitations.
func NewAdHocCarrier(id kernel.UUID, companyName, email string) (*Carrier, error) {
	return newCarrier(id, companyName, email, "", false)
}

// RestoreCarrier reconstructs a Carrier from persistence.
func RestoreCarrier(id kernel.UUID, companyName, email, phone string, active bool) (*Carrier, error) {
	return newCarrier(id, companyName, email, phone, active)
}

func newCarrier(id kernel.UUID, companyName, email, phone string, active bool) (*Carrier, error) {
	c := &Carrier{
		active: active,
		phone:  strings.TrimSpace(phone),
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setCompanyName(companyName),
		c.setEmail(email),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// IsEqual compares two carriers by identity.
func (c *Carrier) IsEqual(other *Carrier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

func (c *Carrier) ID() kernel.UUID     { return c.id }
func (c *Carrier) CompanyName() string { return c.companyName }
func (c *Carrier) Email() string       { return c.email }
func (c *Carrier) Phone() string       { return c.phone }
func (c *Carrier) Active() bool        { return c.active }

// Activate promotes an ad-hoc carrier into the selectable carrier list.
func (c *Carrier) Activate() {
	c.active = true
}

// Deactivate hides the carrier from the selectable carrier list. Existing
// invitations keep working.
func (c *Carrier) Deactivate() {
	c.active = false
}

// Validate ensures the Carrier was built through a constructor.
func (c *Carrier) Validate() error {
	if c == nil {
		return ErrCarrierIsNotConstructed
	}
	return c.guard.Validate(ErrCarrierIsNotConstructed)
}

func (c *Carrier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Carrier) setCompanyName(companyName string) error {
	companyName = strings.TrimSpace(companyName)
	if companyName == "" {
		return errs.NewValueIsRequiredError("companyName")
	}
	c.companyName = companyName
	return nil
}

func (c *Carrier) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	c.email = email
	return nil
}
