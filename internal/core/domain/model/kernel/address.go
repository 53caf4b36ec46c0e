package kernel

import (
	"errors"
	"fmt"
	"strings"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when validating a zero-value Address.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress")

// Address is the postal address of a pickup or delivery site.
// Street, postal code, city and country are required; province is optional.
type Address struct { //nolint:recvcheck //using for validation
	street     string
	postalCode string
	city       string
	province   string
	country    string
	guard      guard.ConstructorGuard
}

// NewAddress creates a validated Address. province may be empty.
func NewAddress(street, postalCode, city, province, country string) (Address, error) {
	a := Address{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setStreet(street),
		a.setPostalCode(postalCode),
		a.setCity(city),
		a.setProvince(province),
		a.setCountry(country),
	); err != nil {
		return Address{}, err
	}

	return a, nil
}

func (a Address) Street() string     { return a.street }
func (a Address) PostalCode() string { return a.postalCode }
func (a Address) City() string       { return a.city }
func (a Address) Province() string   { return a.province }
func (a Address) Country() string    { return a.country }

// String formats the address on a single line, e.g.
// "Via Roma 1, 20121 Milano (MI), IT".
func (a Address) String() string {
	city := fmt.Sprintf("%s %s", a.postalCode, a.city)
	if a.province != "" {
		city = fmt.Sprintf("%s (%s)", city, a.province)
	}
	return fmt.Sprintf("%s, %s, %s", a.street, city, a.country)
}

// IsEqual compares two addresses field by field. Both must be constructed.
func (a Address) IsEqual(other Address) (bool, error) {
	if err := errors.Join(a.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return a == other, nil
}

// Validate returns ErrAddressIsNotConstructed for the zero value.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a *Address) setStreet(street string) error {
	street = strings.TrimSpace(street)
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	a.street = street
	return nil
}

func (a *Address) setPostalCode(postalCode string) error {
	postalCode = strings.TrimSpace(postalCode)
	if postalCode == "" {
		return errs.NewValueIsRequiredError("postalCode")
	}
	a.postalCode = postalCode
	return nil
}

func (a *Address) setCity(city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}

func (a *Address) setProvince(province string) error {
	a.province = strings.TrimSpace(province)
	return nil
}

func (a *Address) setCountry(country string) error {
	country = strings.TrimSpace(country)
	if country == "" {
		return errs.NewValueIsRequiredError("country")
	}
	a.country = strings.ToUpper(country)
	return nil
}
