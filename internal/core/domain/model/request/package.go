package request

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

// ErrPackageIsNotConstructed is returned when a Package was not created via
// NewPackage or RestorePackage.
var ErrPackageIsNotConstructed = errors.New("package must be created via NewPackage or RestorePackage")

// Package is a line item of a transport request: a number of identical pieces
// with shared dimensions and weight. Packages only exist inside their Request
// aggregate; the request recomputes its totals from them.
type Package struct {
	id          kernel.UUID
	quantity    int
	packageType PackageType
	lengthCm    float64
	widthCm     float64
	heightCm    float64
	weightKg    float64
	fragile     bool
	stackable   bool
	sortOrder   int

	guard guard.ConstructorGuard
}

// NewPackage creates a validated Package line item. Dimensions are per piece
// in centimeters, weight is per piece in kilograms.
func NewPackage(
	id kernel.UUID,
	quantity int,
	packageType PackageType,
	lengthCm, widthCm, heightCm float64,
	weightKg float64,
	fragile, stackable bool,
	sortOrder int,
) (*Package, error) {
	p := &Package{
		fragile:   fragile,
		stackable: stackable,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setQuantity(quantity),
		p.setPackageType(packageType),
		p.setDimensions(lengthCm, widthCm, heightCm),
		p.setWeightKg(weightKg),
		p.setSortOrder(sortOrder),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePackage reconstructs a Package from persistence.
func RestorePackage(
	id kernel.UUID,
	quantity int,
	packageType PackageType,
	lengthCm, widthCm, heightCm float64,
	weightKg float64,
	fragile, stackable bool,
	sortOrder int,
) (*Package, error) {
	return NewPackage(id, quantity, packageType, lengthCm, widthCm, heightCm,
		weightKg, fragile, stackable, sortOrder)
}

// IsEqual compares two packages by identity.
func (p *Package) IsEqual(other *Package) bool {
	return other != nil && p.id.IsEqual(other.id)
}

func (p *Package) ID() kernel.UUID          { return p.id }
func (p *Package) Quantity() int            { return p.quantity }
func (p *Package) PackageType() PackageType { return p.packageType }
func (p *Package) LengthCm() float64        { return p.lengthCm }
func (p *Package) WidthCm() float64         { return p.widthCm }
func (p *Package) HeightCm() float64        { return p.heightCm }
func (p *Package) WeightKg() float64        { return p.weightKg }
func (p *Package) Fragile() bool            { return p.fragile }
func (p *Package) Stackable() bool          { return p.stackable }
func (p *Package) SortOrder() int           { return p.sortOrder }

// PieceVolumeM3 returns the volume of a single piece in cubic meters:
// length × width × height / 1e6.
func (p *Package) PieceVolumeM3() float64 {
	return p.lengthCm * p.widthCm * p.heightCm / 1e6
}

// LineVolumeM3 returns the total volume of the line (piece volume × quantity).
func (p *Package) LineVolumeM3() float64 {
	return p.PieceVolumeM3() * float64(p.quantity)
}

// LineWeightKg returns the total weight of the line (piece weight × quantity).
func (p *Package) LineWeightKg() float64 {
	return p.weightKg * float64(p.quantity)
}

// Validate returns ErrPackageIsNotConstructed for a zero-value Package.
func (p *Package) Validate() error {
	if p == nil {
		return ErrPackageIsNotConstructed
	}
	return p.guard.Validate(ErrPackageIsNotConstructed)
}

func (p *Package) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Package) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not at least 1", quantity))
	}
	p.quantity = quantity
	return nil
}

func (p *Package) setPackageType(packageType PackageType) error {
	if err := packageType.Validate(); err != nil {
		return err
	}
	p.packageType = packageType
	return nil
}

func (p *Package) setDimensions(lengthCm, widthCm, heightCm float64) error {
	if lengthCm <= 0 || widthCm <= 0 || heightCm <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("dimensions",
			fmt.Errorf("%gx%gx%g cm are not all positive", lengthCm, widthCm, heightCm))
	}
	p.lengthCm = lengthCm
	p.widthCm = widthCm
	p.heightCm = heightCm
	return nil
}

func (p *Package) setWeightKg(weightKg float64) error {
	if weightKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weightKg",
			fmt.Errorf("%g is not positive", weightKg))
	}
	p.weightKg = weightKg
	return nil
}

func (p *Package) setSortOrder(sortOrder int) error {
	if sortOrder < 0 {
		return errs.NewValueIsInvalidErrorWithCause("sortOrder",
			fmt.Errorf("%d is negative", sortOrder))
	}
	p.sortOrder = sortOrder
	return nil
}
