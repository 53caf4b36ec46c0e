package request

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// PackageType classifies the packaging of a line item.
type PackageType int

const (
	// PackageTypeUnknown represents an invalid or undefined package type.
	PackageTypeUnknown PackageType = iota
	PackageTypeBox
	PackageTypePallet
	PackageTypeCrate
	PackageTypeSack
	PackageTypeTube
	PackageTypeEnvelope
	PackageTypeOther
)

func getPackageTypeStrings() map[PackageType]string {
	return map[PackageType]string{
		PackageTypeUnknown:  "Unknown",
		PackageTypeBox:      "Box",
		PackageTypePallet:   "Pallet",
		PackageTypeCrate:    "Crate",
		PackageTypeSack:     "Sack",
		PackageTypeTube:     "Tube",
		PackageTypeEnvelope: "Envelope",
		PackageTypeOther:    "Other",
	}
}

func getValidPackageTypeStrings() map[PackageType]string {
	//nolint:exhaustive // PackageTypeUnknown is intentionally excluded as it's invalid
	return map[PackageType]string{
		PackageTypeBox:      "Box",
		PackageTypePallet:   "Pallet",
		PackageTypeCrate:    "Crate",
		PackageTypeSack:     "Sack",
		PackageTypeTube:     "Tube",
		PackageTypeEnvelope: "Envelope",
		PackageTypeOther:    "Other",
	}
}

// PackageTypeFromString restores a PackageType from its string representation.
func PackageTypeFromString(s string) (PackageType, error) {
	for packageType, str := range getValidPackageTypeStrings() {
		if str == s {
			return packageType, nil
		}
	}
	return PackageTypeUnknown, errs.NewValueIsInvalidErrorWithCause("packageType",
		fmt.Errorf("%q is not a valid package type", s))
}

// Validate checks that the PackageType is one of the defined types.
func (p PackageType) Validate() error {
	if _, ok := getValidPackageTypeStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("packageType",
			fmt.Errorf("%d is not a valid package type", p))
	}
	return nil
}

// String returns the human-readable name of the package type.
func (p PackageType) String() string {
	if str, ok := getPackageTypeStrings()[p]; ok {
		return str
	}
	return "Unknown"
}
