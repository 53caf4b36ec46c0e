package request_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"
)

func TestNewPackage(t *testing.T) {
	tests := []struct {
		name        string
		quantity    int
		packageType request.PackageType
		length      float64
		width       float64
		height      float64
		weight      float64
		wantErr     bool
	}{
		{name: "valid pallet", quantity: 2, packageType: request.PackageTypePallet, length: 120, width: 80, height: 120, weight: 300},
		{name: "zero quantity", quantity: 0, packageType: request.PackageTypeBox, length: 10, width: 10, height: 10, weight: 1, wantErr: true},
		{name: "negative length", quantity: 1, packageType: request.PackageTypeBox, length: -1, width: 10, height: 10, weight: 1, wantErr: true},
		{name: "zero weight", quantity: 1, packageType: request.PackageTypeBox, length: 10, width: 10, height: 10, weight: 0, wantErr: true},
		{name: "unknown type", quantity: 1, packageType: request.PackageTypeUnknown, length: 10, width: 10, height: 10, weight: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := request.NewPackage(kernel.NewUUID(), tt.quantity, tt.packageType,
				tt.length, tt.width, tt.height, tt.weight, false, true, 0)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NoError(t, p.Validate())
			assert.Equal(t, tt.quantity, p.Quantity())
		})
	}
}

func TestPackageVolume(t *testing.T) {
	// two pallets of 120x80x120 cm: 1.152 m3 each, 2.304 m3 in total
	p, err := request.NewPackage(kernel.NewUUID(), 2, request.PackageTypePallet,
		120, 80, 120, 300, false, true, 0)
	require.NoError(t, err)

	assert.InDelta(t, 1.152, p.PieceVolumeM3(), 0.0001)
	assert.InDelta(t, 2.304, p.LineVolumeM3(), 0.0001)
	assert.InDelta(t, 600, p.LineWeightKg(), 0.0001)
}

func TestPackageValidate(t *testing.T) {
	var zero request.Package
	require.ErrorIs(t, zero.Validate(), request.ErrPackageIsNotConstructed)

	var nilPkg *request.Package
	require.ErrorIs(t, nilPkg.Validate(), request.ErrPackageIsNotConstructed)
}

func TestPackageTypeFromString(t *testing.T) {
	packageType, err := request.PackageTypeFromString("Pallet")
	require.NoError(t, err)
	assert.Equal(t, request.PackageTypePallet, packageType)

	_, err = request.PackageTypeFromString("Container")
	require.Error(t, err)
}
