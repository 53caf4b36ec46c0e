package commands

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"
)

// UpdatePackagesCommandHandler replaces the package lines of a Draft request.
type UpdatePackagesCommandHandler struct {
	uowFactory RequestUoWFactory
}

// NewUpdatePackagesCommandHandler creates a handler for package line updates.
func NewUpdatePackagesCommandHandler(uowFactory RequestUoWFactory) UpdatePackagesCommandHandler {
	return UpdatePackagesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the package update command. Lines receive fresh
// identifiers on every update; line identity does not survive an edit.
func (h *UpdatePackagesCommandHandler) Handle(ctx context.Context, cmd UpdatePackagesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requestRepo := uow.RequestRepository()

	aggregate, err := requestRepo.Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}

	packages := make([]*request.Package, 0, len(cmd.Lines()))
	for i, line := range cmd.Lines() {
		pkg, pkgErr := request.NewPackage(
			kernel.NewUUID(),
			line.Quantity,
			line.PackageType,
			line.LengthCm,
			line.WidthCm,
			line.HeightCm,
			line.WeightKg,
			line.Fragile,
			line.Stackable,
			i,
		)
		if pkgErr != nil {
			return pkgErr
		}
		packages = append(packages, pkg)
	}

	if err = aggregate.ReplacePackages(packages); err != nil {
		return err
	}

	if err = requestRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
