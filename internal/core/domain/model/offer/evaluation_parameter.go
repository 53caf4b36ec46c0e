package offer

import (
	"errors"
	"fmt"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

// ErrEvaluationParameterIsNotConstructed is returned when an
// EvaluationParameter was not created via its constructor.
var ErrEvaluationParameterIsNotConstructed = errors.New("evaluation parameter must be created via NewEvaluationParameter")

// EvaluationParameter is a free-form label/value pair staff attach to an
// offer while comparing quotes (payment terms, references, fleet notes).
// The whole set is replaced on every save.
type EvaluationParameter struct {
	id        kernel.UUID
	label     string
	value     string
	sortOrder int

	guard guard.ConstructorGuard
}

// NewEvaluationParameter creates a validated EvaluationParameter.
func NewEvaluationParameter(id kernel.UUID, label, value string, sortOrder int) (*EvaluationParameter, error) {
	p := &EvaluationParameter{
		value: strings.TrimSpace(value),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setLabel(label),
		p.setSortOrder(sortOrder),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreEvaluationParameter reconstructs an EvaluationParameter from
// persistence.
func RestoreEvaluationParameter(id kernel.UUID, label, value string, sortOrder int) (*EvaluationParameter, error) {
	return NewEvaluationParameter(id, label, value, sortOrder)
}

func (p *EvaluationParameter) ID() kernel.UUID { return p.id }
func (p *EvaluationParameter) Label() string   { return p.label }
func (p *EvaluationParameter) Value() string   { return p.value }
func (p *EvaluationParameter) SortOrder() int  { return p.sortOrder }

// Validate returns ErrEvaluationParameterIsNotConstructed for a zero value.
func (p *EvaluationParameter) Validate() error {
	if p == nil {
		return ErrEvaluationParameterIsNotConstructed
	}
	return p.guard.Validate(ErrEvaluationParameterIsNotConstructed)
}

func (p *EvaluationParameter) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *EvaluationParameter) setLabel(label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return errs.NewValueIsRequiredError("label")
	}
	p.label = label
	return nil
}

func (p *EvaluationParameter) setSortOrder(sortOrder int) error {
	if sortOrder < 0 {
		return errs.NewValueIsInvalidErrorWithCause("sortOrder",
			fmt.Errorf("%d is negative", sortOrder))
	}
	p.sortOrder = sortOrder
	return nil
}
