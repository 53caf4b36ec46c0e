package commands

import (
	"errors"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrSaveEvaluationParametersCommandIsNotConstructed = errors.New(
	"SaveEvaluationParametersCommand must be created via NewSaveEvaluationParametersCommand constructor",
)

// EvaluationParameterLine is one label/value pair of the comparison grid.
type EvaluationParameterLine struct {
	Label string
	Value string
}

// SaveEvaluationParametersCommand replaces the full evaluation grid of one
// offer. An empty set clears it.
type SaveEvaluationParametersCommand struct { //nolint:recvcheck //using for validation
	offerID kernel.UUID
	lines   []EvaluationParameterLine

	guard guard.ConstructorGuard
}

func NewSaveEvaluationParametersCommand(
	offerID kernel.UUID,
	lines []EvaluationParameterLine,
) (SaveEvaluationParametersCommand, error) {
	cmd := SaveEvaluationParametersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := offerID.Validate(); err != nil {
		return SaveEvaluationParametersCommand{}, err
	}
	cmd.offerID = offerID

	for _, line := range lines {
		if strings.TrimSpace(line.Label) == "" {
			return SaveEvaluationParametersCommand{}, errs.NewValueIsRequiredError("label")
		}
	}
	cmd.lines = lines

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SaveEvaluationParametersCommand) Validate() error {
	return c.guard.Validate(ErrSaveEvaluationParametersCommandIsNotConstructed)
}

func (c SaveEvaluationParametersCommand) OfferID() kernel.UUID             { return c.offerID }
func (c SaveEvaluationParametersCommand) Lines() []EvaluationParameterLine { return c.lines }
