package suggest

import (
	"errors"
	"fmt"
)

// Canned instructions for triggers that carry no text of their own.
const (
	EmptyFunctionInstruction = "Complete the empty function and generate contents based on the function name and signature. " +
		"Do not repeat the code. Only return the method contents."
	SmallFileInstruction = "Create more new code for this file. If the cursor is inside an empty function, " +
		"generate its most likely contents based on the function name and signature."
)

// ErrUnknownTrigger is returned when asked to resolve a trigger outside the
// known set.
var ErrUnknownTrigger = errors.New("unknown trigger type")

// Instruction pairs a trigger with the text sent to the model.
type Instruction struct {
	Trigger Trigger
	// Text is the canned or user-supplied instruction; empty for comment
	// triggers, where the comment itself instructs the model.
	Text string
	// Comment is the seed extracted from the trailing comment, if any.
	Comment string
	// UserSupplied is true when Text is the caller's own instruction.
	UserSupplied bool
}

// ResolveInstruction maps a trigger to its instruction.
func ResolveInstruction(t Trigger) (Instruction, error) {
	switch t {
	case TriggerComment:
		return Instruction{Trigger: t}, nil
	case TriggerEmptyFunction:
		return Instruction{Trigger: t, Text: EmptyFunctionInstruction}, nil
	case TriggerSmallFile:
		return Instruction{Trigger: t, Text: SmallFileInstruction}, nil
	default:
		return Instruction{}, fmt.Errorf("%w: %q", ErrUnknownTrigger, string(t))
	}
}

// UserInstruction wraps free text typed by the user.
func UserInstruction(text string) Instruction {
	return Instruction{Trigger: TriggerComment, Text: text, UserSupplied: true}
}
