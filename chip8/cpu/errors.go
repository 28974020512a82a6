package cpu

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidOpcode  = errors.New("invalid opcode")
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrPCOutOfRange   = errors.New("program counter out of range")
)

// Fault describes an instruction that could not be executed.
type Fault struct {
	PC          uint16 // address the instruction was fetched from
	Instruction Instruction
	Err         error
}

func (f *Fault) Error() string {
	// nothing was fetched, so there is no opcode to show
	if errors.Is(f.Err, ErrPCOutOfRange) {
		return fmt.Sprintf("fault at 0x%03X: %v", f.PC, f.Err)
	}
	return fmt.Sprintf("fault at 0x%03X (0x%04X %s): %v", f.PC, f.Instruction.Raw, f.Instruction, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// IsFatal reports whether err leaves the machine unable to continue.
// Stack faults and running off the end of memory are fatal, invalid
// opcodes and out of range memory operands are not.
func IsFatal(err error) bool {
	return errors.Is(err, ErrStackOverflow) ||
		errors.Is(err, ErrStackUnderflow) ||
		errors.Is(err, ErrPCOutOfRange)
}
