package asm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/valerio/go-chip8/chip8/bit"
	"github.com/valerio/go-chip8/chip8/cpu"
	"github.com/valerio/go-chip8/chip8/memory"
)

var (
	ErrUnknownMnemonic = errors.New("unknown mnemonic")
	ErrBadOperands     = errors.New("bad operands")
	ErrUndefinedLabel  = errors.New("undefined label")
	ErrDuplicateLabel  = errors.New("duplicate label")
	ErrValueRange      = errors.New("value out of range")
)

type operandKind int

const (
	kindNumber operandKind = iota
	kindRegister
	kindI
	kindIndirect
	kindDT
	kindST
	kindK
	kindF
	kindB
)

var kindNames = [...]string{
	kindNumber:   "N",
	kindRegister: "V",
	kindI:        "I",
	kindIndirect: "[I]",
	kindDT:       "DT",
	kindST:       "ST",
	kindK:        "K",
	kindF:        "F",
	kindB:        "B",
}

var keywords = map[string]operandKind{
	"I":  kindI,
	"DT": kindDT,
	"ST": kindST,
	"K":  kindK,
	"F":  kindF,
	"B":  kindB,
}

type operand struct {
	kind  operandKind
	value uint16
}

// field says where an operand lands in the instruction.
type field int

const (
	fieldNone field = iota
	fieldX
	fieldY
	fieldKK
	fieldN
	fieldAddr
)

type form struct {
	op     cpu.Op
	fields []field
}

// forms maps "MNEMONIC shape" to an instruction, where shape lists the
// operand kinds, e.g. "LD V,N".
var forms = map[string]form{
	"CLS":       {cpu.OpCLS, nil},
	"RET":       {cpu.OpRET, nil},
	"JP N":      {cpu.OpJP, []field{fieldAddr}},
	"JP V,N":    {cpu.OpJPV0, []field{fieldNone, fieldAddr}},
	"CALL N":    {cpu.OpCALL, []field{fieldAddr}},
	"SE V,N":    {cpu.OpSEImm, []field{fieldX, fieldKK}},
	"SE V,V":    {cpu.OpSEReg, []field{fieldX, fieldY}},
	"SNE V,N":   {cpu.OpSNEImm, []field{fieldX, fieldKK}},
	"SNE V,V":   {cpu.OpSNEReg, []field{fieldX, fieldY}},
	"LD V,N":    {cpu.OpLDImm, []field{fieldX, fieldKK}},
	"LD V,V":    {cpu.OpLDReg, []field{fieldX, fieldY}},
	"LD I,N":    {cpu.OpLDI, []field{fieldNone, fieldAddr}},
	"LD V,DT":   {cpu.OpLDVxDT, []field{fieldX, fieldNone}},
	"LD V,K":    {cpu.OpLDVxK, []field{fieldX, fieldNone}},
	"LD DT,V":   {cpu.OpLDDTVx, []field{fieldNone, fieldX}},
	"LD ST,V":   {cpu.OpLDSTVx, []field{fieldNone, fieldX}},
	"LD F,V":    {cpu.OpLDF, []field{fieldNone, fieldX}},
	"LD B,V":    {cpu.OpLDB, []field{fieldNone, fieldX}},
	"LD [I],V":  {cpu.OpLDIVx, []field{fieldNone, fieldX}},
	"LD V,[I]":  {cpu.OpLDVxI, []field{fieldX, fieldNone}},
	"ADD V,N":   {cpu.OpADDImm, []field{fieldX, fieldKK}},
	"ADD V,V":   {cpu.OpADDReg, []field{fieldX, fieldY}},
	"ADD I,V":   {cpu.OpADDI, []field{fieldNone, fieldX}},
	"OR V,V":    {cpu.OpOR, []field{fieldX, fieldY}},
	"AND V,V":   {cpu.OpAND, []field{fieldX, fieldY}},
	"XOR V,V":   {cpu.OpXOR, []field{fieldX, fieldY}},
	"SUB V,V":   {cpu.OpSUB, []field{fieldX, fieldY}},
	"SUBN V,V":  {cpu.OpSUBN, []field{fieldX, fieldY}},
	"SHR V":     {cpu.OpSHR, []field{fieldX}},
	"SHR V,V":   {cpu.OpSHR, []field{fieldX, fieldY}},
	"SHL V":     {cpu.OpSHL, []field{fieldX}},
	"SHL V,V":   {cpu.OpSHL, []field{fieldX, fieldY}},
	"RND V,N":   {cpu.OpRND, []field{fieldX, fieldKK}},
	"DRW V,V,N": {cpu.OpDRW, []field{fieldX, fieldY, fieldN}},
	"SKP V":     {cpu.OpSKP, []field{fieldX}},
	"SKNP V":    {cpu.OpSKNP, []field{fieldX}},
}

var fieldLimits = map[field]uint16{
	fieldKK:   0xFF,
	fieldN:    0x0F,
	fieldAddr: 0xFFF,
}

// Assemble translates source into a program image to be loaded at
// memory.ProgramStart. Mnemonics and register names are case insensitive,
// labels are not.
func Assemble(filename, source string) ([]byte, error) {
	prog, err := Parse(filename, source)
	if err != nil {
		return nil, err
	}

	labels, err := collectLabels(prog)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(prog.Lines)*2)
	for _, line := range prog.Lines {
		if line.Statement == nil {
			continue
		}
		out, err = emit(out, line.Statement, labels)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", line.Statement.Pos, err)
		}
	}

	if len(out) > memory.MaxProgramSize {
		return nil, fmt.Errorf("%w: %d bytes", memory.ErrProgramTooLarge, len(out))
	}
	return out, nil
}

// collectLabels assigns every label the address of the statement that follows it.
func collectLabels(prog *Program) (map[string]uint16, error) {
	labels := make(map[string]uint16)
	addr := int(memory.ProgramStart)
	for _, line := range prog.Lines {
		if line.Label != nil {
			name := *line.Label
			if _, dup := labels[name]; dup {
				return nil, fmt.Errorf("%s: %w: %s", line.Pos, ErrDuplicateLabel, name)
			}
			labels[name] = uint16(addr)
		}
		if line.Statement != nil {
			addr += size(line.Statement)
		}
	}
	return labels, nil
}

func size(s *Statement) int {
	switch strings.ToUpper(s.Mnemonic) {
	case "DB":
		return len(s.Operands)
	case "DW":
		return 2 * len(s.Operands)
	default:
		return 2
	}
}

func emit(out []byte, s *Statement, labels map[string]uint16) ([]byte, error) {
	mnemonic := strings.ToUpper(s.Mnemonic)

	ops := make([]operand, 0, len(s.Operands))
	for _, o := range s.Operands {
		resolved, err := resolve(o, labels)
		if err != nil {
			return nil, err
		}
		ops = append(ops, resolved)
	}

	switch mnemonic {
	case "DB":
		for _, o := range ops {
			if o.kind != kindNumber || o.value > 0xFF {
				return nil, fmt.Errorf("%w: DB takes byte values", ErrBadOperands)
			}
			out = append(out, byte(o.value))
		}
		return out, nil
	case "DW":
		for _, o := range ops {
			if o.kind != kindNumber {
				return nil, fmt.Errorf("%w: DW takes word values", ErrBadOperands)
			}
			out = append(out, bit.High(o.value), bit.Low(o.value))
		}
		return out, nil
	}

	in, err := build(mnemonic, ops)
	if err != nil {
		return nil, err
	}
	word := cpu.Encode(in)
	return append(out, bit.High(word), bit.Low(word)), nil
}

func build(mnemonic string, ops []operand) (cpu.Instruction, error) {
	key := mnemonic
	if len(ops) > 0 {
		shape := make([]string, len(ops))
		for i, o := range ops {
			shape[i] = kindNames[o.kind]
		}
		key += " " + strings.Join(shape, ",")
	}

	f, ok := forms[key]
	if !ok {
		if !knownMnemonic(mnemonic) {
			return cpu.Instruction{}, fmt.Errorf("%w: %s", ErrUnknownMnemonic, mnemonic)
		}
		return cpu.Instruction{}, fmt.Errorf("%w: %s", ErrBadOperands, key)
	}

	in := cpu.Instruction{Op: f.op}
	for i, fld := range f.fields {
		v := ops[i].value
		if limit, ok := fieldLimits[fld]; ok && v > limit {
			return cpu.Instruction{}, fmt.Errorf("%w: 0x%X exceeds 0x%X in %s", ErrValueRange, v, limit, key)
		}
		switch fld {
		case fieldX:
			in.X = uint8(v)
		case fieldY:
			in.Y = uint8(v)
		case fieldKK:
			in.KK = uint8(v)
		case fieldN:
			in.N = uint8(v)
		case fieldAddr:
			in.Addr = v
		}
	}

	// JP V0, addr only exists for V0
	if f.op == cpu.OpJPV0 && ops[0].value != 0 {
		return cpu.Instruction{}, fmt.Errorf("%w: JP takes V0 as offset register", ErrBadOperands)
	}
	return in, nil
}

func knownMnemonic(mnemonic string) bool {
	for key := range forms {
		if m, _, _ := strings.Cut(key, " "); m == mnemonic {
			return true
		}
	}
	return false
}

func resolve(o *Operand, labels map[string]uint16) (operand, error) {
	switch {
	case o.Indirect != nil:
		if !strings.EqualFold(*o.Indirect, "I") {
			return operand{}, fmt.Errorf("%w: [%s]", ErrBadOperands, *o.Indirect)
		}
		return operand{kind: kindIndirect}, nil
	case o.Number != nil:
		v, err := strconv.ParseUint(*o.Number, 0, 16)
		if err != nil {
			return operand{}, fmt.Errorf("%w: %s", ErrValueRange, *o.Number)
		}
		return operand{kind: kindNumber, value: uint16(v)}, nil
	case o.Name != nil:
		name := *o.Name
		upper := strings.ToUpper(name)
		if reg, ok := register(upper); ok {
			return operand{kind: kindRegister, value: uint16(reg)}, nil
		}
		if kind, ok := keywords[upper]; ok {
			return operand{kind: kind}, nil
		}
		addr, ok := labels[name]
		if !ok {
			return operand{}, fmt.Errorf("%w: %s", ErrUndefinedLabel, name)
		}
		return operand{kind: kindNumber, value: addr}, nil
	}
	return operand{}, ErrBadOperands
}

func register(name string) (uint8, bool) {
	if len(name) != 2 || name[0] != 'V' {
		return 0, false
	}
	v, err := strconv.ParseUint(name[1:], 16, 8)
	if err != nil {
		return 0, false
	}
	return uint8(v), true
}
