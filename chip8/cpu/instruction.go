package cpu

import "fmt"

// Op identifies one of the instruction variants.
type Op uint8

const (
	OpInvalid Op = iota
	OpCLS
	OpRET
	OpJP
	OpCALL
	OpSEImm
	OpSNEImm
	OpSEReg
	OpLDImm
	OpADDImm
	OpLDReg
	OpOR
	OpAND
	OpXOR
	OpADDReg
	OpSUB
	OpSHR
	OpSUBN
	OpSHL
	OpSNEReg
	OpLDI
	OpJPV0
	OpRND
	OpDRW
	OpSKP
	OpSKNP
	OpLDVxDT
	OpLDVxK
	OpLDDTVx
	OpLDSTVx
	OpADDI
	OpLDF
	OpLDB
	OpLDIVx
	OpLDVxI
)

var opNames = [...]string{
	OpInvalid: "INVALID",
	OpCLS:     "CLS",
	OpRET:     "RET",
	OpJP:      "JP",
	OpCALL:    "CALL",
	OpSEImm:   "SE",
	OpSNEImm:  "SNE",
	OpSEReg:   "SE",
	OpLDImm:   "LD",
	OpADDImm:  "ADD",
	OpLDReg:   "LD",
	OpOR:      "OR",
	OpAND:     "AND",
	OpXOR:     "XOR",
	OpADDReg:  "ADD",
	OpSUB:     "SUB",
	OpSHR:     "SHR",
	OpSUBN:    "SUBN",
	OpSHL:     "SHL",
	OpSNEReg:  "SNE",
	OpLDI:     "LD",
	OpJPV0:    "JP",
	OpRND:     "RND",
	OpDRW:     "DRW",
	OpSKP:     "SKP",
	OpSKNP:    "SKNP",
	OpLDVxDT:  "LD",
	OpLDVxK:   "LD",
	OpLDDTVx:  "LD",
	OpLDSTVx:  "LD",
	OpADDI:    "ADD",
	OpLDF:     "LD",
	OpLDB:     "LD",
	OpLDIVx:   "LD",
	OpLDVxI:   "LD",
}

// Mnemonic returns the assembler mnemonic of the op.
func (o Op) Mnemonic() string {
	if int(o) >= len(opNames) {
		return opNames[OpInvalid]
	}
	return opNames[o]
}

// Instruction is a decoded opcode. Fields an op does not use are zero.
type Instruction struct {
	Op   Op
	X    uint8  // first register index
	Y    uint8  // second register index
	KK   uint8  // 8 bit immediate
	N    uint8  // 4 bit immediate (sprite height)
	Addr uint16 // 12 bit address
	Raw  uint16 // the undecoded opcode
}

// Valid reports whether the instruction decoded to a known op.
func (i Instruction) Valid() bool {
	return i.Op != OpInvalid
}

// String renders the instruction in assembler syntax, e.g. "LD V1, 0x2A".
func (i Instruction) String() string {
	m := i.Op.Mnemonic()
	switch i.Op {
	case OpCLS, OpRET:
		return m
	case OpJP, OpCALL:
		return fmt.Sprintf("%s 0x%03X", m, i.Addr)
	case OpSEImm, OpSNEImm, OpLDImm, OpADDImm, OpRND:
		return fmt.Sprintf("%s V%X, 0x%02X", m, i.X, i.KK)
	case OpSEReg, OpSNEReg, OpLDReg, OpOR, OpAND, OpXOR, OpADDReg, OpSUB, OpSUBN:
		return fmt.Sprintf("%s V%X, V%X", m, i.X, i.Y)
	case OpSHR, OpSHL:
		// Vy is only shown when set, so the word reassembles unchanged
		if i.Y != 0 {
			return fmt.Sprintf("%s V%X, V%X", m, i.X, i.Y)
		}
		return fmt.Sprintf("%s V%X", m, i.X)
	case OpSKP, OpSKNP:
		return fmt.Sprintf("%s V%X", m, i.X)
	case OpLDI:
		return fmt.Sprintf("%s I, 0x%03X", m, i.Addr)
	case OpJPV0:
		return fmt.Sprintf("%s V0, 0x%03X", m, i.Addr)
	case OpDRW:
		return fmt.Sprintf("%s V%X, V%X, %d", m, i.X, i.Y, i.N)
	case OpLDVxDT:
		return fmt.Sprintf("%s V%X, DT", m, i.X)
	case OpLDVxK:
		return fmt.Sprintf("%s V%X, K", m, i.X)
	case OpLDDTVx:
		return fmt.Sprintf("%s DT, V%X", m, i.X)
	case OpLDSTVx:
		return fmt.Sprintf("%s ST, V%X", m, i.X)
	case OpADDI:
		return fmt.Sprintf("%s I, V%X", m, i.X)
	case OpLDF:
		return fmt.Sprintf("%s F, V%X", m, i.X)
	case OpLDB:
		return fmt.Sprintf("%s B, V%X", m, i.X)
	case OpLDIVx:
		return fmt.Sprintf("%s [I], V%X", m, i.X)
	case OpLDVxI:
		return fmt.Sprintf("%s V%X, [I]", m, i.X)
	default:
		return fmt.Sprintf("DW 0x%04X", i.Raw)
	}
}
