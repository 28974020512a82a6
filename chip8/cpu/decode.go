package cpu

import "github.com/valerio/go-chip8/chip8/bit"

// Decode turns the two opcode bytes at the program counter into an Instruction.
// Decoding is total: words that match no known pattern return an instruction
// with Op set to OpInvalid.
func Decode(high, low uint8) Instruction {
	opcode := bit.Combine(high, low)

	in := Instruction{Raw: opcode}
	x := bit.Nibble(opcode, 2)
	y := bit.Nibble(opcode, 1)
	n := bit.Nibble(opcode, 0)
	kk := low
	addr := bit.Addr(opcode)

	switch bit.Nibble(opcode, 3) {
	case 0x0:
		switch n {
		case 0x0:
			in.Op = OpCLS
		case 0xE:
			in.Op = OpRET
		}
	case 0x1:
		in.Op, in.Addr = OpJP, addr
	case 0x2:
		in.Op, in.Addr = OpCALL, addr
	case 0x3:
		in.Op, in.X, in.KK = OpSEImm, x, kk
	case 0x4:
		in.Op, in.X, in.KK = OpSNEImm, x, kk
	case 0x5:
		in.Op, in.X, in.Y = OpSEReg, x, y
	case 0x6:
		in.Op, in.X, in.KK = OpLDImm, x, kk
	case 0x7:
		in.Op, in.X, in.KK = OpADDImm, x, kk
	case 0x8:
		if op, ok := aluOps[n]; ok {
			in.Op, in.X, in.Y = op, x, y
		}
	case 0x9:
		in.Op, in.X, in.Y = OpSNEReg, x, y
	case 0xA:
		in.Op, in.Addr = OpLDI, addr
	case 0xB:
		in.Op, in.Addr = OpJPV0, addr
	case 0xC:
		in.Op, in.X, in.KK = OpRND, x, kk
	case 0xD:
		in.Op, in.X, in.Y, in.N = OpDRW, x, y, n
	case 0xE:
		switch kk {
		case 0x9E:
			in.Op, in.X = OpSKP, x
		case 0xA1:
			in.Op, in.X = OpSKNP, x
		}
	case 0xF:
		if op, ok := miscOps[kk]; ok {
			in.Op, in.X = op, x
		}
	}

	if in.Op == OpInvalid {
		return Instruction{Raw: opcode}
	}
	return in
}

var aluOps = map[uint8]Op{
	0x0: OpLDReg,
	0x1: OpOR,
	0x2: OpAND,
	0x3: OpXOR,
	0x4: OpADDReg,
	0x5: OpSUB,
	0x6: OpSHR,
	0x7: OpSUBN,
	0xE: OpSHL,
}

var miscOps = map[uint8]Op{
	0x07: OpLDVxDT,
	0x0A: OpLDVxK,
	0x15: OpLDDTVx,
	0x18: OpLDSTVx,
	0x1E: OpADDI,
	0x29: OpLDF,
	0x33: OpLDB,
	0x55: OpLDIVx,
	0x65: OpLDVxI,
}

// Encode builds the canonical opcode for an instruction. Invalid
// instructions encode to their raw word.
func Encode(in Instruction) uint16 {
	x := uint16(in.X&0x0F) << 8
	y := uint16(in.Y&0x0F) << 4
	kk := uint16(in.KK)
	addr := in.Addr & 0x0FFF

	switch in.Op {
	case OpCLS:
		return 0x00E0
	case OpRET:
		return 0x00EE
	case OpJP:
		return 0x1000 | addr
	case OpCALL:
		return 0x2000 | addr
	case OpSEImm:
		return 0x3000 | x | kk
	case OpSNEImm:
		return 0x4000 | x | kk
	case OpSEReg:
		return 0x5000 | x | y
	case OpLDImm:
		return 0x6000 | x | kk
	case OpADDImm:
		return 0x7000 | x | kk
	case OpSNEReg:
		return 0x9000 | x | y
	case OpLDI:
		return 0xA000 | addr
	case OpJPV0:
		return 0xB000 | addr
	case OpRND:
		return 0xC000 | x | kk
	case OpDRW:
		return 0xD000 | x | y | uint16(in.N&0x0F)
	case OpSKP:
		return 0xE09E | x
	case OpSKNP:
		return 0xE0A1 | x
	}

	for tail, op := range aluOps {
		if op == in.Op {
			return 0x8000 | x | y | uint16(tail)
		}
	}
	for tail, op := range miscOps {
		if op == in.Op {
			return 0xF000 | x | uint16(tail)
		}
	}
	return in.Raw
}
