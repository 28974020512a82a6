package cpu

import (
	"github.com/valerio/go-chip8/chip8/bit"
	"github.com/valerio/go-chip8/chip8/memory"
)

// execute applies an already fetched instruction. The program counter
// already points at the next instruction.
func (c *CPU) execute(in Instruction) error {
	x, y := in.X, in.Y

	switch in.Op {
	case OpCLS:
		c.screen.Clear()
	case OpRET:
		if c.sp == 0 {
			return ErrStackUnderflow
		}
		c.sp--
		c.pc = c.stack[c.sp]
	case OpJP:
		c.pc = in.Addr
	case OpCALL:
		if int(c.sp) >= StackSize {
			return ErrStackOverflow
		}
		c.stack[c.sp] = c.pc
		c.sp++
		c.pc = in.Addr
	case OpSEImm:
		c.skipIf(c.v[x] == in.KK)
	case OpSNEImm:
		c.skipIf(c.v[x] != in.KK)
	case OpSEReg:
		c.skipIf(c.v[x] == c.v[y])
	case OpSNEReg:
		c.skipIf(c.v[x] != c.v[y])
	case OpLDImm:
		c.v[x] = in.KK
	case OpADDImm:
		c.v[x] += in.KK
	case OpLDReg:
		c.v[x] = c.v[y]
	case OpOR:
		c.v[x] |= c.v[y]
	case OpAND:
		c.v[x] &= c.v[y]
	case OpXOR:
		c.v[x] ^= c.v[y]
	case OpADDReg:
		result, overflow := bit.CheckedAdd(c.v[x], c.v[y])
		c.v[x] = result
		c.setFlag(overflow)
	case OpSUB:
		result, borrow := bit.CheckedSub(c.v[x], c.v[y])
		c.v[x] = result
		c.setFlag(borrow)
	case OpSUBN:
		result, borrow := bit.CheckedSub(c.v[y], c.v[x])
		c.v[x] = result
		c.setFlag(borrow)
	case OpSHR:
		lsb := bit.GetBitValue(0, c.v[x])
		c.v[x] >>= 1
		c.v[flagRegister] = lsb
	case OpSHL:
		msb := bit.GetBitValue(7, c.v[x])
		c.v[x] <<= 1
		c.v[flagRegister] = msb
	case OpLDI:
		c.index = in.Addr
	case OpJPV0:
		c.pc = in.Addr + uint16(c.v[0])
	case OpRND:
		c.v[x] = uint8(c.rng.UintN(256)) & in.KK
	case OpDRW:
		return c.draw(c.v[x], c.v[y], in.N)
	case OpSKP:
		c.skipIf(c.keypad.IsPressed(memory.Key(c.v[x])))
	case OpSKNP:
		c.skipIf(!c.keypad.IsPressed(memory.Key(c.v[x])))
	case OpLDVxDT:
		c.v[x] = c.delayTimer
	case OpLDVxK:
		// no key down: rewind so the same instruction runs again next cycle
		if key, ok := c.keypad.FirstPressed(); ok {
			c.v[x] = uint8(key)
		} else {
			c.pc -= 2
		}
	case OpLDDTVx:
		c.delayTimer = c.v[x]
	case OpLDSTVx:
		c.soundTimer = c.v[x]
	case OpADDI:
		c.index += uint16(c.v[x])
	case OpLDF:
		c.index = memory.FontStart + uint16(c.v[x])*memory.GlyphSize
	case OpLDB:
		buf, err := c.mem.Slice(c.index, 3)
		if err != nil {
			return err
		}
		buf[0], buf[1], buf[2] = bit.Digits(c.v[x])
	case OpLDIVx:
		buf, err := c.mem.Slice(c.index, int(x)+1)
		if err != nil {
			return err
		}
		copy(buf, c.v[:x+1])
	case OpLDVxI:
		buf, err := c.mem.Slice(c.index, int(x)+1)
		if err != nil {
			return err
		}
		copy(c.v[:x+1], buf)
	default:
		return ErrInvalidOpcode
	}

	return nil
}

// draw XORs an n-byte sprite read from index onto the screen at (vx, vy).
// Pixels past the right or bottom edge wrap around. VF is set when any lit
// pixel is turned off.
func (c *CPU) draw(vx, vy, n uint8) error {
	if n == 0 {
		c.setFlag(false)
		return nil
	}

	sprite, err := c.mem.Slice(c.index, int(n))
	if err != nil {
		return err
	}

	collision := false
	for row, line := range sprite {
		for col := range 8 {
			if !bit.IsSet(uint8(7-col), line) {
				continue
			}
			if c.screen.Toggle(int(vx)+col, int(vy)+row) {
				collision = true
			}
		}
	}

	c.setFlag(collision)
	return nil
}
