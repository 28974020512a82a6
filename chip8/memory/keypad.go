package memory

// Key is one of the 16 hexadecimal keys of the keypad.
type Key uint8

const (
	Key0 Key = iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
)

// KeyCount is the number of keys on the keypad.
const KeyCount = 16

// Keypad latches the pressed state of the 16 keys.
// Only the host writes to it, the interpreter only reads.
type Keypad struct {
	keys [KeyCount]bool
}

// NewKeypad creates a keypad with every key released.
func NewKeypad() *Keypad {
	return &Keypad{}
}

// Press marks a key as held down.
func (k *Keypad) Press(key Key) {
	k.Set(key, true)
}

// Release marks a key as up.
func (k *Keypad) Release(key Key) {
	k.Set(key, false)
}

// Set updates the state of a key. Keys outside 0-F are ignored.
func (k *Keypad) Set(key Key, pressed bool) {
	if key >= KeyCount {
		return
	}
	k.keys[key] = pressed
}

// IsPressed reports whether the key is held. Only the low nibble of key is used.
func (k *Keypad) IsPressed(key Key) bool {
	return k.keys[key&0x0F]
}

// FirstPressed scans the keys in ascending order and returns the first held one.
func (k *Keypad) FirstPressed() (Key, bool) {
	for i, pressed := range k.keys {
		if pressed {
			return Key(i), true
		}
	}
	return 0, false
}

// Reset releases every key.
func (k *Keypad) Reset() {
	k.keys = [KeyCount]bool{}
}

// State returns a copy of the key states.
func (k *Keypad) State() [KeyCount]bool {
	return k.keys
}
