package input

import "github.com/fanzeyi/wezterm/internal/window"

// esc is the escape byte opening CSI and SS3 sequences.
const esc = 0x1b

// EncodeKey turns an unbound key chord into the byte sequence written to
// the tab's transport, xterm style. It returns nil when the chord has no
// terminal encoding (bare modifiers, unmapped specials).
func EncodeKey(key window.KeyCode, mods window.Modifiers) []byte {
	switch key.Kind {
	case window.KeyChar:
		return encodeChar(key.Char, mods)
	case window.KeyEnter:
		return []byte{'\r'}
	case window.KeyTab:
		if mods.Contains(window.ModShift) {
			return []byte{esc, '[', 'Z'}
		}
		return []byte{'\t'}
	case window.KeyBackspace:
		return []byte{0x7f}
	case window.KeyEscape:
		return []byte{esc}
	case window.KeyLeftArrow:
		return csi('D')
	case window.KeyRightArrow:
		return csi('C')
	case window.KeyUpArrow:
		return csi('A')
	case window.KeyDownArrow:
		return csi('B')
	case window.KeyHome:
		return csi('H')
	case window.KeyEnd:
		return csi('F')
	case window.KeyInsert:
		return tilde(2)
	case window.KeyDelete:
		return tilde(3)
	case window.KeyPageUp:
		return tilde(5)
	case window.KeyPageDown:
		return tilde(6)
	case window.KeyFunction:
		return encodeFunction(key.Function)
	default:
		return nil
	}
}

func encodeChar(r rune, mods window.Modifiers) []byte {
	var out []byte
	if mods.Contains(window.ModAlt) {
		out = append(out, esc)
	}
	if mods.Contains(window.ModCtrl) && r >= 0x40 && r < 0x80 {
		// Ctrl maps letters and the punctuation block to C0 controls.
		return append(out, byte(r)&0x1f)
	}
	return append(out, []byte(string(r))...)
}

func csi(final byte) []byte {
	return []byte{esc, '[', final}
}

func tilde(n byte) []byte {
	return []byte{esc, '[', '0' + n, '~'}
}

// fnFinal maps F1-F4 to their SS3 finals.
var fnFinal = [4]byte{'P', 'Q', 'R', 'S'}

func encodeFunction(n int) []byte {
	switch {
	case n >= 1 && n <= 4:
		return []byte{esc, 'O', fnFinal[n-1]}
	case n >= 5 && n <= 12:
		// F5..F12 use CSI number ~ with the historical gaps.
		nums := [8]byte{15, 17, 18, 19, 20, 21, 23, 24}
		num := nums[n-5]
		return []byte{esc, '[', '0' + num/10, '0' + num%10, '~'}
	default:
		return nil
	}
}
