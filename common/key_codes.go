package common

// Virtual key codes used by the demo windows to trigger animations.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeySpace = 32  // Spacebar (ASCII)
	KeyR     = 82  // R key (ASCII)
	KeyEsc   = 256 // Escape key (GLFW)

	Key1 = 49 // 1 key (ASCII)
	Key2 = 50 // 2 key (ASCII)
	Key3 = 51 // 3 key (ASCII)
	Key4 = 52 // 4 key (ASCII)
	Key5 = 53 // 5 key (ASCII)
)

// DigitKey returns the zero-based index of a digit key in [Key1, Key5], or -1.
//
// Parameters:
//   - keyCode: the virtual key code
//
// Returns:
//   - int: the index, or -1 when the key is not a mapped digit
func DigitKey(keyCode uint32) int {
	if keyCode < Key1 || keyCode > Key5 {
		return -1
	}
	return int(keyCode - Key1)
}
