package overlay

import "fmt"

// Kind identifies which setup step was rejected by the host. Kinds are
// errors themselves so callers can write errors.Is(err, overlay.WindowNotFound).
type Kind int

const (
	WindowNotFound Kind = iota + 1
	StyleReadFailed
	StyleWriteFailed
	FrameExtendFailed
	LayeredAttributesFailed
	ZOrderFailed
	ShowFailed

	WindowNotAcquired
	DrawingFactoryFailed
	TextFactoryFailed
	TextFormatFailed
	ClientRectFailed
	RenderTargetFailed
)

var kindNames = map[Kind]string{
	WindowNotFound:          "window not found",
	StyleReadFailed:         "style read failed",
	StyleWriteFailed:        "style write failed",
	FrameExtendFailed:       "frame extend failed",
	LayeredAttributesFailed: "layered attributes failed",
	ZOrderFailed:            "z-order failed",
	ShowFailed:              "show failed",
	WindowNotAcquired:       "window not acquired",
	DrawingFactoryFailed:    "drawing factory failed",
	TextFactoryFailed:       "text factory failed",
	TextFormatFailed:        "text format failed",
	ClientRectFailed:        "client rect failed",
	RenderTargetFailed:      "render target failed",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k Kind) Error() string { return "overlay: " + k.String() }

// SetupError is returned by Init and Startup. Op names the host call that
// failed and Err carries the host's own error, if it gave one.
type SetupError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *SetupError) Error() string {
	msg := "overlay: " + e.Op + ": " + e.Kind.String()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SetupError) Unwrap() error { return e.Err }

// Is reports whether target is this error's Kind.
func (e *SetupError) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// ContractViolation is the panic value raised by frame operations that are
// called without the resources they need, or whose transient allocations
// are rejected. It is never returned as an error.
type ContractViolation struct {
	Op      string
	Missing string
	Err     error
}

func (v *ContractViolation) Error() string {
	msg := "overlay: " + v.Op + ": no " + v.Missing
	if v.Err != nil {
		msg += ": " + v.Err.Error()
	}
	return msg
}

func (v *ContractViolation) Unwrap() error { return v.Err }

func violate(op, missing string, err error) {
	panic(&ContractViolation{Op: op, Missing: missing, Err: err})
}
