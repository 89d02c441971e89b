package session

import "fmt"

// EffectKind names an externally visible step requested by the controller.
type EffectKind int

const (
	EffectHideWindow EffectKind = iota + 1
	EffectShowWindow
	EffectCapture
	EffectOpenSaveDialog
	EffectWriteFile
	EffectWriteClipboard
	EffectCloseApp
)

func (k EffectKind) String() string {
	switch k {
	case EffectHideWindow:
		return "hide"
	case EffectShowWindow:
		return "show"
	case EffectCapture:
		return "capture"
	case EffectOpenSaveDialog:
		return "save-dialog"
	case EffectWriteFile:
		return "write"
	case EffectWriteClipboard:
		return "clipboard"
	case EffectCloseApp:
		return "close"
	}
	return fmt.Sprintf("EffectKind(%d)", int(k))
}

// Effect is one request issued to a collaborator.
type Effect struct {
	Kind EffectKind
	// Region is the capture rectangle; nil grabs the full display.
	Region *Region
	// Name and Dir are the save dialog defaults.
	Name string
	Dir  string
	// Path is the file written.
	Path string
}

func (e Effect) String() string {
	switch e.Kind {
	case EffectCapture:
		if e.Region != nil {
			return fmt.Sprintf("capture %s", e.Region)
		}
		return "capture full"
	case EffectOpenSaveDialog:
		return fmt.Sprintf("save-dialog %s in %s", e.Name, e.Dir)
	case EffectWriteFile:
		return fmt.Sprintf("write %s", e.Path)
	}
	return e.Kind.String()
}

// Kinds lists the kinds of effects, in order.
func Kinds(effects []Effect) []EffectKind {
	out := make([]EffectKind, len(effects))
	for i, e := range effects {
		out[i] = e.Kind
	}
	return out
}
