package view

type FlashKind string

const (
	FlashInfo    FlashKind = "info"
	FlashSuccess FlashKind = "success"
	FlashWarning FlashKind = "warning"
	FlashError   FlashKind = "error"
)

func (k FlashKind) Valid() bool {
	switch k {
	case FlashInfo, FlashSuccess, FlashWarning, FlashError:
		return true
	}
	return false
}

// Flash is a one-shot message shown on the page after a redirect, such as
// the confirmation after adding to the cart.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}
