package products

// Selection is a caller-supplied variant choice. The zero value means the
// caller did not choose; SelectNone is an explicit "no variant" and stops
// resolution.
type Selection struct {
	id  string
	set bool
}

func Select(id string) Selection { return Selection{id: id, set: true} }

func SelectNone() Selection { return Selection{set: true} }

func (s Selection) IsSet() bool { return s.set }

// ID returns the chosen id. ok is false for unset and explicit-none selections.
func (s Selection) ID() (string, bool) {
	if !s.set || s.id == "" {
		return "", false
	}
	return s.id, true
}

func (s Selection) String() string {
	switch {
	case !s.set:
		return "<unset>"
	case s.id == "":
		return "<none>"
	default:
		return s.id
	}
}

// ResolveVariantID picks the variant to add to a cart:
// the explicit selection, then the initial selection, then the first
// variant available for sale, then the first variant.
// A set selection is final even when it is SelectNone.
func ResolveVariantID(explicit, initial Selection, variants []Variant) (string, bool) {
	if explicit.IsSet() {
		return explicit.ID()
	}
	if initial.IsSet() {
		return initial.ID()
	}
	for _, v := range variants {
		if v.AvailableForSale {
			return v.ID, true
		}
	}
	if len(variants) > 0 {
		return variants[0].ID, true
	}
	return "", false
}
