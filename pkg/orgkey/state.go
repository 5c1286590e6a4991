package orgkey

// State is a snapshot of a field. Error is empty when the value is valid or unchecked.
type State struct {
	Value      string `json:"value"`
	Touched    bool   `json:"touched"`
	Editing    bool   `json:"editing"`
	Validating bool   `json:"validating"`
	Error      string `json:"error,omitempty"`
}

// IsInvalid reports whether the field should be displayed as invalid.
// Errors stay hidden while the user is editing.
func (s State) IsInvalid() bool {
	return s.Touched && !s.Editing && s.Error != ""
}

// IsValid reports whether the field should be displayed as valid.
func (s State) IsValid() bool {
	return s.Touched && !s.Validating && s.Error == ""
}
