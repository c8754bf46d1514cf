package domain

// Profile is the record collected by page one and displayed by page two.
// A nil field is undefined; a pointer to "" was submitted empty.
// The same type doubles as a partial update, where nil fields are absent.
type Profile struct {
	FirstName *string `json:"firstname,omitempty" yaml:"firstname,omitempty"`
	LastName  *string `json:"lastname,omitempty" yaml:"lastname,omitempty"`
	Age       *string `json:"age,omitempty" yaml:"age,omitempty"`
}

// Text returns a pointer to v, for building patches.
func Text(v string) *string {
	return &v
}

// Merge returns a new Profile where every field set in patch overrides p.
func (p Profile) Merge(patch Profile) Profile {
	out := p.Clone()
	if patch.FirstName != nil {
		out.FirstName = Text(*patch.FirstName)
	}
	if patch.LastName != nil {
		out.LastName = Text(*patch.LastName)
	}
	if patch.Age != nil {
		out.Age = Text(*patch.Age)
	}
	return out
}

// Clone returns a deep copy of p.
func (p Profile) Clone() Profile {
	return Profile{
		FirstName: cloneText(p.FirstName),
		LastName:  cloneText(p.LastName),
		Age:       cloneText(p.Age),
	}
}

// IsEmpty reports whether no field is defined.
func (p Profile) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Age == nil
}

// FullName joins first and last name with a single space.
func (p Profile) FullName() string {
	return valueOf(p.FirstName) + " " + valueOf(p.LastName)
}

func (p Profile) DisplayFirstName() string { return valueOf(p.FirstName) }
func (p Profile) DisplayLastName() string  { return valueOf(p.LastName) }
func (p Profile) DisplayAge() string       { return valueOf(p.Age) }

func cloneText(v *string) *string {
	if v == nil {
		return nil
	}
	return Text(*v)
}

func valueOf(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
