package workflow

// Kind selects which transition table and side-effect rules apply
type Kind string

const (
	KindProject Kind = "project"
	KindPayment Kind = "payment"
)

var validKinds = map[Kind]bool{
	KindProject: true,
	KindPayment: true,
}

// IsValid returns true if the kind is a known workflow kind
func (k Kind) IsValid() bool {
	return validKinds[k]
}

// String returns the string representation of the kind
func (k Kind) String() string {
	return string(k)
}

// ParseKind converts a string to a Kind, reporting whether it is valid
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	return k, k.IsValid()
}
