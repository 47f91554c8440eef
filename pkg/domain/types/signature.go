package types

// SignatureType records how a participant confirmed the briefing
type SignatureType string

const (
	SignaturePending SignatureType = "pending"
	SignatureDigital SignatureType = "digital"
	SignatureAnalog  SignatureType = "analog"
)

func (s SignatureType) IsValid() bool {
	switch s {
	case SignaturePending, SignatureDigital, SignatureAnalog:
		return true
	default:
		return false
	}
}

// IsSigned is true for digital and analog signatures.
func (s SignatureType) IsSigned() bool {
	return s == SignatureDigital || s == SignatureAnalog
}

func (s SignatureType) String() string {
	return string(s)
}
