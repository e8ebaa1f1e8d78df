package valueobjects

// BusinessSize classifies an account's business for capabilities that are
// gated on company attributes rather than plan (e.g. the Peppol access point).
type BusinessSize string

const (
	BusinessSizeSmall  BusinessSize = "small"
	BusinessSizeMedium BusinessSize = "medium"
	BusinessSizeLarge  BusinessSize = "large"
)

func (b BusinessSize) String() string {
	return string(b)
}

func (b BusinessSize) IsValid() bool {
	switch b {
	case BusinessSizeSmall, BusinessSizeMedium, BusinessSizeLarge:
		return true
	}
	return false
}
