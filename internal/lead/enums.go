package lead

// PropertyType is the kind of property the visitor is asking about. The
// empty value means the visitor left the field unset.
type PropertyType string

const (
	PropertyTypeUnspecified PropertyType = ""
	PropertyTypeResidential PropertyType = "residential"
	PropertyTypeCommercial  PropertyType = "commercial"
	PropertyTypePlot        PropertyType = "plot"
)

// IsValid reports whether the value is a known property type (including unset)
func (p PropertyType) IsValid() bool {
	switch p {
	case PropertyTypeUnspecified, PropertyTypeResidential, PropertyTypeCommercial, PropertyTypePlot:
		return true
	}
	return false
}

// Budget is the visitor's stated budget range, empty when unset
type Budget string

const (
	BudgetUnspecified Budget = ""
	BudgetUnder50L    Budget = "under-50l"
	Budget50LTo1Cr    Budget = "50l-1cr"
	Budget1CrTo2Cr    Budget = "1cr-2cr"
	BudgetAbove2Cr    Budget = "above-2cr"
)

// IsValid reports whether the value is a known budget range (including unset)
func (b Budget) IsValid() bool {
	switch b {
	case BudgetUnspecified, BudgetUnder50L, Budget50LTo1Cr, Budget1CrTo2Cr, BudgetAbove2Cr:
		return true
	}
	return false
}

// notSpecified substitutes the display fallback for empty optional segments
// when the persisted message is assembled.
const notSpecified = "Not specified"

func orNotSpecified(s string) string {
	if s == "" {
		return notSpecified
	}
	return s
}
