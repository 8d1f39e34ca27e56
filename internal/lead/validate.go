package lead

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field names used as keys in the validation error map
const (
	FieldName         = "name"
	FieldEmail        = "email"
	FieldPhone        = "phone"
	FieldPropertyType = "propertyType"
	FieldBudget       = "budget"
	FieldLocation     = "location"
	FieldMessage      = "message"
)

const (
	minMessageLen = 10
	maxMessageLen = 1000
)

var (
	nameRe  = regexp.MustCompile(`^[A-Za-z ]+$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[A-Za-z]{2,}$`)
	// Indian mobile: optional +91 prefix, first significant digit 6-9,
	// ten significant digits.
	phoneRe      = regexp.MustCompile(`^(\+91)?[6-9]\d{9}$`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// FormValues holds the inquiry form's field values
type FormValues struct {
	Name         string
	Email        string
	Phone        string
	PropertyType PropertyType
	Budget       Budget
	Location     string
	Message      string
}

// validate applies every rule independently and collects all errors; an
// empty map means the form is valid.
func validate(v FormValues) map[string]string {
	errs := make(map[string]string)

	name := strings.TrimSpace(v.Name)
	if utf8.RuneCountInString(name) < 2 || !nameRe.MatchString(name) {
		errs[FieldName] = "Name must be at least 2 characters and contain only letters and spaces"
	}

	if !emailRe.MatchString(strings.TrimSpace(v.Email)) {
		errs[FieldEmail] = "Please enter a valid email address"
	}

	phone := whitespaceRe.ReplaceAllString(v.Phone, "")
	if !phoneRe.MatchString(phone) {
		errs[FieldPhone] = "Please enter a valid 10-digit Indian mobile number"
	}

	msgLen := utf8.RuneCountInString(strings.TrimSpace(v.Message))
	if msgLen < minMessageLen || msgLen > maxMessageLen {
		errs[FieldMessage] = "Message must be between 10 and 1000 characters"
	}

	if !v.PropertyType.IsValid() {
		errs[FieldPropertyType] = "Please select a valid property type"
	}
	if !v.Budget.IsValid() {
		errs[FieldBudget] = "Please select a valid budget range"
	}

	// Cross-field re-scan: any lingering markup overrides the more
	// specific message for that field.
	for field, value := range map[string]string{
		FieldName:         v.Name,
		FieldEmail:        v.Email,
		FieldPhone:        v.Phone,
		FieldPropertyType: string(v.PropertyType),
		FieldBudget:       string(v.Budget),
		FieldLocation:     v.Location,
		FieldMessage:      v.Message,
	} {
		if ContainsSuspiciousMarkup(value) {
			errs[field] = "Field contains invalid characters"
		}
	}

	return errs
}

// NormalizePhoneForDispatch produces the country-prefixed number handed to
// the auth collaborator: whitespace stripped, +91 prepended when no
// international prefix is present.
func NormalizePhoneForDispatch(phone string) string {
	p := whitespaceRe.ReplaceAllString(phone, "")
	p = strings.ReplaceAll(p, "-", "")
	if strings.HasPrefix(p, "+") {
		return p
	}
	return "+91" + p
}
