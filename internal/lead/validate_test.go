package lead

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validValues() FormValues {
	return FormValues{
		Name:         "Rahul Shah",
		Email:        "rahul@example.com",
		Phone:        "9876543210",
		PropertyType: PropertyTypeResidential,
		Budget:       Budget50LTo1Cr,
		Location:     "Andheri West",
		Message:      "Looking for a 2BHK in Andheri",
	}
}

func TestValidate_AllFieldsValid(t *testing.T) {
	errs := validate(validValues())
	assert.Empty(t, errs)
}

func TestValidate_OptionalFieldsEmpty(t *testing.T) {
	v := validValues()
	v.PropertyType = PropertyTypeUnspecified
	v.Budget = BudgetUnspecified
	v.Location = ""

	errs := validate(v)
	assert.Empty(t, errs, "optional fields left unset must not fail validation")
}

func TestValidate_Name(t *testing.T) {
	cases := []struct {
		name  string
		value string
		ok    bool
	}{
		{"two letters", "Ab", true},
		{"with spaces", "Priya Nair", true},
		{"single letter", "A", false},
		{"empty", "", false},
		{"digits", "Rahul99", false},
		{"punctuation", "O'Brien", false},
		{"whitespace only", "   ", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := validValues()
			v.Name = tc.value
			_, bad := validate(v)[FieldName]
			assert.Equal(t, !tc.ok, bad, "value %q", tc.value)
		})
	}
}

func TestValidate_Email(t *testing.T) {
	cases := []struct {
		value string
		ok    bool
	}{
		{"rahul@example.com", true},
		{"a.b+c@sub.domain.in", true},
		{"missing-at.example.com", false},
		{"no-tld@example", false},
		{"spaces in@example.com", false},
		{"", false},
	}
	for _, tc := range cases {
		v := validValues()
		v.Email = tc.value
		_, bad := validate(v)[FieldEmail]
		assert.Equal(t, !tc.ok, bad, "value %q", tc.value)
	}
}

func TestValidate_Phone(t *testing.T) {
	cases := []struct {
		value string
		ok    bool
	}{
		{"9876543210", true},
		{"+919876543210", true},
		{"6000000000", true},
		{"98765 43210", true}, // internal whitespace stripped before matching
		{"12345", false},
		{"5876543210", false},  // first digit below 6
		{"98765432100", false}, // eleven digits
		{"987654321", false},   // nine digits
		{"+929876543210", false},
		{"", false},
	}
	for _, tc := range cases {
		v := validValues()
		v.Phone = tc.value
		_, bad := validate(v)[FieldPhone]
		assert.Equal(t, !tc.ok, bad, "value %q", tc.value)
	}
}

func TestValidate_MessageLength(t *testing.T) {
	v := validValues()

	v.Message = "too short"
	errs := validate(v)
	assert.Contains(t, errs, FieldMessage)

	v.Message = "exactly10!"
	errs = validate(v)
	assert.NotContains(t, errs, FieldMessage)

	long := make([]byte, 1001)
	for i := range long {
		long[i] = 'a'
	}
	v.Message = string(long)
	errs = validate(v)
	assert.Contains(t, errs, FieldMessage)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	errs := validate(FormValues{
		Name:    "X",
		Email:   "not-an-email",
		Phone:   "12345",
		Message: "short",
	})

	assert.Len(t, errs, 4)
	assert.Contains(t, errs, FieldName)
	assert.Contains(t, errs, FieldEmail)
	assert.Contains(t, errs, FieldPhone)
	assert.Contains(t, errs, FieldMessage)
}

func TestValidate_SuspiciousMarkupOverridesFieldMessage(t *testing.T) {
	v := validValues()
	v.Location = `<img onerror=alert(1) src=x>`

	errs := validate(v)
	assert.Equal(t, "Field contains invalid characters", errs[FieldLocation])
}

func TestNormalizePhoneForDispatch(t *testing.T) {
	assert.Equal(t, "+919876543210", NormalizePhoneForDispatch("9876543210"))
	assert.Equal(t, "+919876543210", NormalizePhoneForDispatch("98765 43210"))
	assert.Equal(t, "+919876543210", NormalizePhoneForDispatch("98765-43210"))
	assert.Equal(t, "+919876543210", NormalizePhoneForDispatch("+919876543210"))
	assert.Equal(t, "+449876543210", NormalizePhoneForDispatch("+449876543210"))
}
