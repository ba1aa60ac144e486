package smsgateway

import "testing"

func TestNormalizeIranianPhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{name: "LocalFormat", input: "09123456789", want: "+989123456789", ok: true},
		{name: "BareOperatorFormat", input: "9123456789", want: "+989123456789", ok: true},
		{name: "CountryCodeFormat", input: "989123456789", want: "+989123456789", ok: true},
		{name: "PlusCountryCodeFormat", input: "+989123456789", want: "+989123456789", ok: true},
		{name: "SpacesAndDashes", input: "0912 345-6789", want: "+989123456789", ok: true},
		{name: "Empty", input: "", want: "", ok: false},
		{name: "TooShort", input: "0912345", want: "", ok: false},
		{name: "TooLong", input: "991234567890123", want: "", ok: false},
		{name: "Landline", input: "02123456789", want: "", ok: false},
		{name: "ElevenDigitsNotMobilePrefix", input: "01234567890", want: "", ok: false},
		{name: "ForeignCountryCode", input: "+14155551212", want: "", ok: false},
		{name: "Letters", input: "not-a-number", want: "", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NormalizeIranianPhone(tc.input)
			if ok != tc.ok {
				t.Fatalf("NormalizeIranianPhone(%q) ok = %v, want %v", tc.input, ok, tc.ok)
			}
			if got != tc.want {
				t.Fatalf("NormalizeIranianPhone(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
