package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantKind  IdentifierKind
		wantValue string
	}{
		{
			name:      "PlainEmail",
			input:     "user@example.com",
			wantKind:  IdentifierEmail,
			wantValue: "user@example.com",
		},
		{
			name:      "EmailIsLowercased",
			input:     "User@Example.COM",
			wantKind:  IdentifierEmail,
			wantValue: "user@example.com",
		},
		{
			name:      "EmailWithSurroundingSpace",
			input:     "  user@example.com  ",
			wantKind:  IdentifierEmail,
			wantValue: "user@example.com",
		},
		{
			name:      "LocalPhone",
			input:     "09123456789",
			wantKind:  IdentifierPhone,
			wantValue: "+989123456789",
		},
		{
			name:      "InternationalPhone",
			input:     "+98 912 345 6789",
			wantKind:  IdentifierPhone,
			wantValue: "+989123456789",
		},
		{
			name:     "EmailWithDisplayName",
			input:    "User <user@example.com>",
			wantKind: IdentifierInvalid,
		},
		{
			name:     "Empty",
			input:    "",
			wantKind: IdentifierInvalid,
		},
		{
			name:     "NeitherEmailNorPhone",
			input:    "not-an-identifier",
			wantKind: IdentifierInvalid,
		},
		{
			name:     "ForeignPhone",
			input:    "+14155552671",
			wantKind: IdentifierInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.input)

			assert.Equal(t, tt.wantKind, got.Kind)
			if tt.wantKind != IdentifierInvalid {
				assert.Equal(t, tt.wantValue, got.Value)
				assert.True(t, got.IsValid())
			} else {
				assert.False(t, got.IsValid())
			}
		})
	}
}
