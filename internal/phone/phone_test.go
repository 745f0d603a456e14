package phone

import (
	"errors"
	"testing"

	"github.com/arda-labs/notify-core/internal/domain"
)

func TestNormalizeJP(t *testing.T) {
	cases := []struct {
		name    string
		address string
		want    string
		wantErr bool
	}{
		{"no leading zero in rest", "81090012345", "81090012345", false},
		{"leading zero stripped", "810012345678", "81012345678", false},
		{"too short", "8109", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeJP(tc.address)
			if tc.wantErr {
				var invalid *domain.InvalidPhoneNumberError
				if !errors.As(err, &invalid) {
					t.Fatalf("NormalizeJP(%q) err = %v, want InvalidPhoneNumberError", tc.address, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeJP(%q) unexpected error: %v", tc.address, err)
			}
			if got != tc.want {
				t.Errorf("NormalizeJP(%q) = %q, want %q", tc.address, got, tc.want)
			}
		})
	}
}
