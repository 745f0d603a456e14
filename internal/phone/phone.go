// Package phone normalizes SMS addresses to the format the Chuanx SMS
// gateway expects, following original_source's convert_to_jp_phone_number
// exactly.
package phone

import "github.com/arda-labs/notify-core/internal/domain"

const minLength = 11

// NormalizeJP treats the first three characters of address as a country
// code and the remainder as the subscriber number, stripping exactly one
// leading '0' from the remainder if present. Addresses shorter than 11
// characters are rejected with InvalidPhoneNumberError.
func NormalizeJP(address string) (string, error) {
	if len(address) < minLength {
		return "", domain.NewInvalidPhoneNumberError(address)
	}

	countryCode := address[0:3]
	rest := address[3:]
	if len(rest) > 0 && rest[0] == '0' {
		rest = rest[1:]
	}

	return countryCode + rest, nil
}
