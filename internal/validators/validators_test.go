package validators

import "testing"

func TestIsEmailValid(t *testing.T) {
	valid := []string{
		"kari@example.com",
		"kari.nordmann@salong.no",
		"k+booking@sub.domain.org",
	}
	for _, e := range valid {
		if !IsEmailValid(e) {
			t.Errorf("%q should be valid", e)
		}
	}

	invalid := []string{
		"",
		"kari",
		"kari@",
		"@example.com",
		"kari@example",
		"kari @example.com",
	}
	for _, e := range invalid {
		if IsEmailValid(e) {
			t.Errorf("%q should be invalid", e)
		}
	}
}

func TestIsPhoneValid(t *testing.T) {
	valid := []string{
		"92345678",
		"+4792345678",
		"004792345678",
		"4792345678",
		"923 45 678",
		"92-34-56-78",
	}
	for _, p := range valid {
		if !IsPhoneValid(p) {
			t.Errorf("%q should be valid", p)
		}
	}

	invalid := []string{
		"",
		"12345678",    // leading 1 is not a subscriber number
		"9234567",     // too short
		"923456789",   // too long
		"+4612345678", // wrong country prefix
		"abcdefgh",
	}
	for _, p := range invalid {
		if IsPhoneValid(p) {
			t.Errorf("%q should be invalid", p)
		}
	}
}
