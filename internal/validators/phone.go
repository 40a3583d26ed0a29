package validators

import (
	"regexp"
	"strings"
)

// Norwegian subscriber numbers: 8 digits, first digit 2-9, optional +47,
// 0047 or 47 prefix.
var phoneRe = regexp.MustCompile(`^(\+47|0047|47)?[2-9]\d{7}$`)

func IsPhoneValid(phone string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(phone)
	return phoneRe.MatchString(cleaned)
}
