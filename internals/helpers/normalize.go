// file: internals/helpers/normalize.go
package helper

import "strings"

// NormalizeName menormalkan nama peserta sebagai kunci pencocokan:
// trim + rapikan spasi di tengah + lowercase. "  Budi  Santoso " == "budi santoso".
func NormalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// TrimPtr: *string → *string (kosong jadi nil)
func TrimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}
