package constants

import "fmt"

const (
	RoleUser      = "user"      // peserta / pemilik tim
	RoleOrganizer = "organizer" // penyelenggara lomba (harus pemilik kompetisi)
	RoleAdmin     = "admin"     // bypass semua ownership check
)

// Template pesan error role
const (
	ErrOnlyOrganizersCanAccess = "❌ Hanya organizer atau admin yang boleh mengakses fitur %s."
)

func RoleErrorOrganizer(feature string) string {
	return fmt.Sprintf(ErrOnlyOrganizersCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	OrganizerAndAbove = []string{
		RoleOrganizer,
		RoleAdmin,
	}
)
