package service

import (
	"strings"
)

// DoctorProfile describes a practitioner allowed to use the dashboard.
type DoctorProfile struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

// DoctorDirectory resolves an authenticated caller's email to a doctor
// identity. Membership is the whole authorization model for the dashboard:
// whoever the identity provider says owns an allow-listed email may read
// that doctor's bookings.
type DoctorDirectory struct {
	byEmail map[string]DoctorProfile
}

// NewDoctorDirectory parses an allow-list of the form
// "email:Full Name:Department;email:Full Name:Department". Malformed
// entries are skipped. Emails match case-insensitively.
func NewDoctorDirectory(allowlist string) *DoctorDirectory {
	d := &DoctorDirectory{byEmail: make(map[string]DoctorProfile)}

	for _, entry := range strings.Split(allowlist, ";") {
		parts := strings.SplitN(strings.TrimSpace(entry), ":", 3)
		if len(parts) != 3 {
			continue
		}
		email := strings.ToLower(strings.TrimSpace(parts[0]))
		if email == "" {
			continue
		}
		d.byEmail[email] = DoctorProfile{
			Email:      email,
			Name:       strings.TrimSpace(parts[1]),
			Department: strings.TrimSpace(parts[2]),
		}
	}

	return d
}

// IsDoctor reports whether the email belongs to a registered doctor.
func (d *DoctorDirectory) IsDoctor(email string) bool {
	_, ok := d.Resolve(email)
	return ok
}

// Resolve returns the doctor profile for an email.
func (d *DoctorDirectory) Resolve(email string) (DoctorProfile, bool) {
	profile, ok := d.byEmail[strings.ToLower(strings.TrimSpace(email))]
	return profile, ok
}
