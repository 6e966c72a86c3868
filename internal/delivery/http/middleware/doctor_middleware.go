package middleware

import (
	"context"
	"net/http"

	"hospital-assistant/internal/service"
	"hospital-assistant/pkg/response"
)

const DoctorProfileKey contextKey = "doctor_profile"

// DoctorMiddleware gates dashboard routes on directory membership. It runs
// after Authenticate and resolves the authenticated email to a doctor
// profile, which downstream handlers read from context.
type DoctorMiddleware struct {
	directory *service.DoctorDirectory
}

func NewDoctorMiddleware(directory *service.DoctorDirectory) *DoctorMiddleware {
	return &DoctorMiddleware{directory: directory}
}

func (m *DoctorMiddleware) RequireDoctor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, ok := GetUserEmailFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "Email information not found")
			return
		}

		profile, ok := m.directory.Resolve(email)
		if !ok {
			response.Forbidden(w, "You don't have permission to access this resource")
			return
		}

		ctx := context.WithValue(r.Context(), DoctorProfileKey, profile)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetDoctorProfileFromContext extracts the resolved doctor profile.
func GetDoctorProfileFromContext(ctx context.Context) (service.DoctorProfile, bool) {
	profile, ok := ctx.Value(DoctorProfileKey).(service.DoctorProfile)
	return profile, ok
}
