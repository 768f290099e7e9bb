package access

import (
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/models"
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/session"
)

type DenyReason string

const (
	DenyUnauthenticated DenyReason = "unauthenticated"
	DenyForbidden       DenyReason = "forbidden"
)

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason DenyReason) Decision {
	return Decision{Reason: reason}
}

// Authorize gates a protected view. Anonymous callers are denied before the
// role is even looked at, so an unauthenticated request can never learn
// whether it had the right role.
func Authorize(required []models.Role, ident *session.Identity) Decision {
	if ident == nil {
		return Deny(DenyUnauthenticated)
	}
	for _, r := range required {
		if ident.Role == r {
			return Allow()
		}
	}
	return Deny(DenyForbidden)
}
