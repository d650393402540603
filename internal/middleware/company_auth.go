package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/company-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/company-tracker-api/internal/errors"
	"github.com/yukikurage/company-tracker-api/internal/services"
)

// MembershipChecker reports whether a user belongs to a company.
type MembershipChecker interface {
	EnsureMember(companyID, userID uint64) error
}

// RequireCompanyAccess checks that the user is a member of the company in
// the :id path segment. Must run after RequireAuth.
func RequireCompanyAccess(members MembershipChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid company ID")
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, apierrors.ErrCodeMissingCredential, "")
			return
		}

		if err := members.EnsureMember(companyID, userID); err != nil {
			if errors.Is(err, services.ErrNotCompanyMember) {
				apierrors.Forbidden(c, "User is not a member of the company")
				return
			}
			apierrors.InternalError(c, "")
			return
		}

		c.Set(constants.ContextKeyCompanyID, companyID)
		c.Next()
	}
}

// GetCompanyID retrieves the company ID stored by RequireCompanyAccess
func GetCompanyID(c *gin.Context) (uint64, bool) {
	return uint64FromContext(c, constants.ContextKeyCompanyID)
}
