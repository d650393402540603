package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/company-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/company-tracker-api/internal/errors"
	"github.com/yukikurage/company-tracker-api/internal/middleware"
	"github.com/yukikurage/company-tracker-api/internal/patch"
	"github.com/yukikurage/company-tracker-api/internal/services"
)

// bindJSON binds the request body into req. Failed required checks are
// reported as missing fields; anything else as an invalid body.
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, len(verrs))
		for i, fe := range verrs {
			fields[i] = lowerFirst(fe.Field())
		}
		apierrors.MissingField(c, "Missing required fields: "+strings.Join(fields, ", "))
		return false
	}

	apierrors.BadRequest(c, "Invalid request body")
	return false
}

// bindPatch reads a partial update body. An empty body is an empty patch.
func bindPatch(c *gin.Context) (patch.Body, bool) {
	data, err := c.GetRawData()
	if err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return nil, false
	}
	body, err := patch.ParseBody(data)
	if err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return nil, false
	}
	return body, true
}

func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, fmt.Sprintf("Invalid %s", name))
		return 0, false
	}
	return id, true
}

// parseCompanyQuery reads the optional companyId query filter.
func parseCompanyQuery(c *gin.Context) (*uint64, bool) {
	raw := c.Query("companyId")
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid companyId")
		return nil, false
	}
	return &id, true
}

// companyAndID returns the company bound by RequireCompanyAccess and the
// numeric path parameter name.
func companyAndID(c *gin.Context, name string) (uint64, uint64, bool) {
	companyID, ok := companyFromContext(c)
	if !ok {
		return 0, 0, false
	}
	id, ok := parseIDParam(c, name)
	return companyID, id, ok
}

func companyFromContext(c *gin.Context) (uint64, bool) {
	companyID, exists := middleware.GetCompanyID(c)
	if !exists {
		apierrors.InternalError(c, "Company context missing")
		return 0, false
	}
	return companyID, true
}

func userFromContext(c *gin.Context) (uint64, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, apierrors.ErrCodeMissingCredential, "")
		return 0, false
	}
	return userID, true
}

// respondServiceError maps service errors to API errors. Unknown errors are
// recorded on the context for the access log and hidden from the client.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, apierrors.ErrCodeInvalidCredential, err.Error())
	case errors.Is(err, services.ErrNotCompanyMember):
		apierrors.Forbidden(c, "User is not a member of the company")
	case errors.Is(err, services.ErrInvalidNodeType):
		apierrors.InvalidType(c, err.Error())
	case errors.Is(err, services.ErrDivisionIDRequired):
		apierrors.MissingField(c, err.Error())
	case errors.Is(err, services.ErrInvalidCompanyName):
		apierrors.MissingField(c, err.Error())
	case errors.Is(err, patch.ErrInvalidValue):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrEmployeeNotFound),
		errors.Is(err, services.ErrOrgNodeNotFound),
		errors.Is(err, services.ErrDivisionNotFound),
		errors.Is(err, services.ErrProcessNotFound),
		errors.Is(err, services.ErrInstructionNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrResultNotFound),
		errors.Is(err, services.ErrTelegramGroupNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		_ = c.Error(err)
		apierrors.InternalError(c, "")
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
