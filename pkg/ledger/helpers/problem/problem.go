package problem

type InvalidParam struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type ErrorDetail struct {
	In       string `json:"in"`
	Location string `json:"location"`
	Code     string `json:"code"`
	Detail   string `json:"detail"`
}

// Machine-readable error kinds. DuplicateResource and InsufficientPrivileges
// are reserved: no current operation raises them (the allocator guarantees id
// uniqueness and no tier-versus-operation check is defined), but callers may
// rely on the codes being stable.
const (
	CodeInvalidInput             = "invalid_input"
	CodeAccessDenied             = "access_denied"
	CodeNotFound                 = "not_found"
	CodeDuplicateResource        = "duplicate_resource"
	CodeContentValidationFailed  = "content_validation_failed"
	CodeInsufficientPrivileges   = "insufficient_privileges"
	CodeTemporalBoundaryExceeded = "temporal_boundary_exceeded"
	CodePermissionLevelMismatch  = "permission_level_mismatch"
	CodeMetadataInvalid          = "metadata_structure_invalid"
	CodeBadRequest               = "bad_request"
	CodeInternalError            = "internal_error"
)

// APIError implementeert error + Problem Details (RFC 7807)
type APIError struct {
	Title  string        `json:"title"`
	Status int           `json:"status"`
	Code   string        `json:"code"`
	Errors []ErrorDetail `json:"errors,omitempty"`
}

func (e APIError) Error() string { return e.Title }

func NewBadRequest(location, detail string, params ...InvalidParam) APIError {
	return APIError{
		Title:  "Request validation failed",
		Status: 400,
		Code:   CodeBadRequest,
		Errors: toErrorDetails(params, detail, "body", location, CodeBadRequest),
	}
}

func NewInvalidInput(field, detail string) APIError {
	return APIError{
		Title:  "Invalid input",
		Status: 400,
		Code:   CodeInvalidInput,
		Errors: toErrorDetails(nil, detail, "body", field, CodeInvalidInput),
	}
}

func NewAccessDenied(detail string) APIError {
	return APIError{
		Title:  "Access denied",
		Status: 403,
		Code:   CodeAccessDenied,
		Errors: toErrorDetails(nil, detail, "", "", CodeAccessDenied),
	}
}

func NewNotFound(location, detail string) APIError {
	return APIError{
		Title:  "Resource Not Found",
		Status: 404,
		Code:   CodeNotFound,
		Errors: toErrorDetails(nil, detail, "path", location, CodeNotFound),
	}
}

// NewDuplicateResource is reserved for a creation collision; the sequence
// allocator currently makes one impossible.
func NewDuplicateResource(detail string) APIError {
	return APIError{
		Title:  "Resource already exists",
		Status: 409,
		Code:   CodeDuplicateResource,
		Errors: toErrorDetails(nil, detail, "", "", CodeDuplicateResource),
	}
}

func NewContentValidationFailed(field, detail string) APIError {
	return APIError{
		Title:  "Content validation failed",
		Status: 422,
		Code:   CodeContentValidationFailed,
		Errors: toErrorDetails(nil, detail, "body", field, CodeContentValidationFailed),
	}
}

// NewInsufficientPrivileges is reserved; no defined operation raises it.
func NewInsufficientPrivileges(detail string) APIError {
	return APIError{
		Title:  "Insufficient privileges",
		Status: 403,
		Code:   CodeInsufficientPrivileges,
		Errors: toErrorDetails(nil, detail, "", "", CodeInsufficientPrivileges),
	}
}

func NewTemporalBoundaryExceeded(detail string) APIError {
	return APIError{
		Title:  "Grant duration out of bounds",
		Status: 422,
		Code:   CodeTemporalBoundaryExceeded,
		Errors: toErrorDetails(nil, detail, "body", "duration", CodeTemporalBoundaryExceeded),
	}
}

func NewPermissionLevelMismatch(detail string) APIError {
	return APIError{
		Title:  "Unrecognized permission tier",
		Status: 422,
		Code:   CodePermissionLevelMismatch,
		Errors: toErrorDetails(nil, detail, "body", "tier", CodePermissionLevelMismatch),
	}
}

func NewMetadataInvalid(field, detail string) APIError {
	return APIError{
		Title:  "Metadata structure invalid",
		Status: 422,
		Code:   CodeMetadataInvalid,
		Errors: toErrorDetails(nil, detail, "body", field, CodeMetadataInvalid),
	}
}

func NewInternalServerError(detail string) APIError {
	return APIError{
		Title:  "Internal Server Error",
		Status: 500,
		Code:   CodeInternalError,
		Errors: toErrorDetails(nil, detail, "", "", CodeInternalError),
	}
}

func toErrorDetails(params []InvalidParam, fallbackDetail, fallbackIn, fallbackLocation, fallbackCode string) []ErrorDetail {
	if len(params) == 0 {
		if fallbackDetail == "" {
			return nil
		}
		return []ErrorDetail{{
			In:       fallbackIn,
			Location: fallbackLocation,
			Code:     fallbackCode,
			Detail:   fallbackDetail,
		}}
	}
	out := make([]ErrorDetail, 0, len(params))
	for _, p := range params {
		out = append(out, ErrorDetail{
			In:       "body",
			Location: p.Name,
			Code:     p.Name,
			Detail:   p.Reason,
		})
	}
	return out
}
