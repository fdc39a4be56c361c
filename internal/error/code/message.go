package code

// Error code to message mapping
var codeMessageMap = map[int]string{
	// Generic error codes
	ErrSuccess:         "success",
	ErrUnknown:         "unknown error",
	ErrBind:            "request parameter binding error",
	ErrValidation:      "request parameter validation error",
	ErrTokenInvalid:    "invalid authentication token",
	ErrTooManyRequests: "request rate too high, try again later",
	ErrForbidden:       "insufficient permissions",

	// Operator error codes
	ErrOperatorNotFound:     "operator does not exist",
	ErrOperatorAlreadyExist: "operator already exists",
	ErrOperatorUnauthorized: "invalid username or password",
	ErrOperatorNotDeleted:   "operator is not deleted",
	ErrLastAdmin:            "the system must keep at least one admin",

	// Exam error codes
	ErrExamNotFound:        "exam does not exist",
	ErrExamCodeTaken:       "exam code is already taken",
	ErrExamNotDeleted:      "exam is not deleted",
	ErrBoardMemberExists:   "examiner is already assigned to this exam board",
	ErrBoardMemberNotFound: "board assignment does not exist",

	// Examiner error codes
	ErrExaminerNotFound:     "examiner does not exist",
	ErrExaminerAlreadyExist: "examiner already exists",
	ErrExaminerNotDeleted:   "examiner is not deleted",

	// Lookup error codes
	ErrExamTypeNotFound:      "exam type does not exist",
	ErrExamTypeNameTaken:     "exam type name is already taken",
	ErrProfessionNotFound:    "profession does not exist",
	ErrProfessionKeorTaken:   "profession KEOR id is already taken",
	ErrInstitutionNotFound:   "institution does not exist",
	ErrInstitutionEduIDTaken: "institution educational id is already taken",
	ErrLookupInUse:           "record is still referenced by exams",

	// Database error codes
	ErrDatabase:       "database error",
	ErrRecordNotFound: "record does not exist",

	// Password reset error codes
	ErrResetTokenInvalid: "invalid reset token",
	ErrResetTokenExpired: "reset token has expired",
	ErrResetTokenUsed:    "reset token has already been used",

	// File error codes
	ErrFileNotFound: "file does not exist",
	ErrFileFormat:   "invalid file format",
	ErrImportFailed: "spreadsheet import failed",
	ErrReportFailed: "report generation failed",

	// Backup error codes
	ErrBackupFailed:   "backup failed",
	ErrRestoreFailed:  "restore failed",
	ErrBackupNotFound: "backup record does not exist",
}

// Error code to HTTP status mapping
var codeStatusMap = map[int]int{
	// Generic error codes
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrTooManyRequests: StatusTooManyRequests,
	ErrForbidden:       StatusForbidden,

	// Operator error codes
	ErrOperatorNotFound:     StatusNotFound,
	ErrOperatorAlreadyExist: StatusBadRequest,
	ErrOperatorUnauthorized: StatusUnauthorized,
	ErrOperatorNotDeleted:   StatusBadRequest,
	ErrLastAdmin:            StatusBadRequest,

	// Exam error codes
	ErrExamNotFound:        StatusNotFound,
	ErrExamCodeTaken:       StatusBadRequest,
	ErrExamNotDeleted:      StatusBadRequest,
	ErrBoardMemberExists:   StatusBadRequest,
	ErrBoardMemberNotFound: StatusNotFound,

	// Examiner error codes
	ErrExaminerNotFound:     StatusNotFound,
	ErrExaminerAlreadyExist: StatusBadRequest,
	ErrExaminerNotDeleted:   StatusBadRequest,

	// Lookup error codes
	ErrExamTypeNotFound:      StatusNotFound,
	ErrExamTypeNameTaken:     StatusBadRequest,
	ErrProfessionNotFound:    StatusNotFound,
	ErrProfessionKeorTaken:   StatusBadRequest,
	ErrInstitutionNotFound:   StatusNotFound,
	ErrInstitutionEduIDTaken: StatusBadRequest,
	ErrLookupInUse:           StatusBadRequest,

	// Database error codes
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,

	// Password reset error codes
	ErrResetTokenInvalid: StatusBadRequest,
	ErrResetTokenExpired: StatusBadRequest,
	ErrResetTokenUsed:    StatusBadRequest,

	// File error codes
	ErrFileNotFound: StatusNotFound,
	ErrFileFormat:   StatusBadRequest,
	ErrImportFailed: StatusBadRequest,
	ErrReportFailed: StatusInternalServerError,

	// Backup error codes
	ErrBackupFailed:   StatusInternalServerError,
	ErrRestoreFailed:  StatusInternalServerError,
	ErrBackupNotFound: StatusNotFound,
}

// GetMessage returns the message for an error code
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "unknown error"
}

// GetStatus returns the HTTP status for an error code
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
