package code

// HTTP status codes.
const (
	// StatusOK - 200: success.
	StatusOK = 200
	// StatusBadRequest - 400: invalid request parameters.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: unauthorized.
	StatusUnauthorized = 401
	// StatusForbidden - 403: forbidden.
	StatusForbidden = 403
	// StatusNotFound - 404: resource not found.
	StatusNotFound = 404
	// StatusInternalServerError - 500: internal server error.
	StatusInternalServerError = 500
	// StatusTooManyRequests - 429: too many requests.
	StatusTooManyRequests = 429
)

// Generic error codes (100xxx).
const (
	// ErrSuccess - 200: success.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: unknown error.
	ErrUnknown
	// ErrBind - 400: request parameter binding error.
	ErrBind
	// ErrValidation - 400: request parameter validation error.
	ErrValidation
	// ErrTokenInvalid - 401: invalid token.
	ErrTokenInvalid
	// ErrTooManyRequests - 429: request rate too high.
	ErrTooManyRequests
	// ErrForbidden - 403: insufficient role.
	ErrForbidden
)

// Operator error codes (101xxx).
const (
	// ErrOperatorNotFound - 404: operator does not exist.
	ErrOperatorNotFound int = iota + 101000
	// ErrOperatorAlreadyExist - 400: operator username or email already taken.
	ErrOperatorAlreadyExist
	// ErrOperatorUnauthorized - 401: invalid username or password.
	ErrOperatorUnauthorized
	// ErrOperatorNotDeleted - 400: operator is not deleted, nothing to restore.
	ErrOperatorNotDeleted
	// ErrLastAdmin - 400: the last admin cannot be deleted.
	ErrLastAdmin
)

// Exam error codes (102xxx).
const (
	// ErrExamNotFound - 404: exam does not exist.
	ErrExamNotFound int = iota + 102000
	// ErrExamCodeTaken - 400: exam code already taken.
	ErrExamCodeTaken
	// ErrExamNotDeleted - 400: exam is not deleted, nothing to restore.
	ErrExamNotDeleted
	// ErrBoardMemberExists - 400: examiner already assigned to the exam board.
	ErrBoardMemberExists
	// ErrBoardMemberNotFound - 404: board assignment does not exist.
	ErrBoardMemberNotFound
)

// Examiner error codes (103xxx).
const (
	// ErrExaminerNotFound - 404: examiner does not exist.
	ErrExaminerNotFound int = iota + 103000
	// ErrExaminerAlreadyExist - 400: examiner unique field already taken.
	ErrExaminerAlreadyExist
	// ErrExaminerNotDeleted - 400: examiner is not deleted, nothing to restore.
	ErrExaminerNotDeleted
)

// Lookup-data error codes (104xxx).
const (
	// ErrExamTypeNotFound - 404: exam type does not exist.
	ErrExamTypeNotFound int = iota + 104000
	// ErrExamTypeNameTaken - 400: exam type name already taken.
	ErrExamTypeNameTaken
	// ErrProfessionNotFound - 404: profession does not exist.
	ErrProfessionNotFound
	// ErrProfessionKeorTaken - 400: profession KEOR id already taken.
	ErrProfessionKeorTaken
	// ErrInstitutionNotFound - 404: institution does not exist.
	ErrInstitutionNotFound
	// ErrInstitutionEduIDTaken - 400: institution educational id already taken.
	ErrInstitutionEduIDTaken
	// ErrLookupInUse - 400: lookup record still referenced by exams.
	ErrLookupInUse
)

// Database error codes (105xxx).
const (
	// ErrDatabase - 500: database error.
	ErrDatabase int = iota + 105000
	// ErrRecordNotFound - 404: record does not exist.
	ErrRecordNotFound
)

// Password reset error codes (106xxx).
const (
	// ErrResetTokenInvalid - 400: reset token unknown or revoked.
	ErrResetTokenInvalid int = iota + 106000
	// ErrResetTokenExpired - 400: reset token expired.
	ErrResetTokenExpired
	// ErrResetTokenUsed - 400: reset token already used.
	ErrResetTokenUsed
)

// File error codes (107xxx).
const (
	// ErrFileNotFound - 404: file record does not exist.
	ErrFileNotFound int = iota + 107000
	// ErrFileFormat - 400: uploaded file has an invalid format.
	ErrFileFormat
	// ErrImportFailed - 400: spreadsheet import failed.
	ErrImportFailed
	// ErrReportFailed - 500: report generation failed.
	ErrReportFailed
)

// Backup error codes (109xxx).
const (
	// ErrBackupFailed - 500: backup failed.
	ErrBackupFailed int = iota + 109000
	// ErrRestoreFailed - 500: restore failed.
	ErrRestoreFailed
	// ErrBackupNotFound - 404: backup record does not exist.
	ErrBackupNotFound
)
