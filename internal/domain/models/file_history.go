package models

// FileAction is the kind of file activity recorded
type FileAction string

const (
	FileActionImport   FileAction = "import"
	FileActionExport   FileAction = "export"
	FileActionReport   FileAction = "report"
	FileActionTemplate FileAction = "template"
)

// FileCategory is the entity family a file activity concerns
type FileCategory string

const (
	FileCategoryExam     FileCategory = "exam"
	FileCategoryExaminer FileCategory = "examiner"
)

// FileHistory records an import/export/report activity together with the
// produced or consumed bytes, so files can be re-downloaded later.
type FileHistory struct {
	BaseModel
	FileName     string       `gorm:"type:varchar(255);not null" json:"file_name"`
	ContentType  string       `gorm:"type:varchar(100);not null" json:"content_type"`
	ByteSize     int64        `json:"byte_size"`
	Content      []byte       `gorm:"type:longblob" json:"-"`
	Action       FileAction   `gorm:"type:varchar(20);not null" json:"action"`
	Category     FileCategory `gorm:"type:varchar(20);not null" json:"category"`
	IsSuccessful bool         `json:"is_successful"`
	Notes        string       `gorm:"type:varchar(1000)" json:"notes,omitempty"`
	OperatorID   uint         `json:"operator_id"`

	// Relations
	Operator *Operator `gorm:"foreignKey:OperatorID" json:"operator,omitempty"`
}
