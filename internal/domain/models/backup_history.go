package models

// BackupType distinguishes backup and restore activities
type BackupType string

const (
	BackupTypeBackup  BackupType = "backup"
	BackupTypeRestore BackupType = "restore"
)

// BackupHistory records a backup or restore activity
type BackupHistory struct {
	BaseModel
	BackupType   BackupType `gorm:"type:varchar(20);not null" json:"backup_type"`
	FileName     string     `gorm:"type:varchar(255);unique;not null" json:"file_name"`
	IsSuccessful bool       `json:"is_successful"`
	ErrorMessage string     `gorm:"type:varchar(1000)" json:"error_message,omitempty"`
	OperatorID   uint       `json:"operator_id"`

	// Relations
	Operator *Operator `gorm:"foreignKey:OperatorID" json:"operator,omitempty"`
}
