package model

import "time"

type SchemaVersion struct {
	Version   int       `gorm:"primarykey;autoIncrement:false"`
	AppliedAt time.Time `gorm:"not null"`
}
