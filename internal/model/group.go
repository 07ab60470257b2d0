package model

import "time"

const GroupNameMaxLen = 50

// Group 小组，创建者即永久拥有者
type Group struct {
	ID          uint64    `gorm:"primaryKey"`
	Name        string    `gorm:"size:50;not null"`
	Description string    `gorm:"type:text"`
	CreatorID   uint64    `gorm:"not null;index:idx_groups_creator"`
	Creator     User      `gorm:"foreignKey:CreatorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt   time.Time `gorm:"index:idx_groups_created"`
	UpdatedAt   time.Time
}
