package model

import "time"

const PostTitleMaxLen = 200

type Post struct {
	ID        uint64    `gorm:"primaryKey"`
	GroupID   uint64    `gorm:"not null;index:idx_posts_group_time,priority:1"`
	Group     Group     `gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatorID uint64    `gorm:"not null;index:idx_posts_creator"`
	Creator   User      `gorm:"foreignKey:CreatorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Title     string    `gorm:"size:200;not null;default:''"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index:idx_posts_group_time,priority:2,sort:desc"`
	UpdatedAt time.Time
}
