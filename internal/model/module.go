package model

// CourseModule is one story step of the micro-course.
type CourseModule struct {
	BaseModel
	Slug          string `gorm:"size:64;uniqueIndex;not null" json:"slug"`
	Title         string `gorm:"size:255;not null" json:"title"`
	Story         string `gorm:"type:text;not null" json:"story"`
	CorrectAction string `gorm:"type:text;not null" json:"correctAction"`
	Tip1          string `gorm:"type:text;not null" json:"tip1"`
	Tip2          string `gorm:"type:text;not null" json:"tip2"`
	Image         string `gorm:"size:255" json:"image"`
	SortOrder     int    `gorm:"default:0;index" json:"sortOrder"`
}

func (CourseModule) TableName() string {
	return "modules"
}
