package model

// Course is a unit of instruction authored by an instructor. Its modules are
// ordered by Position; progress records address them by that position.
// swagger:model Course
type Course struct {
	BaseModel
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedBy   uint           `gorm:"index;not null" json:"createdBy"`
	Modules     []CourseModule `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"modules"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseModule is a named piece of course content with optional media.
// Media lives in object storage; only URLs are kept here.
// swagger:model CourseModule
type CourseModule struct {
	BaseModel
	CourseID      uint    `gorm:"index;not null" json:"courseId"`
	Name          string  `gorm:"size:255;not null" json:"name"`
	Content       string  `gorm:"type:text" json:"content"`
	Position      int     `gorm:"default:0" json:"position"`
	ImageURL      string  `gorm:"size:512" json:"imageUrl,omitempty"`
	VideoURL      string  `gorm:"size:512" json:"videoUrl,omitempty"`
	VideoDuration float64 `gorm:"default:0" json:"videoDuration,omitempty"`
	ContentType   string  `gorm:"size:100" json:"contentType,omitempty"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}
