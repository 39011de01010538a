package models

const (
	DefaultCourseImage      = "/api/placeholder/280/160"
	DefaultTestimonialImage = "/api/placeholder/80/80"
)

type Course struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Title       string  `gorm:"size:200;not null" json:"title"`
	Instructor  string  `gorm:"size:100;not null" json:"instructor"`
	Price       float64 `gorm:"not null;check:price >= 0" json:"price"`
	Rating      float64 `gorm:"not null;check:rating >= 0 AND rating <= 5" json:"rating"`
	RatingCount int     `gorm:"not null" json:"rating_count"`
	Featured    bool    `gorm:"default:false" json:"featured"`
	ImageURL    string  `gorm:"size:500;not null" json:"image_url"`
}
