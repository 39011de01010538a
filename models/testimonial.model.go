package models

type Testimonial struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Content      string `gorm:"type:text;not null" json:"content"`
	StudentName  string `gorm:"size:100;not null" json:"student_name"`
	StudentTitle string `gorm:"size:200;not null" json:"student_title"`
	ImageURL     string `gorm:"size:500;not null" json:"image_url"`
}
