package services

import (
	"context"

	"techtrek/models"
	"techtrek/utils"

	"gorm.io/gorm"
)

const DefaultCatalogLimit = 3

type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// FeaturedCourses returns up to limit featured courses in insertion order.
func (s *CatalogService) FeaturedCourses(ctx context.Context, limit int) ([]models.Course, error) {
	if limit <= 0 {
		limit = DefaultCatalogLimit
	}
	var courses []models.Course
	err := s.db.WithContext(ctx).
		Where("featured = ?", true).
		Order("id").
		Limit(limit).
		Find(&courses).Error
	if err != nil {
		return nil, persistence("list featured courses", err)
	}
	return courses, nil
}

// Testimonials returns up to limit testimonials in insertion order.
func (s *CatalogService) Testimonials(ctx context.Context, limit int) ([]models.Testimonial, error) {
	if limit <= 0 {
		limit = DefaultCatalogLimit
	}
	var testimonials []models.Testimonial
	if err := s.db.WithContext(ctx).Order("id").Limit(limit).Find(&testimonials).Error; err != nil {
		return nil, persistence("list testimonials", err)
	}
	return testimonials, nil
}

// SeedSampleData fills the courses and testimonials tables when they are empty.
func (s *CatalogService) SeedSampleData(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var courses int64
		if err := tx.Model(&models.Course{}).Count(&courses).Error; err != nil {
			return err
		}
		if courses == 0 {
			if err := tx.Create(sampleCourses()).Error; err != nil {
				return err
			}
			utils.Log.Info().Msg("seeded sample courses")
		}

		var testimonials int64
		if err := tx.Model(&models.Testimonial{}).Count(&testimonials).Error; err != nil {
			return err
		}
		if testimonials == 0 {
			if err := tx.Create(sampleTestimonials()).Error; err != nil {
				return err
			}
			utils.Log.Info().Msg("seeded sample testimonials")
		}
		return nil
	})
	if err != nil {
		return persistence("seed catalog", err)
	}
	return nil
}

func sampleCourses() []models.Course {
	return []models.Course{
		{Title: "Complete Python Bootcamp", Instructor: "John Smith", Price: 49.99, Rating: 4.5, RatingCount: 1250, Featured: true, ImageURL: models.DefaultCourseImage},
		{Title: "React.js Advanced Concepts", Instructor: "Sarah Johnson", Price: 59.99, Rating: 5.0, RatingCount: 850, Featured: true, ImageURL: models.DefaultCourseImage},
		{Title: "Full-Stack Web Development", Instructor: "Mike Wilson", Price: 69.99, Rating: 4.0, RatingCount: 2000, Featured: true, ImageURL: models.DefaultCourseImage},
	}
}

func sampleTestimonials() []models.Testimonial {
	return []models.Testimonial{
		{
			Content:      "The Python Bootcamp was exactly what I needed to transition into a career in data science. The instructor's teaching style made complex concepts easy to understand.",
			StudentName:  "Abc",
			StudentTitle: "Data Scientist at Tech Corp",
			ImageURL:     models.DefaultTestimonialImage,
		},
		{
			Content:      "I went from knowing nothing about web development to building full-stack applications. The step-by-step approach and project-based learning was incredible.",
			StudentName:  "Emily Rodriguez",
			StudentTitle: "Frontend Developer",
			ImageURL:     models.DefaultTestimonialImage,
		},
		{
			Content:      "The React.js course helped me level up my development skills. The advanced concepts section was particularly helpful for my current role.",
			StudentName:  "David Chen",
			StudentTitle: "Senior Web Developer",
			ImageURL:     models.DefaultTestimonialImage,
		},
	}
}
