package model

import "time"

type CourseStatus string

const (
	CourseStatusPlanned   CourseStatus = "PLANNED"
	CourseStatusActive    CourseStatus = "ACTIVE"
	CourseStatusCompleted CourseStatus = "COMPLETED"
	CourseStatusCancelled CourseStatus = "CANCELLED"
)

// Terminal reports whether the status no longer ties up a trainer.
func (s CourseStatus) Terminal() bool {
	return s == CourseStatusCompleted || s == CourseStatusCancelled
}

type Course struct {
	ID          int64        `db:"id" json:"id"`
	Title       string       `db:"title" json:"title" validate:"notblank,min=2,max=100,title"`
	Level       string       `db:"level" json:"level" validate:"notblank,min=2,max=20,level"`
	StartDate   Date         `db:"start_date" json:"startDate"`
	EndDate     Date         `db:"end_date" json:"endDate"`
	MinCapacity int          `db:"min_capacity" json:"minCapacity" validate:"gte=0"`
	MaxCapacity int          `db:"max_capacity" json:"maxCapacity" validate:"gt=0"`
	Status      CourseStatus `db:"status" json:"status" validate:"omitempty,oneof=PLANNED ACTIVE COMPLETED CANCELLED"`
	TrainerID   *int64       `db:"trainer_id" json:"trainerId,omitempty" validate:"omitempty,gt=0"`

	EnrolledCount int `db:"enrolled_count" json:"enrolledCount"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
