package model

import "time"

type Student struct {
	ID          int64  `db:"id" json:"id"`
	LastName    string `db:"last_name" json:"lastName" validate:"notblank,min=2,max=50,personname"`
	FirstName   string `db:"first_name" json:"firstName" validate:"notblank,min=2,max=50,personname"`
	Email       string `db:"email" json:"email" validate:"notblank,max=100,emailaddr"`
	Level       string `db:"level" json:"level" validate:"notblank,min=2,max=20,level"`
	CourseID    *int64 `db:"course_id" json:"courseId,omitempty" validate:"omitempty,gt=0"`
	ClassRoomID *int64 `db:"classroom_id" json:"classRoomId,omitempty" validate:"omitempty,gt=0"`

	RegistrationDate time.Time `db:"registration_date" json:"registrationDate"`
	UpdatedAt        time.Time `db:"updated_at" json:"updatedAt"`
}
