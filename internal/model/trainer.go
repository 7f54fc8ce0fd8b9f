package model

import "time"

type Trainer struct {
	ID          int64  `db:"id" json:"id"`
	LastName    string `db:"last_name" json:"lastName" validate:"notblank,min=2,max=50,personname"`
	FirstName   string `db:"first_name" json:"firstName" validate:"notblank,min=2,max=50,personname"`
	Email       string `db:"email" json:"email" validate:"notblank,max=100,emailaddr"`
	Specialty   string `db:"specialty" json:"specialty" validate:"notblank,min=2,max=50,personname"`
	ClassRoomID *int64 `db:"classroom_id" json:"classRoomId,omitempty" validate:"omitempty,gt=0"`

	// ActiveCourses counts PLANNED and ACTIVE courses taught by the trainer.
	ActiveCourses int `db:"active_courses" json:"activeCourses"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
