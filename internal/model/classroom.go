package model

import "time"

type ClassRoom struct {
	ID         int64  `db:"id" json:"id"`
	Name       string `db:"name" json:"name" validate:"notblank,max=50"`
	RoomNumber string `db:"room_number" json:"roomNumber" validate:"notblank,max=20,roomnumber"`

	// CurrentCapacity is the number of students assigned to the room.
	CurrentCapacity int `db:"current_capacity" json:"currentCapacity"`
	MaxCapacity     int `db:"max_capacity" json:"maxCapacity" validate:"gt=0"`
	TrainerCount    int `db:"trainer_count" json:"trainerCount"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Remaining is the number of free seats.
func (c *ClassRoom) Remaining() int {
	return c.MaxCapacity - c.CurrentCapacity
}
