package domain

import "time"

// Court represents a bookable court of a facility
// CRUD кортов находится вне движка; движку нужны существование,
// активность, цена и принадлежность комплексу
type Court struct {
	ID          int64
	FacilityID  int64
	Name        string
	HourlyPrice float64
	Active      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
