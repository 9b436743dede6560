package domain

import "time"

type Client struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	ExecutiveID int64     `json:"executiveID"`
	CreatedAt   time.Time `json:"createdAt"`
	Version     int32     `json:"-"`
}
