package domain

import "time"

type User struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

const UserStatusActive = "active"

func (u User) Active() bool {
	return u.Status == UserStatusActive
}
