package dto

import (
	"time"

	dom "megawarez/internal/domain"
)

// LoginRequest is the JSON body for POST /login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the JSON body for POST /user.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=1,max=120"`
	Password string `json:"password" binding:"required,min=1"`
}

type UpdateUsernameRequest struct {
	Username string `json:"username" binding:"required,min=1,max=120"`
}

type UpdatePasswordRequest struct {
	Password string `json:"password" binding:"required,min=1"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

func UserFromDomain(u dom.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
}

func UsersFromDomain(list []dom.User) []UserResponse {
	out := make([]UserResponse, len(list))
	for i, u := range list {
		out[i] = UserFromDomain(u)
	}
	return out
}

// LoginResponse is returned by POST /login.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// SessionResponse omits the token; only its holder should know it.
type SessionResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func SessionsFromDomain(list []dom.Session) []SessionResponse {
	out := make([]SessionResponse, len(list))
	for i, s := range list {
		out[i] = SessionResponse{ID: s.ID, UserID: s.UserID, CreatedAt: s.CreatedAt}
	}
	return out
}

// RemovedResponse reports what a cascading delete took out, per table.
type RemovedResponse struct {
	Users         int64 `json:"users,omitempty"`
	Sessions      int64 `json:"sessions,omitempty"`
	Categories    int64 `json:"categories,omitempty"`
	Subcategories int64 `json:"subcategories,omitempty"`
	Products      int64 `json:"products,omitempty"`
	Downloads     int64 `json:"downloads,omitempty"`
	Total         int64 `json:"total"`
}

func RemovedFromDomain(r dom.Removed) RemovedResponse {
	return RemovedResponse{
		Users:         r.Users,
		Sessions:      r.Sessions,
		Categories:    r.Categories,
		Subcategories: r.Subcategories,
		Products:      r.Products,
		Downloads:     r.Downloads,
		Total:         r.Total(),
	}
}

// DeletedUserResponse is the payload of DELETE /user/:id.
type DeletedUserResponse struct {
	User    UserResponse    `json:"user"`
	Removed RemovedResponse `json:"removed"`
}
