package models

import "time"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleStudent UserRole = "STUDENT"
)

// User represents an application user stored in the users table. Student
// accounts carry the registrar profile fields printed on requests; admin
// accounts leave them empty.
type User struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     string     `db:"full_name" json:"name"`
	Role         UserRole   `db:"role" json:"role"`
	StudentID    *string    `db:"student_number" json:"studentId,omitempty"`
	Program      *string    `db:"program" json:"program,omitempty"`
	YearLevel    *int       `db:"year_level" json:"yearLevel,omitempty"`
	Active       bool       `db:"active" json:"active"`
	LastLogin    *time.Time `db:"last_login" json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
}

// StudentInfo is the read-only snapshot of the submitting student embedded in
// request payloads.
type StudentInfo struct {
	Name      string  `db:"student_name" json:"name"`
	StudentID *string `db:"student_number" json:"studentId,omitempty"`
	Program   *string `db:"program" json:"program,omitempty"`
	YearLevel *int    `db:"year_level" json:"yearLevel,omitempty"`
	Email     string  `db:"student_email" json:"email"`
}
