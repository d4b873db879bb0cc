package entity

// Role distinguishes the two portal audiences.
type Role string

const (
	Admin Role = "admin"
	Brand Role = "brand"
)

// User is who logged in.
type User struct {
	Id    string
	Email string
	Name  string
	Role  Role
}
