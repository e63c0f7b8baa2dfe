package models

type Role string

const (
	Student Role = "student"
	Parent  Role = "parent"
	Teacher Role = "teacher"
	Manager Role = "manager"
)

type User struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	Role    Role   `db:"role"`
	ClassID *int64 `db:"class_id"`
}

type Class struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// Identity is what the token layer hands to handlers: who calls, with which
// roles. A user may carry several roles (e.g. teacher who is also a parent).
type Identity struct {
	UserID int64
	Roles  []Role
}

func (id Identity) HasRole(r Role) bool {
	for _, have := range id.Roles {
		if have == r {
			return true
		}
	}
	return false
}
