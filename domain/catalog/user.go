package catalog

// User is a catalog member who writes reviews and comments.
type User struct {
	id        int64
	username  string
	email     string
	role      Role
	bio       string
	firstName string
	lastName  string
}

// UserProfile holds the optional descriptive fields of a User.
type UserProfile struct {
	Bio       string
	FirstName string
	LastName  string
}

// NewUser creates a User with the given primary key.
// An empty role is replaced by DefaultRole.
func NewUser(id int64, username, email string, role Role, profile UserProfile) User {
	if role == "" {
		role = DefaultRole
	}
	return User{
		id:        id,
		username:  username,
		email:     email,
		role:      role,
		bio:       profile.Bio,
		firstName: profile.FirstName,
		lastName:  profile.LastName,
	}
}

// ID returns the primary key.
func (u User) ID() int64 { return u.id }

// Username returns the unique login name.
func (u User) Username() string { return u.username }

// Email returns the unique email address.
func (u User) Email() string { return u.email }

// Role returns the access level.
func (u User) Role() Role { return u.role }

// Bio returns the free-text biography.
func (u User) Bio() string { return u.bio }

// FirstName returns the given name.
func (u User) FirstName() string { return u.firstName }

// LastName returns the family name.
func (u User) LastName() string { return u.lastName }

// IsAdmin reports whether the user has the admin role.
func (u User) IsAdmin() bool { return u.role == RoleAdmin }

// IsModerator reports whether the user has the moderator role.
func (u User) IsModerator() bool { return u.role == RoleModerator }

// IsUser reports whether the user has the plain user role.
func (u User) IsUser() bool { return u.role == RoleUser }
