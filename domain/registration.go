package domain

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Registration binds a user identity to its current delivery token.
// At most one registration exists per userId; a new one replaces the prior.
type Registration struct {
	UserId  string            `bson:"_id"`
	Token   string            `bson:"token"`
	Role    Role              `bson:"role"`
	Device  map[string]string `bson:"device,omitempty"`
	Valid   bool              `bson:"valid"`
	Created int64             `bson:"created"`
	Updated int64             `bson:"updated"`
}
