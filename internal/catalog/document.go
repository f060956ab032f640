package catalog

type Role string

const (
	RoleAdmin Role = "admin"
	RoleAgent Role = "agent"
)

type User struct {
	ID       string `json:"id"`
	Role     Role   `json:"role"`
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Image       string `json:"image"`
	// CreatedAt is milliseconds since the Unix epoch.
	CreatedAt int64 `json:"createdAt"`
}

// Document is everything the catalog persists. Products are kept newest
// first.
type Document struct {
	Users    []User    `json:"users"`
	Products []Product `json:"products"`
}

// Seed returns a fresh copy of the default document used on first run, on a
// corrupt slot and on reset.
func Seed() Document {
	return Document{
		Users: []User{
			{ID: "u1", Role: RoleAdmin, Username: "admin", Password: "admin123", Name: "Admin"},
			{ID: "u2", Role: RoleAgent, Username: "agent", Password: "agent123", Name: "Agent"},
		},
		Products: []Product{},
	}
}

// Clone copies both slices so the result shares no backing arrays with d.
func (d Document) Clone() Document {
	out := Document{
		Users:    make([]User, len(d.Users)),
		Products: make([]Product, len(d.Products)),
	}
	copy(out.Users, d.Users)
	copy(out.Products, d.Products)
	return out
}

func (d Document) indexOf(id string) int {
	for i, p := range d.Products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
