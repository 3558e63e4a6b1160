package devserver

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/k4jlpg/inventory/internal/client/models"
	"github.com/k4jlpg/inventory/internal/cryptox"
)

var (
	errUsernameTaken = errors.New("username already exists")
	errUserNotFound  = errors.New("user not found")
	errProductAbsent = errors.New("product not found")
)

// defaultProducts are written by /init into an empty catalogue.
var defaultProducts = []models.ProductInput{
	{Name: "11kg Brent Gas", Category: "Gas Tank", Quantity: 15, Price: 950},
	{Name: "22kg Superkalan Gas", Category: "Gas Tank", Quantity: 25, Price: 1850},
	{Name: "2.7kg Superkalan", Category: "Gas Tank", Quantity: 18, Price: 450},
	{Name: "LPG Hose", Category: "Accessories", Quantity: 50, Price: 150},
	{Name: "LPG Regulator", Category: "Accessories", Quantity: 35, Price: 280},
	{Name: "Gas Stove Burner", Category: "Accessories", Quantity: 20, Price: 320},
	{Name: "O-ring", Category: "Accessories", Quantity: 100, Price: 25},
	{Name: "Gas Clamp", Category: "Accessories", Quantity: 75, Price: 35},
	{Name: "Double Burner Stove", Category: "Stove", Quantity: 12, Price: 1850},
	{Name: "Megakalan", Category: "Stove", Quantity: 8, Price: 2500},
}

var defaultUsers = []struct {
	username, password string
	role               models.Role
}{
	{"admin", "admin123", models.RoleAdmin},
	{"staff", "staff123", models.RoleStaff},
}

type account struct {
	user     models.User
	password string
}

// State is the dev server's in-memory data set. All methods are safe for
// concurrent use.
type State struct {
	mu       sync.RWMutex
	users    map[string]account
	products map[string]models.Product
	revoked  map[string]time.Time
	newID    func() string
}

func NewState() *State {
	return &State{
		users:    make(map[string]account),
		products: make(map[string]models.Product),
		revoked:  make(map[string]time.Time),
		newID:    uuid.NewString,
	}
}

// Initialize seeds the default users and products unless the catalogue
// already has products. It reports whether anything was seeded.
func (s *State) Initialize() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.products) > 0 {
		return false
	}

	for _, d := range defaultUsers {
		if _, ok := s.findUsernameLocked(d.username); ok {
			continue
		}
		id := s.newID()
		s.users[id] = account{
			user:     models.User{ID: id, Username: d.username, Role: d.role},
			password: d.password,
		}
	}

	for _, in := range defaultProducts {
		p := in.ToProduct(s.newID())
		s.products[p.ID] = p
	}
	return true
}

func (s *State) findUsernameLocked(username string) (account, bool) {
	for _, a := range s.users {
		if a.user.Username == username {
			return a, true
		}
	}
	return account{}, false
}

// Authenticate returns the user whose credentials match.
func (s *State) Authenticate(username, password string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.findUsernameLocked(username)
	if !ok || !cryptox.VerifyCredential(a.password, password) {
		return models.User{}, false
	}
	return a.user, true
}

func (s *State) CreateUser(username, password string, role models.Role) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findUsernameLocked(username); ok {
		return models.User{}, errUsernameTaken
	}
	u := models.User{ID: s.newID(), Username: username, Role: role}
	s.users[u.ID] = account{user: u, password: password}
	return u, nil
}

func (s *State) User(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.users[id]
	return a.user, ok
}

// Users returns every user ordered by username.
func (s *State) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, 0, len(s.users))
	for _, a := range s.users {
		out = append(out, a.user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

func (s *State) UpdateUser(id string, patch models.UserPatch) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.users[id]
	if !ok {
		return models.User{}, errUserNotFound
	}
	if patch.Secret != nil {
		a.password = *patch.Secret
	}
	if patch.Role != nil {
		a.user.Role = *patch.Role
	}
	s.users[id] = a
	return a.user, nil
}

func (s *State) DeleteUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, id)
}

// Products returns the catalogue ordered by name.
func (s *State) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *State) AddProduct(in models.ProductInput) (models.Product, error) {
	p := in.ToProduct(s.newID())
	if err := p.Validate(); err != nil {
		return models.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.products[p.ID] = p
	return p, nil
}

func (s *State) UpdateProduct(id string, patch models.ProductPatch) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.products[id]
	if !ok {
		return models.Product{}, errProductAbsent
	}
	next, err := patch.Apply(cur)
	if err != nil {
		return models.Product{}, err
	}
	s.products[id] = next
	return next, nil
}

// DeleteProduct removes id. Deleting an unknown id is not an error.
func (s *State) DeleteProduct(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.products, id)
}

// Revoke blocks a token id until its expiry. Expired entries are pruned here.
func (s *State) Revoke(tokenID string, expires time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, exp := range s.revoked {
		if exp.Before(now) {
			delete(s.revoked, id)
		}
	}
	s.revoked[tokenID] = expires
}

func (s *State) IsRevoked(tokenID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.revoked[tokenID]
	return ok
}
