package shared

import (
	"github.com/k4jlpg/inventory/internal/client/models"
)

// Route paths, relative to the service base URL.
const (
	PathHealth   = "/health"
	PathSignIn   = "/auth/signin"
	PathSignUp   = "/auth/signup"
	PathSession  = "/auth/session"
	PathSignOut  = "/auth/signout"
	PathProducts = "/products"
	PathUsers    = "/users"
	PathInit     = "/init"
)

// Envelope is the JSON object every endpoint responds with. Only the fields
// relevant to a given endpoint are populated.
type Envelope struct {
	Success     bool         `json:"success"`
	AccessToken string       `json:"accessToken,omitempty"`
	User        *UserDTO     `json:"user,omitempty"`
	Users       []UserDTO    `json:"users,omitempty"`
	Product     *ProductDTO  `json:"product,omitempty"`
	Products    []ProductDTO `json:"products,omitempty"`
	Error       string       `json:"error,omitempty"`
	Message     string       `json:"message,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type ProductDTO struct {
	ID                string  `json:"id,omitempty"`
	Name              string  `json:"name"`
	Category          string  `json:"category"`
	Quantity          int     `json:"quantity"`
	Price             float64 `json:"price"`
	LowStockThreshold *int    `json:"low_stock_threshold,omitempty"`
}

// ToModel converts the wire product, defaulting an absent threshold.
func (d ProductDTO) ToModel() models.Product {
	threshold := models.DefaultLowStockThreshold
	if d.LowStockThreshold != nil && *d.LowStockThreshold > 0 {
		threshold = *d.LowStockThreshold
	}
	return models.Product{
		ID:                d.ID,
		Name:              d.Name,
		Category:          d.Category,
		Quantity:          d.Quantity,
		Price:             d.Price,
		LowStockThreshold: threshold,
	}
}

func ProductFromModel(p models.Product) ProductDTO {
	th := p.LowStockThreshold
	return ProductDTO{
		ID:                p.ID,
		Name:              p.Name,
		Category:          p.Category,
		Quantity:          p.Quantity,
		Price:             p.Price,
		LowStockThreshold: &th,
	}
}

// ProductPatchDTO carries only the fields being changed.
type ProductPatchDTO struct {
	Name              *string  `json:"name,omitempty"`
	Category          *string  `json:"category,omitempty"`
	Quantity          *int     `json:"quantity,omitempty"`
	Price             *float64 `json:"price,omitempty"`
	LowStockThreshold *int     `json:"low_stock_threshold,omitempty"`
}

func ProductPatchFromModel(p models.ProductPatch) ProductPatchDTO {
	return ProductPatchDTO{
		Name:              p.Name,
		Category:          p.Category,
		Quantity:          p.Quantity,
		Price:             p.Price,
		LowStockThreshold: p.LowStockThreshold,
	}
}

func (d ProductPatchDTO) ToModel() models.ProductPatch {
	return models.ProductPatch{
		Name:              d.Name,
		Category:          d.Category,
		Quantity:          d.Quantity,
		Price:             d.Price,
		LowStockThreshold: d.LowStockThreshold,
	}
}

type UserDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (d UserDTO) ToModel() models.User {
	return models.User{ID: d.ID, Username: d.Username, Role: models.Role(d.Role)}
}

func UserFromModel(u models.User) UserDTO {
	return UserDTO{ID: u.ID, Username: u.Username, Role: string(u.Role)}
}

// UserPatchDTO carries only the fields being changed.
type UserPatchDTO struct {
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
}

func UserPatchFromModel(p models.UserPatch) UserPatchDTO {
	d := UserPatchDTO{Password: p.Secret}
	if p.Role != nil {
		r := string(*p.Role)
		d.Role = &r
	}
	return d
}

func (d UserPatchDTO) ToModel() models.UserPatch {
	p := models.UserPatch{Secret: d.Password}
	if d.Role != nil {
		r := models.Role(*d.Role)
		p.Role = &r
	}
	return p
}

type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SignUpRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
