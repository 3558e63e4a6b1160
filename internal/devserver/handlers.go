package devserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/k4jlpg/inventory/internal/client/models"
	"github.com/k4jlpg/inventory/internal/common"
	"github.com/k4jlpg/inventory/internal/shared"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func errorBody(msg string) shared.Envelope {
	return shared.Envelope{Success: false, Error: msg}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if status >= http.StatusInternalServerError {
		s.log.Error(r.Context(), msg, "path", r.URL.Path)
	}
	writeJSON(w, status, errorBody(msg))
}

func decode(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// validationMessage strips the taxonomy prefix from a model validation error.
func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), common.ErrValidation.Error()+": ")
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, shared.HealthResponse{Status: "ok", Message: "K4J LPG Center API is running"})
}

func (s *Server) signIn(w http.ResponseWriter, r *http.Request) {
	var req shared.SignInRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		s.fail(w, r, http.StatusBadRequest, "Username and password are required")
		return
	}

	u, ok := s.state.Authenticate(req.Username, req.Password)
	if !ok {
		s.fail(w, r, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := s.issueToken(u.ID)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, "Sign in failed: "+err.Error())
		return
	}

	dto := shared.UserFromModel(u)
	writeJSON(w, http.StatusOK, shared.Envelope{Success: true, AccessToken: token, User: &dto})
}

func (s *Server) signUp(w http.ResponseWriter, r *http.Request) {
	var req shared.SignUpRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" || req.Role == "" {
		s.fail(w, r, http.StatusBadRequest, "Username, password, and role are required")
		return
	}
	role, err := models.ParseRole(req.Role)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, "Invalid role")
		return
	}

	u, err := s.state.CreateUser(req.Username, req.Password, role)
	if errors.Is(err, errUsernameTaken) {
		s.fail(w, r, http.StatusBadRequest, "Username already exists")
		return
	}

	dto := shared.UserFromModel(u)
	writeJSON(w, http.StatusOK, shared.Envelope{Success: true, User: &dto, Message: "User created successfully"})
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) {
	if bearerToken(r) == "" {
		s.fail(w, r, http.StatusUnauthorized, "No access token provided")
		return
	}
	u, _, ok := s.authenticate(r)
	if !ok {
		s.fail(w, r, http.StatusUnauthorized, "Invalid or expired session")
		return
	}
	dto := shared.UserFromModel(u)
	writeJSON(w, http.StatusOK, shared.Envelope{Success: true, User: &dto})
}

func (s *Server) signOut(w http.ResponseWriter, r *http.Request) {
	if _, claims, ok := s.authenticate(r); ok && claims.ExpiresAt != nil {
		s.state.Revoke(claims.ID, claims.ExpiresAt.Time)
	}
	writeJSON(w, http.StatusOK, shared.Envelope{Success: true, Message: "Signed out successfully"})
}

func (s *Server) listProducts(w http.ResponseWriter, _ *http.Request) {
	list := s.state.Products()
	out := make([]shared.ProductDTO, 0, len(list))
	for _, p := range list {
		out = append(out, shared.ProductFromModel(p))
	}
	writeJSON(w, http.StatusOK, shared.Envelope{Success: true, Products: out})
}

func (s *Server) addProduct(w http.ResponseWriter, r *http.Request) {
	var dto shared.ProductDTO
	if err := decode(r, &dto); err != nil {
		s.fail(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	in := models.ProductInput{
		Name:     dto.Name,
		Category: dto.Category,
		Quantity: dto.Quantity,
		Price:    dto.Price,
	}
	if dto.LowStockThreshold != nil {
		in.LowStockThreshold = *dto.LowStockThreshold
	}

	p, err := s.state.AddProduct(in)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}
	out := shared.ProductFromModel(p)
	writeJSON(w, http.StatusOK, shared.Envelope{Success: true, Product: &out})
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	var dto shared.ProductPatchDTO
	if err := decode(r, &dto); err != nil {
		s.fail(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := s.state.UpdateProduct(chi.URLParam(r, "id"), dto.ToModel())
	switch {
	case errors.Is(err, errProductAbsent):
		s.fail(w, r, http.StatusNotFound, "Product not found")
		return
	case err != nil:
		s.fail(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}
	out := shared.ProductFromModel(p)
	writeJSON(w, http.StatusOK, shared.Envelope{Success: true, Product: &out})
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	s.state.DeleteProduct(chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, shared.Envelope{Success: true, Message: "Product deleted successfully"})
}

func (s *Server) listUsers(w http.ResponseWriter, _ *http.Request) {
	list := s.state.Users()
	out := make([]shared.UserDTO, 0, len(list))
	for _, u := range list {
		out = append(out, shared.UserFromModel(u))
	}
	writeJSON(w, http.StatusOK, shared.Envelope{Success: true, Users: out})
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	var dto shared.UserPatchDTO
	if err := decode(r, &dto); err != nil {
		s.fail(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	patch := dto.ToModel()
	if err := patch.Validate(); err != nil {
		s.fail(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}
	if patch.Role != nil {
		role, _ := models.ParseRole(string(*patch.Role))
		patch.Role = &role
	}

	u, err := s.state.UpdateUser(chi.URLParam(r, "id"), patch)
	if err != nil {
		s.fail(w, r, http.StatusNotFound, "User not found")
		return
	}
	out := shared.UserFromModel(u)
	writeJSON(w, http.StatusOK, shared.Envelope{Success: true, User: &out})
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if cur, _ := userFrom(r.Context()); cur.ID == id {
		s.fail(w, r, http.StatusBadRequest, "Cannot delete your own account")
		return
	}
	s.state.DeleteUser(id)
	writeJSON(w, http.StatusOK, shared.Envelope{Success: true, Message: "User deleted successfully"})
}

func (s *Server) initialize(w http.ResponseWriter, r *http.Request) {
	if !s.state.Initialize() {
		writeJSON(w, http.StatusOK, shared.Envelope{Success: true, Message: "Database already initialized"})
		return
	}
	s.log.Info(r.Context(), "seeded default users and products")
	writeJSON(w, http.StatusOK, shared.Envelope{
		Success: true,
		Message: "Database initialized successfully with default users and products",
	})
}
