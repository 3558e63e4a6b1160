package devserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/k4jlpg/inventory/internal/devserver/auth"
	"github.com/k4jlpg/inventory/internal/devserver/config"
	"github.com/k4jlpg/inventory/internal/logging"
	"github.com/k4jlpg/inventory/internal/shared"
)

const maxRequestBody = 1 << 20

type Server struct {
	state      *State
	jwtSecret  []byte
	serviceKey string
	tokenTTL   time.Duration
	rpm        int
	log        logging.Logger
}

// NewServer wires a Server over state. An empty secret in cfg is replaced
// with a random one.
func NewServer(cfg *config.Config, state *State, log logging.Logger) (*Server, error) {
	if log == nil {
		log = logging.Nop()
	}

	secret := cfg.SecretKey
	if secret == "" {
		s, err := shared.MakeRandHexString(32)
		if err != nil {
			return nil, fmt.Errorf("generate jwt secret: %w", err)
		}
		secret = s
	}

	ttl := cfg.AccessTokenValidityDuration
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &Server{
		state:      state,
		jwtSecret:  []byte(secret),
		serviceKey: cfg.ServiceKey,
		tokenTTL:   ttl,
		rpm:        cfg.RequestsPerMinute,
		log:        log,
	}, nil
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	if s.rpm > 0 {
		r.Use(httprate.LimitByIP(s.rpm, time.Minute))
	}
	r.Use(limitBody(maxRequestBody))

	r.Get(shared.PathHealth, s.health)
	r.Get(shared.PathProducts, s.listProducts)
	r.Get(shared.PathSession, s.session)
	r.Post(shared.PathSignOut, s.signOut)

	r.Group(func(r chi.Router) {
		r.Use(s.requireServiceKey)
		r.Post(shared.PathSignIn, s.signIn)
		r.Post(shared.PathSignUp, s.signUp)
		r.Post(shared.PathInit, s.initialize)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireUser)
		r.Put(shared.PathProducts+"/{id}", s.updateProduct)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post(shared.PathProducts, s.addProduct)
			r.Delete(shared.PathProducts+"/{id}", s.deleteProduct)

			r.Get(shared.PathUsers, s.listUsers)
			r.Put(shared.PathUsers+"/{id}", s.updateUser)
			r.Delete(shared.PathUsers+"/{id}", s.deleteUser)
		})
	})

	return r
}

func (s *Server) issueToken(userID string) (string, error) {
	return auth.GenerateToken(userID, s.jwtSecret, s.tokenTTL)
}
