// Package erostest runs an in-process fake of the Eros backend REST surface.
// It exists so gateway and workflow tests (and SDK consumers' integration
// tests) never have to stub HTTP by hand or fall back to fabricated data in
// production code paths: point a transport.Client at BaseURL and every
// endpoint behaves like the real API, envelope and all.
package erostest

import (
	"crypto/rand"
	"fmt"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/eros-saude/eros-go/model"
)

// ConsultationFee is the fixed amount the fake backend charges per booking.
const ConsultationFee = 150.00

// account pairs a profile with its credential.
type account struct {
	user         *model.User
	passwordHash string
}

// link is one support-network binding. Links are soft-lifecycle: status
// transitions only, never deletion.
type link struct {
	id           string
	pregnantID   string
	supportID    string
	relationship string
	status       model.LinkStatus
	createdAt    time.Time
}

// Server is the fake backend. All state is in memory and guarded by one
// mutex; handlers are small enough that coarse locking is fine.
type Server struct {
	mu sync.Mutex

	accounts    map[string]*account // by user ID
	byEmail     map[string]string   // email -> user ID
	byShareCode map[string]string   // share code -> pregnant user ID
	links       []*link
	doctors     map[string]*model.Doctor
	doctorOrder []string
	appts       map[string]*model.Appointment // by appointment ID
	apptOwner   map[string]string             // appointment ID -> user ID
	payments    map[string]*model.Payment
	payOwner    map[string]string
	treatments  map[string]*model.Treatment // by user ID

	secret []byte
	ts     *httptest.Server
}

// New starts the fake backend on a random local port.
func New() *Server {
	s := &Server{
		accounts:    make(map[string]*account),
		byEmail:     make(map[string]string),
		byShareCode: make(map[string]string),
		doctors:     make(map[string]*model.Doctor),
		appts:       make(map[string]*model.Appointment),
		apptOwner:   make(map[string]string),
		payments:    make(map[string]*model.Payment),
		payOwner:    make(map[string]string),
		treatments:  make(map[string]*model.Treatment),
		secret:      []byte("erostest-signing-key"),
	}

	e := echo.New()
	e.HideBanner = true
	s.routes(e)
	s.ts = httptest.NewServer(e)
	return s
}

// BaseURL is what a transport.Client should be pointed at.
func (s *Server) BaseURL() string { return s.ts.URL + "/api" }

// Close shuts the server down.
func (s *Server) Close() { s.ts.Close() }

// SeedDoctor registers a provider, replacing any existing one with the same ID.
func (s *Server) SeedDoctor(d *model.Doctor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.doctors[d.ID]; !exists {
		s.doctorOrder = append(s.doctorOrder, d.ID)
	}
	s.doctors[d.ID] = d
}

// SeedPregnant creates a pregnant account with a fixed share code and
// returns the stored profile. The password is bcrypt-hashed like a real
// registration.
func (s *Server) SeedPregnant(name, email, password, shareCode string) *model.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("erostest: hash password: %v", err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u := &model.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		UserType:  model.UserTypePregnant,
		ShareCode: shareCode,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.accounts[u.ID] = &account{user: u, passwordHash: string(hash)}
	s.byEmail[email] = u.ID
	s.byShareCode[shareCode] = u.ID
	return cloneUser(u)
}

// SupportNetworkSize reports how many links (any status) reference the given
// pregnant user. Test assertions use it to check the +1 property.
func (s *Server) SupportNetworkSize(pregnantID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, l := range s.links {
		if l.pregnantID == pregnantID {
			n++
		}
	}
	return n
}

// UserCount reports how many accounts exist.
func (s *Server) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts)
}

// AppointmentByID returns a copy of a stored appointment, or nil.
func (s *Server) AppointmentByID(id string) *model.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.appts[id]
	if !ok {
		return nil
	}
	cp := *a
	return &cp
}

// shareCodeAlphabet deliberately omits nothing: codes are opaque, not
// human-checksummed.
const shareCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// newShareCode produces an XXXX-XXXX code unique among active codes.
func (s *Server) newShareCode() string {
	for {
		b := make([]byte, 8)
		if _, err := rand.Read(b); err != nil {
			panic(fmt.Sprintf("erostest: read random: %v", err))
		}
		for i := range b {
			b[i] = shareCodeAlphabet[int(b[i])%len(shareCodeAlphabet)]
		}
		code := string(b[:4]) + "-" + string(b[4:])
		if _, taken := s.byShareCode[code]; !taken {
			return code
		}
	}
}

// cloneUser returns a copy safe to hand to handlers; the hydrated network
// fields are attached by the caller.
func cloneUser(u *model.User) *model.User {
	cp := *u
	cp.SupportNetwork = nil
	cp.SupportingPregnant = nil
	return &cp
}

// hydrate fills the relationship views for a profile: the owning collection
// for pregnant users, the single back-reference for support members.
// Callers must hold s.mu.
func (s *Server) hydrate(u *model.User) *model.User {
	out := cloneUser(u)
	switch u.UserType {
	case model.UserTypePregnant:
		for _, l := range s.links {
			if l.pregnantID != u.ID {
				continue
			}
			supp := s.accounts[l.supportID]
			out.SupportNetwork = append(out.SupportNetwork, &model.SupportNetworkMember{
				ID:           l.id,
				Relationship: l.relationship,
				Status:       l.status,
				Support:      cloneUser(supp.user),
				CreatedAt:    l.createdAt,
			})
		}
	case model.UserTypeSupportNetwork:
		for _, l := range s.links {
			if l.supportID != u.ID {
				continue
			}
			preg := s.accounts[l.pregnantID]
			out.SupportingPregnant = &model.SupportLink{
				ID:           l.id,
				Relationship: l.relationship,
				Status:       l.status,
				Pregnant:     cloneUser(preg.user),
				CreatedAt:    l.createdAt,
			}
			break
		}
	}
	return out
}

func (s *Server) treatmentFor(userID string) *model.Treatment {
	t, ok := s.treatments[userID]
	if !ok {
		t = &model.Treatment{
			Medications: []*model.Medication{},
			Supplements: []*model.Supplement{},
		}
		s.treatments[userID] = t
	}
	return t
}
