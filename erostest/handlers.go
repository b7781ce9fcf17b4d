package erostest

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/eros-saude/eros-go/model"
)

func (s *Server) routes(e *echo.Echo) {
	api := e.Group("/api")

	api.POST("/auth/login", s.login)
	api.POST("/auth/register", s.register)

	authed := api.Group("", s.requireAuth)
	authed.POST("/auth/logout", s.logout)
	authed.GET("/auth/me", s.me)

	authed.GET("/doctors", s.listDoctors)
	authed.GET("/doctors/:id", s.getDoctor)
	authed.GET("/doctors/:id/slots", s.doctorSlots)

	authed.GET("/appointments", s.listAppointments)
	authed.POST("/appointments", s.createAppointment)
	authed.GET("/appointments/:id", s.getAppointment)
	authed.DELETE("/appointments/:id", s.cancelAppointment)

	authed.GET("/treatments", s.getTreatments)
	authed.POST("/treatments/medications", s.addMedication)
	authed.POST("/treatments/supplements", s.addSupplement)

	authed.GET("/payments", s.listPayments)
	authed.POST("/payments", s.createPayment)
	authed.GET("/payments/:id", s.getPayment)
}

// -- Envelope helpers --

func ok(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, map[string]interface{}{"success": true, "data": data})
}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]interface{}{"success": false, "message": msg})
}

// -- Auth --

type tokenClaims struct {
	jwt.RegisteredClaims
}

func (s *Server) issueToken(userID string) string {
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		panic(fmt.Sprintf("erostest: sign token: %v", err))
	}
	return tok
}

func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		if header == "" {
			return fail(c, http.StatusUnauthorized, "missing authorization header")
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return fail(c, http.StatusUnauthorized, "invalid authorization format")
		}
		claims := &tokenClaims{}
		tok, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
			if _, okm := t.Method.(*jwt.SigningMethodHMAC); !okm {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return s.secret, nil
		})
		if err != nil || !tok.Valid {
			return fail(c, http.StatusUnauthorized, "invalid token")
		}

		s.mu.Lock()
		_, exists := s.accounts[claims.Subject]
		s.mu.Unlock()
		if !exists {
			return fail(c, http.StatusUnauthorized, "unknown user")
		}
		c.Set("user_id", claims.Subject)
		return next(c)
	}
}

func (s *Server) currentUserID(c echo.Context) string {
	id, _ := c.Get("user_id").(string)
	return id
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	s.mu.Lock()
	id, found := s.byEmail[req.Email]
	var acct *account
	if found {
		acct = s.accounts[id]
	}
	s.mu.Unlock()

	if !found || bcrypt.CompareHashAndPassword([]byte(acct.passwordHash), []byte(req.Password)) != nil {
		return fail(c, http.StatusUnauthorized, "invalid credentials")
	}

	s.mu.Lock()
	user := s.hydrate(acct.user)
	s.mu.Unlock()
	return ok(c, http.StatusOK, model.AuthSession{User: user, Token: s.issueToken(id)})
}

type registerRequest struct {
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	Password      string         `json:"password"`
	Phone         string         `json:"phone,omitempty"`
	UserType      model.UserType `json:"userType"`
	PregnantWeeks int            `json:"pregnantWeeks,omitempty"`
	DueDate       string         `json:"dueDate,omitempty"`
	ShareCode     string         `json:"shareCode,omitempty"`
	Relationship  string         `json:"relationship,omitempty"`
}

func (s *Server) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "name, email and password are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[req.Email]; taken {
		return fail(c, http.StatusConflict, "email already registered")
	}

	var pregnantID string
	if req.UserType == model.UserTypeSupportNetwork {
		if req.Relationship == "" {
			return fail(c, http.StatusBadRequest, "relationship is required")
		}
		id, known := s.byShareCode[req.ShareCode]
		if !known {
			return fail(c, http.StatusNotFound, "share code not found")
		}
		pregnantID = id
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	u := &model.User{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		UserType:      req.UserType,
		PregnantWeeks: req.PregnantWeeks,
		DueDate:       req.DueDate,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if u.UserType == model.UserTypePregnant {
		// The share code is issued exactly once, at registration, and never
		// rotates.
		u.ShareCode = s.newShareCode()
		s.byShareCode[u.ShareCode] = u.ID
	}
	s.accounts[u.ID] = &account{user: u, passwordHash: string(hash)}
	s.byEmail[u.Email] = u.ID

	if pregnantID != "" {
		s.links = append(s.links, &link{
			id:           uuid.NewString(),
			pregnantID:   pregnantID,
			supportID:    u.ID,
			relationship: req.Relationship,
			status:       model.LinkStatusActive,
			createdAt:    time.Now(),
		})
	}

	return ok(c, http.StatusCreated, model.AuthSession{User: s.hydrate(u), Token: s.issueToken(u.ID)})
}

func (s *Server) logout(c echo.Context) error {
	// Stateless tokens: nothing to revoke in the fake.
	return ok(c, http.StatusOK, nil)
}

func (s *Server) me(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct := s.accounts[s.currentUserID(c)]
	return ok(c, http.StatusOK, s.hydrate(acct.user))
}

// -- Doctors --

func (s *Server) listDoctors(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Doctor, 0, len(s.doctorOrder))
	for _, id := range s.doctorOrder {
		out = append(out, s.doctors[id])
	}
	return ok(c, http.StatusOK, out)
}

func (s *Server) getDoctor(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, found := s.doctors[c.Param("id")]
	if !found {
		return fail(c, http.StatusNotFound, "doctor not found")
	}
	return ok(c, http.StatusOK, d)
}

func (s *Server) doctorSlots(c echo.Context) error {
	date := c.QueryParam("date")

	s.mu.Lock()
	defer s.mu.Unlock()
	d, found := s.doctors[c.Param("id")]
	if !found {
		return fail(c, http.StatusNotFound, "doctor not found")
	}
	out := *d
	if date != "" {
		out.AvailableSlots = nil
		for _, slot := range d.AvailableSlots {
			if slot.Date == date {
				out.AvailableSlots = append(out.AvailableSlots, slot)
			}
		}
	}
	return ok(c, http.StatusOK, &out)
}

// -- Appointments --

func (s *Server) listAppointments(c echo.Context) error {
	uid := s.currentUserID(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*model.Appointment{}
	for id, a := range s.appts {
		if s.apptOwner[id] == uid {
			out = append(out, a)
		}
	}
	return ok(c, http.StatusOK, out)
}

func (s *Server) createAppointment(c echo.Context) error {
	var req model.AppointmentBooking
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	if req.DoctorID == "" || req.Date == "" || req.Time == "" {
		return fail(c, http.StatusBadRequest, "doctorId, date and time are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	doc, found := s.doctors[req.DoctorID]
	if !found {
		return fail(c, http.StatusNotFound, "doctor not found")
	}
	a := &model.Appointment{
		ID:       uuid.NewString(),
		DoctorID: req.DoctorID,
		Doctor:   doc,
		Date:     req.Date,
		Time:     req.Time,
		Type:     req.Type,
		Status:   model.AppointmentScheduled,
		Notes:    req.Notes,
	}
	s.appts[a.ID] = a
	s.apptOwner[a.ID] = s.currentUserID(c)
	return ok(c, http.StatusCreated, a)
}

func (s *Server) getAppointment(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, found := s.appts[c.Param("id")]
	if !found || s.apptOwner[a.ID] != s.currentUserID(c) {
		return fail(c, http.StatusNotFound, "appointment not found")
	}
	return ok(c, http.StatusOK, a)
}

func (s *Server) cancelAppointment(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, found := s.appts[c.Param("id")]
	if !found || s.apptOwner[a.ID] != s.currentUserID(c) {
		return fail(c, http.StatusNotFound, "appointment not found")
	}
	if a.Status != model.AppointmentScheduled && a.Status != model.AppointmentPending {
		return fail(c, http.StatusBadRequest, fmt.Sprintf("appointment in status %s cannot be cancelled", a.Status))
	}
	a.Status = model.AppointmentCancelled
	return ok(c, http.StatusOK, a)
}

// -- Treatments --

func (s *Server) getTreatments(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ok(c, http.StatusOK, s.treatmentFor(s.currentUserID(c)))
}

func (s *Server) addMedication(c echo.Context) error {
	var m model.Medication
	if err := c.Bind(&m); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	if m.Name == "" || m.Dosage == "" || m.Frequency == "" {
		return fail(c, http.StatusBadRequest, "name, dosage and frequency are required")
	}
	m.ID = uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.treatmentFor(s.currentUserID(c))
	t.Medications = append(t.Medications, &m)
	return ok(c, http.StatusCreated, &m)
}

func (s *Server) addSupplement(c echo.Context) error {
	var sp model.Supplement
	if err := c.Bind(&sp); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	if sp.Name == "" || sp.Dosage == "" || sp.Frequency == "" {
		return fail(c, http.StatusBadRequest, "name, dosage and frequency are required")
	}
	sp.ID = uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.treatmentFor(s.currentUserID(c))
	t.Supplements = append(t.Supplements, &sp)
	return ok(c, http.StatusCreated, &sp)
}

// -- Payments --

func (s *Server) listPayments(c echo.Context) error {
	uid := s.currentUserID(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*model.Payment{}
	for id, p := range s.payments {
		if s.payOwner[id] == uid {
			out = append(out, p)
		}
	}
	return ok(c, http.StatusOK, out)
}

type createPaymentRequest struct {
	AppointmentID string              `json:"appointmentId"`
	Method        model.PaymentMethod `json:"method"`
}

func (s *Server) createPayment(c echo.Context) error {
	var req createPaymentRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	if req.AppointmentID == "" || req.Method == "" {
		return fail(c, http.StatusBadRequest, "appointmentId and method are required")
	}
	switch req.Method {
	case model.PaymentPix, model.PaymentCreditCard, model.PaymentDebitCard:
	default:
		return fail(c, http.StatusBadRequest, fmt.Sprintf("unknown payment method %q", req.Method))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a, found := s.appts[req.AppointmentID]
	if !found || s.apptOwner[a.ID] != s.currentUserID(c) {
		return fail(c, http.StatusNotFound, "appointment not found")
	}

	p := &model.Payment{
		ID:            uuid.NewString(),
		AppointmentID: a.ID,
		Amount:        ConsultationFee,
		ServiceName:   "Consulta de Pré-Natal",
		Date:          time.Now().Format(time.RFC3339),
		Status:        model.PaymentStatusCompleted,
		Method:        req.Method,
	}
	s.payments[p.ID] = p
	s.payOwner[p.ID] = s.currentUserID(c)

	// Payment completion finalizes the appointment.
	if a.Status == model.AppointmentScheduled || a.Status == model.AppointmentPending {
		a.Status = model.AppointmentConfirmed
	}
	return ok(c, http.StatusCreated, p)
}

func (s *Server) getPayment(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, found := s.payments[c.Param("id")]
	if !found || s.payOwner[p.ID] != s.currentUserID(c) {
		return fail(c, http.StatusNotFound, "payment not found")
	}
	return ok(c, http.StatusOK, p)
}
