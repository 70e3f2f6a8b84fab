package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Dan9191/rental-analyzer/internal/auth"
	"github.com/Dan9191/rental-analyzer/internal/config"
	"github.com/Dan9191/rental-analyzer/internal/input"
	"github.com/Dan9191/rental-analyzer/internal/integrations/cbr"
	"github.com/Dan9191/rental-analyzer/internal/models"
	"github.com/Dan9191/rental-analyzer/internal/projection"
	"github.com/Dan9191/rental-analyzer/internal/report"
	"github.com/Dan9191/rental-analyzer/internal/repository"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidInput wraps assumption validation failures
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidCredentials is returned for any failed login
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Store persists users and reference rates
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	SaveReferenceRate(ctx context.Context, rate *models.ReferenceRate) error
	LatestReferenceRate(ctx context.Context) (*models.ReferenceRate, error)
}

// RateSource provides the market reference rate in percent
type RateSource interface {
	KeyRate(ctx context.Context) (float64, error)
	Margin() float64
}

// Mailer delivers rendered reports
type Mailer interface {
	SendProjectionReport(to, username, report string) error
}

// Result is a projection with its presentation views
type Result struct {
	Assumptions models.DealAssumptions `json:"assumptions"`
	Projection  *models.Projection     `json:"projection"`
	Summary     report.Summary         `json:"summary"`
	Table       report.Table           `json:"table"`
	Charts      report.Charts          `json:"charts"`
}

// Service handles business logic
type Service struct {
	store  Store
	rates  RateSource
	mailer Mailer
	log    *logrus.Logger
	config *config.Config
	now    func() time.Time
}

// NewService initializes a new service
func NewService(store Store, rates RateSource, mailer Mailer, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{store: store, rates: rates, mailer: mailer, log: log, config: cfg, now: time.Now}
}

// Register creates a new user with hashed password
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", ErrInvalidInput)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Errorf("Login lookup failed for %s: %v", email, err)
		}
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	tokenString, err := auth.IssueToken(s.config.JWTSecret, user.ID, user.Email, user.Username, s.now())
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// RunProjection parses, validates and projects a deal. With RateFallback enabled a
// blank mortgage rate is filled from the latest stored reference rate; otherwise it reads as 0.
func (s *Service) RunProjection(ctx context.Context, form input.DealForm) (*Result, error) {
	if strings.TrimSpace(form.MortgageRate) == "" && s.config.RateFallback {
		rate, err := s.store.LatestReferenceRate(ctx)
		switch {
		case err == nil:
			form.MortgageRate = strconv.FormatFloat(rate.Rate, 'f', -1, 64)
			s.log.WithFields(logrus.Fields{
				"source":     rate.Source,
				"margin":     rate.Margin,
				"fetched_at": rate.FetchedAt,
			}).Infof("Mortgage rate left blank, using reference rate %.2f%%", rate.Rate)
		case errors.Is(err, repository.ErrNotFound):
			s.log.Warn("No reference rate stored, projecting with a zero mortgage rate")
		default:
			return nil, fmt.Errorf("failed to load reference rate: %w", err)
		}
	}

	a := input.Parse(form)
	if err := input.Validate(a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	started := s.now()
	p := projection.Project(a)
	y1 := p.Years[0]
	s.log.WithFields(logrus.Fields{
		"price":         a.PurchasePrice,
		"cash_invested": p.TotalCashInvested,
		"irr_year1":     y1.IRR,
		"one_percent":   p.OnePercentRule.Pass,
		"elapsed":       s.now().Sub(started).String(),
	}).Info("Projection computed")

	return &Result{
		Assumptions: a,
		Projection:  p,
		Summary:     report.NewSummary(p),
		Table:       report.NewTable(p),
		Charts:      report.NewCharts(p),
	}, nil
}

// RefreshReferenceRate fetches the current reference rate and stores a snapshot
func (s *Service) RefreshReferenceRate(ctx context.Context) (*models.ReferenceRate, error) {
	rate, err := s.rates.KeyRate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reference rate: %w", err)
	}

	snapshot := &models.ReferenceRate{Source: cbr.Source, Rate: rate, Margin: s.rates.Margin()}
	if err := s.store.SaveReferenceRate(ctx, snapshot); err != nil {
		return nil, err
	}

	s.log.Infof("Reference rate stored: %.2f%%", snapshot.Rate)
	return snapshot, nil
}

// ReferenceRate returns the latest stored reference rate
func (s *Service) ReferenceRate(ctx context.Context) (*models.ReferenceRate, error) {
	return s.store.LatestReferenceRate(ctx)
}

// EmailReport projects a deal and mails the text report to the authenticated user
func (s *Service) EmailReport(ctx context.Context, form input.DealForm) error {
	claims, ok := auth.FromContext(ctx)
	if !ok || claims.Email == "" {
		return fmt.Errorf("user not found in context")
	}

	res, err := s.RunProjection(ctx, form)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := report.RenderText(&buf, res.Summary, res.Table); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	return s.mailer.SendProjectionReport(claims.Email, claims.Username, buf.String())
}
