// Package checkout starts hosted payment sessions and free trials. Neither
// operation reads or changes the shopper's cart.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/nikolayk812/streamstick/internal/backend"
	"github.com/nikolayk812/streamstick/internal/domain"
	"go.uber.org/zap"
)

var (
	ErrNoCheckoutURL = errors.New("checkout session has no url")
	ErrEmailRequired = errors.New("email is required")
	ErrInvalidEmail  = errors.New("email is not valid")
)

type Invoker interface {
	Invoke(ctx context.Context, name string, req, resp any) error
}

type Service struct {
	invoker      Invoker
	publicOrigin string
	logger       *zap.Logger
}

func NewService(invoker Invoker, publicOrigin string, logger *zap.Logger) *Service {
	return &Service{
		invoker:      invoker,
		publicOrigin: strings.TrimRight(publicOrigin, "/"),
		logger:       logger,
	}
}

// CreateSession asks the backend for a payment page for a single product.
func (s *Service) CreateSession(ctx context.Context, product domain.Product) (domain.CheckoutSession, error) {
	req := domain.CheckoutRequest{
		ProductID:   product.ID,
		ProductName: product.Name,
		Price:       product.Price.WireString(),
		SuccessURL:  s.publicOrigin + "/secure-checkout?success=true",
		CancelURL:   s.publicOrigin + "/secure-checkout?canceled=true",
	}

	var session domain.CheckoutSession
	if err := s.invoker.Invoke(ctx, backend.FunctionCreateCheckout, req, &session); err != nil {
		return domain.CheckoutSession{}, fmt.Errorf("invoker.Invoke: %w", err)
	}

	if session.URL == "" {
		return domain.CheckoutSession{}, fmt.Errorf("product[%s]: %w", product.ID, ErrNoCheckoutURL)
	}

	s.logger.Info("checkout session created", zap.String("product_id", product.ID))

	return session, nil
}

// StartTrial provisions a trial for email. The backend mails the
// credentials.
func (s *Service) StartTrial(ctx context.Context, email string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}

	var activation domain.TrialActivation
	if err := s.invoker.Invoke(ctx, backend.FunctionFreeTrial, domain.TrialRequest{Email: email}, &activation); err != nil {
		return fmt.Errorf("invoker.Invoke: %w", err)
	}

	s.logger.Info("free trial activated")

	return nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", ErrEmailRequired
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("email[%s]: %w", email, ErrInvalidEmail)
	}

	return email, nil
}
