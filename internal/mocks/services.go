package mocks

import (
	"context"

	"github.com/club-roster-api/internal/service"
)

// MockEmailService is a mock implementation of EmailService
type MockEmailService struct {
	Sent    []service.WelcomeEmail
	SendErr error
}

func NewMockEmailService() *MockEmailService {
	return &MockEmailService{}
}

func (m *MockEmailService) SendWelcome(ctx context.Context, email service.WelcomeEmail) error {
	if m.SendErr != nil {
		return m.SendErr
	}
	m.Sent = append(m.Sent, email)
	return nil
}
