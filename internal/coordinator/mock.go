package coordinator

import "context"

// MockClient is a test double for Client.
type MockClient struct {
	ProviderName string
	RespondFunc  func(ctx context.Context, req Request) (*Response, error)

	// Requests records every Respond call for assertions.
	Requests []Request
}

func (m *MockClient) Name() string {
	if m.ProviderName != "" {
		return m.ProviderName
	}
	return "mock"
}

func (m *MockClient) Respond(ctx context.Context, req Request) (*Response, error) {
	m.Requests = append(m.Requests, req)
	if m.RespondFunc != nil {
		return m.RespondFunc(ctx, req)
	}
	return &Response{FinalText: "mock response"}, nil
}
