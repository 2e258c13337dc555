package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"polycap/internal/api/v1/dto"
	"polycap/internal/api/v1/services"
)

// MockServices contains all mock services for testing
type MockServices struct {
	CapabilityService *MockCapabilityService
	EngineService     *MockEngineService
}

// NewMockServices creates a new instance of mock services
func NewMockServices(t *testing.T) *MockServices {
	return &MockServices{
		CapabilityService: NewMockCapabilityService(t),
		EngineService:     NewMockEngineService(t),
	}
}

// MockCapabilityService is a mock implementation of CapabilityService
type MockCapabilityService struct {
	mock.Mock
}

func NewMockCapabilityService(t *testing.T) *MockCapabilityService {
	m := &MockCapabilityService{}
	m.Test(t)
	return m
}

func (m *MockCapabilityService) Summarize(ctx context.Context, req *dto.SummarizeRequest) (*dto.TextResultResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TextResultResponse), args.Error(1)
}

func (m *MockCapabilityService) Translate(ctx context.Context, req *dto.TranslateRequest) (*dto.TextResultResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TextResultResponse), args.Error(1)
}

func (m *MockCapabilityService) Transcribe(ctx context.Context, req *dto.TranscribeRequest) (*dto.TextResultResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TextResultResponse), args.Error(1)
}

func (m *MockCapabilityService) TranscribeUpload(ctx context.Context, upload *services.AudioUpload) (*dto.TextResultResponse, error) {
	args := m.Called(ctx, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TextResultResponse), args.Error(1)
}

func (m *MockCapabilityService) Synthesize(ctx context.Context, req *dto.SpeechRequest) (*dto.SpeechResultResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SpeechResultResponse), args.Error(1)
}

// MockEngineService is a mock implementation of EngineService
type MockEngineService struct {
	mock.Mock
}

func NewMockEngineService(t *testing.T) *MockEngineService {
	m := &MockEngineService{}
	m.Test(t)
	return m
}

func (m *MockEngineService) ListEngines(ctx context.Context) (*dto.EngineListResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.EngineListResponse), args.Error(1)
}

func (m *MockEngineService) GetEngine(ctx context.Context, id string) (*dto.EngineResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.EngineResponse), args.Error(1)
}

func (m *MockEngineService) Languages(ctx context.Context) (*dto.LanguagesResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LanguagesResponse), args.Error(1)
}

func (m *MockEngineService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.StatsResponse), args.Error(1)
}
