package v1

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/duynhne/messaging-service/internal/core/domain"
)

// MockRequestRepository is a mock implementation of domain.RequestRepository.
type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Create(ctx context.Context, item *domain.RequestItem) (primitive.ObjectID, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockRequestRepository) ListByUser(ctx context.Context, userID string, limit int64) ([]domain.RequestItem, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RequestItem), args.Error(1)
}

func TestRequestService_SubmitText(t *testing.T) {
	newID := primitive.NewObjectID()
	repo := new(MockRequestRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(item *domain.RequestItem) bool {
		return item.Type == domain.RequestText &&
			item.UserID == "user-1" &&
			item.Text != nil && *item.Text == "hi" &&
			item.Status == domain.StatusSent
	})).Return(newID, nil)
	service := NewRequestService(repo)

	id, err := service.SubmitText(context.Background(), "user-1", "hi")

	require.NoError(t, err)
	assert.Equal(t, newID.Hex(), id)
	repo.AssertExpectations(t)
}

func TestRequestService_SubmitText_MissingText(t *testing.T) {
	repo := new(MockRequestRepository)
	service := NewRequestService(repo)

	_, err := service.SubmitText(context.Background(), "user-1", "")

	assert.ErrorIs(t, err, domain.ErrMissingField)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRequestService_SubmitContact(t *testing.T) {
	newID := primitive.NewObjectID()
	repo := new(MockRequestRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(item *domain.RequestItem) bool {
		return item.Type == domain.RequestContact &&
			item.ContactName != nil && *item.ContactName == "Ana" &&
			item.ContactPhone != nil && *item.ContactPhone == "+123"
	})).Return(newID, nil)
	service := NewRequestService(repo)

	id, err := service.SubmitContact(context.Background(), "user-1", "Ana", "+123")

	require.NoError(t, err)
	assert.Equal(t, newID.Hex(), id)
	repo.AssertExpectations(t)
}

func TestRequestService_SubmitLocation(t *testing.T) {
	newID := primitive.NewObjectID()
	repo := new(MockRequestRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(item *domain.RequestItem) bool {
		return item.Type == domain.RequestLocation &&
			item.Location != nil &&
			item.Location.Lat == 10.5 && item.Location.Lng == -3.25
	})).Return(newID, nil)
	service := NewRequestService(repo)

	id, err := service.SubmitLocation(context.Background(), "user-1", 10.5, -3.25)

	require.NoError(t, err)
	assert.Equal(t, newID.Hex(), id)
	repo.AssertExpectations(t)
}

func TestRequestService_SubmitPhoto(t *testing.T) {
	newID := primitive.NewObjectID()
	repo := new(MockRequestRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(item *domain.RequestItem) bool {
		return item.Type == domain.RequestPhoto &&
			item.PhotoURL != nil &&
			item.Meta["size"] == int64(4096)
	})).Return(newID, nil)
	service := NewRequestService(repo)

	id, photoURL, err := service.SubmitPhoto(context.Background(), "user-1", "holiday.PNG", 4096)

	require.NoError(t, err)
	assert.Equal(t, newID.Hex(), id)
	// Synthesized path keeps the extension (lowercased) but not the client filename
	assert.True(t, strings.HasPrefix(photoURL, "/uploads/"))
	assert.True(t, strings.HasSuffix(photoURL, ".png"))
	assert.NotContains(t, photoURL, "holiday")
	repo.AssertExpectations(t)
}

func TestRequestService_SubmitVoice(t *testing.T) {
	newID := primitive.NewObjectID()
	repo := new(MockRequestRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(item *domain.RequestItem) bool {
		return item.Type == domain.RequestVoice &&
			item.VoiceURL != nil &&
			item.Meta["size"] == int64(100)
	})).Return(newID, nil)
	service := NewRequestService(repo)

	id, voiceURL, err := service.SubmitVoice(context.Background(), "user-1", "memo.ogg", 100)

	require.NoError(t, err)
	assert.Equal(t, newID.Hex(), id)
	assert.True(t, strings.HasPrefix(voiceURL, "/uploads/"))
	assert.True(t, strings.HasSuffix(voiceURL, ".ogg"))
	repo.AssertExpectations(t)
}

func TestRequestService_ListByUser(t *testing.T) {
	items := []domain.RequestItem{
		{UserID: "user-1", Type: domain.RequestText, Status: domain.StatusSent},
	}
	repo := new(MockRequestRepository)
	repo.On("ListByUser", mock.Anything, "user-1", int64(100)).Return(items, nil)
	service := NewRequestService(repo)

	got, err := service.ListByUser(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, items, got)
	repo.AssertExpectations(t)
}

func TestUploadURL_UniquePerCall(t *testing.T) {
	first := uploadURL("a.png")
	second := uploadURL("a.png")

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasSuffix(first, ".png"))
}
