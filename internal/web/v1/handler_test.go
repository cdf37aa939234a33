package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/duynhne/messaging-service/internal/core/domain"
	logicv1 "github.com/duynhne/messaging-service/internal/logic/v1"
)

type stubUserRepo struct {
	mock.Mock
}

func (m *stubUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *stubUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, bool, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Bool(1), args.Error(2)
}

func (m *stubUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, bool, error) {
	args := m.Called(ctx, id)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Bool(1), args.Error(2)
}

func (m *stubUserRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]any) (bool, error) {
	args := m.Called(ctx, id, fields)
	return args.Bool(0), args.Error(1)
}

type stubRequestRepo struct {
	mock.Mock
}

func (m *stubRequestRepo) Create(ctx context.Context, item *domain.RequestItem) (primitive.ObjectID, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *stubRequestRepo) ListByUser(ctx context.Context, userID string, limit int64) ([]domain.RequestItem, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RequestItem), args.Error(1)
}

func newUserRouter(repo domain.UserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewUserHandler(logicv1.NewUserService(repo))

	r := gin.New()
	r.POST("/auth/signup", handler.Signup)
	r.POST("/auth/login", handler.Login)
	r.GET("/profile/:id", handler.GetProfile)
	r.PUT("/profile/:id", handler.UpdateProfile)
	return r
}

func newRequestRouter(repo domain.RequestRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewRequestHandler(logicv1.NewRequestService(repo))

	r := gin.New()
	r.POST("/request/text", handler.SubmitText)
	r.POST("/request/contact", handler.SubmitContact)
	r.POST("/request/location", handler.SubmitLocation)
	r.POST("/request/photo", handler.SubmitPhoto)
	r.POST("/request/voice", handler.SubmitVoice)
	r.GET("/requests/:user_id", handler.ListByUser)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSignup_Success(t *testing.T) {
	newID := primitive.NewObjectID()
	repo := new(stubUserRepo)
	repo.On("FindByEmail", mock.Anything, "ana@example.com").Return(nil, false, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(newID, nil)
	r := newUserRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/auth/signup",
		`{"name":"Ana","email":"ana@example.com","password":"secret"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, newID.Hex(), body["id"])
	assert.Equal(t, "ana@example.com", body["email"])
	assert.Equal(t, "Ana", body["name"])
	assert.NotContains(t, w.Body.String(), "secret")
	repo.AssertExpectations(t)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	existing := &domain.User{ID: primitive.NewObjectID(), Email: "ana@example.com"}
	repo := new(stubUserRepo)
	repo.On("FindByEmail", mock.Anything, "ana@example.com").Return(existing, true, nil)
	r := newUserRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/auth/signup",
		`{"name":"Ana","email":"ana@example.com","password":"secret"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already registered", decodeBody(t, w)["detail"])
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignup_InvalidBody(t *testing.T) {
	repo := new(stubUserRepo)
	r := newUserRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/auth/signup",
		`{"name":"Ana","email":"not-an-email","password":"secret"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &domain.User{
		ID:           primitive.NewObjectID(),
		Email:        "ana@example.com",
		PasswordHash: string(hash),
	}
	repo := new(stubUserRepo)
	repo.On("FindByEmail", mock.Anything, "ana@example.com").Return(user, true, nil)
	r := newUserRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/auth/login",
		`{"email":"ana@example.com","password":"wrong"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid credentials", decodeBody(t, w)["detail"])
}

func TestLogin_UnknownEmailSameMessage(t *testing.T) {
	repo := new(stubUserRepo)
	repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, false, nil)
	r := newUserRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/auth/login",
		`{"email":"ghost@example.com","password":"whatever"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid credentials", decodeBody(t, w)["detail"])
}

func TestGetProfile_MalformedID(t *testing.T) {
	repo := new(stubUserRepo)
	r := newUserRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/profile/not-hex", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// Malformed ids are a client error, not a miss
	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestGetProfile_NotFound(t *testing.T) {
	id := primitive.NewObjectID()
	repo := new(stubUserRepo)
	repo.On("FindByID", mock.Anything, id).Return(nil, false, nil)
	r := newUserRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/profile/"+id.Hex(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", decodeBody(t, w)["detail"])
}

func TestUpdateProfile_EmptyBodyIsNoOp(t *testing.T) {
	id := primitive.NewObjectID()
	repo := new(stubUserRepo)
	r := newUserRouter(repo)

	w := doJSON(t, r, http.MethodPut, "/profile/"+id.Hex(), `{}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["updated"])
	repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateProfile_Success(t *testing.T) {
	id := primitive.NewObjectID()
	photo := "/uploads/p.png"
	updated := &domain.User{ID: id, Name: "Ana B", Email: "ana@example.com", PhotoURL: &photo}
	repo := new(stubUserRepo)
	repo.On("UpdateFields", mock.Anything, id, map[string]any{"name": "Ana B"}).Return(true, nil)
	repo.On("FindByID", mock.Anything, id).Return(updated, true, nil)
	r := newUserRouter(repo)

	w := doJSON(t, r, http.MethodPut, "/profile/"+id.Hex(), `{"name":"Ana B"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Ana B", body["name"])
	repo.AssertExpectations(t)
}

func TestSubmitText(t *testing.T) {
	newID := primitive.NewObjectID()
	repo := new(stubRequestRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(newID, nil)
	r := newRequestRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/request/text",
		`{"user_id":"user-1","text":"hello"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, newID.Hex(), body["id"])
	assert.Equal(t, "ok", body["status"])
	repo.AssertExpectations(t)
}

func TestSubmitText_MissingText(t *testing.T) {
	repo := new(stubRequestRepo)
	r := newRequestRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/request/text", `{"user_id":"user-1"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitLocation_ZeroCoordinatesBind(t *testing.T) {
	newID := primitive.NewObjectID()
	repo := new(stubRequestRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(item *domain.RequestItem) bool {
		return item.Location != nil && item.Location.Lat == 0 && item.Location.Lng == 0
	})).Return(newID, nil)
	r := newRequestRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/request/location",
		`{"user_id":"user-1","lat":0,"lng":0}`)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestSubmitPhoto_Multipart(t *testing.T) {
	newID := primitive.NewObjectID()
	repo := new(stubRequestRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(item *domain.RequestItem) bool {
		return item.Type == domain.RequestPhoto && item.Meta["size"] == int64(11)
	})).Return(newID, nil)
	r := newRequestRouter(repo)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("user_id", "user-1"))
	part, err := mw.CreateFormFile("file", "pic.JPG")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake-pixels"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/request/photo", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, newID.Hex(), body["id"])
	photoURL, _ := body["photo_url"].(string)
	assert.True(t, strings.HasPrefix(photoURL, "/uploads/"))
	assert.True(t, strings.HasSuffix(photoURL, ".jpg"))
	repo.AssertExpectations(t)
}

func TestSubmitVoice_MissingFile(t *testing.T) {
	repo := new(stubRequestRepo)
	r := newRequestRouter(repo)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("user_id", "user-1"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/request/voice", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "file is required", decodeBody(t, w)["detail"])
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListByUser(t *testing.T) {
	text := "hello"
	items := []domain.RequestItem{
		{ID: primitive.NewObjectID(), UserID: "user-1", Type: domain.RequestText, Text: &text, Status: domain.StatusSent},
	}
	repo := new(stubRequestRepo)
	repo.On("ListByUser", mock.Anything, "user-1", int64(100)).Return(items, nil)
	r := newRequestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/requests/user-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "hello", body[0]["text"])
	// Fields for other variants serialize as explicit nulls
	v, present := body[0]["photo_url"]
	assert.True(t, present)
	assert.Nil(t, v)
	repo.AssertExpectations(t)
}

func TestListByUser_EmptyIsArray(t *testing.T) {
	repo := new(stubRequestRepo)
	repo.On("ListByUser", mock.Anything, "user-2", int64(100)).Return([]domain.RequestItem{}, nil)
	r := newRequestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/requests/user-2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}
