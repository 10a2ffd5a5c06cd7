package route

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	deliveryHttp "marketplace-service/src/internal/delivery/http"
	"marketplace-service/src/internal/delivery/http/middleware"
	"marketplace-service/src/internal/model"
	"marketplace-service/src/internal/repository/memory"
	"marketplace-service/src/internal/usecase"
	"marketplace-service/src/pkg/log"
	"marketplace-service/src/pkg/token"
	"marketplace-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type stubBlobs struct {
	mu   sync.Mutex
	keys []string
}

func (b *stubBlobs) Upload(_ context.Context, key string, file *model.FileUpload) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := io.ReadAll(file.Content); err != nil {
		return "", err
	}
	b.keys = append(b.keys, key)
	return "https://files.test/" + key, nil
}

type envelope struct {
	Data  json.RawMessage  `json:"data"`
	Error *utils.ErrorBody `json:"error"`
}

type RouteSuite struct {
	suite.Suite
	app   *fiber.App
	blobs *stubBlobs
}

func TestRouteSuite(t *testing.T) {
	suite.Run(t, new(RouteSuite))
}

func (s *RouteSuite) SetupTest() {
	logger := log.NewLogger("marketplace-test", "ERROR", io.Discard)
	validate := validator.New()
	store := memory.NewStore()
	s.blobs = &stubBlobs{}

	tokens := token.NewManager("test-secret", "marketplace-test", 15*time.Minute, time.Hour)
	identity := usecase.NewIdentityUseCase(logger, validate, store, memory.NewRefreshTokens(), tokens, s.blobs)
	identity.HashCost = bcrypt.MinCost
	notifications := usecase.NewNotificationUseCase(logger, validate, store)

	s.app = fiber.New(fiber.Config{
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			body := utils.ErrorToBody(err)
			return ctx.Status(body.Code).JSON(utils.ErrorResponse{Error: body})
		},
	})
	routes := RouteConfig{
		App:                    s.app,
		Prefix:                 "/api",
		MetricsEnabled:         true,
		IdentityController:     deliveryHttp.NewIdentityController(identity, logger),
		AssetController:        deliveryHttp.NewAssetController(usecase.NewAssetUseCase(logger, validate, store, s.blobs), logger),
		JobController:          deliveryHttp.NewJobController(usecase.NewJobUseCase(logger, validate, store, nil, notifications), logger),
		LedgerController:       deliveryHttp.NewLedgerController(usecase.NewLedgerUseCase(logger, validate, store, nil), logger),
		ChatController:         deliveryHttp.NewChatController(usecase.NewChatUseCase(logger, validate, store, nil, notifications), logger),
		NotificationController: deliveryHttp.NewNotificationController(notifications, usecase.NewDemoUseCase(logger, validate, store, nil), logger),
		AuthMiddleware:         middleware.VerifyBearer(tokens, identity),
	}
	routes.Setup()
}

func (s *RouteSuite) send(method, path, bearer string, body interface{}) (int, envelope) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return s.do(req, bearer)
}

func (s *RouteSuite) do(req *http.Request, bearer string) (int, envelope) {
	if bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+bearer)
	}
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	defer resp.Body.Close()

	var out envelope
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	if len(raw) > 0 && raw[0] == '{' {
		s.Require().NoError(json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func (s *RouteSuite) register(role, username string) string {
	status, body := s.send(fiber.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "correct-horse",
		"role":     role,
	})
	s.Require().Equal(fiber.StatusCreated, status)
	var auth model.AuthResponse
	s.Require().NoError(json.Unmarshal(body.Data, &auth))
	s.Require().NotEmpty(auth.Tokens.Access)
	return auth.Tokens.Access
}

func (s *RouteSuite) TestHealth() {
	resp, err := s.app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
	s.Require().NoError(err)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	s.NotEmpty(resp.Header.Get(fiber.HeaderXRequestID))
}

func (s *RouteSuite) TestAuthentication() {
	status, body := s.send(fiber.MethodGet, "/api/jobposts", "", nil)
	s.Equal(fiber.StatusUnauthorized, status)
	s.Require().NotNil(body.Error)
	s.Equal(fiber.StatusUnauthorized, body.Error.Code)

	status, _ = s.send(fiber.MethodGet, "/api/jobposts", "not-a-token", nil)
	s.Equal(fiber.StatusUnauthorized, status)

	access := s.register("client", "carol")
	status, body = s.send(fiber.MethodGet, "/api/auth/user", access, nil)
	s.Require().Equal(fiber.StatusOK, status)
	var user model.UserResponse
	s.Require().NoError(json.Unmarshal(body.Data, &user))
	s.Equal("carol", user.Username)
	s.Equal("client", user.Role)

	status, _ = s.send(fiber.MethodPost, "/api/auth/token/login", "", map[string]string{"identifier": "carol", "password": "wrong-horse"})
	s.Equal(fiber.StatusUnauthorized, status)
	status, _ = s.send(fiber.MethodPost, "/api/auth/token/login", "", map[string]string{"identifier": "carol@example.com", "password": "correct-horse"})
	s.Equal(fiber.StatusOK, status)

	status, _ = s.send(fiber.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "CAROL", "email": "other@example.com", "password": "correct-horse", "role": "client",
	})
	s.Equal(fiber.StatusConflict, status)
}

func (s *RouteSuite) TestJobFlow() {
	client := s.register("client", "carol")
	driver := s.register("driver", "dana")

	status, body := s.send(fiber.MethodPost, "/api/jobposts", client, map[string]string{"title": "Move boxes"})
	s.Equal(fiber.StatusBadRequest, status)
	s.Require().NotNil(body.Error)
	s.NotNil(body.Error.Details)

	newPost := map[string]string{"title": "Move boxes", "pickup_location": "Depot", "dropoff_location": "Harbour"}
	status, _ = s.send(fiber.MethodPost, "/api/jobposts", driver, newPost)
	s.Equal(fiber.StatusForbidden, status)

	status, body = s.send(fiber.MethodPost, "/api/jobposts", client, newPost)
	s.Require().Equal(fiber.StatusCreated, status)
	var post model.JobPostResponse
	s.Require().NoError(json.Unmarshal(body.Data, &post))
	s.Equal("pending", post.Status)

	status, body = s.send(fiber.MethodGet, "/api/public/jobposts", "", nil)
	s.Require().Equal(fiber.StatusOK, status)
	var public []model.JobPostResponse
	s.Require().NoError(json.Unmarshal(body.Data, &public))
	s.Len(public, 1)

	status, body = s.send(fiber.MethodPost, "/api/jobbids", driver, map[string]interface{}{
		"job_post": post.ID, "proposed_price": 120.5, "estimated_turnaround": "3h",
	})
	s.Require().Equal(fiber.StatusCreated, status)
	var bid model.JobBidResponse
	s.Require().NoError(json.Unmarshal(body.Data, &bid))

	status, body = s.send(fiber.MethodPost, "/api/cars", driver, map[string]interface{}{
		"model": "Hilux", "plate_no": "B 1 A", "capacity": 2,
	})
	s.Require().Equal(fiber.StatusCreated, status)
	var car model.CarResponse
	s.Require().NoError(json.Unmarshal(body.Data, &car))

	status, body = s.send(fiber.MethodPost, "/api/joboffers", client, map[string]string{
		"job_post": post.ID, "accepted_bid": bid.ID, "car": car.ID,
	})
	s.Require().Equal(fiber.StatusCreated, status)
	var offer model.JobOfferResponse
	s.Require().NoError(json.Unmarshal(body.Data, &offer))
	s.Equal(post.ID, offer.JobPostID)

	status, _ = s.send(fiber.MethodPost, "/api/joboffers", client, map[string]string{
		"job_post": post.ID, "accepted_bid": bid.ID, "car": car.ID,
	})
	s.Equal(fiber.StatusConflict, status)

	status, body = s.send(fiber.MethodGet, "/api/jobposts/"+post.ID, driver, nil)
	s.Require().Equal(fiber.StatusOK, status)
	s.Require().NoError(json.Unmarshal(body.Data, &post))
	s.Equal("job_offered", post.Status)

	status, _ = s.send(fiber.MethodPatch, "/api/jobposts/"+post.ID, client, map[string]string{"status": "in_progress"})
	s.Equal(fiber.StatusOK, status)

	status, _ = s.send(fiber.MethodPost, "/api/payments", client, map[string]interface{}{"job_offer": offer.ID, "amount": 120.5})
	s.Equal(fiber.StatusCreated, status)
	status, _ = s.send(fiber.MethodPost, "/api/ratings", client, map[string]interface{}{"job_offer": offer.ID, "rating": 5})
	s.Equal(fiber.StatusCreated, status)

	status, body = s.send(fiber.MethodGet, "/api/notifications", driver, nil)
	s.Require().Equal(fiber.StatusOK, status)
	var notes []model.NotificationResponse
	s.Require().NoError(json.Unmarshal(body.Data, &notes))
	s.NotEmpty(notes)
}

func (s *RouteSuite) TestChat() {
	client := s.register("client", "carol")
	driver := s.register("driver", "dana")

	_, body := s.send(fiber.MethodPost, "/api/jobposts", client, map[string]string{"title": "Move boxes", "pickup_location": "A", "dropoff_location": "B"})
	var post model.JobPostResponse
	s.Require().NoError(json.Unmarshal(body.Data, &post))
	_, body = s.send(fiber.MethodPost, "/api/jobbids", driver, map[string]interface{}{"job_post": post.ID, "proposed_price": 50, "estimated_turnaround": "1h"})
	var bid model.JobBidResponse
	s.Require().NoError(json.Unmarshal(body.Data, &bid))

	status, body := s.send(fiber.MethodPost, "/api/chats", client, map[string]string{"job_post": post.ID, "driver": bid.DriverID, "message": "9am?"})
	s.Require().Equal(fiber.StatusCreated, status)
	var message model.ChatMessageResponse
	s.Require().NoError(json.Unmarshal(body.Data, &message))

	status, body = s.send(fiber.MethodGet, "/api/chats/unread", driver, nil)
	s.Require().Equal(fiber.StatusOK, status)
	var unread model.UnreadCountResponse
	s.Require().NoError(json.Unmarshal(body.Data, &unread))
	s.Equal(1, unread.Unread)

	status, _ = s.send(fiber.MethodPost, "/api/chats/"+message.ID+"/mark_as_read", client, nil)
	s.Equal(fiber.StatusForbidden, status)
	status, _ = s.send(fiber.MethodPost, "/api/chats/"+message.ID+"/mark_as_read", driver, nil)
	s.Equal(fiber.StatusOK, status)
}

func (s *RouteSuite) TestCarDocUpload() {
	driver := s.register("driver", "dana")
	_, body := s.send(fiber.MethodPost, "/api/cars", driver, map[string]interface{}{"model": "Hilux", "plate_no": "B 1 A", "capacity": 2})
	var car model.CarResponse
	s.Require().NoError(json.Unmarshal(body.Data, &car))

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	s.Require().NoError(writer.WriteField("car", car.ID))
	s.Require().NoError(writer.WriteField("current_mileage", "42000"))
	s.Require().NoError(writer.WriteField("fuel_consumption", "7.5"))
	for _, field := range []string{"car_insurance", "car_license", "technical_control", "yellow_card"} {
		part, err := writer.CreateFormFile(field, field+".pdf")
		s.Require().NoError(err)
		_, err = part.Write([]byte("%PDF-1.4"))
		s.Require().NoError(err)
	}
	s.Require().NoError(writer.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/api/cardocs", &form)
	req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())
	status, body := s.do(req, driver)
	s.Require().Equal(fiber.StatusCreated, status)
	var doc model.CarDocResponse
	s.Require().NoError(json.Unmarshal(body.Data, &doc))
	s.Equal(42000, doc.CurrentMileage)
	s.True(strings.HasPrefix(doc.Documents.CarLicense, "https://files.test/"))
	s.Len(s.blobs.keys, 4)
}

func (s *RouteSuite) TestBookDemo() {
	status, _ := s.send(fiber.MethodPost, "/api/book-demo", "", map[string]string{
		"full_name": "Ana Lima", "email": "ana@example.com", "datetime": "2026-11-02T10:00:00Z",
	})
	s.Equal(fiber.StatusCreated, status)

	status, body := s.send(fiber.MethodPost, "/api/book-demo", "", map[string]string{"full_name": "Ana Lima"})
	s.Equal(fiber.StatusBadRequest, status)
	s.Require().NotNil(body.Error)
}

func (s *RouteSuite) TestMetrics() {
	s.send(fiber.MethodGet, "/health", "", nil)
	resp, err := s.app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil))
	s.Require().NoError(err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	s.Contains(string(raw), "marketplace_http_requests_total")
}
