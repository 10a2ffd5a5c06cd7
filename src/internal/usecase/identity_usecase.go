package usecase

import (
	"context"
	"errors"

	"marketplace-service/src/internal/entity"
	"marketplace-service/src/internal/gateway/storage"
	"marketplace-service/src/internal/model"
	"marketplace-service/src/internal/model/converter"
	"marketplace-service/src/internal/policy"
	"marketplace-service/src/internal/repository"
	"marketplace-service/src/pkg/log"
	"marketplace-service/src/pkg/token"
	"marketplace-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IdentityUseCase struct {
	Log           log.Log
	Validate      *validator.Validate
	Store         repository.Store
	RefreshTokens repository.RefreshTokenRepository
	Tokens        *token.Manager
	Storage       BlobStorage
	// HashCost is the bcrypt cost; zero means bcrypt.DefaultCost.
	HashCost int
}

func NewIdentityUseCase(
	logger log.Log,
	validate *validator.Validate,
	store repository.Store,
	refreshTokens repository.RefreshTokenRepository,
	tokens *token.Manager,
	blobStorage BlobStorage,
) *IdentityUseCase {
	return &IdentityUseCase{
		Log:           logger,
		Validate:      validate,
		Store:         store,
		RefreshTokens: refreshTokens,
		Tokens:        tokens,
		Storage:       blobStorage,
	}
}

// Register creates the user and its role profile in one transaction and signs
// the caller in.
func (c *IdentityUseCase) Register(ctx context.Context, request *model.RegisterRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		c.Log.Error("identity-usecase", err.Error(), "Register", request.Username)
		return result
	}

	cost := c.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), cost)
	if err != nil {
		c.Log.Error("identity-usecase", err.Error(), "Register", "hash password")
		result.Error = badRequest("password cannot be used")
		return result
	}

	createdAt := now()
	user := &entity.User{
		ID:           uuid.NewString(),
		Username:     request.Username,
		Email:        request.Email,
		Phone:        request.Phone,
		PasswordHash: string(hash),
		Role:         entity.Role(request.Role),
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
	profileID := uuid.NewString()

	err = c.Store.WithTransaction(ctx, func(tx repository.Store) error {
		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}
		switch user.Role {
		case entity.RoleDriver:
			return tx.Drivers().Create(ctx, &entity.Driver{
				ID:               profileID,
				UserID:           user.ID,
				LicenseNumber:    request.LicenseNumber,
				FrequentLocation: request.FrequentLocation,
				CreatedAt:        createdAt,
				UpdatedAt:        createdAt,
			})
		case entity.RoleClient:
			return tx.Clients().Create(ctx, &entity.Client{
				ID:        profileID,
				UserID:    user.ID,
				CreatedAt: createdAt,
				UpdatedAt: createdAt,
			})
		}
		return badRequest("role must be driver or client")
	})
	if err != nil {
		c.Log.Error("identity-usecase", err.Error(), "Register", request.Username)
		if errors.Is(err, repository.ErrDuplicate) {
			result.Error = conflict("a user with this username or email already exists")
			return result
		}
		result.Error = storageError(err, "user")
		return result
	}

	pair, err := c.issue(ctx, user)
	if err != nil {
		result.Error = err
		return result
	}

	c.Log.Info("identity-usecase", "user registered", "Register", user.ID)
	result.Data = converter.UserToAuthResponse(user, pair)
	return result
}

func (c *IdentityUseCase) Login(ctx context.Context, request *model.LoginRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}

	user, err := c.Store.Users().FindByIdentifier(ctx, request.Identifier)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			c.Log.Error("identity-usecase", err.Error(), "Login", request.Identifier)
			result.Error = internalError()
			return result
		}
		result.Error = unauthorized("invalid credentials")
		return result
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)); err != nil {
		result.Error = unauthorized("invalid credentials")
		return result
	}

	pair, err := c.issue(ctx, user)
	if err != nil {
		result.Error = err
		return result
	}
	result.Data = converter.UserToAuthResponse(user, pair)
	return result
}

// Refresh exchanges a refresh token for a new pair. Each refresh token is
// accepted once.
func (c *IdentityUseCase) Refresh(ctx context.Context, request *model.RefreshRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}

	claim, err := c.Tokens.Parse(request.Refresh, token.TypeRefresh)
	if err != nil {
		result.Error = unauthorized("invalid refresh token")
		return result
	}
	ok, err := c.RefreshTokens.Consume(ctx, claim.UserID, claim.ID)
	if err != nil {
		c.Log.Error("identity-usecase", err.Error(), "Refresh", claim.UserID)
		result.Error = internalError()
		return result
	}
	if !ok {
		result.Error = unauthorized("refresh token has been revoked")
		return result
	}

	user, err := c.Store.Users().FindByID(ctx, claim.UserID)
	if err != nil {
		result.Error = unauthorized("account no longer exists")
		return result
	}
	pair, err := c.issue(ctx, user)
	if err != nil {
		result.Error = err
		return result
	}
	result.Data = model.TokensResponse{Refresh: pair.Refresh, Access: pair.Access}
	return result
}

func (c *IdentityUseCase) issue(ctx context.Context, user *entity.User) (*token.Pair, error) {
	pair, err := c.Tokens.Issue(user.ID, string(user.Role))
	if err != nil {
		c.Log.Error("identity-usecase", err.Error(), "issue", user.ID)
		return nil, internalError()
	}
	if err := c.RefreshTokens.Save(ctx, user.ID, pair.RefreshID, c.Tokens.RefreshTTL()); err != nil {
		c.Log.Error("identity-usecase", err.Error(), "issue", user.ID)
		return nil, internalError()
	}
	return pair, nil
}

// ResolveActor turns verified access claims into the actor used by every
// operation of the request.
func (c *IdentityUseCase) ResolveActor(ctx context.Context, claim *token.Claim) (policy.Actor, error) {
	user, err := c.Store.Users().FindByID(ctx, claim.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, unauthorized("account no longer exists")
		}
		c.Log.Error("identity-usecase", err.Error(), "ResolveActor", claim.UserID)
		return nil, internalError()
	}
	if string(user.Role) != claim.Role {
		return nil, unauthorized("token role does not match the account")
	}

	switch user.Role {
	case entity.RoleDriver:
		driver, err := c.Store.Drivers().FindByUserID(ctx, user.ID)
		if err != nil {
			return nil, unauthorized("driver profile missing")
		}
		return policy.DriverActor{User: user.ID, DriverID: driver.ID}, nil
	case entity.RoleClient:
		client, err := c.Store.Clients().FindByUserID(ctx, user.ID)
		if err != nil {
			return nil, unauthorized("client profile missing")
		}
		return policy.ClientActor{User: user.ID, ClientID: client.ID}, nil
	}
	return nil, unauthorized("unknown role")
}

func (c *IdentityUseCase) CurrentUser(ctx context.Context, actor policy.Actor) utils.Result {
	var result utils.Result

	if actor == nil {
		result.Error = unauthorized("authentication required")
		return result
	}
	user, err := c.Store.Users().FindByID(ctx, actor.UserID())
	if err != nil {
		result.Error = storageError(err, "user")
		return result
	}

	var profileID string
	switch a := actor.(type) {
	case policy.DriverActor:
		profileID = a.DriverID
	case policy.ClientActor:
		profileID = a.ClientID
	}
	result.Data = converter.UserToResponse(user, profileID)
	return result
}

func (c *IdentityUseCase) ListDrivers(ctx context.Context, actor policy.Actor) utils.Result {
	var result utils.Result

	responses := []*model.DriverResponse{}
	var filter entity.DriverFilter
	scope := policy.VisibleTo(actor)
	switch {
	case scope.IsDriver():
		filter.ID = ptr(scope.DriverID)
	case scope.IsClient():
		filter.ClientID = ptr(scope.ClientID)
	default:
		result.Data = responses
		return result
	}

	drivers, err := c.Store.Drivers().List(ctx, filter)
	if err != nil {
		c.Log.Error("identity-usecase", err.Error(), "ListDrivers", actor.UserID())
		result.Error = storageError(err, "driver")
		return result
	}
	for i := range drivers {
		responses = append(responses, converter.DriverToResponse(&drivers[i]))
	}
	result.Data = responses
	return result
}

func (c *IdentityUseCase) visibleDriver(ctx context.Context, actor policy.Actor, id string) (*entity.Driver, error) {
	var filter entity.DriverFilter
	scope := policy.VisibleTo(actor)
	switch {
	case scope.IsDriver():
		filter.ID = ptr(scope.DriverID)
	case scope.IsClient():
		filter.ClientID = ptr(scope.ClientID)
	default:
		return nil, notFound("driver not found")
	}
	if filter.ID != nil && *filter.ID != id {
		return nil, notFound("driver not found")
	}
	filter.ID = ptr(id)

	drivers, err := c.Store.Drivers().List(ctx, filter)
	if err != nil {
		return nil, storageError(err, "driver")
	}
	if len(drivers) == 0 {
		return nil, notFound("driver not found")
	}
	return &drivers[0], nil
}

func (c *IdentityUseCase) GetDriver(ctx context.Context, actor policy.Actor, request *model.GetByIDRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}
	driver, err := c.visibleDriver(ctx, actor, request.ID)
	if err != nil {
		result.Error = err
		return result
	}
	result.Data = converter.DriverToResponse(driver)
	return result
}

func (c *IdentityUseCase) UpdateDriver(ctx context.Context, actor policy.Actor, request *model.UpdateDriverRequest) utils.Result {
	var result utils.Result

	if _, err := requireDriver(actor, policy.ModifyDriverProfile); err != nil {
		result.Error = err
		return result
	}
	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}
	driver, err := c.Store.Drivers().FindByID(ctx, request.ID)
	if err != nil {
		result.Error = storageError(err, "driver")
		return result
	}
	if err := policy.Authorize(actor, policy.ModifyDriverProfile, policy.Target{DriverID: driver.ID}).Err(); err != nil {
		result.Error = err
		return result
	}

	if request.LicenseNumber != nil {
		driver.LicenseNumber = *request.LicenseNumber
	}
	if request.FrequentLocation != nil {
		driver.FrequentLocation = *request.FrequentLocation
	}
	driver.UpdatedAt = now()
	if err := c.Store.Drivers().Update(ctx, driver); err != nil {
		c.Log.Error("identity-usecase", err.Error(), "UpdateDriver", utils.ConvertString(request))
		result.Error = storageError(err, "driver")
		return result
	}
	result.Data = converter.DriverToResponse(driver)
	return result
}

// UploadIdentityDocument stores the driver's personal id scan and records its URL.
func (c *IdentityUseCase) UploadIdentityDocument(ctx context.Context, actor policy.Actor, request *model.UploadIdentityDocumentRequest) utils.Result {
	var result utils.Result

	if _, err := requireDriver(actor, policy.ModifyDriverProfile); err != nil {
		result.Error = err
		return result
	}
	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}
	if err := policy.Authorize(actor, policy.ModifyDriverProfile, policy.Target{DriverID: request.DriverID}).Err(); err != nil {
		result.Error = err
		return result
	}
	driver, err := c.Store.Drivers().FindByID(ctx, request.DriverID)
	if err != nil {
		result.Error = storageError(err, "driver")
		return result
	}
	if c.Storage == nil {
		result.Error = badRequest("document storage is not configured")
		return result
	}

	url, err := c.Storage.Upload(ctx, storage.ObjectKey("personal-ids", driver.ID, request.File.Name), request.File)
	if err != nil {
		c.Log.Error("identity-usecase", err.Error(), "UploadIdentityDocument", driver.ID)
		result.Error = internalError()
		return result
	}
	driver.PersonalIDURL = url
	driver.UpdatedAt = now()
	if err := c.Store.Drivers().Update(ctx, driver); err != nil {
		result.Error = storageError(err, "driver")
		return result
	}
	result.Data = converter.DriverToResponse(driver)
	return result
}

func (c *IdentityUseCase) ListClients(ctx context.Context, actor policy.Actor) utils.Result {
	var result utils.Result

	responses := []*model.ClientResponse{}
	var filter entity.ClientFilter
	scope := policy.VisibleTo(actor)
	switch {
	case scope.IsClient():
		filter.ID = ptr(scope.ClientID)
	case scope.IsDriver():
		filter.DriverID = ptr(scope.DriverID)
	default:
		result.Data = responses
		return result
	}

	clients, err := c.Store.Clients().List(ctx, filter)
	if err != nil {
		c.Log.Error("identity-usecase", err.Error(), "ListClients", actor.UserID())
		result.Error = storageError(err, "client")
		return result
	}
	for i := range clients {
		responses = append(responses, converter.ClientToResponse(&clients[i]))
	}
	result.Data = responses
	return result
}

func (c *IdentityUseCase) GetClient(ctx context.Context, actor policy.Actor, request *model.GetByIDRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}

	var filter entity.ClientFilter
	scope := policy.VisibleTo(actor)
	switch {
	case scope.IsClient() && scope.ClientID == request.ID:
	case scope.IsDriver():
		filter.DriverID = ptr(scope.DriverID)
	default:
		result.Error = notFound("client not found")
		return result
	}
	filter.ID = ptr(request.ID)

	clients, err := c.Store.Clients().List(ctx, filter)
	if err != nil {
		result.Error = storageError(err, "client")
		return result
	}
	if len(clients) == 0 {
		result.Error = notFound("client not found")
		return result
	}
	result.Data = converter.ClientToResponse(&clients[0])
	return result
}
