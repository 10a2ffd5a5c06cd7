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
	"marketplace-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type AssetUseCase struct {
	Log      log.Log
	Validate *validator.Validate
	Store    repository.Store
	Storage  BlobStorage
}

func NewAssetUseCase(logger log.Log, validate *validator.Validate, store repository.Store, blobStorage BlobStorage) *AssetUseCase {
	return &AssetUseCase{
		Log:      logger,
		Validate: validate,
		Store:    store,
		Storage:  blobStorage,
	}
}

func (c *AssetUseCase) CreateCar(ctx context.Context, actor policy.Actor, request *model.CreateCarRequest) utils.Result {
	var result utils.Result

	driver, err := requireDriver(actor, policy.RegisterCar)
	if err != nil {
		result.Error = err
		return result
	}
	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		c.Log.Error("asset-usecase", err.Error(), "CreateCar", utils.ConvertString(request))
		return result
	}

	createdAt := now()
	car := &entity.Car{
		ID:               uuid.NewString(),
		DriverID:         driver.DriverID,
		Model:            request.Model,
		PlateNo:          request.PlateNo,
		Capacity:         request.Capacity,
		FrequentLocation: request.FrequentLocation,
		IsAvailable:      true,
		CreatedAt:        createdAt,
		UpdatedAt:        createdAt,
	}
	if request.IsAvailable != nil {
		car.IsAvailable = *request.IsAvailable
	}
	if err := c.Store.Cars().Create(ctx, car); err != nil {
		c.Log.Error("asset-usecase", err.Error(), "CreateCar", utils.ConvertString(request))
		if errors.Is(err, repository.ErrDuplicate) {
			result.Error = conflict("car with plate %s is already registered", car.PlateNo)
			return result
		}
		result.Error = storageError(err, "car")
		return result
	}
	result.Data = converter.CarToResponse(car)
	return result
}

func carScope(actor policy.Actor) (entity.CarFilter, bool) {
	var filter entity.CarFilter
	scope := policy.VisibleTo(actor)
	switch {
	case scope.IsDriver():
		filter.DriverID = ptr(scope.DriverID)
	case scope.IsClient():
		filter.ClientID = ptr(scope.ClientID)
	default:
		return filter, false
	}
	return filter, true
}

func (c *AssetUseCase) ListCars(ctx context.Context, actor policy.Actor) utils.Result {
	var result utils.Result

	responses := []*model.CarResponse{}
	filter, ok := carScope(actor)
	if !ok {
		result.Data = responses
		return result
	}
	cars, err := c.Store.Cars().List(ctx, filter)
	if err != nil {
		c.Log.Error("asset-usecase", err.Error(), "ListCars", actor.UserID())
		result.Error = storageError(err, "car")
		return result
	}
	for i := range cars {
		responses = append(responses, converter.CarToResponse(&cars[i]))
	}
	result.Data = responses
	return result
}

func (c *AssetUseCase) GetCar(ctx context.Context, actor policy.Actor, request *model.GetByIDRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}
	filter, ok := carScope(actor)
	if !ok {
		result.Error = notFound("car not found")
		return result
	}
	filter.ID = ptr(request.ID)
	cars, err := c.Store.Cars().List(ctx, filter)
	if err != nil {
		result.Error = storageError(err, "car")
		return result
	}
	if len(cars) == 0 {
		result.Error = notFound("car not found")
		return result
	}
	result.Data = converter.CarToResponse(&cars[0])
	return result
}

// ownedCar loads a car and checks the actor is its driver.
func (c *AssetUseCase) ownedCar(ctx context.Context, actor policy.Actor, op policy.Operation, id string) (*entity.Car, error) {
	if _, err := requireDriver(actor, op); err != nil {
		return nil, err
	}
	car, err := c.Store.Cars().FindByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "car")
	}
	if err := policy.Authorize(actor, op, policy.Target{DriverID: car.DriverID}).Err(); err != nil {
		return nil, err
	}
	return car, nil
}

func (c *AssetUseCase) UpdateCar(ctx context.Context, actor policy.Actor, request *model.UpdateCarRequest) utils.Result {
	var result utils.Result

	if _, err := requireDriver(actor, policy.ModifyCar); err != nil {
		result.Error = err
		return result
	}
	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}
	car, err := c.ownedCar(ctx, actor, policy.ModifyCar, request.ID)
	if err != nil {
		result.Error = err
		return result
	}

	if request.Model != nil {
		car.Model = *request.Model
	}
	if request.PlateNo != nil {
		car.PlateNo = *request.PlateNo
	}
	if request.Capacity != nil {
		car.Capacity = *request.Capacity
	}
	if request.FrequentLocation != nil {
		car.FrequentLocation = *request.FrequentLocation
	}
	if request.IsAvailable != nil {
		car.IsAvailable = *request.IsAvailable
	}
	car.UpdatedAt = now()

	if err := c.Store.Cars().Update(ctx, car); err != nil {
		c.Log.Error("asset-usecase", err.Error(), "UpdateCar", utils.ConvertString(request))
		if errors.Is(err, repository.ErrDuplicate) {
			result.Error = conflict("car with plate %s is already registered", car.PlateNo)
			return result
		}
		result.Error = storageError(err, "car")
		return result
	}
	result.Data = converter.CarToResponse(car)
	return result
}

func (c *AssetUseCase) DeleteCar(ctx context.Context, actor policy.Actor, request *model.GetByIDRequest) utils.Result {
	var result utils.Result

	if _, err := requireDriver(actor, policy.ModifyCar); err != nil {
		result.Error = err
		return result
	}
	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}
	car, err := c.ownedCar(ctx, actor, policy.ModifyCar, request.ID)
	if err != nil {
		result.Error = err
		return result
	}
	if err := c.Store.Cars().Delete(ctx, car.ID); err != nil {
		c.Log.Error("asset-usecase", err.Error(), "DeleteCar", car.ID)
		result.Error = storageError(err, "car")
		return result
	}
	return result
}

// CreateCarDoc uploads the four vehicle documents and records them against the
// driver's car. A car may have one document set per driver.
func (c *AssetUseCase) CreateCarDoc(ctx context.Context, actor policy.Actor, request *model.CreateCarDocRequest) utils.Result {
	var result utils.Result

	driver, err := requireDriver(actor, policy.UploadCarDoc)
	if err != nil {
		result.Error = err
		return result
	}
	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		c.Log.Error("asset-usecase", err.Error(), "CreateCarDoc", request.CarID)
		return result
	}
	car, err := c.ownedCar(ctx, actor, policy.UploadCarDoc, request.CarID)
	if err != nil {
		result.Error = err
		return result
	}
	if c.Storage == nil {
		result.Error = badRequest("document storage is not configured")
		return result
	}

	existing, err := c.Store.CarDocs().List(ctx, entity.CarDocFilter{DriverID: ptr(driver.DriverID), CarID: ptr(car.ID)})
	if err != nil {
		result.Error = storageError(err, "car documents")
		return result
	}
	if len(existing) > 0 {
		result.Error = conflict("documents for this car already exist")
		return result
	}

	createdAt := now()
	doc := &entity.CarDoc{
		ID:              uuid.NewString(),
		DriverID:        driver.DriverID,
		CarID:           car.ID,
		CurrentMileage:  request.CurrentMileage,
		FuelConsumption: request.FuelConsumption,
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}
	uploads := []struct {
		name string
		file *model.FileUpload
		dst  *string
	}{
		{"car-insurance", request.CarInsurance, &doc.CarInsuranceURL},
		{"car-license", request.CarLicense, &doc.CarLicenseURL},
		{"technical-control", request.TechnicalControl, &doc.TechnicalControlURL},
		{"yellow-card", request.YellowCard, &doc.YellowCardURL},
	}
	for _, u := range uploads {
		url, err := c.Storage.Upload(ctx, storage.ObjectKey("car-docs/"+u.name, car.ID, u.file.Name), u.file)
		if err != nil {
			c.Log.Error("asset-usecase", err.Error(), "CreateCarDoc", u.name)
			result.Error = internalError()
			return result
		}
		*u.dst = url
	}

	if err := c.Store.CarDocs().Create(ctx, doc); err != nil {
		c.Log.Error("asset-usecase", err.Error(), "CreateCarDoc", car.ID)
		if errors.Is(err, repository.ErrDuplicate) {
			result.Error = conflict("documents for this car already exist")
			return result
		}
		result.Error = storageError(err, "car documents")
		return result
	}
	result.Data = converter.CarDocToResponse(doc)
	return result
}

func carDocScope(actor policy.Actor) (entity.CarDocFilter, bool) {
	var filter entity.CarDocFilter
	scope := policy.VisibleTo(actor)
	switch {
	case scope.IsDriver():
		filter.DriverID = ptr(scope.DriverID)
	case scope.IsClient():
		filter.ClientID = ptr(scope.ClientID)
	default:
		return filter, false
	}
	return filter, true
}

func (c *AssetUseCase) ListCarDocs(ctx context.Context, actor policy.Actor) utils.Result {
	var result utils.Result

	responses := []*model.CarDocResponse{}
	filter, ok := carDocScope(actor)
	if !ok {
		result.Data = responses
		return result
	}
	docs, err := c.Store.CarDocs().List(ctx, filter)
	if err != nil {
		c.Log.Error("asset-usecase", err.Error(), "ListCarDocs", actor.UserID())
		result.Error = storageError(err, "car documents")
		return result
	}
	for i := range docs {
		responses = append(responses, converter.CarDocToResponse(&docs[i]))
	}
	result.Data = responses
	return result
}

func (c *AssetUseCase) visibleCarDoc(ctx context.Context, actor policy.Actor, id string) (*entity.CarDoc, error) {
	filter, ok := carDocScope(actor)
	if !ok {
		return nil, notFound("car documents not found")
	}
	doc, err := c.Store.CarDocs().FindByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "car documents")
	}
	filter.CarID = ptr(doc.CarID)
	docs, err := c.Store.CarDocs().List(ctx, filter)
	if err != nil {
		return nil, storageError(err, "car documents")
	}
	for i := range docs {
		if docs[i].ID == id {
			return doc, nil
		}
	}
	return nil, notFound("car documents not found")
}

func (c *AssetUseCase) GetCarDoc(ctx context.Context, actor policy.Actor, request *model.GetByIDRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}
	doc, err := c.visibleCarDoc(ctx, actor, request.ID)
	if err != nil {
		result.Error = err
		return result
	}
	result.Data = converter.CarDocToResponse(doc)
	return result
}

func (c *AssetUseCase) ownedCarDoc(ctx context.Context, actor policy.Actor, id string) (*entity.CarDoc, error) {
	if _, err := requireDriver(actor, policy.ModifyCarDoc); err != nil {
		return nil, err
	}
	doc, err := c.Store.CarDocs().FindByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "car documents")
	}
	if err := policy.Authorize(actor, policy.ModifyCarDoc, policy.Target{DriverID: doc.DriverID}).Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *AssetUseCase) UpdateCarDoc(ctx context.Context, actor policy.Actor, request *model.UpdateCarDocRequest) utils.Result {
	var result utils.Result

	if _, err := requireDriver(actor, policy.ModifyCarDoc); err != nil {
		result.Error = err
		return result
	}
	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}
	doc, err := c.ownedCarDoc(ctx, actor, request.ID)
	if err != nil {
		result.Error = err
		return result
	}
	if request.CurrentMileage != nil {
		doc.CurrentMileage = *request.CurrentMileage
	}
	if request.FuelConsumption != nil {
		doc.FuelConsumption = *request.FuelConsumption
	}
	doc.UpdatedAt = now()
	if err := c.Store.CarDocs().Update(ctx, doc); err != nil {
		c.Log.Error("asset-usecase", err.Error(), "UpdateCarDoc", utils.ConvertString(request))
		result.Error = storageError(err, "car documents")
		return result
	}
	result.Data = converter.CarDocToResponse(doc)
	return result
}

func (c *AssetUseCase) DeleteCarDoc(ctx context.Context, actor policy.Actor, request *model.GetByIDRequest) utils.Result {
	var result utils.Result

	if _, err := requireDriver(actor, policy.ModifyCarDoc); err != nil {
		result.Error = err
		return result
	}
	if err := c.Validate.Struct(request); err != nil {
		result.Error = validationError(err)
		return result
	}
	doc, err := c.ownedCarDoc(ctx, actor, request.ID)
	if err != nil {
		result.Error = err
		return result
	}
	if err := c.Store.CarDocs().Delete(ctx, doc.ID); err != nil {
		result.Error = storageError(err, "car documents")
		return result
	}
	return result
}
