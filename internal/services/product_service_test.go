package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"inventory/internal/metrics"
	"inventory/internal/models"
	"inventory/internal/repositories"
	"inventory/internal/services"
	"inventory/pkg/rabbitmq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context, page, limit int) ([]models.Product, int64, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockPublisher records published messages.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, msg rabbitmq.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func validPayload() services.ProductPayload {
	return services.ProductPayload{Article: " NB-1 ", Name: " Bread ", Price: 899.0, Quantity: 5.0}
}

func TestProductService_ListProducts(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, nil, nil)

	expected := []models.Product{{ID: 51, Article: "NB-051"}, {ID: 52, Article: "NB-052"}}
	mockRepo.On("List", ctx, 2, 50).Return(expected, int64(70), nil).Once()

	page, err := service.ListProducts(ctx, 2, 50)
	require.NoError(t, err)
	assert.Equal(t, expected, page.Data)
	assert.Equal(t, int64(70), page.Total)
	mockRepo.AssertExpectations(t)
}

func TestProductService_ListProducts_Defaults(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, nil, nil)

	mockRepo.On("List", ctx, services.DefaultPage, services.DefaultLimit).Return(nil, int64(0), nil).Once()

	page, err := service.ListProducts(ctx, 0, -3)
	require.NoError(t, err)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
	assert.Zero(t, page.Total)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, nil, nil)

	expected := &models.Product{ID: 1, Article: "NB-001", Name: "Bread", Price: 899, Quantity: 5}
	mockRepo.On("GetByID", ctx, int64(1)).Return(expected, nil).Once()
	product, err := service.GetProduct(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, expected, product)

	mockRepo.On("GetByID", ctx, int64(99)).Return(nil, repositories.ErrProductNotFound).Once()
	product, err = service.GetProduct(ctx, 99)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	m := metrics.New()
	service := services.NewProductService(mockRepo, publisher, m, nil)

	mockRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Product) bool {
		return p.Article == "NB-1" && p.Name == "Bread" && p.Price == 899 && p.Quantity == 5
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Product).ID = 7
	}).Return(nil).Once()

	var published rabbitmq.Message
	publisher.On("Publish", ctx, mock.Anything).Run(func(args mock.Arguments) {
		published = args.Get(1).(rabbitmq.Message)
	}).Return(nil).Once()

	product, err := service.CreateProduct(ctx, validPayload())
	require.NoError(t, err)
	assert.Equal(t, int64(7), product.ID)
	assert.Equal(t, "NB-1", product.Article)

	assert.Equal(t, services.EventProductCreated, published.Type)
	assert.NotEmpty(t, published.ID)
	var event services.ProductEvent
	require.NoError(t, json.Unmarshal(published.Body, &event))
	assert.Equal(t, published.ID, event.ID)
	assert.Equal(t, int64(7), event.ProductID)
	require.NotNil(t, event.Product)
	assert.Equal(t, "Bread", event.Product.Name)

	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestProductService_CreateProduct_Invalid(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewProductService(mockRepo, publisher, nil, nil)

	payload := validPayload()
	payload.Price = 0.0
	product, err := service.CreateProduct(ctx, payload)

	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "price must be > 0", verr.Message)
	assert.Nil(t, product)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestProductService_CreateProduct_Conflict(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	m := metrics.New()
	service := services.NewProductService(mockRepo, publisher, m, nil)

	mockRepo.On("Create", ctx, mock.Anything).Return(repositories.ErrArticleConflict).Once()

	_, err := service.CreateProduct(ctx, validPayload())
	assert.ErrorIs(t, err, repositories.ErrArticleConflict)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct_PublishFailureIgnored(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewProductService(mockRepo, publisher, nil, nil)

	mockRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
	publisher.On("Publish", ctx, mock.Anything).Return(errors.New("broker down")).Once()

	product, err := service.CreateProduct(ctx, validPayload())
	assert.NoError(t, err)
	assert.NotNil(t, product)
	publisher.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewProductService(mockRepo, publisher, nil, nil)

	mockRepo.On("Update", ctx, mock.MatchedBy(func(p *models.Product) bool {
		return p.ID == 3 && p.Article == "NB-1"
	})).Return(nil).Once()
	publisher.On("Publish", ctx, mock.MatchedBy(func(msg rabbitmq.Message) bool {
		return msg.Type == services.EventProductUpdated
	})).Return(nil).Once()

	product, err := service.UpdateProduct(ctx, 3, validPayload())
	require.NoError(t, err)
	assert.Equal(t, int64(3), product.ID)

	mockRepo.On("Update", ctx, mock.MatchedBy(func(p *models.Product) bool { return p.ID == 99 })).
		Return(repositories.ErrProductNotFound).Once()
	_, err = service.UpdateProduct(ctx, 99, validPayload())
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestProductService_UpdateProduct_ValidatesFirst(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, nil, nil)

	payload := validPayload()
	payload.Name = "   "
	_, err := service.UpdateProduct(ctx, 99, payload)

	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name required", verr.Message)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProductService_DeleteProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	m := metrics.New()
	service := services.NewProductService(mockRepo, publisher, m, nil)

	mockRepo.On("Delete", ctx, int64(1)).Return(nil).Once()
	publisher.On("Publish", ctx, mock.MatchedBy(func(msg rabbitmq.Message) bool {
		var event services.ProductEvent
		return json.Unmarshal(msg.Body, &event) == nil &&
			event.Type == services.EventProductDeleted &&
			event.ProductID == 1 &&
			event.Product == nil
	})).Return(nil).Once()
	assert.NoError(t, service.DeleteProduct(ctx, 1))

	mockRepo.On("Delete", ctx, int64(99)).Return(repositories.ErrProductNotFound).Once()
	err := service.DeleteProduct(ctx, 99)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}
