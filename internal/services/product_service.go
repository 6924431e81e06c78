package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"inventory/internal/metrics"
	"inventory/internal/models"
	"inventory/internal/repositories"
	"inventory/pkg/rabbitmq"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	validator *ProductValidator
	publisher MessagePublisher
	metrics   *metrics.Metrics
	log       *zap.Logger
	now       func() time.Time
}

// NewProductService creates a new ProductService. publisher and m may be nil.
func NewProductService(repo repositories.ProductRepository, publisher MessagePublisher, m *metrics.Metrics, log *zap.Logger) *ProductService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProductService{
		repo:      repo,
		validator: NewProductValidator(),
		publisher: publisher,
		metrics:   m,
		log:       log.Named("product_service"),
		now:       time.Now,
	}
}

// ListProducts returns one page of products ordered by id and the total count.
// Non-positive page or limit values fall back to the defaults.
func (s *ProductService) ListProducts(ctx context.Context, page, limit int) (*models.ProductPage, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	products, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return &models.ProductPage{Data: products, Total: total}, nil
}

// GetProduct retrieves a single product by its ID.
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct validates payload and stores a new product.
func (s *ProductService) CreateProduct(ctx context.Context, payload ProductPayload) (*models.Product, error) {
	input, err := s.validator.Validate(payload)
	if err != nil {
		s.record(opCreate, err)
		return nil, err
	}

	product := &models.Product{
		Article:  input.Article,
		Name:     input.Name,
		Price:    input.Price,
		Quantity: input.Quantity,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		s.record(opCreate, err)
		return nil, err
	}
	s.record(opCreate, nil)

	s.publish(ctx, EventProductCreated, product.ID, product)
	return product, nil
}

// UpdateProduct replaces every editable field of product id. Input is
// validated before the product is looked up.
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, payload ProductPayload) (*models.Product, error) {
	input, err := s.validator.Validate(payload)
	if err != nil {
		s.record(opUpdate, err)
		return nil, err
	}

	product := &models.Product{
		ID:       id,
		Article:  input.Article,
		Name:     input.Name,
		Price:    input.Price,
		Quantity: input.Quantity,
	}
	if err := s.repo.Update(ctx, product); err != nil {
		s.record(opUpdate, err)
		return nil, err
	}
	s.record(opUpdate, nil)

	s.publish(ctx, EventProductUpdated, product.ID, product)
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.record(opDelete, err)
		return err
	}
	s.record(opDelete, nil)

	s.publish(ctx, EventProductDeleted, id, nil)
	return nil
}

func (s *ProductService) record(op string, err error) {
	var verr *ValidationError
	outcome := metrics.OutcomeSuccess
	switch {
	case err == nil:
	case errors.As(err, &verr):
		outcome = metrics.OutcomeInvalid
	case errors.Is(err, repositories.ErrProductNotFound):
		outcome = metrics.OutcomeNotFound
	case errors.Is(err, repositories.ErrArticleConflict):
		outcome = metrics.OutcomeConflict
	default:
		outcome = metrics.OutcomeError
	}
	s.metrics.RecordMutation(op, outcome)
}

// publish emits an event for a committed mutation. Failures are logged and
// never reach the caller.
func (s *ProductService) publish(ctx context.Context, eventType string, productID int64, product *models.Product) {
	if s.publisher == nil {
		return
	}

	event := ProductEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		ProductID:  productID,
		OccurredAt: s.now().UTC(),
		Product:    product,
	}
	body, err := json.Marshal(event)
	if err != nil {
		s.log.Error("failed to encode product event", zap.String("type", eventType), zap.Error(err))
		return
	}

	if err := s.publisher.Publish(ctx, rabbitmq.Message{ID: event.ID, Type: eventType, Body: body}); err != nil {
		s.log.Warn("failed to publish product event",
			zap.String("type", eventType),
			zap.Int64("product_id", productID),
			zap.Error(err),
		)
	}
}
