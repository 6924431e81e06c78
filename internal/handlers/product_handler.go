package handlers

import (
	"strconv"
	"strings"

	"inventory/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	log     *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, log *zap.Logger) *ProductHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProductHandler{
		service: service,
		log:     log.Named("product_handler"),
	}
}

// RegisterRoutes registers the product routes on router.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleListProducts returns one page of products as {data, total}.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	page := services.ParsePositive(c.Query("page"), services.DefaultPage)
	limit := services.ParsePositive(c.Query("limit"), services.DefaultLimit)

	result, err := h.service.ListProducts(c.UserContext(), page, limit)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(result)
}

// HandleGetProduct retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": msgProductNotFound})
	}

	product, err := h.service.GetProduct(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	payload, err := parsePayload(c)
	if err != nil {
		h.log.Debug("invalid create body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msgInvalidBody})
	}

	product, err := h.service.CreateProduct(c.UserContext(), payload)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct replaces the fields of an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": msgProductNotFound})
	}

	payload, err := parsePayload(c)
	if err != nil {
		h.log.Debug("invalid update body", zap.Int64("id", id), zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msgInvalidBody})
	}

	product, err := h.service.UpdateProduct(c.UserContext(), id, payload)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": msgProductNotFound})
	}

	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parsePayload decodes a JSON or form body. Form values are text, so they are
// read into ProductForm and coerced by the same rules as JSON strings.
func parsePayload(c *fiber.Ctx) (services.ProductPayload, error) {
	ctype := strings.ToLower(string(c.Request().Header.ContentType()))
	if strings.HasPrefix(ctype, fiber.MIMEApplicationForm) || strings.HasPrefix(ctype, fiber.MIMEMultipartForm) {
		var form services.ProductForm
		if err := c.BodyParser(&form); err != nil {
			return services.ProductPayload{}, err
		}
		return form.Payload(), nil
	}

	var payload services.ProductPayload
	if err := c.BodyParser(&payload); err != nil {
		return services.ProductPayload{}, err
	}
	return payload, nil
}

// productID parses the :id route parameter. Ids are positive integers, so
// anything else cannot name a product.
func productID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
