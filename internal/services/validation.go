package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports rejected input. Message is the first failing rule;
// Fields holds every failing field.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ProductPayload is a create or update body as sent by the client. Price and
// quantity stay untyped because browsers and forms send numeric strings as
// often as JSON numbers.
type ProductPayload struct {
	Article  string      `json:"article"`
	Name     string      `json:"name"`
	Price    interface{} `json:"price"`
	Quantity interface{} `json:"quantity"`
}

// ProductForm is a create or update body sent as a url-encoded or multipart
// form. Every value arrives as text.
type ProductForm struct {
	Article  string `form:"article"`
	Name     string `form:"name"`
	Price    string `form:"price"`
	Quantity string `form:"quantity"`
}

// Payload converts the form into a ProductPayload so both encodings share
// one set of rules.
func (f ProductForm) Payload() ProductPayload {
	return ProductPayload{Article: f.Article, Name: f.Name, Price: f.Price, Quantity: f.Quantity}
}

// Column sizes of the products table.
const (
	MaxArticleLength = 100
	MaxNameLength    = 255
)

// maxSafeQuantity is the largest integer a JSON number carries exactly.
const maxSafeQuantity = 1<<53 - 1

// ProductInput is a normalised payload. Field order is the order in which
// rules are reported.
type ProductInput struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Price    float64 `json:"price" validate:"gt=0"`
	Quantity int     `json:"quantity" validate:"gte=0"`
	Article  string  `json:"article" validate:"required,max=100"`
}

var fieldMessages = map[string]string{
	"name":     "name required",
	"price":    "price must be > 0",
	"quantity": "quantity must be >= 0",
	"article":  "article required",
}

var lengthMessages = map[string]string{
	"name":    fmt.Sprintf("name must be at most %d characters", MaxNameLength),
	"article": fmt.Sprintf("article must be at most %d characters", MaxArticleLength),
}

// ProductValidator applies the product field rules.
type ProductValidator struct {
	validate *validator.Validate
}

// NewProductValidator creates a ProductValidator that reports fields by their
// JSON names.
func NewProductValidator() *ProductValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &ProductValidator{validate: v}
}

// Validate trims article and name, coerces price and quantity and checks every
// rule. Create and update share it: updates replace all four fields.
func (v *ProductValidator) Validate(p ProductPayload) (ProductInput, error) {
	input := ProductInput{
		Name:    strings.TrimSpace(p.Name),
		Article: strings.TrimSpace(p.Article),
	}

	// Values that cannot be read as numbers are replaced by values that fail
	// the same rule, so they produce the same message.
	if price, ok := toPrice(p.Price); ok {
		input.Price = price
	}
	if qty, ok := toQuantity(p.Quantity); ok {
		input.Quantity = qty
	} else {
		input.Quantity = -1
	}

	err := v.validate.Struct(input)
	if err == nil {
		return input, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ProductInput{}, err
	}

	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Field()]
		if fe.Tag() == "max" {
			msg, ok = lengthMessages[fe.Field()]
		}
		if !ok {
			msg = fe.Field() + " is invalid"
		}
		if out.Message == "" {
			out.Message = msg
		}
		out.Fields[fe.Field()] = msg
	}
	return ProductInput{}, out
}

func toPrice(raw interface{}) (float64, bool) {
	var (
		f   float64
		err error
	)
	switch x := raw.(type) {
	case float64:
		f = x
	case json.Number:
		f, err = x.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(x), 64)
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func toQuantity(raw interface{}) (int, bool) {
	switch x := raw.(type) {
	case float64:
		if x != math.Trunc(x) || math.Abs(x) > maxSafeQuantity {
			return 0, false
		}
		return int(x), true
	case json.Number:
		n, err := x.Int64()
		if err != nil || n > maxSafeQuantity || n < -maxSafeQuantity {
			return 0, false
		}
		return int(n), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil || n > maxSafeQuantity || n < -maxSafeQuantity {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
