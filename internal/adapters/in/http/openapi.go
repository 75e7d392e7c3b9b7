package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

//go:embed openapi.yml
var openapiYAML []byte

// LoadSpec parses and validates the embedded API document.
func LoadSpec(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(openapiYAML)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

// RequestValidator rejects requests that do not match doc with 400. Paths the
// document does not describe (health, swagger) pass through untouched.
func RequestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				var routeErr *routers.RouteError
				if errors.As(findErr, &routeErr) {
					return next(c)
				}
				return findErr
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    &openapi3filter.Options{MultiError: true},
			}
			if validationErr := openapi3filter.ValidateRequest(req.Context(), input); validationErr != nil {
				return &echo.HTTPError{
					Code:     http.StatusBadRequest,
					Message:  "request does not match the API schema",
					Internal: validationErr,
				}
			}

			return next(c)
		}
	}, nil
}

// swaggerDoc serves doc to echo-swagger through the swag registry.
type swaggerDoc struct {
	raw string
}

func (d swaggerDoc) ReadDoc() string {
	return d.raw
}

// RegisterSwagger publishes doc as the default swag instance, which is what
// echoSwagger.WrapHandler reads. swag allows one registration per name, so a
// second call keeps the first document.
func RegisterSwagger(doc *openapi3.T) error {
	if swag.GetSwagger(swag.Name) != nil {
		return nil
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode openapi document: %w", err)
	}
	swag.Register(swag.Name, swaggerDoc{raw: string(raw)})
	return nil
}
