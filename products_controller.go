package catalog

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// RegisterProductRoutes wires the catalog CRUD endpoints. Reads are anonymous,
// writes require a valid token whose subject still maps to a live user.
func RegisterProductRoutes[T any](app router.Router[T], protected router.MiddlewareFunc, opts ...ProductsControllerOption) {

	controller := NewProductsController(opts...)

	app.Get(controller.Routes.Collection, controller.List).
		SetName("products.list.get")

	app.Get(controller.Routes.Item, controller.Show).
		SetName("products.show.get")

	app.Post(controller.Routes.Collection, controller.Create, protected).
		SetName("products.create.post")

	app.Put(controller.Routes.Item, controller.Update, protected).
		SetName("products.update.put")

	app.Delete(controller.Routes.Item, controller.Delete, protected).
		SetName("products.delete.delete")
}

type ProductsControllerRoutes struct {
	Collection string
	Item       string
}

type ProductsController struct {
	Logger       Logger
	Repo         RepositoryManager
	Routes       *ProductsControllerRoutes
	ErrorHandler func(router.Context, error) error
}

type ProductsControllerOption func(*ProductsController) *ProductsController

func NewProductsController(opts ...ProductsControllerOption) *ProductsController {
	c := &ProductsController{
		Logger: defLogger{},
		Routes: &ProductsControllerRoutes{
			Collection: "/products",
			Item:       "/products/:id",
		},
	}

	c.ErrorHandler = func(ctx router.Context, err error) error {
		return RespondWithError(c.Logger, ctx, err)
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in products controller...")
	}

	return c
}

func WithProductsControllerRepo(repo RepositoryManager) ProductsControllerOption {
	return func(c *ProductsController) *ProductsController {
		c.Repo = repo
		return c
	}
}

func WithProductsControllerLogger(logger Logger) ProductsControllerOption {
	return func(c *ProductsController) *ProductsController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

// ProductPayload is the create and update payload
type ProductPayload struct {
	Title       string  `form:"title" json:"title"`
	Description string  `form:"description" json:"description"`
	Price       float64 `form:"price" json:"price"`
}

// Validate will validate the payload
func (r ProductPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Price, validation.Required, validation.Min(0.0)),
	)
}

func (c *ProductsController) List(ctx router.Context) error {
	records, err := c.Repo.Products().List(ctx.Context())
	if err != nil {
		return c.ErrorHandler(ctx, err)
	}
	return ctx.JSON(http.StatusOK, records)
}

func (c *ProductsController) Show(ctx router.Context) error {
	id, err := c.productID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]any{
			"detail": "Invalid product id",
		})
	}

	record, err := c.Repo.Products().GetByID(ctx.Context(), id)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return ctx.JSON(404, map[string]any{
				"detail": "Product not found",
			})
		}
		return c.ErrorHandler(ctx, err)
	}

	return ctx.JSON(http.StatusOK, record)
}

func (c *ProductsController) Create(ctx router.Context) error {
	payload := new(ProductPayload)

	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("create product parse payload", "error", err)
		return ctx.JSON(http.StatusBadRequest, map[string]any{
			"detail": "Invalid request body",
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]any{
			"detail": FormatValidationErrorToMap(err),
		})
	}

	record := &Product{
		Title:       payload.Title,
		Description: payload.Description,
		Price:       payload.Price,
	}

	record, err := c.Repo.Products().Create(ctx.Context(), record)
	if err != nil {
		c.Logger.Error("create product error", "error", err)
		return c.ErrorHandler(ctx, err)
	}

	return ctx.JSON(201, record)
}

func (c *ProductsController) Update(ctx router.Context) error {
	id, err := c.productID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]any{
			"detail": "Invalid product id",
		})
	}

	payload := new(ProductPayload)

	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("update product parse payload", "error", err)
		return ctx.JSON(http.StatusBadRequest, map[string]any{
			"detail": "Invalid request body",
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]any{
			"detail": FormatValidationErrorToMap(err),
		})
	}

	record := &Product{
		ID:          id,
		Title:       payload.Title,
		Description: payload.Description,
		Price:       payload.Price,
	}

	record, err = c.Repo.Products().Update(ctx.Context(), record)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return ctx.JSON(404, map[string]any{
				"detail": "Product not found",
			})
		}
		if IsConstraintViolation(err) {
			return ctx.JSON(http.StatusBadRequest, map[string]any{
				"detail": "Product update violates a constraint",
			})
		}
		return c.ErrorHandler(ctx, err)
	}

	return ctx.JSON(http.StatusOK, record)
}

func (c *ProductsController) Delete(ctx router.Context) error {
	id, err := c.productID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]any{
			"detail": "Invalid product id",
		})
	}

	if err := c.Repo.Products().Delete(ctx.Context(), id); err != nil {
		if goerrors.IsNotFound(err) {
			return ctx.JSON(404, map[string]any{
				"detail": "Product not found",
			})
		}
		return c.ErrorHandler(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"message": "Product deleted successfully",
	})
}

func (c *ProductsController) productID(ctx router.Context) (uuid.UUID, error) {
	return uuid.Parse(ctx.Param("id", ""))
}
