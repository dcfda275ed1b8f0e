package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	appcatalog "github.com/mynet/sales/internal/application/catalog"
	appidentity "github.com/mynet/sales/internal/application/identity"
)

// AdminHandler serves product, user and company administration
type AdminHandler struct {
	BaseHandler
	products  *appcatalog.ProductService
	users     *appidentity.UserService
	companies *appidentity.CompanyService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	products *appcatalog.ProductService,
	users *appidentity.UserService,
	companies *appidentity.CompanyService,
) *AdminHandler {
	return &AdminHandler{
		products:  products,
		users:     users,
		companies: companies,
	}
}

// ===================== Products =====================

// CreateProduct godoc
// @Summary      Register a product
// @Description  Create a product with a generated code and its initial prices
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body appcatalog.CreateProductRequest true "Product"
// @Success      201 {object} dto.Response{data=appcatalog.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /admin/products [post]
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	var req appcatalog.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	product, err := h.products.Create(c.Request.Context(), req, p.Username)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// ListProducts godoc
// @Summary      List products
// @Description  Every product with its current prices. active=true keeps active products only; q filters by name.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        active query bool false "Active products only"
// @Param        q query string false "Name contains"
// @Success      200 {object} dto.Response{data=[]appcatalog.ProductResponse}
// @Router       /admin/products [get]
func (h *AdminHandler) ListProducts(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		products []appcatalog.ProductResponse
		err      error
	)
	switch {
	case strings.TrimSpace(c.Query("q")) != "":
		products, err = h.products.Search(ctx, c.Query("q"))
	case c.Query("active") == "true":
		products, err = h.products.ListActive(ctx)
	default:
		products, err = h.products.ListAll(ctx)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.List(c, products, len(products))
}

// Categories godoc
// @Summary      Product categories
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=[]string}
// @Router       /admin/products/categories [get]
func (h *AdminHandler) Categories(c *gin.Context) {
	categories, err := h.products.Categories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.List(c, categories, len(categories))
}

// GetProduct godoc
// @Summary      Get a product
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response{data=appcatalog.ProductResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /admin/products/{id} [get]
func (h *AdminHandler) GetProduct(c *gin.Context) {
	id, ok := h.PathUUID(c, "id")
	if !ok {
		return
	}

	product, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// ActivateProduct godoc
// @Summary      Activate a product
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response{data=appcatalog.ProductResponse}
// @Router       /admin/products/{id}/activate [post]
func (h *AdminHandler) ActivateProduct(c *gin.Context) {
	id, ok := h.PathUUID(c, "id")
	if !ok {
		return
	}

	product, err := h.products.Activate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// DeactivateProduct godoc
// @Summary      Deactivate a product
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response{data=appcatalog.ProductResponse}
// @Router       /admin/products/{id}/deactivate [post]
func (h *AdminHandler) DeactivateProduct(c *gin.Context) {
	id, ok := h.PathUUID(c, "id")
	if !ok {
		return
	}

	product, err := h.products.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// ToggleProduct godoc
// @Summary      Flip a product's active flag
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response{data=appcatalog.ProductResponse}
// @Router       /admin/products/{id}/toggle [post]
func (h *AdminHandler) ToggleProduct(c *gin.Context) {
	id, ok := h.PathUUID(c, "id")
	if !ok {
		return
	}

	product, err := h.products.Toggle(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// UpdatePrice godoc
// @Summary      Change product prices
// @Description  Close the current price interval and open a new one. Omitted prices keep their current value.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product ID"
// @Param        request body appcatalog.UpdatePriceRequest true "Prices"
// @Success      200 {object} dto.Response{data=appcatalog.PriceResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /admin/products/{id}/price [put]
func (h *AdminHandler) UpdatePrice(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.PathUUID(c, "id")
	if !ok {
		return
	}
	var req appcatalog.UpdatePriceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	price, err := h.products.UpdatePrice(c.Request.Context(), id, req, p.Username)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, price)
}

// GetPrice godoc
// @Summary      Product price
// @Description  The price in force now, or at the given instant
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product ID"
// @Param        at query string false "Instant (RFC 3339)"
// @Success      200 {object} dto.Response{data=appcatalog.PriceResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /admin/products/{id}/price [get]
func (h *AdminHandler) GetPrice(c *gin.Context) {
	id, ok := h.PathUUID(c, "id")
	if !ok {
		return
	}

	var (
		price *appcatalog.PriceResponse
		err   error
	)
	if raw := c.Query("at"); raw != "" {
		at, parseErr := time.Parse(time.RFC3339, raw)
		if parseErr != nil {
			h.BadRequest(c, "at must be an RFC 3339 timestamp")
			return
		}
		price, err = h.products.GetPriceAt(c.Request.Context(), id, at)
	} else {
		price, err = h.products.GetCurrentPrice(c.Request.Context(), id)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, price)
}

// PriceHistory godoc
// @Summary      Price history
// @Description  Every price interval of a product, newest first
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response{data=[]appcatalog.PriceResponse}
// @Router       /admin/products/{id}/prices [get]
func (h *AdminHandler) PriceHistory(c *gin.Context) {
	id, ok := h.PathUUID(c, "id")
	if !ok {
		return
	}

	history, err := h.products.PriceHistory(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.List(c, history, len(history))
}

// ===================== Users =====================

// CreateUser godoc
// @Summary      Create a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body appidentity.CreateUserRequest true "User"
// @Success      201 {object} dto.Response{data=appidentity.UserResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /admin/users [post]
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req appidentity.CreateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.users.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// ListUsers godoc
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=[]appidentity.UserResponse}
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.List(c, users, len(users))
}

// DeleteUser godoc
// @Summary      Delete a user
// @Description  Remove an account and revoke its tokens. Callers cannot delete themselves.
// @Tags         admin
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.PathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), p, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ===================== Companies =====================

// ListCompanies godoc
// @Summary      List companies
// @Description  Every company; subsidiaries=true keeps non-parent companies only
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        subsidiaries query bool false "Subsidiaries only"
// @Success      200 {object} dto.Response{data=[]appidentity.CompanyResponse}
// @Router       /admin/companies [get]
func (h *AdminHandler) ListCompanies(c *gin.Context) {
	var (
		companies []appidentity.CompanyResponse
		err       error
	)
	if c.Query("subsidiaries") == "true" {
		companies, err = h.companies.Subsidiaries(c.Request.Context())
	} else {
		companies, err = h.companies.List(c.Request.Context())
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.List(c, companies, len(companies))
}

// CreateCompany godoc
// @Summary      Create a company
// @Description  Company names are unique and at most one company is the parent
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body appidentity.CreateCompanyRequest true "Company"
// @Success      201 {object} dto.Response{data=appidentity.CompanyResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /admin/companies [post]
func (h *AdminHandler) CreateCompany(c *gin.Context) {
	var req appidentity.CreateCompanyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	company, err := h.companies.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, company)
}
