package restapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/ventaroai/ventaro-server/internal/domain"
	"github.com/ventaroai/ventaro-server/internal/webserver"
)

type productPayload struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Image    string          `json:"image"`
	Active   *bool           `json:"active"`
}

var validCategories = map[string]bool{
	domain.CategoryEbook:    true,
	domain.CategoryPrompts:  true,
	domain.CategoryVideo:    true,
	domain.CategoryCoaching: true,
	domain.CategorySupport:  true,
	domain.CategoryTest:     true,
}

// registerAdminProductRoutes registers catalog management endpoints
func registerAdminProductRoutes() {
	webserver.AdminGET("/products", adminListProducts)
	webserver.AdminGET("/products/:id", adminGetProduct)
	webserver.AdminPOST("/products", adminCreateProduct)
	webserver.AdminPUT("/products/:id", adminUpdateProduct)
	webserver.AdminDELETE("/products/:id", adminDeleteProduct)
}

func adminListProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	q := strings.TrimSpace(c.QueryParam("q"))
	categoryFilter := strings.TrimSpace(c.QueryParam("category"))

	sortField := strings.TrimSpace(c.QueryParam("sort"))
	order := strings.ToUpper(strings.TrimSpace(c.QueryParam("order")))
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}

	// whitelist allowed sort columns to avoid SQL injection
	allowed := map[string]string{
		"id":         "id",
		"name":       "name",
		"price":      "price",
		"category":   "category",
		"created_at": "created_at",
		"updated_at": "updated_at",
	}
	sortCol, okCol := allowed[sortField]
	if !okCol || sortCol == "" {
		sortCol = "created_at"
	}

	db := GetDB(c).Model(&domain.Product{})
	if q != "" {
		if strings.EqualFold(db.Dialector.Name(), "postgres") {
			db = db.Where("name ILIKE ?", "%"+q+"%")
		} else {
			db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
		}
	}
	if categoryFilter != "" {
		db = db.Where("category = ?", categoryFilter)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	var rows []domain.Product
	if err := db.Order(sortCol + " " + order).Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	return paged(c, rows, total, page, pageSize)
}

func adminGetProduct(c echo.Context) error {
	id := c.Param("id")
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, p)
}

func adminCreateProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}
	if !validCategories[payload.Category] {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unknown product category", nil)
	}
	if payload.Price.IsNegative() {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Price must not be negative", nil)
	}

	active := true
	if payload.Active != nil {
		active = *payload.Active
	}

	now := time.Now()
	p := domain.Product{
		ID:        uuid.NewString(),
		Name:      payload.Name,
		Price:     payload.Price,
		Category:  payload.Category,
		Image:     strings.TrimSpace(payload.Image),
		Active:    active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := GetDB(c).Create(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}
	return ok(c, p)
}

func adminUpdateProduct(c echo.Context) error {
	id := c.Param("id")
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}
	if !validCategories[payload.Category] {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unknown product category", nil)
	}
	if payload.Price.IsNegative() {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Price must not be negative", nil)
	}

	p.Name = payload.Name
	p.Price = payload.Price
	p.Category = payload.Category
	p.Image = strings.TrimSpace(payload.Image)
	if payload.Active != nil {
		p.Active = *payload.Active
	}
	p.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}
	return ok(c, p)
}

func adminDeleteProduct(c echo.Context) error {
	id := c.Param("id")
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.Product{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}
