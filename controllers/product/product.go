package productController

import (
	"github.com/Sun-Kwak/lavida-cms-sub000/database"
	"github.com/Sun-Kwak/lavida-cms-sub000/middleware"
	"github.com/Sun-Kwak/lavida-cms-sub000/models"

	"github.com/gofiber/fiber/v2"
)

// CreateProduct adds a catalog item
func CreateProduct(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedProduct").(*struct {
		Name        string `json:"name"`
		ProgramType string `json:"programType"`
		Price       int64  `json:"price"`
		Sessions    int    `json:"sessions"`
		Months      int    `json:"months"`
		BranchID    uint   `json:"branchId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	product := models.Product{
		Name:        reqData.Name,
		ProgramType: models.ProgramType(reqData.ProgramType),
		Price:       reqData.Price,
		Sessions:    reqData.Sessions,
		Months:      reqData.Months,
		BranchID:    reqData.BranchID,
		IsActive:    true,
	}

	if err := database.Database.Db.Create(&product).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create product!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Product created!", product)
}

// ListProducts returns the catalog
func ListProducts(c *fiber.Ctx) error {
	programType := c.Query("programType")
	activeOnly := c.QueryBool("activeOnly", true)

	db := database.Database.Db
	query := db.Model(&models.Product{}).Where("is_deleted = false")

	if programType != "" {
		query = query.Where("program_type = ?", programType)
	}
	if activeOnly {
		query = query.Where("is_active = true")
	}

	var products []models.Product
	if err := query.Order("name asc").Find(&products).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch products!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Products fetched!", products)
}

// GetProduct returns one catalog item
func GetProduct(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid product id!", nil)
	}

	var product models.Product
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", productID).First(&product).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Product not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Product fetched!", product)
}

// UpdateProductPrice is the only edit allowed once a product is referenced
// by payments; purchases keep their own price snapshot.
func UpdateProductPrice(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid product id!", nil)
	}

	reqData := new(struct {
		Price int64 `json:"price"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.Price <= 0 {
		return middleware.ValidationErrorResponse(c, map[string]string{"price": "Price must be greater than 0!"})
	}

	db := database.Database.Db

	var product models.Product
	if err := db.Where("id = ? AND is_deleted = false", productID).First(&product).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Product not found!", nil)
	}

	product.Price = reqData.Price
	if err := db.Save(&product).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update product!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Product price updated!", product)
}

// DeactivateProduct removes a product from sale without deleting it
func DeactivateProduct(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid product id!", nil)
	}

	db := database.Database.Db

	var product models.Product
	if err := db.Where("id = ? AND is_deleted = false", productID).First(&product).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Product not found!", nil)
	}

	product.IsActive = false
	if err := db.Save(&product).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to deactivate product!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Product deactivated!", product)
}
