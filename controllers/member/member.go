package memberController

import (
	"time"

	"github.com/Sun-Kwak/lavida-cms-sub000/database"
	"github.com/Sun-Kwak/lavida-cms-sub000/middleware"
	"github.com/Sun-Kwak/lavida-cms-sub000/models"
	"github.com/Sun-Kwak/lavida-cms-sub000/services/points"

	"github.com/gofiber/fiber/v2"
)

// CreateMember registers a new member
func CreateMember(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedMember").(*struct {
		Name      string     `json:"name"`
		Phone     string     `json:"phone"`
		Email     string     `json:"email"`
		Gender    string     `json:"gender"`
		BirthDate *time.Time `json:"birthDate"`
		Address   string     `json:"address"`
		BranchID  uint       `json:"branchId"`
		Memo      string     `json:"memo"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Phone is the member lookup key; reject duplicates up front
	if err := db.Where("phone = ? AND is_deleted = false", reqData.Phone).First(&models.Member{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Phone number is already registered!", nil)
	}

	member := models.Member{
		Name:      reqData.Name,
		Phone:     reqData.Phone,
		Email:     reqData.Email,
		Gender:    reqData.Gender,
		BirthDate: reqData.BirthDate,
		Address:   reqData.Address,
		BranchID:  reqData.BranchID,
		JoinDate:  time.Now(),
		Memo:      reqData.Memo,
		IsActive:  true,
	}

	if err := db.Create(&member).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register member!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Member registered successfully.", member)
}

// ListMembers returns members with search and pagination
func ListMembers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	search := c.Query("search")
	branchID := c.QueryInt("branchId", 0)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	db := database.Database.Db
	query := db.Model(&models.Member{}).Where("is_deleted = false")

	if search != "" {
		query = query.Where("name LIKE ? OR phone LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if branchID > 0 {
		query = query.Where("branch_id = ?", branchID)
	}

	var total int64
	query.Count(&total)

	var members []models.Member
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&members).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch members!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Members fetched!", fiber.Map{
		"members": members,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetMember returns one member with derived point balance and enrollments
func GetMember(c *fiber.Ctx) error {
	memberID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid member id!", nil)
	}

	db := database.Database.Db

	var member models.Member
	if err := db.Where("id = ? AND is_deleted = false", memberID).First(&member).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Member not found!", nil)
	}

	balance, err := points.Balance(db, member.ID, time.Now())
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute point balance!", nil)
	}

	var enrollments []models.CourseEnrollment
	db.Where("member_id = ?", member.ID).Order("created_at DESC").Find(&enrollments)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Member fetched!", fiber.Map{
		"member":       member,
		"pointBalance": balance,
		"enrollments":  enrollments,
	})
}

// UpdateMember edits member profile fields
func UpdateMember(c *fiber.Ctx) error {
	memberID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid member id!", nil)
	}

	reqData, ok := c.Locals("validatedMemberUpdate").(*struct {
		Name      string     `json:"name"`
		Email     string     `json:"email"`
		Gender    string     `json:"gender"`
		BirthDate *time.Time `json:"birthDate"`
		Address   string     `json:"address"`
		Memo      string     `json:"memo"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var member models.Member
	if err := db.Where("id = ? AND is_deleted = false", memberID).First(&member).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Member not found!", nil)
	}

	if reqData.Name != "" {
		member.Name = reqData.Name
	}
	member.Email = reqData.Email
	member.Gender = reqData.Gender
	member.BirthDate = reqData.BirthDate
	member.Address = reqData.Address
	member.Memo = reqData.Memo

	if err := db.Save(&member).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update member!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Member updated!", member)
}

// SetMemberActive toggles the soft activation flag. Members are never hard
// deleted.
func SetMemberActive(c *fiber.Ctx) error {
	memberID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid member id!", nil)
	}

	reqData := new(struct {
		IsActive bool `json:"isActive"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var member models.Member
	if err := db.Where("id = ? AND is_deleted = false", memberID).First(&member).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Member not found!", nil)
	}

	member.IsActive = reqData.IsActive
	if err := db.Save(&member).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update member!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Member activation updated!", member)
}
