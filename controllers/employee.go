// controllers/employee.go
package controllers

import (
	"errors"
	"net/http"

	"turnopro-backend/config"
	"turnopro-backend/models"
	"turnopro-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AddEmployeeInput struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8"`
}

type UpdateEmployeeInput struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"isActive"`
}

// GetEmployees lists the tenant's bookable staff
func GetEmployees(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var employees []models.User
	if err := config.DB.Where("tenant_id = ? AND role = ?", tenantUUID, models.RoleEmployee).
		Find(&employees).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve employees")
		return
	}

	c.JSON(http.StatusOK, employees)
}

// AddEmployee creates a staff account under the tenant
func AddEmployee(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var input AddEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existing models.User
	result := config.DB.Where("email = ?", input.Email).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	employee := models.User{
		TenantID: tenantUUID,
		Email:    input.Email,
		Name:     input.Name,
		Phone:    input.Phone,
		Password: input.Password, // hashed in BeforeCreate hook
		Role:     models.RoleEmployee,
		IsActive: true,
	}
	if err := config.DB.Create(&employee).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create employee")
		return
	}

	c.JSON(http.StatusCreated, employee)
}

// UpdateEmployee updates a staff account
func UpdateEmployee(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	employeeUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var employee models.User
	if err := config.DB.Where("tenant_id = ? AND id = ? AND role = ?",
		tenantUUID, employeeUUID, models.RoleEmployee).
		First(&employee).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
		return
	}

	if input.Name != nil {
		employee.Name = *input.Name
	}
	if input.Phone != nil {
		employee.Phone = *input.Phone
	}
	if input.IsActive != nil {
		employee.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&employee).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update employee")
		return
	}

	c.JSON(http.StatusOK, employee)
}

// DeleteEmployee deactivates a staff account; booking history keeps the reference
func DeleteEmployee(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	employeeUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	result := config.DB.Model(&models.User{}).
		Where("tenant_id = ? AND id = ? AND role = ?", tenantUUID, employeeUUID, models.RoleEmployee).
		Update("is_active", false)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to deactivate employee")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee deactivated"})
}
