package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/enum"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserEmail extracts the user email from the Gin context
func GetUserEmail(c *gin.Context) string {
	email, exists := c.Get("user_email")
	if !exists {
		return ""
	}
	return email.(string)
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) (enum.Role, bool) {
	roleVal, exists := c.Get("user_role")
	if !exists {
		return enum.RolePatient, false
	}
	role, ok := roleVal.(enum.Role)
	return role, ok
}

// GetPatientID extracts the requester's own patient ID, set for
// patient-role users by the scoping middleware
func GetPatientID(c *gin.Context) *uuid.UUID {
	patientIDVal, exists := c.Get("patient_id")
	if !exists {
		return nil
	}
	patientID, ok := patientIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &patientID
}

// ParseIDParam parses a :id style path parameter as a UUID
func ParseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// parseUUIDFilter parses an optional UUID filter value, returning nil when
// the value is empty or malformed
func parseUUIDFilter(value string) *uuid.UUID {
	if value == "" {
		return nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil
	}
	return &id
}

// parseDateFilter parses an optional YYYY-MM-DD filter value
func parseDateFilter(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &t
}
