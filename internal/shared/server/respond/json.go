package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}

// Created writes a 201 Created JSON response.
func Created(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusCreated, payload)
}

// Items writes a list envelope. A nil slice is sent as [] rather than null.
func Items[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	OK(c, gin.H{"items": items})
}
