package utils

import (
	"github.com/gin-gonic/gin"
)

// Response is the envelope returned by every endpoint.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(200, Response{Success: true, Data: data})
}

func OKMessage(c *gin.Context, message string) {
	c.JSON(200, Response{Success: true, Message: message})
}

func Fail(c *gin.Context, status int, err string) {
	c.JSON(status, Response{Success: false, Error: err})
}
