package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ankit705yadav/skillCircle/pkg/errors"
)

func respondError(c *gin.Context, err *errors.AppError) {
	c.JSON(err.Code, gin.H{"error": err.Message})
}

func subjectFrom(c *gin.Context) string {
	return c.MustGet("subject").(string)
}
