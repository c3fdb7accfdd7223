package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	appErrors "github.com/octa-services/plant-tracker/pkg/errors"
)

func submissionIDParam(c *gin.Context) (int, error) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, appErrors.Validation("id must be a positive integer", "id")
	}
	return id, nil
}

func bindError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}
