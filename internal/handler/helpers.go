package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/studytracker/pkg/errors"
)

func parseID(value, name string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid "+name)
	}
	return id, nil
}

// courseFilter reads the optional course_id query parameter.
func courseFilter(c *gin.Context) (int64, bool, error) {
	raw, ok := c.GetQuery("course_id")
	if !ok || raw == "" {
		return 0, false, nil
	}
	id, err := parseID(raw, "course_id")
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}
