package inspect

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/ioc/errors"
)

// DataResponse is the standard success envelope.
type DataResponse struct {
	Data any `json:"data"`
}

// RespondWithError maps err onto an AppError and renders it with the
// matching status. Container errors carry their own codes; anything else
// becomes a generic 500.
func RespondWithError(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	status := appErr.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}
	c.JSON(status, appErr.ToResponse())
}

// RespondOK sends a 200 response wrapping data.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, DataResponse{Data: data})
}
