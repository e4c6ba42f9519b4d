package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/workpulse/attendance-api/pkg/errors"
)

// Envelope represents the common response contract on the REST edges
// (health, metrics, report downloads). The GraphQL endpoint carries its own
// response shape.
type Envelope struct {
	Data  interface{}      `json:"data,omitempty"`
	Error *appErrors.Error `json:"error,omitempty"`
}

// JSON sends a success response.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, Envelope{Data: data})
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, Envelope{Error: appErr})
}

// Download streams raw bytes with a content type and attachment filename.
func Download(c *gin.Context, contentType, filename string, body []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, body)
}
