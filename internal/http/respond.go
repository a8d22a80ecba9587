package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/client"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/repository"
)

// Responses use the {"Ok": value} / {"Err": detail} envelope end to end, so
// resellers can switch on the top-level key alone.

func respondOk(c *gin.Context, status int, value any) {
	c.JSON(status, gin.H{"Ok": value})
}

func respondMsg(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"Err": gin.H{"msg": msg}})
}

func errDetail(errType string, code int, msg, raw string) gin.H {
	return gin.H{"Err": gin.H{
		"type":    errType,
		"code":    code,
		"msg":     msg,
		"raw_msg": raw,
	}}
}

// renderError translates store, transport and validation failures into the
// wire error format. Node agent errors pass through untouched.
func renderError(c *gin.Context, err error) {
	var nodeErr *client.NodeError
	var transErr *client.TransportError

	switch {
	case errors.Is(err, client.ErrAddrNotURL), errors.Is(err, client.ErrAddrBadScheme):
		respondMsg(c, http.StatusUnprocessableEntity, "internal: "+err.Error())
	case errors.As(err, &nodeErr):
		c.JSON(http.StatusInternalServerError, gin.H{"Err": json.RawMessage(nodeErr.Payload)})
	case errors.As(err, &transErr):
		c.JSON(http.StatusInternalServerError, errDetail("req", transErr.Code, transErr.Msg, transErr.Raw))
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusInternalServerError, errDetail("db", 404, "Record not found", err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, errDetail("db", 500, "Unexpected Error", err.Error()))
	}
}
