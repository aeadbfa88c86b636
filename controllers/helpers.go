package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func ParamContentID(c *gin.Context) (string, bool) {
	v := strings.TrimSpace(c.Param("id"))
	if v == "" {
		RespondError(c, "id é obrigatório", http.StatusBadRequest)
		return "", false
	}
	return v, true
}

// QueryPagination lê limit/offset da query string com defaults e teto.
func QueryPagination(c *gin.Context) (limit int, offset int) {
	limit = 20
	offset = 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
