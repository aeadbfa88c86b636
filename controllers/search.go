package controllers

import (
	"net/http"

	dbpkg "lumen/db"
	"lumen/tools"
	"lumen/workers"

	"github.com/gin-gonic/gin"
)

type SearchRequest struct {
	Query      string `json:"query" form:"query"`
	Mode       string `json:"mode" form:"mode"`
	MaxResults int    `json:"max_results" form:"max_results"`
}

// POST /api/search (auth)
// Busca no Exa e responde imediatamente; a persistência dos resultados roda
// depois, em background, e nenhuma falha dela chega ao chamador.
func Search(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Query == "" {
		RespondError(c, "query é obrigatória", http.StatusBadRequest)
		return
	}

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = conf.Exa.MaxResults
	}

	results, err := tools.ExaSearch(c.Request.Context(), req.Query, req.Mode, maxResults)
	if err != nil {
		logError("exa search %q: %v", req.Query, err)
		RespondError(c, "falha ao buscar resultados", http.StatusBadGateway)
		return
	}

	RespondSuccess(c, gin.H{"results": results})

	workers.EnqueueIngest(dbpkg.DBInstance(c), results, user.ID)
}
