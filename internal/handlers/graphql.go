package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"

	"github.com/telmahealth/mobile-gateway/internal/logger"
	"github.com/telmahealth/mobile-gateway/internal/response"
)

type GraphQLHandler struct {
	log    *logger.Logger
	schema graphql.Schema
}

func NewGraphQLHandler(log *logger.Logger, schema graphql.Schema) *GraphQLHandler {
	return &GraphQLHandler{log: log.With("handler", "GraphQLHandler"), schema: schema}
}

// Execute runs one GraphQL request. Mutation-level failures are part of the
// payload (the errors list), so the HTTP status is 200 for anything that
// parses.
func (gh *GraphQLHandler) Execute(c *gin.Context) {
	var req struct {
		Query         string         `json:"query"`
		OperationName string         `json:"operationName"`
		Variables     map[string]any `json:"variables"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	result := graphql.Do(graphql.Params{
		Schema:         gh.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        c.Request.Context(),
	})
	response.RespondOK(c, result)
}
