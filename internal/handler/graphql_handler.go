package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"

	"github.com/workpulse/attendance-api/internal/graph"
	"github.com/workpulse/attendance-api/internal/loader"
	"github.com/workpulse/attendance-api/internal/models"
	appErrors "github.com/workpulse/attendance-api/pkg/errors"
	"github.com/workpulse/attendance-api/pkg/response"
)

type employeeLoaderSource interface {
	FindByIDs(ctx context.Context, ids []string) ([]models.Employee, error)
}

type attendanceLoaderSource interface {
	ListByEmployeeIDs(ctx context.Context, employeeIDs []string) ([]models.AttendanceRecord, error)
}

// GraphQLHandler hosts the GraphQL endpoint. It builds fresh batch loaders
// for every incoming request so loader caches never leak across requests.
type GraphQLHandler struct {
	schema     graphql.Schema
	employees  employeeLoaderSource
	attendance attendanceLoaderSource
	loaderOpts loader.Options
	logger     *zap.Logger
}

// NewGraphQLHandler constructs the handler around an executable schema.
func NewGraphQLHandler(schema graphql.Schema, employees employeeLoaderSource, attendance attendanceLoaderSource, loaderOpts loader.Options, logger *zap.Logger) *GraphQLHandler {
	return &GraphQLHandler{
		schema:     schema,
		employees:  employees,
		attendance: attendance,
		loaderOpts: loaderOpts,
		logger:     logger,
	}
}

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Execute handles POST /graphql.
func (h *GraphQLHandler) Execute(c *gin.Context) {
	var req graphqlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	if req.Query == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "query is required"))
		return
	}

	loaders := loader.NewLoaders(h.employees, h.attendance, h.loaderOpts)
	ctx := graph.WithLoaders(c.Request.Context(), loaders)

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        ctx,
	})

	if len(result.Errors) > 0 {
		h.logger.Debug("graphql operation returned errors",
			zap.String("operation", req.OperationName),
			zap.Int("errors", len(result.Errors)),
		)
	}
	c.JSON(http.StatusOK, result)
}

// Playground handles GET /graphql in development mode.
func (h *GraphQLHandler) Playground(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(playgroundHTML))
}

const playgroundHTML = `<!DOCTYPE html>
<html>
<head>
  <title>GraphQL Playground</title>
  <link rel="stylesheet" href="https://unpkg.com/graphiql/graphiql.min.css" />
</head>
<body style="margin: 0;">
  <div id="graphiql" style="height: 100vh;"></div>
  <script crossorigin src="https://unpkg.com/react/umd/react.production.min.js"></script>
  <script crossorigin src="https://unpkg.com/react-dom/umd/react-dom.production.min.js"></script>
  <script crossorigin src="https://unpkg.com/graphiql/graphiql.min.js"></script>
  <script>
    ReactDOM.render(
      React.createElement(GraphiQL, {
        fetcher: GraphiQL.createFetcher({ url: "/graphql" }),
      }),
      document.getElementById("graphiql")
    );
  </script>
</body>
</html>`
