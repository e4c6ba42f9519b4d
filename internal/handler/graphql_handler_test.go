package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/workpulse/attendance-api/internal/graph"
	"github.com/workpulse/attendance-api/internal/loader"
	"github.com/workpulse/attendance-api/internal/models"
)

type staticEmployeeSource struct{}

func (staticEmployeeSource) FindByIDs(_ context.Context, ids []string) ([]models.Employee, error) {
	out := make([]models.Employee, len(ids))
	for i, id := range ids {
		out[i] = models.Employee{ID: id}
	}
	return out, nil
}

type staticAttendanceSource struct{}

func (staticAttendanceSource) ListByEmployeeIDs(context.Context, []string) ([]models.AttendanceRecord, error) {
	return nil, nil
}

func probeSchema(t *testing.T, sawLoaders *bool) graphql.Schema {
	t.Helper()
	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name: "Query",
			Fields: graphql.Fields{
				"ping": &graphql.Field{
					Type: graphql.String,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						if sawLoaders != nil {
							*sawLoaders = graph.LoadersFrom(p.Context) != nil
						}
						return "pong", nil
					},
				},
			},
		}),
	})
	require.NoError(t, err)
	return schema
}

func newGraphQLRouter(t *testing.T, sawLoaders *bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewGraphQLHandler(probeSchema(t, sawLoaders), staticEmployeeSource{}, staticAttendanceSource{}, loader.Options{}, zap.NewNop())
	r := gin.New()
	r.POST("/graphql", h.Execute)
	return r
}

func postGraphQL(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestExecuteRunsQueryWithRequestScopedLoaders(t *testing.T) {
	var sawLoaders bool
	r := newGraphQLRouter(t, &sawLoaders)

	w := postGraphQL(r, `{"query": "{ ping }"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ping":"pong"`)
	assert.True(t, sawLoaders, "resolvers should see per-request loaders")
}

func TestExecuteRejectsMalformedBody(t *testing.T) {
	r := newGraphQLRouter(t, nil)

	w := postGraphQL(r, `{"query": `)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExecuteRejectsEmptyQuery(t *testing.T) {
	r := newGraphQLRouter(t, nil)

	w := postGraphQL(r, `{"query": ""}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExecuteReturnsGraphQLErrorsInBody(t *testing.T) {
	r := newGraphQLRouter(t, nil)

	w := postGraphQL(r, `{"query": "{ nope }"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"errors"`)
}
