package ledger

import (
	"github.com/gin-gonic/gin"
	"github.com/loopfz/gadgeto/tonic"
	"github.com/sundaydevr/astral-databank-core/pkg/ledger/handler"
	"github.com/sundaydevr/astral-databank-core/pkg/ledger/middleware"
	"github.com/wI2L/fizz"
	"github.com/wI2L/fizz/openapi"
)

var (
	apiVersionHeader = fizz.Header(
		"API-Version",
		"API version of the response",
		"",
	)

	notFoundResponse = fizz.Response(
		"404",
		"Not Found",
		nil,
		nil,
		nil,
	)
)

func NewRouter(apiVersion string, controller *handler.LedgerController) *fizz.Fizz {
	g := gin.Default()
	g.Use(middleware.RequestID())
	g.Use(APIVersionMiddleware(apiVersion))
	f := fizz.NewFromEngine(g)

	gen := f.Generator()
	gen.API().Components.Headers["API-Version"] = &openapi.HeaderOrRef{
		Header: &openapi.Header{
			Description: "API version of the response",
			Schema: &openapi.SchemaOrRef{
				Schema: &openapi.Schema{
					Type: "string",
				},
			},
		},
	}

	info := &openapi.Info{
		Title:       "Astral Databank API v1",
		Description: "Ledger-backed artifact records and permission grants",
		Version:     apiVersion,
	}

	root := f.Group("/v1", "API v1", "Astral Databank V1 routes")

	read := root.Group("", "Read", "Point lookups", middleware.RequireAccess("artifacts:read"))
	read.GET("/artifacts/:id",
		[]fizz.OperationOption{
			fizz.Summary("Retrieve an artifact by sequence id"),
			apiVersionHeader,
			notFoundResponse,
		},
		tonic.Handler(controller.RetrieveArtifact, 200),
	)

	read.GET("/artifacts/:id/grants/:grantee",
		[]fizz.OperationOption{
			fizz.Summary("Retrieve the grant of one grantee on an artifact"),
			apiVersionHeader,
			notFoundResponse,
		},
		tonic.Handler(controller.RetrieveGrant, 200),
	)

	write := root.Group("", "Write", "Record and grant mutations", middleware.RequireAccess("artifacts:write"))
	write.POST("/artifacts",
		[]fizz.OperationOption{
			fizz.Summary("Register a new artifact"),
			apiVersionHeader,
			notFoundResponse,
		},
		tonic.Handler(controller.CreateArtifact, 201),
	)

	write.PUT("/artifacts/:id",
		[]fizz.OperationOption{
			fizz.Summary("Update an artifact (owner only)"),
			apiVersionHeader,
			notFoundResponse,
		},
		tonic.Handler(controller.UpdateArtifact, 200),
	)

	write.POST("/artifacts/:id/grants",
		[]fizz.OperationOption{
			fizz.Summary("Grant time-bounded access to another principal"),
			apiVersionHeader,
			notFoundResponse,
		},
		tonic.Handler(controller.GrantAccess, 201),
	)

	write.POST("/replicas",
		[]fizz.OperationOption{
			fizz.Summary("Register a new artifact in the replica keyspace"),
			apiVersionHeader,
			notFoundResponse,
		},
		tonic.Handler(controller.CreateReplica, 201),
	)

	f.GET("/v1/openapi.json", []fizz.OperationOption{}, f.OpenAPI(info, "json"))

	return f
}

type apiVersionWriter struct {
	gin.ResponseWriter
	version string
}

func (w *apiVersionWriter) WriteHeader(code int) {
	if code >= 200 && code < 300 {
		w.Header().Set("API-Version", w.version)
	}
	w.ResponseWriter.WriteHeader(code)
}

func APIVersionMiddleware(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer = &apiVersionWriter{c.Writer, version}
		c.Next()
	}
}
