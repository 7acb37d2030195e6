package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/loopfz/gadgeto/tonic"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/sundaydevr/astral-databank-core/pkg/jobs"
	ledger "github.com/sundaydevr/astral-databank-core/pkg/ledger"
	"github.com/sundaydevr/astral-databank-core/pkg/ledger/database"
	"github.com/sundaydevr/astral-databank-core/pkg/ledger/handler"
	problem "github.com/sundaydevr/astral-databank-core/pkg/ledger/helpers/problem"
	"github.com/sundaydevr/astral-databank-core/pkg/ledger/models"
	"github.com/sundaydevr/astral-databank-core/pkg/ledger/repositories"
	"github.com/sundaydevr/astral-databank-core/pkg/ledger/services"
)

const apiVersion = "1.0.0"

func invalidParamsFromBinding(err error, sample any) []problem.InvalidParam {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []problem.InvalidParam{{Name: "body", Reason: err.Error()}}
	}

	t := reflect.TypeOf(sample)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	out := make([]problem.InvalidParam, 0, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		// StructField -> json tag
		if f, ok := t.FieldByName(fe.StructField()); ok {
			if tag := f.Tag.Get("json"); tag != "" && tag != "-" {
				name = strings.Split(tag, ",")[0]
			}
		}
		out = append(out, problem.InvalidParam{
			Name:   name,
			Reason: humanReason(fe),
		})
	}
	return out
}

func humanReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	default:
		return fe.Error()
	}
}

func init() {
	tonic.SetErrorHook(func(c *gin.Context, err error) (int, interface{}) {
		// 1) Bind/validate errors -> 400 with invalidParams
		var be tonic.BindError
		if errors.As(err, &be) || isValidationErr(err) {
			invalids := invalidParamsFromBinding(err, models.CreateArtifactInput{})
			apiErr := problem.NewBadRequest("body", "Invalid request body", invalids...)
			c.Header("Content-Type", "application/problem+json")
			return apiErr.Status, apiErr
		}

		// 2) Our own APIError -> pass-through
		if apiErr, ok := err.(problem.APIError); ok {
			c.Header("Content-Type", "application/problem+json")
			return apiErr.Status, apiErr
		}

		// 3) Everything else -> 500
		internal := problem.NewInternalServerError(err.Error())
		c.Header("Content-Type", "application/problem+json")
		return internal.Status, internal
	})
}

func isValidationErr(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}

func main() {
	_ = godotenv.Load()

	dbcon := "postgres://" +
		os.Getenv("DB_USERNAME") + ":" +
		os.Getenv("DB_PASSWORD") + "@" +
		os.Getenv("DB_HOSTNAME") + "/" +
		os.Getenv("DB_DBNAME") + "?search_path=" +
		os.Getenv("DB_SCHEMA")
	db, err := database.Connect(dbcon)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	artifactRepo := repositories.NewArtifactRepository(db)
	grantRepo := repositories.NewGrantRepository(db)
	ledgerService := services.NewLedgerService(artifactRepo, grantRepo)
	ledgerController := handler.NewLedgerController(ledgerService)
	jobs.ScheduleDailyExpiryAudit(context.Background(), ledgerService)

	// Start server
	router := ledger.NewRouter(apiVersion, ledgerController)

	port := os.Getenv("PORT")
	if port == "" {
		port = "1337"
	}
	log.Println("Server is running on port " + port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
