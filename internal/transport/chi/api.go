package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// SearchArticlesParams defines parameters for SearchArticles.
type SearchArticlesParams struct {
	Query    *string   `form:"query,omitempty" json:"query,omitempty"`
	Category *string   `form:"category,omitempty" json:"category,omitempty"`
	Tags     *[]string `form:"tags,omitempty" json:"tags,omitempty"`
	Limit    *int      `form:"limit,omitempty" json:"limit,omitempty"`
	Offset   *int      `form:"offset,omitempty" json:"offset,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Service banner
	// (GET /)
	Root(w http.ResponseWriter, r *http.Request)
	// Aggregated health
	// (GET /health/)
	HealthCheck(w http.ResponseWriter, r *http.Request)
	// Cluster health, always 200
	// (GET /health/elasticsearch)
	ElasticsearchHealth(w http.ResponseWriter, r *http.Request)
	// (POST /documents/articles)
	CreateArticle(w http.ResponseWriter, r *http.Request)
	// (GET /documents/articles)
	SearchArticles(w http.ResponseWriter, r *http.Request, params SearchArticlesParams)
	// (GET /documents/articles/{id})
	GetArticle(w http.ResponseWriter, r *http.Request, id string)
	// (PUT /documents/articles/{id})
	UpdateArticle(w http.ResponseWriter, r *http.Request, id string)
	// (DELETE /documents/articles/{id})
	DeleteArticle(w http.ResponseWriter, r *http.Request, id string)
	// (POST /documents/users)
	CreateUser(w http.ResponseWriter, r *http.Request)
	// (GET /documents/users/{id})
	GetUser(w http.ResponseWriter, r *http.Request, id string)
	// (PUT /documents/users/{id})
	UpdateUser(w http.ResponseWriter, r *http.Request, id string)
	// (DELETE /documents/users/{id})
	DeleteUser(w http.ResponseWriter, r *http.Request, id string)
	// Prometheus exposition
	// (GET /metrics)
	Metrics(w http.ResponseWriter, r *http.Request)
}

// InvalidParamFormatError reports a parameter that could not be bound.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

// ChiServerOptions configures Handler.
type ChiServerOptions struct {
	BaseRouter       chi.Router
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// serverInterfaceWrapper binds path and query parameters before calling the handlers.
type serverInterfaceWrapper struct {
	handler          ServerInterface
	errorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *serverInterfaceWrapper) pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "id", Err: err})
		return "", false
	}
	return id, true
}

// SearchArticles operation middleware
func (siw *serverInterfaceWrapper) SearchArticles(w http.ResponseWriter, r *http.Request) {
	var params SearchArticlesParams
	query := r.URL.Query()

	bindings := []struct {
		name string
		dest any
	}{
		{"query", &params.Query},
		{"category", &params.Category},
		{"tags", &params.Tags},
		{"limit", &params.Limit},
		{"offset", &params.Offset},
	}
	for _, b := range bindings {
		if err := runtime.BindQueryParameter("form", true, false, b.name, query, b.dest); err != nil {
			siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: b.name, Err: err})
			return
		}
	}

	siw.handler.SearchArticles(w, r, params)
}

func (siw *serverInterfaceWrapper) withID(h func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := siw.pathID(w, r)
		if !ok {
			return
		}
		h(w, r, id)
	}
}

// Handler creates an http.Handler with routing matching the REST surface.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

// HandlerWithOptions creates an http.Handler with additional options.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := serverInterfaceWrapper{
		handler:          si,
		errorHandlerFunc: options.ErrorHandlerFunc,
	}

	r.Get("/", si.Root)
	r.Get("/health", si.HealthCheck)
	r.Get("/health/", si.HealthCheck)
	r.Get("/health/elasticsearch", si.ElasticsearchHealth)
	r.Get("/metrics", si.Metrics)

	r.Route("/documents", func(r chi.Router) {
		r.Post("/articles", si.CreateArticle)
		r.Get("/articles", wrapper.SearchArticles)
		r.Get("/articles/{id}", wrapper.withID(si.GetArticle))
		r.Put("/articles/{id}", wrapper.withID(si.UpdateArticle))
		r.Delete("/articles/{id}", wrapper.withID(si.DeleteArticle))

		r.Post("/users", si.CreateUser)
		r.Get("/users/{id}", wrapper.withID(si.GetUser))
		r.Put("/users/{id}", wrapper.withID(si.UpdateUser))
		r.Delete("/users/{id}", wrapper.withID(si.DeleteUser))
	})

	return r
}
