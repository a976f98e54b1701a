package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (POST /session/login)
	Login(w http.ResponseWriter, r *http.Request)
	// (POST /session/admin-login)
	AdminLogin(w http.ResponseWriter, r *http.Request)
	// (POST /session/register)
	Register(w http.ResponseWriter, r *http.Request)
	// (POST /session/logout)
	Logout(w http.ResponseWriter, r *http.Request)
	// (GET /session)
	GetSession(w http.ResponseWriter, r *http.Request)
	// (PATCH /session/user)
	UpdateCurrentUser(w http.ResponseWriter, r *http.Request)
	// (POST /session/redirect)
	SetRedirect(w http.ResponseWriter, r *http.Request)
	// (GET /session/redirect)
	TakeRedirect(w http.ResponseWriter, r *http.Request)

	// (GET /transactions)
	ListTransactions(w http.ResponseWriter, r *http.Request, params ListTransactionsParams)
	// (POST /transactions)
	CreateTransaction(w http.ResponseWriter, r *http.Request)
	// (GET /transactions/{transactionId}/receipt)
	GetTransactionReceipt(w http.ResponseWriter, r *http.Request, transactionId string)
	// (GET /summary)
	GetSummary(w http.ResponseWriter, r *http.Request)

	// (GET /admin/users)
	ListUsers(w http.ResponseWriter, r *http.Request)
	// (POST /admin/users/{userId}/transactions)
	GrantTransaction(w http.ResponseWriter, r *http.Request, userId string)
	// (PATCH /admin/users/{userId})
	ReviseUser(w http.ResponseWriter, r *http.Request, userId string)
	// (PUT /admin/users/{userId}/transactions/{transactionId}/status)
	SetTransactionStatus(w http.ResponseWriter, r *http.Request, userId string, transactionId string)

	// (GET /access)
	ResolveAccess(w http.ResponseWriter, r *http.Request, params ResolveAccessParams)
}

// MiddlewareFunc wraps a single route handler.
type MiddlewareFunc func(http.Handler) http.Handler

// InvalidParamFormatError is passed to the error handler when a path or query
// parameter cannot be bound.
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

// ServerInterfaceWrapper converts chi requests into ServerInterface calls.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *ServerInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, fn http.HandlerFunc) {
	handler := http.Handler(fn)
	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}
	handler.ServeHTTP(w, r)
}

func (siw *ServerInterfaceWrapper) pathParam(w http.ResponseWriter, r *http.Request, name string, dest *string) bool {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: name, Err: err})
		return false
	}
	return true
}

func (siw *ServerInterfaceWrapper) Login(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.Login)
}

func (siw *ServerInterfaceWrapper) AdminLogin(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.AdminLogin)
}

func (siw *ServerInterfaceWrapper) Register(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.Register)
}

func (siw *ServerInterfaceWrapper) Logout(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.Logout)
}

func (siw *ServerInterfaceWrapper) GetSession(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.GetSession)
}

func (siw *ServerInterfaceWrapper) UpdateCurrentUser(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.UpdateCurrentUser)
}

func (siw *ServerInterfaceWrapper) SetRedirect(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.SetRedirect)
}

func (siw *ServerInterfaceWrapper) TakeRedirect(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.TakeRedirect)
}

func (siw *ServerInterfaceWrapper) ListTransactions(w http.ResponseWriter, r *http.Request) {
	var params ListTransactionsParams
	query := r.URL.Query()

	bind := func(name string, dest interface{}) bool {
		if err := runtime.BindQueryParameter("form", true, false, name, query, dest); err != nil {
			siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: name, Err: err})
			return false
		}
		return true
	}
	if !bind("status", &params.Status) || !bind("type", &params.Type) || !bind("search", &params.Search) ||
		!bind("page", &params.Page) || !bind("per_page", &params.PerPage) {
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ListTransactions(w, r, params)
	})
}

func (siw *ServerInterfaceWrapper) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.CreateTransaction)
}

func (siw *ServerInterfaceWrapper) GetTransactionReceipt(w http.ResponseWriter, r *http.Request) {
	var transactionId string
	if !siw.pathParam(w, r, "transactionId", &transactionId) {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetTransactionReceipt(w, r, transactionId)
	})
}

func (siw *ServerInterfaceWrapper) GetSummary(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.GetSummary)
}

func (siw *ServerInterfaceWrapper) ListUsers(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.ListUsers)
}

func (siw *ServerInterfaceWrapper) GrantTransaction(w http.ResponseWriter, r *http.Request) {
	var userId string
	if !siw.pathParam(w, r, "userId", &userId) {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GrantTransaction(w, r, userId)
	})
}

func (siw *ServerInterfaceWrapper) ReviseUser(w http.ResponseWriter, r *http.Request) {
	var userId string
	if !siw.pathParam(w, r, "userId", &userId) {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ReviseUser(w, r, userId)
	})
}

func (siw *ServerInterfaceWrapper) SetTransactionStatus(w http.ResponseWriter, r *http.Request) {
	var userId, transactionId string
	if !siw.pathParam(w, r, "userId", &userId) || !siw.pathParam(w, r, "transactionId", &transactionId) {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.SetTransactionStatus(w, r, userId, transactionId)
	})
}

func (siw *ServerInterfaceWrapper) ResolveAccess(w http.ResponseWriter, r *http.Request) {
	var params ResolveAccessParams
	if err := runtime.BindQueryParameter("form", true, false, "path", r.URL.Query(), &params.Path); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "path", Err: err})
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ResolveAccess(w, r, params)
	})
}

// ChiServerOptions configures HandlerWithOptions. AdminMiddlewares wrap only
// the /admin routes.
type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	AdminMiddlewares []func(http.Handler) http.Handler
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// Handler creates http.Handler with routing matching the API.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

// HandlerFromMux creates http.Handler with routing matching the API, mounted on r.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{BaseRouter: r})
}

// HandlerWithOptions creates http.Handler with additional options.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}
	base := options.BaseURL

	r.Group(func(r chi.Router) {
		r.Post(base+"/session/login", wrapper.Login)
		r.Post(base+"/session/admin-login", wrapper.AdminLogin)
		r.Post(base+"/session/register", wrapper.Register)
		r.Post(base+"/session/logout", wrapper.Logout)
		r.Get(base+"/session", wrapper.GetSession)
		r.Patch(base+"/session/user", wrapper.UpdateCurrentUser)
		r.Post(base+"/session/redirect", wrapper.SetRedirect)
		r.Get(base+"/session/redirect", wrapper.TakeRedirect)
	})
	r.Group(func(r chi.Router) {
		r.Get(base+"/transactions", wrapper.ListTransactions)
		r.Post(base+"/transactions", wrapper.CreateTransaction)
		r.Get(base+"/transactions/{transactionId}/receipt", wrapper.GetTransactionReceipt)
		r.Get(base+"/summary", wrapper.GetSummary)
	})
	r.Group(func(r chi.Router) {
		r.Use(options.AdminMiddlewares...)
		r.Get(base+"/admin/users", wrapper.ListUsers)
		r.Post(base+"/admin/users/{userId}/transactions", wrapper.GrantTransaction)
		r.Patch(base+"/admin/users/{userId}", wrapper.ReviseUser)
		r.Put(base+"/admin/users/{userId}/transactions/{transactionId}/status", wrapper.SetTransactionStatus)
	})
	r.Group(func(r chi.Router) {
		r.Get(base+"/access", wrapper.ResolveAccess)
	})

	return r
}
