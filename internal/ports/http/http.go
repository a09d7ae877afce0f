package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	registrationapp "github.com/ossm-org/orchid-accounts/internal/application/registration"
	verificationapp "github.com/ossm-org/orchid-accounts/internal/application/verification"
	userhttp "github.com/ossm-org/orchid-accounts/internal/ports/http/user"
	"github.com/ossm-org/orchid-accounts/pkg/errorx"
	"github.com/ossm-org/orchid-accounts/pkg/httpx"
)

type Port struct {
	user       *userhttp.HTTP
	errhandler *httpx.ErrorHandler
}

type Args struct {
	VerificationApp *verificationapp.App
	RegistrationApp *registrationapp.App
	Errhandler      *httpx.ErrorHandler
}

func NewPort(args Args) *Port {
	if args.Errhandler == nil {
		args.Errhandler = httpx.NewErrorHandler()
	}

	return &Port{
		user: userhttp.NewHTTP(userhttp.Args{
			VerificationApp: args.VerificationApp,
			RegistrationApp: args.RegistrationApp,
			Errhandler:      args.Errhandler,
		}),
		errhandler: args.Errhandler,
	}
}

func (p *Port) Route(r chi.Router) chi.Router {
	if r == nil {
		r = chi.NewRouter()
	}

	// Unknown routes and wrong methods answer with the same localized
	// envelope as every other error.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		p.errhandler.HandleError(w, req, errorx.NewNotFound())
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		p.errhandler.HandleError(w, req, errorx.NewMethodNotAllowed())
	})

	p.user.Route(r)

	return r
}
