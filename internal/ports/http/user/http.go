package userhttp

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/ARUMANDESU/validation"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	registrationapp "github.com/ossm-org/orchid-accounts/internal/application/registration"
	registrationcmd "github.com/ossm-org/orchid-accounts/internal/application/registration/cmd"
	verificationapp "github.com/ossm-org/orchid-accounts/internal/application/verification"
	verificationcmd "github.com/ossm-org/orchid-accounts/internal/application/verification/cmd"
	"github.com/ossm-org/orchid-accounts/pkg/env"
	"github.com/ossm-org/orchid-accounts/pkg/errorx"
	"github.com/ossm-org/orchid-accounts/pkg/httpx"
	"github.com/ossm-org/orchid-accounts/pkg/logging"
	"github.com/ossm-org/orchid-accounts/pkg/otelx"
	"github.com/ossm-org/orchid-accounts/pkg/sanitizex"
	"github.com/ossm-org/orchid-accounts/pkg/validationx"
)

var (
	tracer = otel.Tracer("orchid-accounts/internal/ports/http/user")
	logger = otelslog.NewLogger("orchid-accounts/internal/ports/http/user")
)

type HTTP struct {
	tracer       trace.Tracer
	logger       *slog.Logger
	verification *verificationapp.App
	registration *registrationapp.App
	errhandler   *httpx.ErrorHandler
}

type Args struct {
	Tracer          trace.Tracer
	Logger          *slog.Logger
	VerificationApp *verificationapp.App
	RegistrationApp *registrationapp.App
	Errhandler      *httpx.ErrorHandler
}

func NewHTTP(args Args) *HTTP {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &HTTP{
		tracer:       args.Tracer,
		logger:       args.Logger,
		verification: args.VerificationApp,
		registration: args.RegistrationApp,
		errhandler:   args.Errhandler,
	}
}

func (h *HTTP) Route(r chi.Router) {
	r.Route("/user", func(r chi.Router) {
		r.Post("/veriCode", h.RequestVerificationCode)
		r.Post("/register", h.Register)
	})

	if env.Current() == env.Dev || env.Current() == env.Local || env.Current() == env.Test {
		r.Get("/dev/user/veriCode/{email}", h.GetVerificationCode)
	}
}

type RequestVerificationCodeRequest struct {
	Email string `json:"email"`
}

func (r *RequestVerificationCodeRequest) Sanitized() {
	r.Email = sanitizex.CleanSingleLine(r.Email)
}

func (r *RequestVerificationCodeRequest) SetSpanAttrs(span trace.Span) {
	otelx.SetSpanAttrs(span, map[string]any{"email": logging.RedactEmail(r.Email)})
}

func (r *RequestVerificationCodeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validationx.EmailRules...),
	)
}

func (h *HTTP) RequestVerificationCode(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RequestVerificationCode")
	defer span.End()

	var req RequestVerificationCodeRequest
	// Older clients pass the recipient as a query parameter instead of a
	// JSON body.
	if email := r.URL.Query().Get("email"); email != "" {
		req.Email = email
	} else if err := httpx.ReadJSON(w, r, &req); err != nil {
		h.errhandler.HandleError(w, r, errorx.NewMalformedJSON().WithCause(err))
		return
	}

	req.Sanitized()
	req.SetSpanAttrs(span)
	if err := req.Validate(); err != nil {
		h.errhandler.HandleError(w, r, err)
		return
	}

	if err := h.verification.CMD.RequestCode.Handle(ctx, verificationcmd.RequestCode{Email: req.Email}); err != nil {
		h.errhandler.HandleError(w, r, err)
		return
	}

	httpx.Success(w, r, http.StatusOK, "verification code sent")
}

type RegisterRequest struct {
	Account          string `json:"account"`
	Email            string `json:"email"`
	Password         string `json:"passwd"`
	VerificationCode string `json:"code"`
}

func (r *RegisterRequest) Sanitized() {
	r.Account = sanitizex.CleanSingleLine(r.Account)
	r.Email = sanitizex.CleanSingleLine(r.Email)
	r.VerificationCode = sanitizex.CleanSingleLine(r.VerificationCode)
	r.Password = strings.TrimSpace(r.Password)
}

func (r *RegisterRequest) SetSpanAttrs(span trace.Span) {
	otelx.SetSpanAttrs(span, map[string]any{
		"account": logging.RedactAccount(r.Account),
		"email":   logging.RedactEmail(r.Email),
	})
}

func (r *RegisterRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Account, validationx.AccountRules...),
		validation.Field(&r.Email, validationx.EmailRules...),
		validation.Field(&r.Password, validationx.PasswordRules...),
		validation.Field(&r.VerificationCode, validationx.VerificationCodeRules...),
	)
}

func (h *HTTP) Register(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Register")
	defer span.End()

	var req RegisterRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		h.errhandler.HandleError(w, r, errorx.NewMalformedJSON().WithCause(err))
		return
	}

	req.Sanitized()
	req.SetSpanAttrs(span)
	if err := req.Validate(); err != nil {
		h.errhandler.HandleError(w, r, err)
		return
	}

	result, err := h.registration.CMD.Register.Handle(ctx, registrationcmd.Register{
		Account:  req.Account,
		Email:    req.Email,
		Password: req.Password,
		Code:     req.VerificationCode,
	})
	if err != nil {
		h.errhandler.HandleError(w, r, err)
		return
	}

	// Registration keeps its own envelope: clients key off "success" here,
	// not the usual "code" field.
	err = httpx.WriteJSON(w, http.StatusOK, httpx.Envelope{
		"success": 1,
		"data": httpx.Envelope{
			"account": result.Account,
			"email":   result.Email,
		},
	}, nil)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to write register response", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *HTTP) GetVerificationCode(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetVerificationCode")
	defer span.End()

	email := chi.URLParam(r, "email")
	email = sanitizex.CleanSingleLine(email)

	if err := validation.Validate(email, validationx.EmailRules...); err != nil {
		h.errhandler.HandleError(w, r, err)
		return
	}

	code, err := h.verification.Query.GetVerificationCode.Handle(ctx, email)
	if err != nil {
		h.errhandler.HandleError(w, r, err)
		return
	}

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{"verification_code": code})
}
