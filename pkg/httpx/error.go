package httpx

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/ARUMANDESU/validation"
	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	orchidaccounts "github.com/ossm-org/orchid-accounts"
	"github.com/ossm-org/orchid-accounts/pkg/errorx"
)

type ErrorHandler struct {
	bundle *i18n.Bundle
	enloc  *i18n.Localizer
	zhloc  *i18n.Localizer
}

func NewErrorHandler() *ErrorHandler {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	// Load translation files
	bundle.LoadMessageFileFS(orchidaccounts.Locales, "locales/en.toml")
	bundle.LoadMessageFileFS(orchidaccounts.Locales, "locales/zh.toml")

	// Load validation files
	bundle.LoadMessageFileFS(orchidaccounts.Locales, "locales/validation.en.toml")
	bundle.LoadMessageFileFS(orchidaccounts.Locales, "locales/validation.zh.toml")

	return &ErrorHandler{
		bundle: bundle,
		enloc:  i18n.NewLocalizer(bundle, "en"),
		zhloc:  i18n.NewLocalizer(bundle, "zh"),
	}
}

func (h *ErrorHandler) Localizer(lang string) *i18n.Localizer {
	if strings.HasPrefix(lang, "zh") {
		return h.zhloc
	}
	return h.enloc
}

func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "HTTP error response", "error", err.Error())

	lang := r.Header.Get("Accept-Language")
	localizer := h.Localizer(lang)

	var appErr *errorx.I18nError
	if errors.As(err, &appErr) {
		writeError(w, r,
			appErr.Localize(localizer),
			appErr.HTTPStatusCode(),
			retryAfterHeader(appErr),
		)
		return
	}

	var valErrs validation.Errors
	if errors.As(err, &valErrs) {
		var msg strings.Builder
		for field, fieldErr := range valErrs {
			if valErr, ok := fieldErr.(validation.Error); ok {
				msg.WriteString(fmt.Sprintf("%s: %s; ", field, localizer.MustLocalize(&i18n.LocalizeConfig{
					MessageID:    valErr.Code(),
					TemplateData: valErr.Params(),
				})))
			} else {
				msg.WriteString(fmt.Sprintf("%s: %s; ", field, fieldErr.Error()))
			}
		}
		writeError(w, r, msg.String(), http.StatusBadRequest, nil)
		return
	}

	var valErr validation.Error
	if errors.As(err, &valErr) {
		writeError(w, r,
			localizer.MustLocalize(&i18n.LocalizeConfig{
				MessageID:    valErr.Code(),
				TemplateData: valErr.Params(),
			}),
			http.StatusBadRequest,
			nil,
		)
		return
	}

	slog.ErrorContext(r.Context(), "Unhandled error", "error", err)
	internalErr := errorx.NewInternalError().WithCause(err)
	writeError(w, r,
		internalErr.Localize(localizer),
		internalErr.HTTPStatusCode(),
		nil,
	)
}

// retryAfterHeader surfaces the resend cooldown as a Retry-After header so
// well-behaved clients back off without parsing the localized message.
func retryAfterHeader(appErr *errorx.I18nError) http.Header {
	if appErr.Code != errorx.CodeRateLimitExceeded {
		return nil
	}

	retryAfter, ok := appErr.MessageArgs["RetryAfter"].(int)
	if !ok || retryAfter <= 0 {
		return nil
	}

	return http.Header{"Retry-After": []string{strconv.Itoa(retryAfter)}}
}

func writeError(w http.ResponseWriter, r *http.Request,
	message string,
	status int,
	headers http.Header,
) {
	// "code": 0 marks failure in the response envelope, regardless of the
	// HTTP status.
	response := Envelope{
		"code": 0,
		"msg":  message,
	}

	err := WriteJSON(w, status, response, headers)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to write error response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
