package apiutil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"
)

type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

type HandlerError struct {
	Status  int
	Message string
	Err     error
}

func (e HandlerError) Error() string {
	return e.Message
}

func (e HandlerError) Unwrap() error {
	return e.Err
}

// WriteHandlerError writes err as a plain-text HTTP error. HandlerError keeps
// its status and message, FieldError becomes 400 and anything else is logged
// as an internal failure.
func WriteHandlerError(w http.ResponseWriter, r *http.Request, err error, logMessage string) {
	var handlerErr HandlerError
	if errors.As(err, &handlerErr) {
		if handlerErr.Status >= http.StatusInternalServerError {
			log.Ctx(r.Context()).Error().Err(handlerErr.Err).Msg(logMessage)
		}
		http.Error(w, handlerErr.Message, handlerErr.Status)
		return
	}

	var fieldErr FieldError
	if errors.As(err, &fieldErr) {
		http.Error(w, fieldErr.Error(), http.StatusBadRequest)
		return
	}

	log.Ctx(r.Context()).Error().Err(err).Msg(logMessage)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("missing request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

// DecodeOptionalJSON behaves like DecodeJSON but treats an empty body as an
// empty object.
func DecodeOptionalJSON(r *http.Request, dst any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	err := DecodeJSON(r, dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// RenderHTMLComponent renders component into a buffer before writing so a
// failed render still produces a clean 500. It reports whether the response
// was written successfully.
func RenderHTMLComponent(ctx context.Context, w http.ResponseWriter, component templ.Component, headers map[string]string, logMessage string, errorMessage string) bool {
	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg(logMessage)
		http.Error(w, errorMessage, http.StatusInternalServerError)
		return false
	}

	for key, value := range headers {
		w.Header().Set(key, value)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to write HTML response")
		return false
	}
	return true
}
