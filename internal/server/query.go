package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/form"
	"github.com/go-playground/validator/v10"

	"github.com/san-kum/radwaste/internal/dashboard"
	"github.com/san-kum/radwaste/internal/dataset"
	"github.com/san-kum/radwaste/internal/nuclide"
	"github.com/san-kum/radwaste/internal/render"
	"github.com/san-kum/radwaste/internal/scenario"
)

var (
	decoder  = form.NewDecoder()
	validate = newValidator()
)

// newValidator registers one tag per control. Each accepts exactly what the
// control's parser accepts: codes, year counts and labels.
func newValidator() *validator.Validate {
	v := validator.New()
	parsers := map[string]func(string) error{
		"sort_mode":  func(s string) error { _, err := nuclide.ParseSortMode(s); return err },
		"onset":      func(s string) error { _, err := scenario.ParseOnset(s); return err },
		"completion": func(s string) error { _, err := scenario.ParseCompletion(s); return err },
		"scale":      func(s string) error { _, err := render.ParseScale(s); return err },
	}
	for tag, parse := range parsers {
		parse := parse
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return parse(fl.Field().String()) == nil
		})
	}
	return v
}

// Query is the query string form of the four dashboard controls.
type Query struct {
	Sort       string `form:"sort" validate:"omitempty,sort_mode"`
	Onset      string `form:"onset" validate:"omitempty,onset"`
	Completion string `form:"completion" validate:"omitempty,completion"`
	Log        string `form:"log" validate:"omitempty,scale"`
}

func parseQuery(r *http.Request) (Query, error) {
	var q Query
	if err := decoder.Decode(&q, r.URL.Query()); err != nil {
		return q, fmt.Errorf("%w: %v", dataset.ErrSelectionOutOfRange, err)
	}
	if err := validate.Struct(q); err != nil {
		return q, fmt.Errorf("%w: %s", dataset.ErrSelectionOutOfRange, describe(err))
	}
	return q, nil
}

func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s=%q is not a valid %s", strings.ToLower(fe.Field()), fe.Value(), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}

func (q Query) Selections() (dashboard.Selections, error) {
	return dashboard.ParseSelections(q.Sort, q.Onset, q.Completion, q.Log)
}

func selectionsFromRequest(r *http.Request) (dashboard.Selections, error) {
	q, err := parseQuery(r)
	if err != nil {
		return dashboard.Selections{}, err
	}
	return q.Selections()
}
