// Package web renders the order pages from embedded templates and serves
// their static assets.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/ghuser/pizzaorder/services/order/application/controller"
	"github.com/ghuser/pizzaorder/services/order/domain/models"
)

//go:embed templates/*.html static/*
var assets embed.FS

// Page names accepted by Render.
const (
	PageHome  = "home"
	PageOrder = "order"
)

var pages = map[string]*template.Template{
	PageHome:  parsePage(PageHome),
	PageOrder: parsePage(PageOrder),
}

func parsePage(name string) *template.Template {
	return template.Must(template.New(name).ParseFS(assets,
		"templates/layout.html",
		"templates/"+name+".html",
	))
}

// PageData is the root value every template receives.
type PageData struct {
	Title  string
	Active string
	Order  *OrderView
}

// SizeView is one option of the size select.
type SizeView struct {
	Code     string
	Label    string
	Selected bool
}

// ToppingView is one topping checkbox.
type ToppingView struct {
	ID      string
	Label   string
	Checked bool
}

// OrderView flattens a FormState for the order template.
type OrderView struct {
	FullName      string
	Sizes         []SizeView
	Toppings      []ToppingView
	Errors        models.FieldErrors
	SubmitEnabled bool
	Success       string
	Failure       string
}

// NewOrderView builds the order page model from the menu and a snapshot.
func NewOrderView(menu *models.Menu, st controller.FormState) *OrderView {
	v := &OrderView{
		FullName:      st.Draft.FullName,
		Errors:        st.Errors,
		SubmitEnabled: st.SubmitEnabled,
	}
	for _, s := range menu.Sizes {
		v.Sizes = append(v.Sizes, SizeView{
			Code:     s.Code.String(),
			Label:    s.Label,
			Selected: s.Code.String() == st.Draft.Size,
		})
	}
	for _, t := range menu.Toppings {
		v.Toppings = append(v.Toppings, ToppingView{
			ID:      t.ID,
			Label:   t.Label,
			Checked: st.Draft.Toppings.Has(t.ID),
		})
	}
	switch {
	case st.Result.Succeeded():
		v.Success = st.Result.Message
	case st.Result.Failed():
		v.Failure = st.Result.Message
	}
	return v
}

// Render executes page into w with the given status. The page is rendered
// into a buffer first so a template error never yields a partial response.
func Render(w http.ResponseWriter, status int, page string, data PageData) error {
	tmpl, ok := pages[page]
	if !ok {
		return fmt.Errorf("web: unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("web: render %s: %w", page, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// StaticHandler serves the embedded CSS and JavaScript. Mount it under
// /static/ with the prefix stripped.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServerFS(sub)
}
