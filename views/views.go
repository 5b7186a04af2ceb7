// Package views renders ryob's HTML pages.
//
// Pages are html/template files embedded in the binary and adapted to
// templ.Component, so handlers render them with Context.Render. Every page
// shares one layout showing the navigation for the current user.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"

	"github.com/dmitrymomot/ryob/forum"
	"github.com/dmitrymomot/ryob/pkg/slug"
)

//go:embed templates static
var files embed.FS

// Assets holds the static files. Styles live under static/styles.
var Assets fs.FS = files

// Page template names.
const (
	pageHome     = "home"
	pageRegister = "register"
	pageLogin    = "login"
	pageNewTopic = "new_topic"
	pageTopic    = "topic"
	pageError    = "error"
)

var pageNames = []string{pageHome, pageRegister, pageLogin, pageNewTopic, pageTopic, pageError}

// Renderer holds the parsed page set. It is safe for concurrent use.
type Renderer struct {
	md    goldmark.Markdown
	pages map[string]*template.Template
}

// New parses every page against the shared layout.
func New() (*Renderer, error) {
	r := &Renderer{
		md:    newMarkdown(),
		pages: make(map[string]*template.Template, len(pageNames)),
	}

	base, err := template.New("layout.html").Funcs(template.FuncMap{
		"markdown": r.markdown,
		"topicURL": TopicURL,
		"date":     formatDate,
	}).ParseFS(files, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("views: parse layout: %w", err)
	}

	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("views: clone layout for %s: %w", name, err)
		}
		if _, err := clone.ParseFS(files, "templates/pages/"+name+".html"); err != nil {
			return nil, fmt.Errorf("views: parse page %s: %w", name, err)
		}
		r.pages[name] = clone.Lookup("layout")
	}
	return r, nil
}

// Layout is the data every page shares.
type Layout struct {
	Title string
	User  *forum.User
}

// Pagination links a listing to its neighbouring pages.
type Pagination struct {
	Page    int
	HasNext bool
}

// HasPrev reports whether a previous page exists.
func (p Pagination) HasPrev() bool { return p.Page > 1 }

// Prev returns the previous page number.
func (p Pagination) Prev() int { return p.Page - 1 }

// Next returns the next page number.
func (p Pagination) Next() int { return p.Page + 1 }

// HomePage lists the newest topics.
type HomePage struct {
	Layout
	Pagination
	Topics []forum.TopicWithCreator
}

// RegisterPage is the registration form. Action and ConfirmField differ
// between /register and /users/register.
type RegisterPage struct {
	Layout
	Action       string
	ConfirmField string
	Name         string
	Errors       []string
}

// LoginPage is the login form.
type LoginPage struct {
	Layout
	Name   string
	Errors []string
}

// NewTopicPage is the topic form.
type NewTopicPage struct {
	Layout
	TopicTitle string
	Errors     []string
}

// TopicPage shows a topic, its posts newest first and the reply form.
type TopicPage struct {
	Layout
	Pagination
	Topic  forum.TopicWithCreator
	Posts  []forum.PostWithCreator
	Draft  string
	Errors []string
}

// ErrorPage reports a failed request.
type ErrorPage struct {
	Layout
	Status  int
	Message string
}

func (r *Renderer) Home(p HomePage) templ.Component {
	return r.page(pageHome, p)
}

func (r *Renderer) Register(p RegisterPage) templ.Component {
	return r.page(pageRegister, p)
}

func (r *Renderer) Login(p LoginPage) templ.Component {
	return r.page(pageLogin, p)
}

func (r *Renderer) NewTopic(p NewTopicPage) templ.Component {
	return r.page(pageNewTopic, p)
}

func (r *Renderer) Topic(p TopicPage) templ.Component {
	return r.page(pageTopic, p)
}

func (r *Renderer) Error(p ErrorPage) templ.Component {
	return r.page(pageError, p)
}

func (r *Renderer) page(name string, data any) templ.Component {
	return templ.FromGoHTML(r.pages[name], data)
}

// TopicURL returns the canonical topic path, /topics/{id}/{slug}.
// Titles without any sluggable character get /topics/{id}.
func TopicURL(id forum.TopicID, title string) string {
	path := "/topics/" + strconv.FormatInt(id.Int64(), 10)
	if s := slug.Make(title, slug.MaxLength(60)); s != "" {
		path += "/" + s
	}
	return path
}

func formatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04 UTC")
}
