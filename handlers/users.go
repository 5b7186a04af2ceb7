package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrymomot/ryob"
	"github.com/dmitrymomot/ryob/forum"
	"github.com/dmitrymomot/ryob/middlewares"
	"github.com/dmitrymomot/ryob/views"
)

// Identity is the part of forum.Identity the user pages need.
type Identity interface {
	Register(ctx context.Context, name, password string) (forum.User, error)
	Login(ctx context.Context, name, password string) (forum.User, error)
}

// Users serves registration, login and logout.
type Users struct {
	identity Identity
	views    *views.Renderer
}

// NewUsers creates the user handlers.
func NewUsers(identity Identity, v *views.Renderer) *Users {
	return &Users{identity: identity, views: v}
}

// Routes implements ryob.Handler.
func (h *Users) Routes(r ryob.Router) {
	r.GET("/register", h.showRegister("/register", "password_confirm"))
	r.POST("/register", h.register)
	r.Route("/users", func(r ryob.Router) {
		r.GET("/register", h.showRegister("/users/register", "confirm_password"))
		r.POST("/register", h.usersRegister)
		r.GET("/login", h.showLogin)
		r.POST("/login", h.login)
		r.POST("/logout", h.logout)
	})
}

func (h *Users) showRegister(action, confirmField string) ryob.HandlerFunc {
	return func(c ryob.Context) error {
		return c.Render(http.StatusOK, h.views.Register(views.RegisterPage{
			Layout:       layout(c, "Register"),
			Action:       action,
			ConfirmField: confirmField,
		}))
	}
}

func (h *Users) register(c ryob.Context) error {
	var in registerForm
	verrs, err := c.Bind(&in)
	if err != nil {
		return ryob.ErrBadRequest("", ryob.WithError(err))
	}
	page := views.RegisterPage{
		Layout:       layout(c, "Register"),
		Action:       "/register",
		ConfirmField: "password_confirm",
		Name:         in.Name,
	}
	return h.completeRegistration(c, page, verrs, in.Name, in.Password)
}

func (h *Users) usersRegister(c ryob.Context) error {
	var in usersRegisterForm
	verrs, err := c.Bind(&in)
	if err != nil {
		return ryob.ErrBadRequest("", ryob.WithError(err))
	}
	page := views.RegisterPage{
		Layout:       layout(c, "Register"),
		Action:       "/users/register",
		ConfirmField: "confirm_password",
		Name:         in.Name,
	}
	return h.completeRegistration(c, page, verrs, in.Name, in.Password)
}

// completeRegistration renders validation failures and name conflicts back
// into the form, or creates the user and logs them in.
func (h *Users) completeRegistration(c ryob.Context, page views.RegisterPage, verrs ryob.ValidationErrors, name, password string) error {
	if !verrs.IsEmpty() {
		c.LogInfo("registration rejected: invalid form", "name", name)
		page.Errors = messages(verrs)
		return c.Render(http.StatusBadRequest, h.views.Register(page))
	}

	u, err := h.identity.Register(c, name, password)
	if errors.Is(err, forum.ErrNameAlreadyInUse) {
		page.Errors = []string{forum.MsgNameInUse}
		return c.Render(http.StatusConflict, h.views.Register(page))
	}
	if err != nil {
		return err
	}

	if err := h.signIn(c, u); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/")
}

func (h *Users) showLogin(c ryob.Context) error {
	return c.Render(http.StatusOK, h.views.Login(views.LoginPage{Layout: layout(c, "Log in")}))
}

func (h *Users) login(c ryob.Context) error {
	var in loginForm
	verrs, err := c.Bind(&in)
	if err != nil {
		return ryob.ErrBadRequest("", ryob.WithError(err))
	}
	page := views.LoginPage{Layout: layout(c, "Log in"), Name: in.Name}

	if !verrs.IsEmpty() {
		page.Errors = messages(verrs)
		return c.Render(http.StatusBadRequest, h.views.Login(page))
	}

	u, err := h.identity.Login(c, in.Name, in.Password)
	if errors.Is(err, forum.ErrBadLogin) {
		c.LogInfo("login rejected", "name", in.Name)
		page.Errors = []string{forum.MsgBadLogin}
		return c.Render(http.StatusUnauthorized, h.views.Login(page))
	}
	if err != nil {
		return err
	}

	if err := h.signIn(c, u); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/")
}

func (h *Users) logout(c ryob.Context) error {
	if u := middlewares.CurrentUser(c); u != nil {
		c.LogInfo("user logged out", "user_id", u.ID.Int64())
	}
	if err := c.DestroySession(); err != nil {
		return errors.Join(forum.ErrSessionFailure, err)
	}
	return c.Redirect(http.StatusFound, "/")
}

func (h *Users) signIn(c ryob.Context, u forum.User) error {
	sess, err := c.Session()
	if err != nil {
		return errors.Join(forum.ErrSessionFailure, err)
	}
	return forum.AttachUser(sess, u)
}

func layout(c ryob.Context, title string) views.Layout {
	return views.Layout{Title: title, User: middlewares.CurrentUser(c)}
}
