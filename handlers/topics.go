package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrymomot/ryob"
	"github.com/dmitrymomot/ryob/forum"
	"github.com/dmitrymomot/ryob/middlewares"
	"github.com/dmitrymomot/ryob/views"
)

// DefaultPageSize is the number of topics or posts per page.
const DefaultPageSize = 20

// LoginPath is where anonymous visitors of protected pages are sent.
const LoginPath = "/users/login"

// Content is the part of forum.Content the topic pages need.
type Content interface {
	CreateTopic(ctx context.Context, creator forum.UserID, title string) (forum.Topic, error)
	ListTopics(ctx context.Context, page forum.Page) ([]forum.TopicWithCreator, error)
	FindTopic(ctx context.Context, id forum.TopicID) (forum.TopicWithCreator, error)
	CreatePost(ctx context.Context, creator forum.UserID, topic forum.TopicID, content string) (forum.Post, error)
	ListPostsInTopic(ctx context.Context, topic forum.TopicID, page forum.Page) ([]forum.PostWithCreator, error)
}

// Topics serves the home page, topic pages and the create forms.
type Topics struct {
	content  Content
	views    *views.Renderer
	pageSize int
}

// NewTopics creates the topic handlers. A page size outside
// 1..forum.MaxPageSize-1 falls back to DefaultPageSize.
func NewTopics(content Content, v *views.Renderer, pageSize int) *Topics {
	if pageSize < 1 || pageSize >= forum.MaxPageSize {
		pageSize = DefaultPageSize
	}
	return &Topics{content: content, views: v, pageSize: pageSize}
}

// Routes implements ryob.Handler.
func (h *Topics) Routes(r ryob.Router) {
	requireUser := middlewares.RequireUser(LoginPath)

	r.GET("/", h.home)
	r.Route("/topics", func(r ryob.Router) {
		r.GET("/new", h.showNewTopic, requireUser)
		r.POST("/", h.createTopic, requireUser)
		r.GET("/{id}", h.showTopic)
		r.GET("/{id}/{slug}", h.showTopic)
		r.POST("/{id}/posts", h.createPost, requireUser)
	})
}

// window asks for one extra row so the page knows whether a next page exists.
func (h *Topics) window(c ryob.Context) (views.Pagination, forum.Page) {
	n := max(ryob.QueryDefault(c, "page", 1), 1)
	page := forum.PageNumber(n, h.pageSize)
	page.Limit++
	return views.Pagination{Page: n}, page
}

func (h *Topics) home(c ryob.Context) error {
	pager, page := h.window(c)
	topics, err := h.content.ListTopics(c, page)
	if err != nil {
		return err
	}
	if len(topics) > h.pageSize {
		topics, pager.HasNext = topics[:h.pageSize], true
	}

	return c.Render(http.StatusOK, h.views.Home(views.HomePage{
		Layout:     layout(c, ""),
		Pagination: pager,
		Topics:     topics,
	}))
}

func (h *Topics) showNewTopic(c ryob.Context) error {
	return c.Render(http.StatusOK, h.views.NewTopic(views.NewTopicPage{Layout: layout(c, "New topic")}))
}

func (h *Topics) createTopic(c ryob.Context) error {
	var in topicForm
	verrs, err := c.Bind(&in)
	if err != nil {
		return ryob.ErrBadRequest("", ryob.WithError(err))
	}
	if !verrs.IsEmpty() {
		return c.Render(http.StatusBadRequest, h.views.NewTopic(views.NewTopicPage{
			Layout:     layout(c, "New topic"),
			TopicTitle: in.Title,
			Errors:     messages(verrs),
		}))
	}

	t, err := h.content.CreateTopic(c, middlewares.CurrentUser(c).ID, in.Title)
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, views.TopicURL(t.ID, t.Title))
}

// topic loads the topic named by the {id} parameter.
func (h *Topics) topic(c ryob.Context) (forum.TopicWithCreator, error) {
	topicID, err := ryob.ParamID[forum.Topic](c, "id")
	if err != nil {
		return forum.TopicWithCreator{}, ryob.ErrNotFound("No such topic", ryob.WithError(err))
	}
	return h.content.FindTopic(c, topicID)
}

func (h *Topics) showTopic(c ryob.Context) error {
	t, err := h.topic(c)
	if err != nil {
		return err
	}

	// Old or mistyped slugs redirect to the canonical address.
	canonical := views.TopicURL(t.ID, t.Title)
	if s := c.Param("slug"); s != "" && !strings.HasSuffix(canonical, "/"+s) {
		target := canonical
		if q := c.Request().URL.RawQuery; q != "" {
			target += "?" + q
		}
		return c.Redirect(http.StatusMovedPermanently, target)
	}

	return h.renderTopic(c, http.StatusOK, views.TopicPage{
		Layout: layout(c, t.Title),
		Topic:  t,
	})
}

func (h *Topics) renderTopic(c ryob.Context, status int, page views.TopicPage) error {
	pager, window := h.window(c)
	posts, err := h.content.ListPostsInTopic(c, page.Topic.ID, window)
	if err != nil {
		return err
	}
	if len(posts) > h.pageSize {
		posts, pager.HasNext = posts[:h.pageSize], true
	}
	page.Posts = posts
	page.Pagination = pager
	return c.Render(status, h.views.Topic(page))
}

func (h *Topics) createPost(c ryob.Context) error {
	t, err := h.topic(c)
	if err != nil {
		return err
	}

	var in postForm
	verrs, err := c.Bind(&in)
	if err != nil {
		return ryob.ErrBadRequest("", ryob.WithError(err))
	}
	if !verrs.IsEmpty() {
		return h.renderTopic(c, http.StatusBadRequest, views.TopicPage{
			Layout: layout(c, t.Title),
			Topic:  t,
			Draft:  in.Content,
			Errors: messages(verrs),
		})
	}

	if _, err := h.content.CreatePost(c, middlewares.CurrentUser(c).ID, t.ID, in.Content); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, views.TopicURL(t.ID, t.Title))
}
