package httpapi

import (
	"fmt"

	categoryPort "localinfo/internal/ports/category"
	commentPort "localinfo/internal/ports/comment"
	postPort "localinfo/internal/ports/post"
	userPort "localinfo/internal/ports/user"
)

type Link struct {
	Href   string `json:"href"`
	Method string `json:"method,omitempty"`
}

type Links map[string]Link

// collection is a HAL list: items under _embedded.<name>.
type collection[T any] struct {
	Embedded map[string][]T `json:"_embedded"`
	Links    Links          `json:"_links"`
}

func newCollection[T any](name string, items []T, self string) collection[T] {
	if items == nil {
		items = []T{}
	}
	return collection[T]{
		Embedded: map[string][]T{name: items},
		Links:    Links{"self": {Href: self}},
	}
}

type userResource struct {
	*userPort.UserResponse
	Links Links `json:"_links"`
}

func userPath(id uint) string { return fmt.Sprintf("/users/%d", id) }

func newUserResource(u *userPort.UserResponse) userResource {
	self := userPath(u.ID)
	return userResource{UserResponse: u, Links: Links{
		"self":   {Href: self},
		"update": {Href: self, Method: "PUT"},
		"delete": {Href: self, Method: "DELETE"},
	}}
}

type categoryResource struct {
	categoryPort.CategoryDTO
	Links Links `json:"_links"`
}

func newCategoryResource(c categoryPort.CategoryDTO) categoryResource {
	return categoryResource{CategoryDTO: c, Links: Links{
		"self":  {Href: "/categories"},
		"posts": {Href: fmt.Sprintf("/categories/%d/posts", c.ID)},
	}}
}

type postResource struct {
	*postPort.PostResponse
	Links Links `json:"_links"`
}

func postPath(id uint) string { return fmt.Sprintf("/posts/%d", id) }

func newPostResource(p *postPort.PostResponse) postResource {
	self := postPath(p.ID)
	return postResource{PostResponse: p, Links: Links{
		"self":     {Href: self},
		"category": {Href: fmt.Sprintf("/categories/%d/posts", p.Category.ID)},
		"comments": {Href: self + "/comments"},
		"update":   {Href: self, Method: "PUT"},
		"delete":   {Href: self, Method: "DELETE"},
	}}
}

type commentResource struct {
	*commentPort.CommentResponse
	Links Links `json:"_links"`
}

func commentPath(id uint) string { return fmt.Sprintf("/comments/%d", id) }

func newCommentResource(c *commentPort.CommentResponse) commentResource {
	self := commentPath(c.ID)
	links := Links{
		"self":   {Href: self},
		"post":   {Href: postPath(c.PostID)},
		"update": {Href: self, Method: "PUT"},
		"delete": {Href: self, Method: "DELETE"},
	}
	if c.ParentID != nil {
		links["parent"] = Link{Href: commentPath(*c.ParentID)}
	}
	return commentResource{CommentResponse: c, Links: links}
}
