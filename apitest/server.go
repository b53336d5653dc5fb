// Package apitest runs an in-memory blog API and identity provider for
// tests.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ncobase/blogclient/net/resp"
	"github.com/ncobase/blogclient/paging"
	"github.com/ncobase/blogclient/security/jwt"
	"github.com/ncobase/blogclient/structs"
)

// Object is a file uploaded to the fake storage.
type Object struct {
	ContentType string
	Data        []byte
}

// Server is a fake blog API backed by memory.
type Server struct {
	URL      string
	Provider *Provider

	srv *httptest.Server

	mu       sync.Mutex
	posts    []*structs.Post // newest first
	comments map[string][]*structs.Comment
	profiles map[string]*structs.Profile
	signed   map[string]string // upload key -> signed content type
	objects  map[string]Object
	hits     map[string]int

	// FailUploads makes storage PUTs answer with this status.
	FailUploads int
	// FailComments makes comment listing fail for these post ids.
	FailComments map[string]bool

	now func() time.Time
}

// New starts a server that is closed when the test ends.
func New(t testing.TB) *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{
		Provider:     NewProvider(),
		comments:     map[string][]*structs.Comment{},
		profiles:     map[string]*structs.Profile{},
		signed:       map[string]string{},
		objects:      map[string]Object{},
		hits:         map[string]int{},
		FailComments: map[string]bool{},
		now:          func() time.Time { return time.Now().UTC() },
	}
	s.srv = httptest.NewServer(s.routes())
	s.URL = s.srv.URL
	t.Cleanup(s.srv.Close)
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(s.count)

	r.GET("/posts", s.listPosts)
	r.GET("/posts/:id", s.optionalAuth, s.getPost)
	r.POST("/posts", s.auth, s.createPost)
	r.PUT("/posts/:id", s.auth, s.updatePost)
	r.DELETE("/posts/:id", s.auth, s.deletePost)
	r.POST("/posts/upload-url", s.auth, s.uploadURL("posts"))

	r.GET("/comments/post/:postId", s.listComments)
	r.POST("/comments", s.auth, s.createComment)
	r.PUT("/comments/post/:postId/:commentId", s.auth, s.updateComment)
	r.DELETE("/comments/post/:postId/:commentId", s.auth, s.deleteComment)

	r.POST("/users", s.createUser)
	r.GET("/users/me", s.auth, s.me)
	r.PUT("/users/me", s.auth, s.updateMe)
	r.POST("/users/upload-url", s.auth, s.uploadURL("avatars"))

	r.PUT("/storage/*key", s.storePut)
	r.GET("/files/*key", s.fileGet)

	r.NoRoute(func(c *gin.Context) {
		resp.Fail(c.Writer, http.StatusNotFound, 0, "no such route")
	})
	return r
}

// Hits returns how many requests reached a route, e.g. "POST /posts".
func (s *Server) Hits(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[route]
}

// TotalHits returns the number of API requests, storage excluded.
func (s *Server) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for route, c := range s.hits {
		if !strings.Contains(route, "/storage/") && !strings.Contains(route, "/files/") {
			n += c
		}
	}
	return n
}

// Object returns an uploaded object by key.
func (s *Server) Object(key string) (Object, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.objects[key]
	return o, ok
}

// AddUser registers a provider account and its backend profile.
func (s *Server) AddUser(a Account) *Account {
	acc := s.Provider.AddAccount(a)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[acc.Username] = &structs.Profile{
		PK:        structs.UserKeyPrefix + acc.Sub,
		SK:        "PROFILE",
		Email:     acc.Email,
		Username:  acc.Name,
		Role:      "USER",
		CreatedAt: s.now(),
	}
	return acc
}

// SeedPost stores a published post by author.
func (s *Server) SeedPost(author, title, content string) *structs.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	p := &structs.Post{
		PK:         structs.PostKeyPrefix + uuid.NewString(),
		SK:         "METADATA",
		Title:      title,
		Content:    content,
		Status:     structs.PostStatusPublished,
		AuthorID:   author,
		AuthorName: s.displayName(author),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.posts = append([]*structs.Post{p}, s.posts...)
	cp := *p
	return &cp
}

// SeedComment stores a comment on post.
func (s *Server) SeedComment(postID, author, content string) *structs.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.newComment(postID, author, content)
	cp := *c
	return &cp
}

func (s *Server) newComment(postID, author, content string) *structs.Comment {
	c := &structs.Comment{
		PK:         structs.PostKeyPrefix + postID,
		SK:         structs.CommentKeyPrefix + uuid.NewString(),
		PostID:     postID,
		Content:    content,
		AuthorID:   author,
		AuthorName: s.displayName(author),
		CreatedAt:  s.now(),
	}
	s.comments[postID] = append(s.comments[postID], c)
	return c
}

func (s *Server) displayName(username string) string {
	if p, ok := s.profiles[username]; ok && p.Username != "" {
		return p.Username
	}
	return username
}

func (s *Server) count(c *gin.Context) {
	route := c.FullPath()
	if route == "" {
		route = c.Request.URL.Path
	}
	s.mu.Lock()
	s.hits[c.Request.Method+" "+route]++
	s.mu.Unlock()
	c.Next()
}

const (
	ctxUsername = "username"
	ctxGroups   = "groups"
)

// auth accepts bearer access tokens issued by Provider.
func (s *Server) auth(c *gin.Context) {
	if !s.authenticate(c) {
		resp.Fail(c.Writer, http.StatusUnauthorized, 0, "Unauthorized")
		c.Abort()
	}
}

func (s *Server) optionalAuth(c *gin.Context) {
	s.authenticate(c)
}

func (s *Server) authenticate(c *gin.Context) bool {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return false
	}
	claims, err := jwt.ParseClaims(token)
	if err != nil || jwt.GetTokenUse(claims) != "access" {
		return false
	}
	if exp := jwt.GetExpirationFromToken(claims); !exp.IsZero() && exp.Before(s.now()) {
		return false
	}
	if s.Provider.Revoked(token) {
		return false
	}
	c.Set(ctxUsername, jwt.GetUsernameFromToken(claims))
	c.Set(ctxGroups, jwt.GetGroupsFromToken(claims))
	return true
}

func (s *Server) isAdmin(c *gin.Context) bool {
	groups, _ := c.Get(ctxGroups)
	gs, _ := groups.([]string)
	for _, g := range gs {
		if g == structs.GroupAdmin {
			return true
		}
	}
	return false
}

// page slices items by an offset continuation token.
func page[T any](c *gin.Context, items []T) *paging.Page[T] {
	size, _ := strconv.Atoi(c.Query("size"))
	size = paging.NormalizeParams(paging.Params{Size: size}).Size
	offset, _ := strconv.Atoi(c.Query("nextToken"))
	if offset < 0 || offset > len(items) {
		offset = len(items)
	}
	end := min(offset+size, len(items))
	p := &paging.Page[T]{
		Size:    size,
		HasMore: end < len(items),
		Result:  append([]T{}, items[offset:end]...),
	}
	if p.HasMore {
		next := strconv.Itoa(end)
		p.NextToken = &next
	}
	return p
}
