package apitest

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ncobase/blogclient/net/resp"
	"github.com/ncobase/blogclient/structs"
	"github.com/ncobase/blogclient/validator"
)

func (s *Server) findPost(id string) (int, *structs.Post) {
	for i, p := range s.posts {
		if p.ID() == id {
			return i, p
		}
	}
	return -1, nil
}

func (s *Server) listPosts(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	published := make([]structs.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if p.Status == structs.PostStatusPublished {
			published = append(published, *p)
		}
	}
	resp.Success(c.Writer, page(c, published))
}

func (s *Server) getPost(c *gin.Context) {
	id := c.Param("id")
	if id == "me" {
		s.myPosts(c)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, p := s.findPost(id)
	if p == nil {
		resp.Fail(c.Writer, http.StatusNotFound, 0, "Post not found")
		return
	}
	resp.Success(c.Writer, p)
}

func (s *Server) myPosts(c *gin.Context) {
	username := c.GetString(ctxUsername)
	if username == "" {
		resp.Fail(c.Writer, http.StatusUnauthorized, 0, "Unauthorized")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	mine := []structs.Post{}
	for _, p := range s.posts {
		if p.AuthorID == username {
			mine = append(mine, *p)
		}
	}
	resp.Success(c.Writer, page(c, mine))
}

func (s *Server) createPost(c *gin.Context) {
	var body structs.CreatePostBody
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.Fail(c.Writer, http.StatusBadRequest, 0, "Invalid request body")
		return
	}
	title, content := strings.TrimSpace(body.Title), strings.TrimSpace(body.Content)
	if title == "" || content == "" {
		resp.Fail(c.Writer, http.StatusBadRequest, 0, "Title and content are required")
		return
	}
	username := c.GetString(ctxUsername)

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	p := &structs.Post{
		PK:           structs.PostKeyPrefix + uuid.NewString(),
		SK:           "METADATA",
		Title:        title,
		Content:      content,
		Status:       structs.PostStatusPublished,
		AuthorID:     username,
		AuthorName:   s.displayName(username),
		ThumbnailURL: body.ThumbnailURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if prof, ok := s.profiles[username]; ok {
		p.AuthorAvatar = prof.AvatarURL
	}
	s.posts = append([]*structs.Post{p}, s.posts...)
	resp.WithStatusCode(c.Writer, http.StatusCreated, p)
}

func (s *Server) updatePost(c *gin.Context) {
	var body structs.UpdatePostBody
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.Fail(c.Writer, http.StatusBadRequest, 0, "Invalid request body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, p := s.findPost(c.Param("id"))
	if p == nil {
		resp.Fail(c.Writer, http.StatusNotFound, 0, "Post not found")
		return
	}
	if !p.OwnedBy(c.GetString(ctxUsername)) {
		resp.Fail(c.Writer, http.StatusForbidden, 0, "You can only edit your own posts")
		return
	}
	if body.Title != nil {
		p.Title = strings.TrimSpace(*body.Title)
	}
	if body.Content != nil {
		p.Content = strings.TrimSpace(*body.Content)
	}
	if body.Status != nil {
		p.Status = *body.Status
	}
	if body.ThumbnailURL != nil {
		p.ThumbnailURL = *body.ThumbnailURL
	}
	p.UpdatedAt = s.now()
	resp.Success(c.Writer, p)
}

func (s *Server) deletePost(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, p := s.findPost(c.Param("id"))
	if p == nil {
		resp.Fail(c.Writer, http.StatusNotFound, 0, "Post not found")
		return
	}
	if !p.OwnedBy(c.GetString(ctxUsername)) && !s.isAdmin(c) {
		resp.Fail(c.Writer, http.StatusForbidden, 0, "You can only delete your own posts")
		return
	}
	s.posts = append(s.posts[:i], s.posts[i+1:]...)
	delete(s.comments, p.ID())
	resp.Success(c.Writer, nil)
}

func (s *Server) uploadURL(folder string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body structs.UploadURLBody
		if err := c.ShouldBindJSON(&body); err != nil || !validator.IsImageType(body.ContentType) {
			resp.Fail(c.Writer, http.StatusBadRequest, 0, "Only image uploads are allowed")
			return
		}
		key := folder + "/" + uuid.NewString() + validator.ImageExt(body.ContentType)
		s.mu.Lock()
		s.signed[key] = body.ContentType
		s.mu.Unlock()
		resp.Success(c.Writer, &structs.UploadTarget{
			UploadURL: s.URL + "/storage/" + key + "?X-Amz-Signature=test",
			FileURL:   s.URL + "/files/" + key,
			Key:       key,
		})
	}
}

// storePut mimics a pre-signed object PUT: plain status codes, no envelope.
func (s *Server) storePut(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailUploads != 0 {
		c.Status(s.FailUploads)
		return
	}
	signed, ok := s.signed[key]
	if !ok || signed != c.GetHeader("Content-Type") {
		c.Status(http.StatusForbidden)
		return
	}
	s.objects[key] = Object{ContentType: signed, Data: data}
	c.Status(http.StatusOK)
}

func (s *Server) fileGet(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	o, ok := s.Object(key)
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	c.Data(http.StatusOK, o.ContentType, o.Data)
}

func (s *Server) listComments(c *gin.Context) {
	postID := c.Param("postId")
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailComments[postID] {
		resp.Fail(c.Writer, http.StatusInternalServerError, 0, "Failed to load comments")
		return
	}
	list := make([]structs.Comment, 0, len(s.comments[postID]))
	for _, cm := range s.comments[postID] {
		list = append(list, *cm)
	}
	resp.Success(c.Writer, page(c, list))
}

func (s *Server) createComment(c *gin.Context) {
	var body structs.CreateCommentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.Fail(c.Writer, http.StatusBadRequest, 0, "Invalid request body")
		return
	}
	content := strings.TrimSpace(body.Content)
	if content == "" {
		resp.Fail(c.Writer, http.StatusBadRequest, 0, "Content is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, p := s.findPost(body.PostID); p == nil {
		resp.Fail(c.Writer, http.StatusNotFound, 0, "Post not found")
		return
	}
	cm := s.newComment(body.PostID, c.GetString(ctxUsername), content)
	resp.WithStatusCode(c.Writer, http.StatusCreated, cm)
}

func (s *Server) findComment(postID, commentID string) (int, *structs.Comment) {
	for i, cm := range s.comments[postID] {
		if cm.ID() == commentID {
			return i, cm
		}
	}
	return -1, nil
}

func (s *Server) updateComment(c *gin.Context) {
	var body structs.UpdateCommentBody
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Content) == "" {
		resp.Fail(c.Writer, http.StatusBadRequest, 0, "Content is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, cm := s.findComment(c.Param("postId"), c.Param("commentId"))
	if cm == nil {
		resp.Fail(c.Writer, http.StatusNotFound, 0, "Comment not found")
		return
	}
	if !cm.OwnedBy(c.GetString(ctxUsername)) {
		resp.Fail(c.Writer, http.StatusForbidden, 0, "You can only edit your own comments")
		return
	}
	cm.Content = strings.TrimSpace(body.Content)
	resp.Success(c.Writer, cm)
}

func (s *Server) deleteComment(c *gin.Context) {
	postID := c.Param("postId")
	s.mu.Lock()
	defer s.mu.Unlock()
	i, cm := s.findComment(postID, c.Param("commentId"))
	if cm == nil {
		resp.Fail(c.Writer, http.StatusNotFound, 0, "Comment not found")
		return
	}
	if !cm.OwnedBy(c.GetString(ctxUsername)) && !s.isAdmin(c) {
		resp.Fail(c.Writer, http.StatusForbidden, 0, "You can only delete your own comments")
		return
	}
	list := s.comments[postID]
	s.comments[postID] = append(list[:i], list[i+1:]...)
	resp.Success(c.Writer, nil)
}

func (s *Server) createUser(c *gin.Context) {
	var body structs.CreateUserBody
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.Fail(c.Writer, http.StatusBadRequest, 0, "Invalid request body")
		return
	}
	if fields := validator.ValidateStruct(&body); len(fields) > 0 {
		resp.Fail(c.Writer, http.StatusBadRequest, 0, "Invalid registration")
		return
	}
	if _, exists := s.Provider.Account(body.Email); exists {
		resp.Fail(c.Writer, http.StatusConflict, 0, "User already exists")
		return
	}
	acc := s.AddUser(Account{
		Username: body.Email,
		Password: body.Password,
		Name:     body.Username,
		Email:    body.Email,
	})
	s.mu.Lock()
	prof := *s.profiles[acc.Username]
	s.mu.Unlock()
	resp.WithStatusCode(c.Writer, http.StatusCreated, &prof)
}

// me answers a missing profile with HTTP 200 and business code 404.
func (s *Server) me(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prof, ok := s.profiles[c.GetString(ctxUsername)]
	if !ok {
		resp.Fail(c.Writer, http.StatusOK, http.StatusNotFound, "User not found")
		return
	}
	resp.Success(c.Writer, prof)
}

func (s *Server) updateMe(c *gin.Context) {
	var body structs.UpdateProfileBody
	if err := c.ShouldBindJSON(&body); err != nil || body.AvatarURL == "" {
		resp.Fail(c.Writer, http.StatusBadRequest, 0, "Avatar URL is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	prof, ok := s.profiles[c.GetString(ctxUsername)]
	if !ok {
		resp.Fail(c.Writer, http.StatusOK, http.StatusNotFound, "User not found")
		return
	}
	prof.AvatarURL = body.AvatarURL
	resp.Success(c.Writer, prof)
}
