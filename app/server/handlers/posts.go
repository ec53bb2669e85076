package handlers

import (
	"fmt"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"net/http"
	"shinkwang-site/app/server/constants"
	"shinkwang-site/app/server/models"
	"shinkwang-site/app/server/utils"
	"strings"
	"time"
	"unicode/utf8"
)

type postCreateRequest struct {
	AuthorName  string `json:"authorName"`
	AuthorTitle string `json:"authorTitle"`
	Content     string `json:"content"`
	DateStr     string `json:"dateStr"`
}

type postPatchRequest struct {
	ID   utils.FlexibleID `json:"id"`
	Type string           `json:"type"`
}

type postInfo struct {
	ID       uint   `json:"id"`
	Author   string `json:"author"`
	Date     string `json:"date"`
	Content  string `json:"content"`
	Likes    int    `json:"likes"`
	Comments int    `json:"comments"` // always 0, comments are not stored
}

type postLikeResponse struct {
	Success bool `json:"success"`
	Likes   int  `json:"likes"`
}

var seoul = func() *time.Location {
	if loc, err := time.LoadLocation("Asia/Seoul"); err == nil {
		return loc
	}
	return time.FixedZone("KST", 9*60*60)
}()

// postDate renders t the way posts show their date, e.g. "2026년 1월 4일 • 오후 03:05".
func postDate(t time.Time) string {
	t = t.In(seoul)
	meridiem := "오전"
	if t.Hour() >= 12 {
		meridiem = "오후"
	}
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d년 %d월 %d일 • %s %02d:%02d", t.Year(), int(t.Month()), t.Day(), meridiem, hour, t.Minute())
}

func (a *App) PostList(c echo.Context) error {
	rctx := c.Request().Context()

	var params listParams
	if err := c.Bind(&params); err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	q, err := a.paginate(c, a.db.WithContext(rctx).Model(&models.GracePost{}), params)
	if err != nil {
		a.l.Error("failed to count posts", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	var posts []models.GracePost
	if err := q.Order("id DESC").Find(&posts).Error; err != nil {
		a.l.Error("failed to get post list", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	res := make([]postInfo, 0, len(posts))
	for _, p := range posts {
		res = append(res, postInfo{
			ID:      p.ID,
			Author:  strings.TrimSpace(p.AuthorName + " " + p.AuthorTitle),
			Date:    p.DateStr,
			Content: p.Content,
			Likes:   p.Likes,
		})
	}

	return c.JSON(http.StatusOK, res)
}

func (a *App) PostCreate(c echo.Context) error {
	rctx := c.Request().Context()

	var req postCreateRequest
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind post body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "Missing Required Fields")
	}

	if strings.TrimSpace(req.AuthorName) == "" || strings.TrimSpace(req.Content) == "" {
		return a.er(c, http.StatusBadRequest, "Missing Required Fields")
	}
	if utf8.RuneCountInString(req.Content) > constants.PostMaxLength {
		return a.er(c, http.StatusBadRequest, fmt.Sprintf("Content exceeds %d characters", constants.PostMaxLength))
	}

	post := models.GracePost{
		AuthorName:  strings.TrimSpace(req.AuthorName),
		AuthorTitle: strings.TrimSpace(req.AuthorTitle),
		Content:     req.Content,
		DateStr:     strings.TrimSpace(req.DateStr),
	}
	if post.AuthorTitle == "" {
		post.AuthorTitle = constants.DefaultAuthorTitle
	}
	if post.DateStr == "" {
		post.DateStr = postDate(time.Now())
	}

	if err := a.db.WithContext(rctx).Create(&post).Error; err != nil {
		a.l.Error("failed to create post", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusCreated, success)
}

func (a *App) PostPatch(c echo.Context) error {
	rctx := c.Request().Context()

	var req postPatchRequest
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind post patch body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "Missing ID")
	}

	if req.ID == 0 {
		return a.er(c, http.StatusBadRequest, "Missing ID")
	}
	if req.Type != "like" {
		return a.er(c, http.StatusBadRequest, "Unsupported patch type")
	}

	// increment in SQL so concurrent likes never lose an update
	res := a.db.WithContext(rctx).
		Model(&models.GracePost{}).
		Where("id = ?", uint(req.ID)).
		UpdateColumn("likes", gorm.Expr("likes + ?", 1))
	if res.Error != nil {
		a.l.Error("failed to like post", zap.Uint("id", uint(req.ID)), zap.Error(res.Error))
		return a.er(c, http.StatusInternalServerError)
	}
	if res.RowsAffected == 0 {
		return a.er(c, http.StatusNotFound, "Post not found")
	}

	var post models.GracePost
	if err := a.db.WithContext(rctx).Select("likes").First(&post, "id = ?", uint(req.ID)).Error; err != nil {
		// the like is already counted
		a.l.Warn("failed to read back likes", zap.Uint("id", uint(req.ID)), zap.Error(err))
		return c.JSON(http.StatusOK, success)
	}

	return c.JSON(http.StatusOK, &postLikeResponse{Success: true, Likes: post.Likes})
}

func (a *App) PostDelete(c echo.Context) error {
	rctx := c.Request().Context()

	id, err := queryID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest, "Missing ID")
	}

	if err := a.db.WithContext(rctx).Delete(&models.GracePost{}, id).Error; err != nil {
		a.l.Error("failed to delete post", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, success)
}
