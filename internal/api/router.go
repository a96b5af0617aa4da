package api

import (
	"net/http"

	"github.com/LJTian/TrendSpark/internal/fetcher"
	"github.com/LJTian/TrendSpark/internal/trends"
	"github.com/gin-gonic/gin"
)

type Server struct {
	manager *trends.Manager
}

func NewServer(manager *trends.Manager) *Server {
	return &Server{manager: manager}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/trends", s.listTrends)
		v1.POST("/trends/refresh", s.refresh)
		v1.GET("/trends/details", s.topicDetails)
		v1.GET("/saved", s.listSaved)
		v1.POST("/saved/toggle", s.toggleSaved)
		v1.GET("/preferences", s.listPreferences)
		v1.POST("/preferences/toggle", s.togglePreference)
		v1.POST("/chat", s.chat)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// categoryView 是网格页单个分类的展示结构，分类缺数据时 topics 为空列表
type categoryView struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Visible bool            `json:"visible"`
	Topics  []fetcher.Topic `json:"topics"`
}

func (s *Server) listTrends(c *gin.Context) {
	ctx := c.Request.Context()

	data, err := s.manager.Load(ctx, false)
	overview := s.manager.Overview()
	if err != nil {
		// 整个抓取周期失败：返回错误横幅状态，前端提供手动重试
		c.JSON(http.StatusBadGateway, gin.H{
			"code":    "fetch_failed",
			"message": "failed to refresh trends",
			"data": gin.H{
				"state":     overview.State,
				"lastError": overview.LastError,
				"updatedAt": overview.UpdatedAt,
			},
		})
		return
	}

	if id := c.Query("category"); id != "" {
		cat, ok := fetcher.CategoryByID(id)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    "unknown_category",
				"message": "unknown category: " + id,
			})
			return
		}
		topics := data[cat.ID]
		if topics == nil {
			topics = []fetcher.Topic{}
		}
		c.JSON(http.StatusOK, gin.H{
			"code":    "ok",
			"message": "success",
			"data": gin.H{
				"state":     overview.State,
				"updatedAt": overview.UpdatedAt,
				"category":  categoryView{ID: cat.ID, Name: cat.Name, Visible: true, Topics: topics},
			},
		})
		return
	}

	prefs := s.manager.Preferences(ctx)
	views := make([]categoryView, 0, len(fetcher.Categories))
	for _, cat := range fetcher.Categories {
		topics := data[cat.ID]
		if topics == nil {
			topics = []fetcher.Topic{}
		}
		views = append(views, categoryView{
			ID:      cat.ID,
			Name:    cat.Name,
			Visible: prefs[cat.ID],
			Topics:  topics,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data": gin.H{
			"state":      overview.State,
			"updatedAt":  overview.UpdatedAt,
			"categories": views,
		},
	})
}

func (s *Server) refresh(c *gin.Context) {
	force := c.DefaultQuery("force", "false") == "true"

	data, err := s.manager.Load(c.Request.Context(), force)
	overview := s.manager.Overview()
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"code":    "fetch_failed",
			"message": "failed to refresh trends",
			"data": gin.H{
				"state":     overview.State,
				"lastError": overview.LastError,
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data": gin.H{
			"state":      overview.State,
			"updatedAt":  overview.UpdatedAt,
			"categories": len(data),
		},
	})
}

func (s *Server) topicDetails(c *gin.Context) {
	title := c.Query("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "bad_request",
			"message": "missing title",
		})
		return
	}

	// 失败时 manager 返回占位文案，这里永远是 200
	d := s.manager.OpenDetails(c.Request.Context(), title)
	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    d,
	})
}

func (s *Server) listSaved(c *gin.Context) {
	saved := s.manager.Saved(c.Request.Context())
	if saved == nil {
		saved = []fetcher.Topic{}
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    saved,
	})
}

func (s *Server) toggleSaved(c *gin.Context) {
	var topic fetcher.Topic
	if err := c.ShouldBindJSON(&topic); err != nil || topic.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "bad_request",
			"message": "topic title is required",
		})
		return
	}

	saved, nowSaved, err := s.manager.ToggleSaved(c.Request.Context(), topic)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data": gin.H{
			"saved":  nowSaved,
			"topics": saved,
			"total":  len(saved),
		},
	})
}

func (s *Server) listPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    s.manager.Preferences(c.Request.Context()),
	})
}

func (s *Server) togglePreference(c *gin.Context) {
	var req struct {
		Category string `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Category == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "bad_request",
			"message": "category is required",
		})
		return
	}

	prefs, err := s.manager.TogglePreference(c.Request.Context(), req.Category)
	if err == trends.ErrUnknownCategory {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "unknown_category",
			"message": "unknown category: " + req.Category,
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    prefs,
	})
}

func (s *Server) chat(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "bad_request",
			"message": "message is required",
		})
		return
	}

	reply := s.manager.SendChat(c.Request.Context(), req.Message)
	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    gin.H{"reply": reply},
	})
}
