package api

import (
	"github.com/gin-gonic/gin"

	"github.com/nyzbk/insta-carousel-v2/internal/logger"
)

func NewRouter(h *Handler, log *logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.MaxMultipartMemory = maxAvatarBytes

	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		api.GET("/designs", h.ListDesigns)
		api.POST("/sessions", h.CreateSession)
	}

	s := api.Group("/sessions/:id")
	{
		s.GET("", h.GetSession)
		s.DELETE("", h.DeleteSession)

		// Generation
		s.POST("/topic", h.GenerateTopic)
		s.POST("/content", h.GenerateContent)

		// Editing
		s.PATCH("/slides/:index", h.EditSlide)
		s.PUT("/design", h.SetDesign)
		s.PUT("/profile", h.UpdateProfile)
		s.PUT("/avatar", h.SetAvatar)
		s.DELETE("/avatar", h.ClearAvatar)

		// Export
		s.GET("/slides/:index/png", h.SlidePNG)
		s.GET("/slides/:index/fields", h.SlideFields)
		s.GET("/carousel.zip", h.Archive)
		s.POST("/telegram/dialog", h.OpenUploadDialog)
		s.DELETE("/telegram/dialog", h.CloseUploadDialog)
		s.POST("/telegram", h.SendToTelegram)
	}
	return r
}
