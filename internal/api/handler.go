package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nyzbk/insta-carousel-v2/internal/apperr"
	"github.com/nyzbk/insta-carousel-v2/internal/export"
	"github.com/nyzbk/insta-carousel-v2/internal/logger"
	"github.com/nyzbk/insta-carousel-v2/internal/models"
	"github.com/nyzbk/insta-carousel-v2/internal/render"
	"github.com/nyzbk/insta-carousel-v2/internal/session"
)

// maxAvatarBytes bounds avatar uploads.
const maxAvatarBytes = 8 << 20

// CardRenderer reports field boxes for the fields endpoint.
type CardRenderer interface {
	Render(design models.Design, profile models.UserProfile, slide models.Slide, index, total int) (*render.Card, error)
	Size() (int, int)
}

type Handler struct {
	store    *session.Store
	renderer CardRenderer
	log      *logger.Logger
}

func NewHandler(store *session.Store, renderer CardRenderer, log *logger.Logger) *Handler {
	return &Handler{store: store, renderer: renderer, log: log.With("service", "APIHandler")}
}

func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

func (h *Handler) ListDesigns(c *gin.Context) {
	designs := models.Designs()
	out := make([]DesignInfo, len(designs))
	for i, d := range designs {
		out[i] = DesignInfo{ID: d, Default: d == models.DefaultDesign}
	}
	c.JSON(http.StatusOK, gin.H{"designs": out})
}

func (h *Handler) CreateSession(c *gin.Context) {
	sess := h.store.Create()
	c.JSON(http.StatusCreated, newSessionResponse(sess.ID(), sess.Snapshot()))
}

func (h *Handler) session(c *gin.Context) (*session.Session, bool) {
	sess, err := h.store.Get(c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return nil, false
	}
	return sess, true
}

func (h *Handler) respondState(c *gin.Context, sess *session.Session) {
	c.JSON(http.StatusOK, newSessionResponse(sess.ID(), sess.Snapshot()))
}

func (h *Handler) GetSession(c *gin.Context) {
	if sess, ok := h.session(c); ok {
		h.respondState(c, sess)
	}
}

func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.store.Delete(c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, apperr.New(apperr.KindValidation, "Некорректный запрос.", err))
		return false
	}
	return true
}

func (h *Handler) GenerateTopic(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req TopicRequest
	if !bindJSON(c, &req) {
		return
	}
	topic, err := sess.GenerateTopic(c.Request.Context(), req.Activity)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, TopicResponse{Topic: topic, State: newSessionResponse(sess.ID(), sess.Snapshot())})
}

func (h *Handler) GenerateContent(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req ContentRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := sess.GenerateContent(c.Request.Context(), req.Topic, req.SlideCount, req.CTAKeyword); err != nil {
		RespondError(c, err)
		return
	}
	h.respondState(c, sess)
}

func slideIndex(c *gin.Context) (int, bool) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		RespondError(c, apperr.Validation(fmt.Sprintf("Некорректный номер слайда %q.", c.Param("index"))))
		return 0, false
	}
	return i, true
}

func (h *Handler) EditSlide(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	index, ok := slideIndex(c)
	if !ok {
		return
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		RespondError(c, apperr.New(apperr.KindValidation, "Некорректный запрос.", err))
		return
	}
	edit, err := models.DecodeEdit(body)
	if err != nil {
		RespondError(c, err)
		return
	}
	if _, err := sess.ApplyEdit(index, edit); err != nil {
		RespondError(c, err)
		return
	}
	h.respondState(c, sess)
}

func (h *Handler) SetDesign(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req DesignRequest
	if !bindJSON(c, &req) {
		return
	}
	d, known := models.ParseDesign(req.Design)
	if !known {
		RespondError(c, apperr.Validation(fmt.Sprintf("Неизвестный дизайн %q.", req.Design)))
		return
	}
	if _, err := sess.SetDesign(d); err != nil {
		RespondError(c, err)
		return
	}
	h.respondState(c, sess)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req ProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	sess.UpdateProfile(req.Name, req.Handle)
	h.respondState(c, sess)
}

func (h *Handler) SetAvatar(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	fh, err := c.FormFile("avatar")
	if err != nil {
		RespondError(c, apperr.New(apperr.KindValidation, "Файл avatar обязателен.", err))
		return
	}
	if fh.Size > maxAvatarBytes {
		RespondError(c, apperr.Validation("Файл слишком большой."))
		return
	}
	f, err := fh.Open()
	if err != nil {
		RespondError(c, apperr.New(apperr.KindValidation, "Не удалось прочитать файл.", err))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxAvatarBytes))
	if err != nil {
		RespondError(c, apperr.New(apperr.KindValidation, "Не удалось прочитать файл.", err))
		return
	}
	if _, err := sess.SetAvatar(data); err != nil {
		RespondError(c, err)
		return
	}
	h.respondState(c, sess)
}

func (h *Handler) ClearAvatar(c *gin.Context) {
	if sess, ok := h.session(c); ok {
		sess.ClearAvatar()
		h.respondState(c, sess)
	}
}

func sendArtifact(c *gin.Context, a *export.Artifact) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", a.Name))
	c.Data(http.StatusOK, a.ContentType, a.Data)
}

func (h *Handler) SlidePNG(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	index, ok := slideIndex(c)
	if !ok {
		return
	}
	a, err := sess.ExportSlide(index)
	if err != nil {
		RespondError(c, err)
		return
	}
	sendArtifact(c, a)
}

func (h *Handler) SlideFields(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	index, ok := slideIndex(c)
	if !ok {
		return
	}
	st := sess.Snapshot()
	if st.Content == nil {
		RespondError(c, apperr.Validation("Нет контента."))
		return
	}
	slides := models.Slides(*st.Content)
	if index < 0 || index >= len(slides) {
		RespondError(c, apperr.NotFound(fmt.Sprintf("Слайд %d не найден.", index+1)))
		return
	}
	card, err := h.renderer.Render(st.Design, st.Profile, slides[index], index, len(slides))
	if err != nil {
		h.log.Error("field layout failed", "index", index, "error", err)
		RespondError(c, apperr.RenderExport("Ошибка отрисовки слайда.", err))
		return
	}
	w, hgt := h.renderer.Size()
	c.JSON(http.StatusOK, FieldsResponse{
		Index:  index,
		Design: st.Design,
		Width:  w,
		Height: hgt,
		Fields: card.Fields,
	})
}

func (h *Handler) Archive(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	a, err := sess.ExportArchive(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	sendArtifact(c, a)
}

func (h *Handler) OpenUploadDialog(c *gin.Context) {
	if sess, ok := h.session(c); ok {
		sess.OpenUploadDialog()
		h.respondState(c, sess)
	}
}

func (h *Handler) CloseUploadDialog(c *gin.Context) {
	if sess, ok := h.session(c); ok {
		sess.CloseUploadDialog()
		h.respondState(c, sess)
	}
}

func (h *Handler) SendToTelegram(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req TelegramRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := sess.SendToTelegram(c.Request.Context(), req.Token, req.ChatID); err != nil {
		RespondError(c, err)
		return
	}
	h.respondState(c, sess)
}
