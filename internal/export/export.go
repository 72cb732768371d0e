package export

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/nyzbk/insta-carousel-v2/internal/apperr"
	"github.com/nyzbk/insta-carousel-v2/internal/logger"
	"github.com/nyzbk/insta-carousel-v2/internal/models"
)

const (
	ArchiveName = "carousel.zip"

	slideFailure   = "Ошибка экспорта слайда."
	archiveFailure = "Ошибка создания архива."
	batchFailure   = "Ошибка подготовки слайдов."
)

// Rasterizer turns one slide into PNG bytes; *render.Renderer satisfies it.
type Rasterizer interface {
	RenderPNG(design models.Design, profile models.UserProfile, slide models.Slide, index, total int) ([]byte, error)
}

// Artifact is a named file ready to be handed to the user.
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
}

// SlideName is the 1-indexed file name of slide index.
func SlideName(index int) string {
	return fmt.Sprintf("slide-%d.png", index+1)
}

type Exporter struct {
	raster Rasterizer
	log    *logger.Logger
}

func New(raster Rasterizer, log *logger.Logger) *Exporter {
	return &Exporter{raster: raster, log: log.With("service", "Exporter")}
}

// Slide rasterizes a single slide.
func (e *Exporter) Slide(design models.Design, profile models.UserProfile, content models.CarouselContent, index int) (*Artifact, error) {
	slides := models.Slides(content)
	if index < 0 || index >= len(slides) {
		return nil, apperr.NotFound(fmt.Sprintf("Слайд %d не найден.", index+1))
	}
	data, err := e.raster.RenderPNG(design, profile, slides[index], index, len(slides))
	if err != nil {
		e.log.Error("slide export failed", "index", index, "design", design, "error", err)
		return nil, apperr.RenderExport(slideFailure, err)
	}
	return &Artifact{Name: SlideName(index), ContentType: "image/png", Data: data}, nil
}

// Photos rasterizes every slide in order. Any failure aborts the batch.
func (e *Exporter) Photos(ctx context.Context, design models.Design, profile models.UserProfile, content models.CarouselContent) ([][]byte, error) {
	start := time.Now()
	slides := models.Slides(content)
	out := make([][]byte, 0, len(slides))
	for i, s := range slides {
		if err := ctx.Err(); err != nil {
			return nil, apperr.RenderExport(batchFailure, err)
		}
		data, err := e.raster.RenderPNG(design, profile, s, i, len(slides))
		if err != nil {
			e.log.Error("batch rasterization failed", "index", i, "design", design, "error", err)
			return nil, apperr.RenderExport(batchFailure, fmt.Errorf("slide %d: %w", i+1, err))
		}
		out = append(out, data)
	}
	e.log.Debug("slides rasterized", "count", len(out), "duration", time.Since(start))
	return out, nil
}

// Archive packs every slide into carousel.zip as slide-1.png ... slide-N.png.
// No bytes are returned unless the whole archive was written.
func (e *Exporter) Archive(ctx context.Context, design models.Design, profile models.UserProfile, content models.CarouselContent) (*Artifact, error) {
	photos, err := e.Photos(ctx, design, profile, content)
	if err != nil {
		return nil, apperr.RenderExport(archiveFailure, err)
	}

	data, err := zipPhotos(photos)
	if err != nil {
		e.log.Error("archive write failed", "error", err)
		return nil, apperr.RenderExport(archiveFailure, err)
	}
	return &Artifact{Name: ArchiveName, ContentType: "application/zip", Data: data}, nil
}

func zipPhotos(photos [][]byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for i, p := range photos {
		// PNG is already deflated
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     SlideName(i),
			Method:   zip.Store,
			Modified: time.Now(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to add %s: %w", SlideName(i), err)
		}
		if _, err := w.Write(p); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", SlideName(i), err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
