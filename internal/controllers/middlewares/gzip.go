package middlewares

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
)

// gzipWriter обертка над gin.ResponseWriter для сжатия ответов в формате gzip.
// Сжатие включается при первой записи тела, ответы без тела уходят как есть.
type gzipWriter struct {
	gin.ResponseWriter
	writer *gzip.Writer
}

func (g *gzipWriter) Write(data []byte) (int, error) {
	if g.writer == nil {
		if g.ResponseWriter.Written() {
			return g.ResponseWriter.Write(data) //nolint:wrapcheck
		}
		g.start(data)
	}
	return g.writer.Write(data) //nolint:wrapcheck
}

// WriteString нужен для ctx.String, который пишет напрямую через io.StringWriter.
func (g *gzipWriter) WriteString(s string) (int, error) {
	return g.Write([]byte(s))
}

// start выставляет заголовки сжатия, пока они еще не отправлены.
// Content-Type определяем по несжатым данным, иначе net/http угадает его по gzip потоку.
func (g *gzipWriter) start(data []byte) {
	h := g.Header()
	if h.Get("Content-Type") == "" {
		h.Set("Content-Type", http.DetectContentType(data))
	}
	h.Del("Content-Length")
	h.Set("Content-Encoding", "gzip")
	h.Add("Vary", "Accept-Encoding")
	g.writer = gzip.NewWriter(g.ResponseWriter)
}

func (g *gzipWriter) close() error {
	if g.writer == nil {
		return nil
	}
	return g.writer.Close() //nolint:wrapcheck
}

// GzipMiddleware распаковывает gzip тела POST/PUT/PATCH запросов
// и сжимает ответ, если клиент прислал Accept-Encoding: gzip.
// Битое сжатое тело запроса - 400.
func GzipMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		readGzip(ctx)
		if ctx.IsAborted() {
			return
		}
		writeGzip(ctx)
	}
}

// writeGzip настраивает сжатие ответа в формате gzip.
func writeGzip(ctx *gin.Context) {
	if !strings.Contains(ctx.Request.Header.Get("Accept-Encoding"), "gzip") {
		ctx.Next()
		return
	}
	// метрики отдаются promhttp со своим сжатием
	if strings.HasPrefix(ctx.Request.URL.Path, "/debug/") {
		ctx.Next()
		return
	}

	gzWriter := &gzipWriter{ResponseWriter: ctx.Writer}
	defer func() {
		if closeErr := gzWriter.close(); closeErr != nil {
			_ = ctx.Error(fmt.Errorf("close gzip writer: %w", closeErr))
		}
	}()

	ctx.Writer = gzWriter
	ctx.Next()
}

// readGzip распаковывает тело запроса, если оно сжато.
func readGzip(ctx *gin.Context) {
	if !slices.Contains([]string{http.MethodPost, http.MethodPut, http.MethodPatch}, ctx.Request.Method) {
		return
	}
	if !strings.Contains(ctx.Request.Header.Get("Content-Encoding"), "gzip") {
		return
	}

	gzReader, gzErr := gzip.NewReader(ctx.Request.Body)
	if gzErr != nil {
		_ = ctx.Error(fmt.Errorf("read gzip: %w", gzErr))
		ctx.AbortWithStatus(http.StatusBadRequest)
		return
	}
	defer func() {
		if closeErr := gzReader.Close(); closeErr != nil {
			_ = ctx.Error(fmt.Errorf("close gzip reader: %w", closeErr))
		}
	}()
	bodyBytes, err := io.ReadAll(gzReader)
	if err != nil {
		_ = ctx.Error(fmt.Errorf("read gzip: %w", err))
		ctx.AbortWithStatus(http.StatusBadRequest)
		return
	}

	// дальше по цепочке тело уже несжатое
	ctx.Request.Header.Del("Content-Encoding")
	ctx.Request.ContentLength = int64(len(bodyBytes))
	ctx.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))
}
