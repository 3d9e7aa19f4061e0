package api

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/funkypenguin/zilean-go/internal/catalog"
	"github.com/funkypenguin/zilean-go/internal/dmmstream"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// handleImdbIngest triggers a synchronous catalog rebuild and reports the
// resulting import stats. Corresponds to IngestImdb.
func (s *Server) handleImdbIngest(c *gin.Context) {
	var req struct {
		ForceDownload bool `json:"force_download"`
		ForceReindex  bool `json:"force_reindex"`
	}
	_ = c.ShouldBindJSON(&req)

	stats, err := s.services.IngestService.RebuildCatalog(c.Request.Context(), catalog.RebuildOptions{
		ForceDownload: req.ForceDownload,
		ForceReindex:  req.ForceReindex,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"imported_at": stats.ImportedAt,
		"row_count":   stats.RowCount,
		"source_path": stats.SourcePath,
	})
}

// handleImdbIngestStatus reports the live catalog index's document count,
// a cheap status probe distinct from triggering a new ingest.
func (s *Server) handleImdbIngestStatus(c *gin.Context) {
	count, err := s.services.Index.DocCount()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"doc_count": count})
}

// handleImdbSearch correlates a title against the catalog. Corresponds to
// SearchImdb.
func (s *Server) handleImdbSearch(c *gin.Context) {
	var req struct {
		Title    string `json:"title" binding:"required"`
		Category string `json:"category"`
		Year     int32  `json:"year"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	matches, err := s.services.SearchService.Search(req.Title, catalog.Category(req.Category), req.Year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// handleDmmIngestStream streams one JSON object per processed DMM
// hashlist page as a chunked response. Corresponds to IngestDmmPages.
func (s *Server) handleDmmIngestStream(c *gin.Context) {
	c.Header("Content-Type", "application/x-ndjson")
	c.Status(http.StatusOK)

	writer := bufio.NewWriter(c.Writer)
	defer func() { _ = writer.Flush() }()

	flusher, canFlush := c.Writer.(http.Flusher)

	err := s.services.IngestService.StreamDmmPages(c.Request.Context(), func(page dmmstream.PageResult) error {
		line, err := json.Marshal(page)
		if err != nil {
			return err
		}
		if _, err := writer.Write(append(line, '\n')); err != nil {
			return err
		}
		if err := writer.Flush(); err != nil {
			return err
		}
		if canFlush {
			flusher.Flush()
		}
		return nil
	})
	if err != nil {
		s.logger.Error("api: dmm ingest stream failed", "error", err)
	}
}

// handleParseTorrents accepts NDJSON request lines of
// {"info_hash": "...", "title": "..."} and streams back NDJSON parse
// results, one per input line. info_hash is pure passthrough: it never
// reaches the parser, only the request/response envelope. A failed
// parse reports batch_id, info_hash, original_title and the error, with
// no result.
func (s *Server) handleParseTorrents(c *gin.Context) {
	c.Header("Content-Type", "application/x-ndjson")
	c.Status(http.StatusOK)

	batchID := uuid.NewString()

	writer := bufio.NewWriter(c.Writer)
	defer func() { _ = writer.Flush() }()
	flusher, canFlush := c.Writer.(http.Flusher)

	scanner := bufio.NewScanner(c.Request.Body)
	for scanner.Scan() {
		var req struct {
			InfoHash string `json:"info_hash"`
			Title    string `json:"title"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
			continue
		}

		result, parseErr := s.services.ParseService.Parse(c.Request.Context(), req.Title)
		resp := struct {
			BatchID       string      `json:"batch_id"`
			InfoHash      string      `json:"info_hash"`
			OriginalTitle string      `json:"original_title"`
			Result        interface{} `json:"result,omitempty"`
			Error         string      `json:"error,omitempty"`
		}{BatchID: batchID, InfoHash: req.InfoHash, OriginalTitle: req.Title}
		if parseErr != nil {
			resp.Error = parseErr.Error()
		} else {
			resp.Result = result
		}

		line, err := json.Marshal(resp)
		if err != nil {
			continue
		}
		if _, err := writer.Write(append(line, '\n')); err != nil {
			return
		}
		_ = writer.Flush()
		if canFlush {
			flusher.Flush()
		}
	}
}

// handleShutdown gracefully stops the server after acknowledging the
// request. Corresponds to Shutdown.
func (s *Server) handleShutdown(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "shutting down"})
	go func() {
		ctx := context.Background()
		if err := s.Stop(ctx); err != nil {
			s.logger.Error("api: error during shutdown", "error", err)
		}
		os.Exit(0)
	}()
}
