package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/VyomThaker-2154/Documind-ai/internal/processor"
	"github.com/VyomThaker-2154/Documind-ai/internal/session"
)

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Limit total request size; extra 1MB for multipart overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		jsonError(w, "only PDF files are supported", http.StatusBadRequest)
		return
	}

	tmpPath, err := s.saveUpload(file)
	if err != nil {
		if errors.Is(err, errUploadTooLarge) {
			jsonError(w, fmt.Sprintf("file too large, maximum size is %d bytes", s.cfg.MaxUploadBytes),
				http.StatusRequestEntityTooLarge)
			return
		}
		s.log.Error("failed to buffer upload", "error", err)
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	defer os.RemoveAll(filepath.Dir(tmpPath))

	snap, err := s.processor.Process(r.Context(), tmpPath, filename)
	if err != nil {
		var vErr *processor.ValidationError
		if errors.As(err, &vErr) {
			jsonError(w, vErr.Reason, http.StatusBadRequest)
			return
		}
		s.log.Error("processing failed", "filename", filename, "error", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	storedPath, err := s.store.Save(snap.Document)
	if err != nil {
		s.log.Error("failed to persist extraction result", "error", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Publish only after the document is fully indexed and persisted.
	s.session.Replace(snap)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":              "success",
		"message":             "PDF processed successfully. Ready for questions.",
		"extracted_data_path": storedPath,
		"content_summary":     contentSummary(snap),
	})
}

var errUploadTooLarge = errors.New("upload exceeds size limit")

// saveUpload streams the multipart file to a temp path in 1MB chunks,
// enforcing the size ceiling mid-stream.
func (s *Server) saveUpload(file io.Reader) (string, error) {
	tmpDir, err := os.MkdirTemp("", "documind-upload-")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}

	tmpPath := filepath.Join(tmpDir, fmt.Sprintf("upload_%s.pdf", time.Now().Format("20060102_150405")))
	out, err := os.Create(tmpPath)
	if err != nil {
		os.RemoveAll(tmpDir)
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer out.Close()

	var total int64
	buf := make([]byte, 1024*1024)
	for {
		n, readErr := file.Read(buf)
		if n > 0 {
			total += int64(n)
			if total > s.cfg.MaxUploadBytes {
				os.RemoveAll(tmpDir)
				return "", errUploadTooLarge
			}
			if _, err := out.Write(buf[:n]); err != nil {
				os.RemoveAll(tmpDir)
				return "", fmt.Errorf("write temp file: %w", err)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			os.RemoveAll(tmpDir)
			return "", fmt.Errorf("read upload: %w", readErr)
		}
	}
	return tmpPath, nil
}

// contentSummary mirrors the upload response's detailed statistics block.
func contentSummary(snap *session.Snapshot) map[string]any {
	doc := snap.Document

	tablesByPage := map[string]int{}
	for _, table := range doc.Tables {
		tablesByPage[fmt.Sprint(table.PageNumber)] = table.Metadata.RowCount
	}

	return map[string]any{
		"metadata": doc.Metadata,
		"text_content": map[string]any{
			"total_pages":      doc.Metadata.TotalPages,
			"total_words":      doc.Text.Statistics.TotalWords,
			"total_paragraphs": doc.Text.Statistics.TotalParagraphs,
			"total_headings":   doc.Text.Statistics.TotalHeadings,
			"total_sections":   doc.Text.Statistics.TotalSections,
			"hierarchy_depth":  doc.Text.Statistics.HierarchyDepth,
		},
		"tables": map[string]any{
			"total_tables":   len(doc.Tables),
			"tables_by_page": tablesByPage,
		},
		"visual_elements": map[string]any{
			"total_images":         doc.VisualElements.Statistics.TotalImages,
			"total_graphs":         doc.VisualElements.Statistics.TotalGraphs,
			"total_text_extracted": doc.VisualElements.Statistics.TotalTextExtracted,
		},
	}
}

type chatRequest struct {
	Question string `json:"question"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		jsonError(w, "question cannot be empty", http.StatusBadRequest)
		return
	}

	answer, err := s.session.Ask(r.Context(), question)
	if err != nil {
		if errors.Is(err, session.ErrNotReady) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.log.Error("chat failed", "error", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(answer)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"history": s.session.History()})
}

func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.stats.Snapshot())
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed.pdf"
	}
	return name
}
