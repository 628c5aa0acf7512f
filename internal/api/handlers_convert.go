package api

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/svgpress/svgpress/internal/pipeline"
)

// handleConvert accepts a multipart upload: "file" is the main SVG, optional
// "assets" files are linked SVGs stored alongside it so relative hrefs
// resolve inside the job's working directory.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

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
	if !strings.EqualFold(filepath.Ext(filename), ".svg") {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	workDir, err := os.MkdirTemp(s.cfg.WorkDir, "svgpress-job-*")
	if err != nil {
		jsonError(w, "failed to create working directory", http.StatusInternalServerError)
		return
	}

	inputPath := filepath.Join(workDir, filename)
	if err := os.WriteFile(inputPath, data, 0o644); err != nil {
		os.RemoveAll(workDir)
		jsonError(w, "failed to store file", http.StatusInternalServerError)
		return
	}

	if err := s.storeAssets(workDir, r.MultipartForm.File["assets"]); err != nil {
		os.RemoveAll(workDir)
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	jobID := pipeline.ContentHashHex(append(data, fmt.Sprintf("-%d", time.Now().UnixNano())...))[:20]
	job := pipeline.NewJob(jobID, filename, workDir, inputPath)
	job.TextToPath = r.FormValue("text_to_path") == "true"
	if v := r.FormValue("max_depth"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			job.MaxDepth = n
		}
	}

	if err := s.orchestrator.Submit(job); err != nil {
		os.RemoveAll(workDir)
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"status":   job.Snapshot().Status,
		"poll_url": fmt.Sprintf("/api/convert/%s/status", job.ID),
	})
}

// storeAssets writes uploaded linked files into the job working directory
// under their sanitized base names.
func (s *Server) storeAssets(workDir string, assets []*multipart.FileHeader) error {
	for _, fh := range assets {
		name := sanitizeFilename(fh.Filename)
		f, err := fh.Open()
		if err != nil {
			return fmt.Errorf("asset %s: failed to open", name)
		}
		data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
		f.Close()
		if err != nil || int64(len(data)) > s.cfg.MaxUploadBytes {
			return fmt.Errorf("asset %s: too large or unreadable", name)
		}
		if err := os.WriteFile(filepath.Join(workDir, name), data, 0o644); err != nil {
			return fmt.Errorf("asset %s: failed to store", name)
		}
	}
	return nil
}

func (s *Server) handleConvertStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   snap.ID,
		"filename": snap.Filename,
		"status":   snap.Status,
		"phase":    snap.Phase,
		"progress": snap.Progress,
	})
}

func (s *Server) handleConvertPDF(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	pdfPath, ready := job.PDF()
	if !ready {
		snap := job.Snapshot()
		if snap.Status == pipeline.StatusFailed {
			jsonError(w, "conversion failed", http.StatusGone)
			return
		}
		jsonError(w, fmt.Sprintf("pdf not ready (status %s)", snap.Status), http.StatusConflict)
		return
	}

	name := strings.TrimSuffix(job.Filename, filepath.Ext(job.Filename)) + ".pdf"
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeFile(w, r, pdfPath)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
