package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/dgallion1/xmlrecords"
	"github.com/dgallion1/xmlrecords/internal/convert"
	"github.com/dgallion1/xmlrecords/internal/pipeline"
	"github.com/dgallion1/xmlrecords/internal/tabular"
)

// handleConvert converts a single document synchronously.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	spec, err := specFromForm(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	data, status, err := s.readDocument(file, filename)
	if err != nil {
		jsonError(w, err.Error(), status)
		return
	}

	res, err := convert.Convert(data, spec, s.orchestrator.Limits())
	if err != nil {
		s.orchestrator.Stats().ObserveFailure()
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.orchestrator.Stats().Observe(res.Elapsed, len(res.Records))

	switch format := r.FormValue("format"); format {
	case "", "json":
		records := res.Records
		if records == nil {
			records = []*xmlrecords.Record{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"filename":   filename,
			"count":      len(records),
			"fields":     res.Fields,
			"words":      res.Words,
			"elapsed_ms": res.Elapsed.Milliseconds(),
			"records":    records,
		})
	case "csv":
		if _, err := tabular.Columns(res.Records); err != nil {
			jsonError(w, "csv output requires uniform records: "+err.Error(), http.StatusUnprocessableEntity)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		if err := tabular.WriteCSV(w, res.Records); err != nil {
			s.log.Error("write csv response", "error", err)
		}
	default:
		jsonError(w, fmt.Sprintf("unsupported format: %s", format), http.StatusBadRequest)
	}
}

// handleBatchConvert enqueues one conversion job per uploaded document.
func (s *Server) handleBatchConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	spec, err := specFromForm(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	callback := r.FormValue("callback_url")
	if callback != "" {
		u, err := url.Parse(callback)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			jsonError(w, "callback_url must be an absolute http(s) URL", http.StatusBadRequest)
			return
		}
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	var results []map[string]any
	for _, fh := range files {
		filename := sanitizeFilename(fh.Filename)

		f, err := fh.Open()
		if err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    "failed to open file",
			})
			continue
		}
		data, _, err := s.readDocument(f, filename)
		f.Close()
		if err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    err.Error(),
			})
			continue
		}

		now := time.Now()
		hash := pipeline.ContentHashHex(data)
		job := &pipeline.Job{
			ID:          pipeline.NewULID(),
			DocID:       hash[:16],
			Status:      pipeline.StatusQueued,
			Phase:       "queued",
			Filename:    filename,
			ContentHash: hash,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		job.SetSpec(spec)
		job.SetDocument(data)
		job.SetCallbackURL(callback)

		if err := s.orchestrator.Submit(job); err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    err.Error(),
			})
			continue
		}

		results = append(results, map[string]any{
			"filename": filename,
			"job_id":   job.ID,
			"doc_id":   job.DocID,
			"status":   job.Status,
			"poll_url": fmt.Sprintf("/api/convert/%s/status", job.ID),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{"jobs": results})
}

// specFromForm decodes and validates the spec form field.
func specFromForm(r *http.Request) (convert.Spec, error) {
	raw := r.FormValue("spec")
	if raw == "" {
		return convert.Spec{}, fmt.Errorf("spec form field is required")
	}
	var spec convert.Spec
	if err := json.Unmarshal([]byte(raw), &spec); err != nil {
		return convert.Spec{}, fmt.Errorf("invalid spec JSON: %s", err)
	}
	if err := spec.Validate(); err != nil {
		return convert.Spec{}, fmt.Errorf("invalid spec: %s", err)
	}
	return spec, nil
}

// readDocument reads an uploaded file, transparently decompressing gzip
// input detected by extension or magic bytes. The returned status is the
// HTTP code to respond with when err is non-nil.
func (s *Server) readDocument(f io.Reader, filename string) ([]byte, int, error) {
	data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("failed to read file")
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return nil, http.StatusRequestEntityTooLarge, fmt.Errorf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes)
	}
	if isGzip(filename, data) {
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, http.StatusBadRequest, fmt.Errorf("invalid gzip file: %s", err)
		}
		defer zr.Close()
		data, err = io.ReadAll(io.LimitReader(zr, s.cfg.MaxUploadBytes+1))
		if err != nil {
			return nil, http.StatusBadRequest, fmt.Errorf("decompress file: %s", err)
		}
		if int64(len(data)) > s.cfg.MaxUploadBytes {
			return nil, http.StatusRequestEntityTooLarge, fmt.Errorf("decompressed file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes)
		}
	}
	return data, 0, nil
}

func isGzip(filename string, data []byte) bool {
	if strings.HasSuffix(filename, ".gz") {
		return true
	}
	return len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
