package ingest

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
)

func multipartCSV(t *testing.T, filename, content string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte(content))
	for k, v := range fields {
		w.WriteField(k, v)
	}
	w.Close()
	return &buf, w.FormDataContentType()
}

func TestPreviewUploadHandler(t *testing.T) {
	csv := "Name,Mobile Number,Institution,Current DPD\n" +
		"Asha,9876543210,HDFC,95\n" +
		"Ravi,12345,Axis,10\n"
	body, contentType := multipartCSV(t, "sayyam_protect.csv", csv, nil)

	req := httptest.NewRequest(http.MethodPost, "/ingest/preview", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	PreviewUploadHandler()(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Success bool `json:"success"`
		Rows    struct {
			DetectedType string       `json:"detectedType"`
			TotalRows    int          `json:"totalRows"`
			ValidRows    int          `json:"validRows"`
			InvalidRows  int          `json:"invalidRows"`
			Rows         []PreviewRow `json:"rows"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success {
		t.Fatal("success = false")
	}
	p := resp.Rows
	if p.DetectedType != "protect" {
		t.Errorf("DetectedType = %q, want protect", p.DetectedType)
	}
	if p.TotalRows != 2 || p.ValidRows != 1 || p.InvalidRows != 1 {
		t.Errorf("counts = %d/%d/%d, want 2/1/1", p.TotalRows, p.ValidRows, p.InvalidRows)
	}
	if len(p.Rows) != 2 {
		t.Fatalf("preview rows = %d", len(p.Rows))
	}
	if !p.Rows[0].Valid || p.Rows[1].Valid {
		t.Errorf("row validity = %v/%v, want true/false", p.Rows[0].Valid, p.Rows[1].Valid)
	}
	if p.Rows[0].Partner != "sayyam" {
		t.Errorf("partner from filename = %q, want sayyam", p.Rows[0].Partner)
	}
}

func TestPreviewUploadHandlerTypeOverride(t *testing.T) {
	csv := "Name,Mobile Number,Institution\nAsha,9876543210,HDFC\n"
	body, contentType := multipartCSV(t, "upload.csv", csv, map[string]string{"type": "settlement"})

	req := httptest.NewRequest(http.MethodPost, "/ingest/preview", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	PreviewUploadHandler()(rr, req)

	var resp struct {
		Rows struct {
			DetectedType string `json:"detectedType"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Rows.DetectedType != "settlement" {
		t.Errorf("DetectedType = %q, want settlement override", resp.Rows.DetectedType)
	}
}

func TestPreviewUploadHandlerNoFile(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/ingest/preview", bytes.NewReader(nil))
	rr := httptest.NewRecorder()
	PreviewUploadHandler()(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}
