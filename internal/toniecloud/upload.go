package toniecloud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// UploadProgress reports bytes streamed to blob storage during step two of
// the upload workflow.
type UploadProgress struct {
	Written int64
	Total   int64
}

// UploadOptions tunes AddChapter. The zero value uses the client origin and
// reports no progress.
type UploadOptions struct {
	Origin   string
	Progress func(UploadProgress)
}

// CreateFileUpload requests a pre-signed upload slot from the service. The
// slot is one-time-use and short-lived; consume it immediately.
func (c *Client) CreateFileUpload(ctx context.Context) (UploadSlot, error) {
	resp, err := c.doAuthed(ctx, http.MethodPost, c.baseURL+"/file", "", nil)
	if err != nil {
		return UploadSlot{}, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return UploadSlot{}, err
	}
	var payload fileUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return UploadSlot{}, fmt.Errorf("%w: file upload slot: %v", ErrDecode, err)
	}
	if payload.FileID == "" || payload.Request.URL == "" {
		return UploadSlot{}, fmt.Errorf("%w: file upload slot missing fileId or url", ErrDecode)
	}
	return UploadSlot{
		FileID:    payload.FileID,
		UploadURL: payload.Request.URL,
		Fields:    payload.Request.Fields,
	}, nil
}

// AddChapter uploads the local audio file and registers it as a new chapter
// on the figurine: acquire a slot, stream the file to blob storage, then
// register the chapter. Steps run in order with no retry; a step failure
// aborts the rest and surfaces that step's error. The call is not idempotent
// (repeating it creates a duplicate chapter) and performs no compensation for
// an uploaded-but-unregistered blob.
func (c *Client) AddChapter(ctx context.Context, tonie CreativeTonie, path, title string, opts UploadOptions) error {
	if tonie.ID == "" {
		return errors.New("creative tonie id is empty")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = filepath.Base(path)
	}

	slot, err := c.CreateFileUpload(ctx)
	if err != nil {
		return err
	}
	if err := c.uploadBlob(ctx, slot, path, opts.Progress); err != nil {
		return err
	}
	origin := strings.TrimSpace(opts.Origin)
	if origin == "" {
		origin = c.origin
	}
	return c.registerChapter(ctx, tonie, AddChapterRequest{Title: title, File: slot.FileID, Origin: origin})
}

// uploadBlob streams the local file as a multipart form to the provider URL.
// The provider fields go first and the file part last, and the request carries
// no application bearer token: the URL is opaque, provider-controlled blob
// storage, not the application API.
func (c *Client) uploadBlob(ctx context.Context, slot UploadSlot, path string, progress func(UploadProgress)) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("stat upload file: %w", err)
	}
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open upload file: %w", err)
	}
	defer file.Close()

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeUploadForm(writer, slot, file, filepath.Base(path), info.Size(), progress))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, slot.UploadURL, pr)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: blob store returned %d: %s", ErrUploadFailed, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

func writeUploadForm(writer *multipart.Writer, slot UploadSlot, file io.Reader, name string, size int64, progress func(UploadProgress)) error {
	for key, value := range slot.Fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("write form field %q: %w", key, err)
		}
	}
	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return fmt.Errorf("create file part: %w", err)
	}
	src := file
	if progress != nil {
		src = &progressReader{reader: file, total: size, report: progress}
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("stream file: %w", err)
	}
	return writer.Close()
}

// registerChapter makes the uploaded blob visible as a chapter. The service
// does not return the new chapter, so its id is only observable through a
// subsequent CreativeTonies read.
func (c *Client) registerChapter(ctx context.Context, tonie CreativeTonie, request AddChapterRequest) error {
	household, err := c.tonieHousehold(ctx, tonie)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("encode chapter request: %w", err)
	}
	endpoint := fmt.Sprintf("%s/households/%s/creativetonies/%s/chapters", c.baseURL, household, tonie.ID)
	resp, err := c.doAuthed(ctx, http.MethodPost, endpoint, "application/json", strings.NewReader(string(payload)))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) tonieHousehold(ctx context.Context, tonie CreativeTonie) (string, error) {
	if tonie.HouseholdID != "" {
		return tonie.HouseholdID, nil
	}
	household, err := c.CurrentHousehold(ctx)
	if err != nil {
		return "", err
	}
	return household.ID, nil
}

type progressReader struct {
	reader  io.Reader
	total   int64
	written int64
	report  func(UploadProgress)
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	if n > 0 {
		r.written += int64(n)
		r.report(UploadProgress{Written: r.written, Total: r.total})
	}
	return n, err
}
