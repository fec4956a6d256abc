package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// UploadFile is one file part of a multipart upload.
type UploadFile struct {
	FieldName string
	FileName  string
	Reader    io.Reader
}

// UploadResult is returned by the image upload endpoints.
type UploadResult struct {
	URL  string   `json:"url"`
	URLs []string `json:"urls,omitempty"`
}

// upload sends multipart form data instead of a JSON body. It shares the
// auth and error handling of the JSON path.
func (c *Client) upload(ctx context.Context, endpoint string, files []UploadFile, fields map[string]string) (*UploadResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range files {
		part, err := w.CreateFormFile(f.FieldName, f.FileName)
		if err != nil {
			return nil, fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return nil, fmt.Errorf("failed to copy file data: %w", err)
		}
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", k, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	if err := c.attachAuth(ctx, req); err != nil {
		return nil, err
	}

	var result UploadResult
	if err := c.do(req, endpoint, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UploadRecipeImage uploads a single recipe image.
func (c *Client) UploadRecipeImage(ctx context.Context, fileName string, r io.Reader) (*UploadResult, error) {
	return c.upload(ctx, "/upload/recipe-image", []UploadFile{{FieldName: "image", FileName: fileName, Reader: r}}, nil)
}

// UploadRecipeImages uploads multiple recipe images in one request.
func (c *Client) UploadRecipeImages(ctx context.Context, files []UploadFile) (*UploadResult, error) {
	return c.upload(ctx, "/upload/recipe-images", files, nil)
}

// UploadAvatar uploads a profile avatar.
func (c *Client) UploadAvatar(ctx context.Context, fileName string, r io.Reader) (*UploadResult, error) {
	return c.upload(ctx, "/upload/avatar", []UploadFile{{FieldName: "avatar", FileName: fileName, Reader: r}}, nil)
}

// UploadCoverImage uploads a profile cover image.
func (c *Client) UploadCoverImage(ctx context.Context, fileName string, r io.Reader) (*UploadResult, error) {
	return c.upload(ctx, "/upload/cover", []UploadFile{{FieldName: "cover", FileName: fileName, Reader: r}}, nil)
}
