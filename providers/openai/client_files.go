package openai

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/petal-labs/chatstream/core"
)

const filesPath = "/v1/files"

// ListFiles returns the files uploaded by the organization.
func (c *Client) ListFiles(ctx context.Context) ([]File, error) {
	var list dataList[File]
	if err := c.doJSON(ctx, "files.list", "", http.MethodGet, filesPath, nil, &list); err != nil {
		return nil, err
	}
	return list.Data, nil
}

// UploadFile uploads req.File for the given purpose.
func (c *Client) UploadFile(ctx context.Context, req *FileUploadRequest) (*File, error) {
	if req.File.Reader == nil {
		return nil, &core.MissingFieldError{Field: "file"}
	}
	if req.Purpose == "" {
		closeFiles(req.File)
		return nil, &core.MissingFieldError{Field: "purpose"}
	}

	form := newFormWriter()
	form.field("purpose", req.Purpose)
	form.file("file", req.File)

	var file File
	if err := c.doMultipart(ctx, "files.upload", "", filesPath, form, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

// GetFile returns the metadata of one file.
func (c *Client) GetFile(ctx context.Context, id string) (*File, error) {
	var file File
	if err := c.doJSON(ctx, "files.get", "", http.MethodGet, filesPath+"/"+url.PathEscape(id), nil, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

// DeleteFile deletes one file.
func (c *Client) DeleteFile(ctx context.Context, id string) (*FileDeleteResponse, error) {
	var resp FileDeleteResponse
	if err := c.doJSON(ctx, "files.delete", "", http.MethodDelete, filesPath+"/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetFileContent streams the raw content of one file. The caller must close
// the returned reader.
func (c *Client) GetFileContent(ctx context.Context, id string) (io.ReadCloser, error) {
	cl := c.begin("files.content", "")

	req, err := c.newRequest(ctx, cl, http.MethodGet, filesPath+"/"+url.PathEscape(id)+"/content", nil, "", false)
	if err != nil {
		cl.finish(core.Usage{}, 0, err)
		return nil, err
	}
	req.Header.Set("Accept", "*/*")

	resp, err := c.send(req)
	cl.finish(core.Usage{}, 0, err)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}
