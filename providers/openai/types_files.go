package openai

// FilePurposeFineTune is the purpose of fine-tuning training files.
const FilePurposeFineTune = "fine-tune"

// File represents an uploaded file.
type File struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	Bytes     int64  `json:"bytes"`
	CreatedAt int64  `json:"created_at"`
	Filename  string `json:"filename"`
	Purpose   string `json:"purpose"`
}

// FileUploadRequest contains parameters for uploading a file.
type FileUploadRequest struct {
	File    FileResource
	Purpose string
}

// FileDeleteResponse contains the result of a file deletion.
type FileDeleteResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}
