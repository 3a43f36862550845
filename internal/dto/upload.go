package dto

// UploadedFile describes one stored upload.
type UploadedFile struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimetype"`
}

// CertificateUploadResponse lists the files stored by a certificate batch upload.
type CertificateUploadResponse struct {
	Files []UploadedFile `json:"files"`
}
