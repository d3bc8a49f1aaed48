package interfaces

// FileStore is the narrow surface the contract flows need for attachments.
// Store returns the opaque name the file is kept under; Delete must be
// idempotent.
type FileStore interface {
	Store(b []byte, contentType, originalName string) (string, error)
	Load(fileName string) ([]byte, error)
	Path(fileName string) (string, error)
	Delete(fileName string)
}
