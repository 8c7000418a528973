package defines

// JobStatus represents the current state of an image processing job
type JobStatus string

const (
	JobStatusProcessing JobStatus = "processing"
	JobStatusComplete   JobStatus = "complete"
	JobStatusFailed     JobStatus = "failed"
)

// Object key layout in the image bucket
const (
	SourceImageExt        = ".jpg"
	TranslatedImagePrefix = "translated-"
	DefaultContentType    = "image/jpeg"
)
