package models

// ContactStatus константы статусов заявок
const (
	ContactStatusNew        = "new"
	ContactStatusProcessing = "processing"
	ContactStatusCompleted  = "completed"
)

// MediaType константы типов медиа-файлов
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// DefaultUploader используется, когда автор загрузки неизвестен.
const DefaultUploader = "admin"

// ValidContactStatuses список валидных статусов заявок
var ValidContactStatuses = map[string]struct{}{
	ContactStatusNew:        {},
	ContactStatusProcessing: {},
	ContactStatusCompleted:  {},
}

// ValidMediaTypes список валидных типов медиа
var ValidMediaTypes = map[string]struct{}{
	MediaTypeImage: {},
	MediaTypeVideo: {},
}
