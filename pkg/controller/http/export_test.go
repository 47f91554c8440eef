package http

var (
	ContentDisposition = contentDisposition
	StatusOf           = statusOf
)
