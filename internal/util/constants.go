package util

const (
	MimeVideo = "video/"
	MimeImage = "image/"
)
