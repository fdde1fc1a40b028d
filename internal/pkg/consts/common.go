package consts

const (
	MimePrefixImage = "image"
	MimePrefixAudio = "audio"
	MimePrefixVideo = "video"
	MimePDF         = "application/pdf"
)

const (
	DefaultTTLSeconds    = 3600
	DefaultPrefetchTTLx  = 2
	DefaultThreshold     = 80.0
	DefaultSnippetLength = 80
)
