package cli

var (
	GetIndexConfig = getIndexConfig
	RenderSnapshot = renderSnapshot
)
